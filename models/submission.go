package models

import "time"

// Submission is a manuscript under editorial consideration.
type Submission struct {
	ID           int    `gorm:"primaryKey;column:id" json:"id"`
	SubmissionID string `gorm:"column:submission_id;unique" json:"submission_id"` // public id, e.g. SUB1A2B3C4D

	SectionID *int `gorm:"column:section_id" json:"section_id"`

	// Multilingual metadata; Russian is the canonical language.
	TitleRu    string `gorm:"column:title_ru" json:"title_ru"`
	TitleKk    string `gorm:"column:title_kk" json:"title_kk"`
	TitleEn    string `gorm:"column:title_en" json:"title_en"`
	AbstractRu string `gorm:"column:abstract_ru" json:"abstract_ru"`
	AbstractKk string `gorm:"column:abstract_kk" json:"abstract_kk"`
	AbstractEn string `gorm:"column:abstract_en" json:"abstract_en"`
	KeywordsRu string `gorm:"column:keywords_ru" json:"keywords_ru"`
	KeywordsKk string `gorm:"column:keywords_kk" json:"keywords_kk"`
	KeywordsEn string `gorm:"column:keywords_en" json:"keywords_en"`
	Language   string `gorm:"column:language;default:ru" json:"language"`

	CorrespondingAuthorID int  `gorm:"column:corresponding_author_id" json:"corresponding_author_id"`
	AssignedEditorID      *int `gorm:"column:assigned_editor_id" json:"assigned_editor_id"`

	// Primary manuscript file.
	ManuscriptName *string `gorm:"column:manuscript_name" json:"manuscript_name"`
	ManuscriptPath *string `gorm:"column:manuscript_path" json:"manuscript_path"`
	ManuscriptSize *int64  `gorm:"column:manuscript_size" json:"manuscript_size"`

	// Research metadata.
	ResearchField      string `gorm:"column:research_field" json:"research_field"`
	Methodology        string `gorm:"column:methodology" json:"methodology"`
	Funding            string `gorm:"column:funding" json:"funding"`
	EthicsApproval     bool   `gorm:"column:ethics_approval" json:"ethics_approval"`
	EthicsCommittee    string `gorm:"column:ethics_committee" json:"ethics_committee"`
	ConflictOfInterest string `gorm:"column:conflict_of_interest" json:"conflict_of_interest"`
	DataAvailability   string `gorm:"column:data_availability" json:"data_availability"`
	AuthorComments     string `gorm:"column:author_comments" json:"author_comments"`
	EditorComments     string `gorm:"column:editor_comments" json:"editor_comments"`

	Status        SubmissionStatus `gorm:"column:status;default:draft" json:"status"`
	ReviewType    string           `gorm:"column:review_type;default:blind" json:"review_type"` // blind|open
	RevisionRound int              `gorm:"column:revision_round;default:0" json:"revision_round"`

	// Revisions link back to the submission they revise.
	ParentSubmissionID *int `gorm:"column:parent_submission_id" json:"parent_submission_id"`

	SubmittedAt        *time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	LastReviewDate     *time.Time `gorm:"column:last_review_date" json:"last_review_date"`
	LastRevisionDate   *time.Time `gorm:"column:last_revision_date" json:"last_revision_date"`
	EditorDecisionDate *time.Time `gorm:"column:editor_decision_date" json:"editor_decision_date"`
	CreatedAt          time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at" json:"updated_at"`

	// Relations
	Section             *Section           `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	CorrespondingAuthor *User              `gorm:"foreignKey:CorrespondingAuthorID" json:"corresponding_author,omitempty"`
	AssignedEditor      *User              `gorm:"foreignKey:AssignedEditorID" json:"assigned_editor,omitempty"`
	Authors             []SubmissionAuthor `gorm:"foreignKey:SubmissionID;references:ID" json:"authors,omitempty"`
	Files               []SubmissionFile   `gorm:"foreignKey:SubmissionID;references:ID" json:"files,omitempty"`
	ReviewAssignments   []ReviewAssignment `gorm:"foreignKey:SubmissionID;references:ID" json:"review_assignments,omitempty"`
	Reviews             []Review           `gorm:"foreignKey:SubmissionID;references:ID" json:"reviews,omitempty"`
	EditorialDecisions  []EditorialDecision `gorm:"foreignKey:SubmissionID;references:ID" json:"editorial_decisions,omitempty"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submissions"
}

// IsEditable reports whether the author may still change the submission structure.
func (s *Submission) IsEditable() bool {
	return s.Status == SubmissionDraft
}

// HasManuscript reports whether a primary manuscript file is attached.
func (s *Submission) HasManuscript() bool {
	return s.ManuscriptPath != nil && *s.ManuscriptPath != ""
}

// CanBeSubmitted reports whether the draft satisfies all submit preconditions.
func (s *Submission) CanBeSubmitted() bool {
	return len(s.SubmitBlockers()) == 0
}

// SubmitBlockers lists the reasons the submission cannot be submitted yet.
func (s *Submission) SubmitBlockers() []string {
	var blockers []string
	if s.Status != SubmissionDraft {
		blockers = append(blockers, "submission is not a draft")
	}
	if s.TitleRu == "" {
		blockers = append(blockers, "russian title is required")
	}
	if s.AbstractRu == "" {
		blockers = append(blockers, "russian abstract is required")
	}
	if s.SectionID == nil {
		blockers = append(blockers, "section is required")
	}
	if !s.HasManuscript() {
		blockers = append(blockers, "manuscript file is required")
	}
	return blockers
}

// GetTitle returns the title in the requested language with Russian fallback.
func (s *Submission) GetTitle(language string) string {
	switch language {
	case "kk":
		if s.TitleKk != "" {
			return s.TitleKk
		}
	case "en":
		if s.TitleEn != "" {
			return s.TitleEn
		}
	}
	return s.TitleRu
}

// DisplayTitleRu returns the Russian title, falling back to other languages
// so published articles never render with an empty title.
func (s *Submission) DisplayTitleRu() string {
	if s.TitleRu != "" {
		return s.TitleRu
	}
	if s.TitleEn != "" {
		return s.TitleEn
	}
	if s.TitleKk != "" {
		return s.TitleKk
	}
	return "Без названия"
}
