package models

import "time"

// Review is one reviewer's structured evaluation of one submission for a
// given revision round. Scores are nullable so partially filled reviews can
// be saved as drafts.
type Review struct {
	ReviewID       int `gorm:"primaryKey;column:review_id" json:"review_id"`
	SubmissionID   int `gorm:"column:submission_id;uniqueIndex:uniq_review_round,priority:1" json:"submission_id"`
	ReviewerID     int `gorm:"column:reviewer_id;uniqueIndex:uniq_review_round,priority:2" json:"reviewer_id"`
	RevisionNumber int `gorm:"column:revision_number;default:0;uniqueIndex:uniq_review_round,priority:3" json:"revision_number"`
	AssignmentID   *int `gorm:"column:assignment_id" json:"assignment_id"`

	// Scores, 1-5 each.
	Originality     *int `gorm:"column:originality" json:"originality"`
	ScientificValue *int `gorm:"column:scientific_value" json:"scientific_value"`
	Methodology     *int `gorm:"column:methodology" json:"methodology"`
	Presentation    *int `gorm:"column:presentation" json:"presentation"`
	LanguageQuality *int `gorm:"column:language_quality" json:"language_quality"`
	Relevance       *int `gorm:"column:relevance" json:"relevance"`

	CommentsForAuthor string `gorm:"column:comments_for_author" json:"comments_for_author"`
	CommentsForEditor string `gorm:"column:comments_for_editor" json:"comments_for_editor"`
	GeneralComments   string `gorm:"column:general_comments" json:"general_comments"`
	Strengths         string `gorm:"column:strengths" json:"strengths"`
	Weaknesses        string `gorm:"column:weaknesses" json:"weaknesses"`
	Suggestions       string `gorm:"column:suggestions" json:"suggestions"`

	Recommendation Recommendation `gorm:"column:recommendation" json:"recommendation"`
	Status         ReviewStatus   `gorm:"column:status;default:assigned" json:"status"`

	ReviewFileName          *string `gorm:"column:review_file_name" json:"review_file_name"`
	ReviewFilePath          *string `gorm:"column:review_file_path" json:"review_file_path"`
	AnnotatedManuscriptPath *string `gorm:"column:annotated_manuscript_path" json:"annotated_manuscript_path"`

	ConflictOfInterest  bool   `gorm:"column:conflict_of_interest" json:"conflict_of_interest"`
	ConflictDetails     string `gorm:"column:conflict_details" json:"conflict_details"`
	TimeSpentMinutes    *int   `gorm:"column:time_spent_minutes" json:"time_spent_minutes"`
	VisibleToAuthor     bool   `gorm:"column:visible_to_author;default:true" json:"visible_to_author"`
	ReviewedFileVersion int    `gorm:"column:reviewed_file_version;default:1" json:"reviewed_file_version"`

	AssignedAt  time.Time  `gorm:"column:assigned_at" json:"assigned_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`

	Submission *Submission `gorm:"foreignKey:SubmissionID;references:ID" json:"submission,omitempty"`
	Reviewer   *User       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName overrides
func (Review) TableName() string {
	return "reviews"
}

// AverageScore returns the mean of the filled score fields. The second
// return value is false when no score has been filled in.
func (r *Review) AverageScore() (float64, bool) {
	var sum, n int
	for _, score := range []*int{
		r.Originality, r.ScientificValue, r.Methodology,
		r.Presentation, r.LanguageQuality, r.Relevance,
	} {
		if score != nil {
			sum += *score
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}

// IsCompleted reports whether the reviewer has delivered the review.
func (r *Review) IsCompleted() bool {
	return r.Status == ReviewCompleted
}

// IsFirstRound reports whether the review belongs to the initial round.
func (r *Review) IsFirstRound() bool {
	return r.RevisionNumber == 0
}
