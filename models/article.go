package models

import "time"

// Article statuses on the read side.
const (
	ArticleDraft     = "draft"
	ArticleAccepted  = "accepted"
	ArticlePublished = "published"
)

// Article is the published, citable unit. The publication materializer is
// the sole writer of the submission link; articles may also exist without
// one (legacy data).
type Article struct {
	ArticleID int  `gorm:"primaryKey;column:article_id" json:"article_id"`
	IssueID   int  `gorm:"column:issue_id" json:"issue_id"`
	SectionID *int `gorm:"column:section_id" json:"section_id"`

	// Originating submission, when the article came through the workflow.
	SubmissionID *int `gorm:"column:submission_id;uniqueIndex" json:"submission_id"`

	Slug *string `gorm:"column:slug;unique" json:"slug"`

	TitleRu    string `gorm:"column:title_ru" json:"title_ru"`
	TitleKk    string `gorm:"column:title_kk" json:"title_kk"`
	TitleEn    string `gorm:"column:title_en" json:"title_en"`
	AbstractRu string `gorm:"column:abstract_ru" json:"abstract_ru"`
	AbstractKk string `gorm:"column:abstract_kk" json:"abstract_kk"`
	AbstractEn string `gorm:"column:abstract_en" json:"abstract_en"`
	KeywordsRu string `gorm:"column:keywords_ru" json:"keywords_ru"`
	KeywordsKk string `gorm:"column:keywords_kk" json:"keywords_kk"`
	KeywordsEn string `gorm:"column:keywords_en" json:"keywords_en"`

	PageStart int `gorm:"column:page_start" json:"page_start"`
	PageEnd   int `gorm:"column:page_end" json:"page_end"`

	PDFName *string `gorm:"column:pdf_name" json:"pdf_name"`
	PDFPath *string `gorm:"column:pdf_path" json:"pdf_path"`

	Status   string `gorm:"column:status;default:draft" json:"status"`
	DOI      string `gorm:"column:doi" json:"doi"`
	Language string `gorm:"column:language;default:ru" json:"language"`

	// Read-side counters; never touched by the workflow.
	Views     int `gorm:"column:views;default:0" json:"views"`
	Downloads int `gorm:"column:downloads;default:0" json:"downloads"`

	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`

	Authors []User `gorm:"many2many:article_authors;foreignKey:ArticleID;joinForeignKey:article_id;references:UserID;joinReferences:user_id" json:"authors,omitempty"`

	Issue      *Issue      `gorm:"foreignKey:IssueID;references:IssueID" json:"issue,omitempty"`
	Section    *Section    `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Submission *Submission `gorm:"foreignKey:SubmissionID;references:ID" json:"submission,omitempty"`
}

// TableName overrides
func (Article) TableName() string {
	return "articles"
}

// ArticleAuthor is one row of the article-author join table. The
// materializer rewrites the whole set on every run, so the rows carry no
// payload beyond the pair itself.
type ArticleAuthor struct {
	ArticleID int `gorm:"primaryKey;column:article_id" json:"article_id"`
	UserID    int `gorm:"primaryKey;column:user_id" json:"user_id"`
}

func (ArticleAuthor) TableName() string {
	return "article_authors"
}

// HasPDF reports whether a PDF is already attached.
func (a *Article) HasPDF() bool {
	return a.PDFPath != nil && *a.PDFPath != ""
}

// GetTitle returns the article title in the requested language, defaulting to Russian.
func (a *Article) GetTitle(language string) string {
	switch language {
	case "kk":
		if a.TitleKk != "" {
			return a.TitleKk
		}
	case "en":
		if a.TitleEn != "" {
			return a.TitleEn
		}
	}
	return a.TitleRu
}
