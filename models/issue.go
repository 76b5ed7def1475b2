package models

import "time"

// Issue statuses.
const (
	IssueDraft     = "draft"
	IssuePublished = "published"
	IssueArchived  = "archived"
)

// Issue is a dated, numbered collection of published articles.
type Issue struct {
	IssueID int `gorm:"primaryKey;column:issue_id" json:"issue_id"`
	Year    int `gorm:"column:year;uniqueIndex:uniq_issue_year_number,priority:1" json:"year"`
	Number  int `gorm:"column:number;uniqueIndex:uniq_issue_year_number,priority:2" json:"number"`

	TitleRu string `gorm:"column:title_ru" json:"title_ru"`
	TitleKk string `gorm:"column:title_kk" json:"title_kk"`
	TitleEn string `gorm:"column:title_en" json:"title_en"`

	Status      string `gorm:"column:status;default:draft" json:"status"` // draft|published|archived
	Description string `gorm:"column:description" json:"description"`
	Keywords    string `gorm:"column:keywords" json:"keywords"`

	CoverImagePath *string `gorm:"column:cover_image_path" json:"cover_image_path"`
	PDFPath        *string `gorm:"column:pdf_path" json:"pdf_path"`

	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`

	Articles []Article `gorm:"foreignKey:IssueID;references:IssueID" json:"articles,omitempty"`
}

// TableName overrides
func (Issue) TableName() string {
	return "issues"
}

// IsPublished reports whether the issue is visible to readers.
func (i *Issue) IsPublished() bool {
	return i.Status == IssuePublished
}

// GetTitle returns the issue title in the requested language, defaulting to Russian.
func (i *Issue) GetTitle(language string) string {
	switch language {
	case "kk":
		if i.TitleKk != "" {
			return i.TitleKk
		}
	case "en":
		if i.TitleEn != "" {
			return i.TitleEn
		}
	}
	return i.TitleRu
}
