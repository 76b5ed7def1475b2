package models

import "time"

// SubmissionAuthor is the ordered author list of a submission. The
// corresponding author always has a row here; the coarse FK on Submission
// only marks which user owns the workflow.
type SubmissionAuthor struct {
	SubmissionAuthorID int    `gorm:"primaryKey;column:submission_author_id" json:"submission_author_id"`
	SubmissionID       int    `gorm:"column:submission_id;uniqueIndex:uniq_submission_author,priority:1" json:"submission_id"`
	AuthorID           int    `gorm:"column:author_id;uniqueIndex:uniq_submission_author,priority:2" json:"author_id"`
	AuthorOrder        int    `gorm:"column:author_order" json:"author_order"`
	IsCorresponding    bool   `gorm:"column:is_corresponding" json:"is_corresponding"`
	IsPrincipal        bool   `gorm:"column:is_principal" json:"is_principal"`
	Affiliation        string `gorm:"column:affiliation" json:"affiliation"`
	ORCID              string `gorm:"column:orcid" json:"orcid"`
	Email              string `gorm:"column:email" json:"email"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// TableName overrides
func (SubmissionAuthor) TableName() string {
	return "submission_authors"
}
