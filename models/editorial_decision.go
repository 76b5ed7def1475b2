package models

import "time"

// EditorialDecision is an editor's recorded verdict on a submission.
// Decisions are append-only; the history across revision rounds is kept
// in full and never edited in place.
type EditorialDecision struct {
	DecisionID      int  `gorm:"primaryKey;column:decision_id" json:"decision_id"`
	SubmissionID    int  `gorm:"column:submission_id" json:"submission_id"`
	DecisionMakerID *int `gorm:"column:decision_maker_id" json:"decision_maker_id"`

	Decision Decision `gorm:"column:decision" json:"decision"`

	Comments          string `gorm:"column:comments" json:"comments"`
	CommentsForAuthor string `gorm:"column:comments_for_author" json:"comments_for_author"`
	InternalNotes     string `gorm:"column:internal_notes" json:"internal_notes"`

	IsFinal   bool      `gorm:"column:is_final" json:"is_final"`
	DecidedAt time.Time `gorm:"column:decided_at" json:"decided_at"`

	// Snapshot of the completed reviews the decision rests on.
	Reviews []Review `gorm:"many2many:decision_reviews;foreignKey:DecisionID;joinForeignKey:decision_id;references:ReviewID;joinReferences:review_id" json:"reviews,omitempty"`

	Submission    *Submission `gorm:"foreignKey:SubmissionID;references:ID" json:"submission,omitempty"`
	DecisionMaker *User       `gorm:"foreignKey:DecisionMakerID" json:"decision_maker,omitempty"`
}

// TableName overrides
func (EditorialDecision) TableName() string {
	return "editorial_decisions"
}
