package models

import "time"

// DefaultReviewDueDays is the review deadline applied when the editor gives none.
const DefaultReviewDueDays = 14

// ReviewAssignment pairs one reviewer with one submission. The review content
// itself lives in Review; the assignment only tracks the invitation.
type ReviewAssignment struct {
	AssignmentID int `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	SubmissionID int `gorm:"column:submission_id;uniqueIndex:uniq_submission_reviewer,priority:1" json:"submission_id"`
	ReviewerID   int `gorm:"column:reviewer_id;uniqueIndex:uniq_submission_reviewer,priority:2" json:"reviewer_id"`
	AssignedByID *int `gorm:"column:assigned_by_id" json:"assigned_by_id"`

	Status AssignmentStatus `gorm:"column:status;default:pending" json:"status"`

	AssignedAt  time.Time  `gorm:"column:assigned_at" json:"assigned_at"`
	ResponseDue *time.Time `gorm:"column:response_due" json:"response_due"`
	ReviewDue   *time.Time `gorm:"column:review_due" json:"review_due"`
	RespondedAt *time.Time `gorm:"column:responded_at" json:"responded_at"`

	InvitationMessage string `gorm:"column:invitation_message" json:"invitation_message"`
	DeclineReason     string `gorm:"column:decline_reason" json:"decline_reason"`

	CanViewIdentity bool `gorm:"column:can_view_identity" json:"can_view_identity"`
	IsBlind         bool `gorm:"column:is_blind;default:true" json:"is_blind"`

	ReviewID *int `gorm:"column:review_id" json:"review_id"`

	Submission *Submission `gorm:"foreignKey:SubmissionID;references:ID" json:"submission,omitempty"`
	Reviewer   *User       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	AssignedBy *User       `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
	Review     *Review     `gorm:"foreignKey:ReviewID" json:"review,omitempty"`
}

// TableName overrides
func (ReviewAssignment) TableName() string {
	return "review_assignments"
}

// IsOverdue reports whether the review deadline has passed while the
// assignment is still actionable. Pure predicate, no side effects.
func (a *ReviewAssignment) IsOverdue(now time.Time) bool {
	if a.ReviewDue == nil {
		return false
	}
	if a.Status != AssignmentPending && a.Status != AssignmentAccepted {
		return false
	}
	return now.After(*a.ReviewDue)
}

// IsActionable reports whether the reviewer can still respond or deliver.
func (a *ReviewAssignment) IsActionable() bool {
	return a.Status == AssignmentPending || a.Status == AssignmentAccepted
}
