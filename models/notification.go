package models

import "time"

// Notification kinds dispatched by the workflow.
const (
	NotifySubmissionReceived = "submission_received"
	NotifyReviewInvitation   = "review_invitation"
	NotifyReviewCompleted    = "review_completed"
	NotifyEditorialDecision  = "editorial_decision"
)

// Notification is the in-app copy of a workflow notification. Email
// delivery is best-effort; this row is the durable record.
type Notification struct {
	NotificationID      uint       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID              int        `gorm:"column:user_id" json:"user_id"`
	Kind                string     `gorm:"column:kind" json:"kind"`
	Title               string     `gorm:"column:title" json:"title"`
	Message             string     `gorm:"column:message" json:"message"`
	RelatedSubmissionID *int       `gorm:"column:related_submission_id" json:"related_submission_id,omitempty"`
	IsRead              bool       `gorm:"column:is_read" json:"is_read"`
	CreateAt            time.Time  `gorm:"column:create_at" json:"created_at"`
	UpdateAt            *time.Time `gorm:"column:update_at" json:"-"`
}

func (Notification) TableName() string { return "notifications" }
