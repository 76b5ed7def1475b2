package models

import "time"

// SubmissionStatusHistory tracks historical status changes for submissions.
type SubmissionStatusHistory struct {
	HistoryID    int               `gorm:"primaryKey;column:history_id" json:"history_id"`
	SubmissionID int               `gorm:"column:submission_id" json:"submission_id"`
	OldStatus    *SubmissionStatus `gorm:"column:old_status" json:"old_status"`
	NewStatus    SubmissionStatus  `gorm:"column:new_status" json:"new_status"`
	ChangedBy    int               `gorm:"column:changed_by" json:"changed_by"`
	Reason       *string           `gorm:"column:reason" json:"reason"`
	CreatedAt    time.Time         `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table for SubmissionStatusHistory.
func (SubmissionStatusHistory) TableName() string {
	return "submission_status_history"
}
