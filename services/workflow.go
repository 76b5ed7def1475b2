package services

import (
	"time"

	"journal-portal-api/models"

	"gorm.io/gorm"
)

// transitionStatus moves a submission to a new status inside tx and appends
// the status-history row. Callers are expected to have re-read the current
// status within the same transaction.
func transitionStatus(tx *gorm.DB, submission *models.Submission, newStatus models.SubmissionStatus, actorID int, reason string) error {
	oldStatus := submission.Status
	now := time.Now()

	if err := tx.Model(&models.Submission{}).
		Where("id = ?", submission.ID).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": now,
		}).Error; err != nil {
		return err
	}

	history := models.SubmissionStatusHistory{
		SubmissionID: submission.ID,
		OldStatus:    &oldStatus,
		NewStatus:    newStatus,
		ChangedBy:    actorID,
		CreatedAt:    now,
	}
	if reason != "" {
		history.Reason = &reason
	}
	if err := tx.Create(&history).Error; err != nil {
		return err
	}

	submission.Status = newStatus
	return nil
}

// MarkPublished advances an accepted submission to published after a retried
// materialization succeeded.
func MarkPublished(db *gorm.DB, submission *models.Submission, actorID int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return transitionStatus(tx, submission, models.SubmissionPublished, actorID, "article published")
	})
}
