package services

import (
	"errors"
	"fmt"
	"time"

	"journal-portal-api/models"

	"gorm.io/gorm"
)

// DecisionService is the single authoritative point where an editor's
// verdict drives the submission status forward, including the terminal
// publish transition. It never aggregates reviews on its own: the editor
// picks the decision and the subset of reviews it rests on.
type DecisionService struct {
	db        *gorm.DB
	notifier  *NotificationService
	publisher *PublicationService
}

func NewDecisionService(db *gorm.DB) *DecisionService {
	return &DecisionService{
		db:        db,
		notifier:  NewNotificationService(db),
		publisher: NewPublicationService(db),
	}
}

type DecideInput struct {
	Decision          models.Decision `json:"decision"`
	Comments          string          `json:"comments"`
	CommentsForAuthor string          `json:"comments_for_author"`
	InternalNotes     string          `json:"internal_notes"`
	ReviewIDs         []int           `json:"review_ids"`
}

// DecideResult carries the outcome; Warning is set for the recoverable
// "accepted but no issue to publish into" condition.
type DecideResult struct {
	Decision *models.EditorialDecision `json:"decision"`
	Article  *models.Article           `json:"article,omitempty"`
	Warning  string                    `json:"warning,omitempty"`
}

// Decide appends an editorial decision, maps it to the next submission
// status and, on accept, invokes the publication materializer. Decisions
// are history: prior rows are never edited.
func (s *DecisionService) Decide(submissionID, editorID int, in DecideInput) (*DecideResult, error) {
	if !in.Decision.IsValid() {
		return nil, newValidationError("unknown decision")
	}

	var submission models.Submission
	if err := s.db.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newPreconditionError("submission not found")
		}
		return nil, err
	}
	if submission.Status.IsTerminal() {
		return nil, newPreconditionError(fmt.Sprintf("submission is already %s", submission.Status))
	}

	// Only completed reviews of this submission may back the decision.
	var reviews []models.Review
	if len(in.ReviewIDs) > 0 {
		if err := s.db.Where("review_id IN ? AND submission_id = ? AND status = ?",
			in.ReviewIDs, submission.ID, models.ReviewCompleted).Find(&reviews).Error; err != nil {
			return nil, err
		}
		if len(reviews) != len(in.ReviewIDs) {
			return nil, newValidationError("decision references reviews that are missing, foreign or incomplete")
		}
	}

	now := time.Now()
	decision := models.EditorialDecision{
		SubmissionID:      submission.ID,
		DecisionMakerID:   &editorID,
		Decision:          in.Decision,
		Comments:          in.Comments,
		CommentsForAuthor: in.CommentsForAuthor,
		InternalNotes:     in.InternalNotes,
		IsFinal:           in.Decision.IsFinal(),
		DecidedAt:         now,
	}

	newStatus := in.Decision.StatusAfterDecision()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&decision).Error; err != nil {
			return err
		}
		if len(reviews) > 0 {
			if err := tx.Model(&decision).Association("Reviews").Append(reviews); err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Submission{}).
			Where("id = ?", submission.ID).
			Update("editor_decision_date", now).Error; err != nil {
			return err
		}
		// A decline verdict is recorded without touching the status.
		if newStatus == "" {
			return nil
		}
		return transitionStatus(tx, &submission, newStatus, editorID, "editorial decision: "+string(in.Decision))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	result := &DecideResult{Decision: &decision}

	// The decision is committed; publication runs in its own transaction so
	// a materializer failure never erases the recorded verdict.
	if in.Decision == models.DecisionAccept {
		article, err := s.publisher.Materialize(submission.ID)
		switch {
		case err != nil:
			result.Warning = "decision recorded, but publication failed: " + err.Error()
		case article == nil:
			result.Warning = "decision recorded, but no issue exists to publish into; the submission stays accepted"
		default:
			result.Article = article
			txErr := s.db.Transaction(func(tx *gorm.DB) error {
				return transitionStatus(tx, &submission, models.SubmissionPublished, editorID, "article published")
			})
			if txErr != nil {
				result.Warning = "article created, but the submission status could not be advanced: " + txErr.Error()
			}
		}
	}

	// Best effort, after all commits.
	var full models.Submission
	if err := s.db.Preload("CorrespondingAuthor").First(&full, submission.ID).Error; err == nil {
		decision.Submission = &full
		s.notifier.EditorialDecision(&decision)
	}

	return result, nil
}

// AssignEditor attaches an editor to the submission so completion
// notifications have a recipient.
func (s *DecisionService) AssignEditor(submissionID, editorID int) error {
	result := s.db.Model(&models.Submission{}).
		Where("id = ?", submissionID).
		Updates(map[string]interface{}{
			"assigned_editor_id": editorID,
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return newPreconditionError("submission not found")
	}
	return nil
}
