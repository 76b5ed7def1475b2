package services

import (
	"errors"
	"fmt"
	"time"

	"journal-portal-api/models"

	"gorm.io/gorm"
)

// ReviewService mediates reviewer invitation and review capture.
type ReviewService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db, notifier: NewNotificationService(db)}
}

type AssignReviewerInput struct {
	ReviewerID        int        `json:"reviewer_id"`
	ReviewDue         *time.Time `json:"review_due"`
	ResponseDue       *time.Time `json:"response_due"`
	InvitationMessage string     `json:"invitation_message"`
	IsBlind           *bool      `json:"is_blind"`
}

// Assign invites a reviewer to a submission. A reviewer can be assigned to
// a submission only once; a concurrent duplicate surfaces as a conflict via
// the (submission, reviewer) unique index rather than a lock.
func (s *ReviewService) Assign(submissionID, assignedByID int, in AssignReviewerInput) (*models.ReviewAssignment, error) {
	var submission models.Submission
	if err := s.db.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newPreconditionError("submission not found")
		}
		return nil, err
	}
	if !submission.Status.CanAssignReviewer() {
		return nil, newPreconditionError(fmt.Sprintf("reviewers cannot be assigned while the submission is %s", submission.Status))
	}

	var reviewer models.User
	if err := s.db.Where("user_id = ? AND delete_at IS NULL", in.ReviewerID).First(&reviewer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("reviewer not found")
		}
		return nil, err
	}
	if !reviewer.IsReviewer() && !reviewer.IsPrivileged() {
		return nil, newValidationError("selected user cannot act as a reviewer")
	}

	var existing int64
	if err := s.db.Model(&models.ReviewAssignment{}).
		Where("submission_id = ? AND reviewer_id = ?", submission.ID, in.ReviewerID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, newConflictError("reviewer is already assigned to this submission")
	}

	now := time.Now()
	reviewDue := in.ReviewDue
	if reviewDue == nil {
		due := now.AddDate(0, 0, models.DefaultReviewDueDays)
		reviewDue = &due
	}

	assignment := models.ReviewAssignment{
		SubmissionID:      submission.ID,
		ReviewerID:        in.ReviewerID,
		AssignedByID:      &assignedByID,
		Status:            models.AssignmentPending,
		AssignedAt:        now,
		ResponseDue:       in.ResponseDue,
		ReviewDue:         reviewDue,
		InvitationMessage: in.InvitationMessage,
		IsBlind:           true,
	}
	if in.IsBlind != nil {
		assignment.IsBlind = *in.IsBlind
		assignment.CanViewIdentity = !*in.IsBlind
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assignment).Error; err != nil {
			if isDuplicateKeyError(err) {
				return newConflictError("reviewer is already assigned to this submission")
			}
			return err
		}
		if submission.Status == models.SubmissionSubmitted || submission.Status == models.SubmissionReviewing {
			return transitionStatus(tx, &submission, models.SubmissionReviewerAssigned, assignedByID, "reviewer assigned")
		}
		return nil
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			return nil, conflict
		}
		return nil, fmt.Errorf("failed to assign reviewer: %w", err)
	}

	assignment.Submission = &submission
	assignment.Reviewer = &reviewer
	s.notifier.ReviewInvitation(&assignment)

	return &assignment, nil
}

// loadAssignmentFor fetches an assignment and verifies reviewer ownership.
func (s *ReviewService) loadAssignmentFor(assignmentID, reviewerID int) (*models.ReviewAssignment, error) {
	var assignment models.ReviewAssignment
	if err := s.db.Preload("Submission").Where("assignment_id = ?", assignmentID).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newPreconditionError("assignment not found")
		}
		return nil, err
	}
	if assignment.ReviewerID != reviewerID {
		return nil, newPreconditionError("assignment belongs to another reviewer")
	}
	return &assignment, nil
}

// Accept records the reviewer's consent and opens the review for the
// submission's current revision round. Re-accepting reuses the existing
// review instead of duplicating it.
func (s *ReviewService) Accept(assignmentID, reviewerID int) (*models.Review, error) {
	assignment, err := s.loadAssignmentFor(assignmentID, reviewerID)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.AssignmentPending {
		return nil, newPreconditionError(fmt.Sprintf("assignment is %s, not pending", assignment.Status))
	}

	round := 0
	if assignment.Submission != nil {
		round = assignment.Submission.RevisionRound
	}

	now := time.Now()
	var review models.Review
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ReviewAssignment{}).
			Where("assignment_id = ?", assignment.AssignmentID).
			Updates(map[string]interface{}{
				"status":       models.AssignmentAccepted,
				"responded_at": now,
			}).Error; err != nil {
			return err
		}

		err := tx.Where("submission_id = ? AND reviewer_id = ? AND revision_number = ?",
			assignment.SubmissionID, reviewerID, round).First(&review).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			review = models.Review{
				SubmissionID:        assignment.SubmissionID,
				ReviewerID:          reviewerID,
				RevisionNumber:      round,
				AssignmentID:        &assignment.AssignmentID,
				Status:              models.ReviewInProgress,
				ReviewedFileVersion: 1,
				VisibleToAuthor:     true,
				AssignedAt:          now,
				CreatedAt:           now,
				UpdatedAt:           now,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		return tx.Model(&models.ReviewAssignment{}).
			Where("assignment_id = ?", assignment.AssignmentID).
			Update("review_id", review.ReviewID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to accept assignment: %w", err)
	}
	return &review, nil
}

// Decline records the reviewer's refusal. No review is created.
func (s *ReviewService) Decline(assignmentID, reviewerID int, reason string) error {
	assignment, err := s.loadAssignmentFor(assignmentID, reviewerID)
	if err != nil {
		return err
	}
	if assignment.Status != models.AssignmentPending {
		return newPreconditionError(fmt.Sprintf("assignment is %s, not pending", assignment.Status))
	}

	return s.db.Model(&models.ReviewAssignment{}).
		Where("assignment_id = ?", assignment.AssignmentID).
		Updates(map[string]interface{}{
			"status":         models.AssignmentDeclined,
			"decline_reason": reason,
			"responded_at":   time.Now(),
		}).Error
}

type ReviewInput struct {
	Originality     *int `json:"originality"`
	ScientificValue *int `json:"scientific_value"`
	Methodology     *int `json:"methodology"`
	Presentation    *int `json:"presentation"`
	LanguageQuality *int `json:"language_quality"`
	Relevance       *int `json:"relevance"`

	CommentsForAuthor string `json:"comments_for_author"`
	CommentsForEditor string `json:"comments_for_editor"`
	GeneralComments   string `json:"general_comments"`
	Strengths         string `json:"strengths"`
	Weaknesses        string `json:"weaknesses"`
	Suggestions       string `json:"suggestions"`

	Recommendation models.Recommendation `json:"recommendation"`

	ConflictOfInterest bool   `json:"conflict_of_interest"`
	ConflictDetails    string `json:"conflict_details"`
	TimeSpentMinutes   *int   `json:"time_spent_minutes"`
}

func validateScores(in *ReviewInput) []string {
	var details []string
	check := func(name string, v *int) {
		if v != nil && (*v < 1 || *v > 5) {
			details = append(details, name+" must be between 1 and 5")
		}
	}
	check("originality", in.Originality)
	check("scientific_value", in.ScientificValue)
	check("methodology", in.Methodology)
	check("presentation", in.Presentation)
	check("language_quality", in.LanguageQuality)
	check("relevance", in.Relevance)
	return details
}

// loadReviewFor fetches a review and verifies reviewer ownership.
func (s *ReviewService) loadReviewFor(reviewID, reviewerID int) (*models.Review, error) {
	var review models.Review
	if err := s.db.Where("review_id = ?", reviewID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newPreconditionError("review not found")
		}
		return nil, err
	}
	if review.ReviewerID != reviewerID {
		return nil, newPreconditionError("review belongs to another reviewer")
	}
	return &review, nil
}

func reviewUpdates(in *ReviewInput) map[string]interface{} {
	return map[string]interface{}{
		"originality":          in.Originality,
		"scientific_value":     in.ScientificValue,
		"methodology":          in.Methodology,
		"presentation":         in.Presentation,
		"language_quality":     in.LanguageQuality,
		"relevance":            in.Relevance,
		"comments_for_author":  in.CommentsForAuthor,
		"comments_for_editor":  in.CommentsForEditor,
		"general_comments":     in.GeneralComments,
		"strengths":            in.Strengths,
		"weaknesses":           in.Weaknesses,
		"suggestions":          in.Suggestions,
		"conflict_of_interest": in.ConflictOfInterest,
		"conflict_details":     in.ConflictDetails,
		"time_spent_minutes":   in.TimeSpentMinutes,
		"updated_at":           time.Now(),
	}
}

// SaveDraft stores partial review content without completing it.
func (s *ReviewService) SaveDraft(reviewID, reviewerID int, in ReviewInput) error {
	review, err := s.loadReviewFor(reviewID, reviewerID)
	if err != nil {
		return err
	}
	if review.Status == models.ReviewCompleted {
		return newPreconditionError("completed reviews cannot be edited")
	}
	if details := validateScores(&in); len(details) > 0 {
		return newValidationError("invalid review", details...)
	}

	updates := reviewUpdates(&in)
	if in.Recommendation != "" {
		if !in.Recommendation.IsValid() {
			return newValidationError("invalid review", "unknown recommendation")
		}
		updates["recommendation"] = in.Recommendation
	}
	updates["status"] = models.ReviewInProgress

	return s.db.Model(&models.Review{}).Where("review_id = ?", review.ReviewID).Updates(updates).Error
}

// Complete finalizes the review: the recommendation becomes mandatory, the
// linked assignment cascades to completed, and the submission moves to
// review_completed when it was waiting on this round.
func (s *ReviewService) Complete(reviewID, reviewerID int, in ReviewInput) (*models.Review, error) {
	review, err := s.loadReviewFor(reviewID, reviewerID)
	if err != nil {
		return nil, err
	}
	if review.Status == models.ReviewCompleted {
		return nil, newPreconditionError("review has already been completed")
	}
	if !in.Recommendation.IsValid() {
		return nil, newValidationError("invalid review", "a recommendation is required to complete the review")
	}
	if details := validateScores(&in); len(details) > 0 {
		return nil, newValidationError("invalid review", details...)
	}

	var submission models.Submission
	if err := s.db.Where("id = ?", review.SubmissionID).First(&submission).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := reviewUpdates(&in)
		updates["recommendation"] = in.Recommendation
		updates["status"] = models.ReviewCompleted
		updates["completed_at"] = now
		if err := tx.Model(&models.Review{}).Where("review_id = ?", review.ReviewID).Updates(updates).Error; err != nil {
			return err
		}

		if review.AssignmentID != nil {
			if err := tx.Model(&models.ReviewAssignment{}).
				Where("assignment_id = ?", *review.AssignmentID).
				Update("status", models.AssignmentCompleted).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Submission{}).
			Where("id = ?", submission.ID).
			Update("last_review_date", now).Error; err != nil {
			return err
		}
		if submission.Status == models.SubmissionReviewerAssigned {
			return transitionStatus(tx, &submission, models.SubmissionReviewCompleted, reviewerID, "review completed")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to complete review: %w", err)
	}

	var full models.Review
	if err := s.db.Preload("Reviewer").Preload("Submission.AssignedEditor").
		Where("review_id = ?", review.ReviewID).First(&full).Error; err == nil {
		s.notifier.ReviewCompleted(&full)
		return &full, nil
	}
	return review, nil
}

// ReopenReview sends a resubmitted revision back into the review stage.
func (s *ReviewService) ReopenReview(submissionID, editorID int) error {
	var submission models.Submission
	if err := s.db.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newPreconditionError("submission not found")
		}
		return err
	}
	if submission.Status != models.SubmissionRevisionSubmitted {
		return newPreconditionError("only resubmitted revisions can be sent back to review")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return transitionStatus(tx, &submission, models.SubmissionReviewing, editorID, "revision sent to review")
	})
}

// OverdueAssignments lists actionable assignments whose review deadline has
// passed. Overdue is a passive predicate; nothing is cancelled here.
func (s *ReviewService) OverdueAssignments() ([]models.ReviewAssignment, error) {
	var assignments []models.ReviewAssignment
	err := s.db.Preload("Submission").Preload("Reviewer").
		Where("status IN ? AND review_due < ?", []models.AssignmentStatus{models.AssignmentPending, models.AssignmentAccepted}, time.Now()).
		Order("review_due ASC").
		Find(&assignments).Error
	return assignments, err
}
