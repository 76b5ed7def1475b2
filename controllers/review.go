package controllers

import (
	"net/http"
	"time"

	"journal-portal-api/config"
	"journal-portal-api/models"
	"journal-portal-api/services"

	"github.com/gin-gonic/gin"
)

// AssignReviewer invites a reviewer to a submission. Editors only.
func AssignReviewer(c *gin.Context) {
	editorID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.AssignReviewerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ReviewerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reviewer_id is required"})
		return
	}

	assignment, err := services.NewReviewService(config.DB).Assign(submissionID, editorID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"assignment": assignment,
	})
}

// ListMyAssignments returns the reviewer's assignments with an overdue flag
// computed against the current time.
func ListMyAssignments(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Submission").Preload("Submission.Section").
		Where("reviewer_id = ?", reviewerID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var assignments []models.ReviewAssignment
	if err := query.Order("assigned_at DESC").Find(&assignments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch assignments"})
		return
	}

	now := time.Now()
	items := make([]gin.H, 0, len(assignments))
	for _, a := range assignments {
		items = append(items, gin.H{
			"assignment": a,
			"is_overdue": a.IsOverdue(now),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": items,
		"total":       len(items),
	})
}

// AcceptAssignment records consent and opens the review form.
func AcceptAssignment(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}
	assignmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	review, err := services.NewReviewService(config.DB).Accept(assignmentID, reviewerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Assignment accepted",
		"review":  review,
	})
}

// DeclineAssignment records refusal with an optional reason.
func DeclineAssignment(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}
	assignmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.NewReviewService(config.DB).Decline(assignmentID, reviewerID, req.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Assignment declined",
	})
}

// GetMyReview returns the reviewer's own review form state.
func GetMyReview(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var review models.Review
	if err := config.DB.Preload("Submission").
		Where("review_id = ? AND reviewer_id = ?", reviewID, reviewerID).
		First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"review":  review,
	})
}

// SaveReviewDraft stores partial review content without completing it.
func SaveReviewDraft(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.NewReviewService(config.DB).SaveDraft(reviewID, reviewerID, req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Draft saved",
	})
}

// CompleteReview finalizes the review with a mandatory recommendation.
func CompleteReview(c *gin.Context) {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := services.NewReviewService(config.DB).Complete(reviewID, reviewerID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Review completed",
		"review":  review,
	})
}

// ListSubmissionReviews returns all reviews of a submission for editors.
func ListSubmissionReviews(c *gin.Context) {
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var reviews []models.Review
	if err := config.DB.Preload("Reviewer").
		Where("submission_id = ?", submissionID).
		Order("revision_number ASC, created_at ASC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	items := make([]gin.H, 0, len(reviews))
	for _, r := range reviews {
		avg, hasAvg := r.AverageScore()
		item := gin.H{"review": r}
		if hasAvg {
			item["average_score"] = avg
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": items,
		"total":   len(items),
	})
}

// ReopenReview sends a resubmitted revision back into the review stage.
func ReopenReview(c *gin.Context) {
	editorID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := services.NewReviewService(config.DB).ReopenReview(submissionID, editorID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission returned to review",
	})
}

// ListOverdueAssignments surfaces assignments past their review deadline.
func ListOverdueAssignments(c *gin.Context) {
	assignments, err := services.NewReviewService(config.DB).OverdueAssignments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch overdue assignments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"assignments": assignments,
		"total":       len(assignments),
	})
}
