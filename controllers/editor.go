package controllers

import (
	"net/http"
	"time"

	"journal-portal-api/config"
	"journal-portal-api/models"
	"journal-portal-api/services"

	"github.com/gin-gonic/gin"
)

// ListEditorQueue returns submissions visible to the editorial office,
// optionally filtered by status or assigned editor (?assigned_to_me=1).
func ListEditorQueue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Section").Preload("CorrespondingAuthor").
		Where("status <> ?", models.SubmissionDraft)

	if status := c.Query("status"); status != "" {
		if !models.SubmissionStatus(status).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if c.Query("assigned_to_me") == "1" {
		query = query.Where("assigned_editor_id = ?", userID)
	}

	var submissions []models.Submission
	if err := query.Order("submitted_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetEditorDashboard summarizes the pipeline: counts per status plus the
// overdue review backlog.
func GetEditorDashboard(c *gin.Context) {
	type statusCount struct {
		Status models.SubmissionStatus `json:"status"`
		Count  int64                   `json:"count"`
	}

	var counts []statusCount
	if err := config.DB.Model(&models.Submission{}).
		Select("status, COUNT(*) as count").
		Where("status <> ?", models.SubmissionDraft).
		Group("status").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard"})
		return
	}

	var pendingDecisions int64
	config.DB.Model(&models.Submission{}).
		Where("status = ?", models.SubmissionReviewCompleted).
		Count(&pendingDecisions)

	var overdue int64
	config.DB.Model(&models.ReviewAssignment{}).
		Where("status IN ? AND review_due < ?",
			[]models.AssignmentStatus{models.AssignmentPending, models.AssignmentAccepted}, time.Now()).
		Count(&overdue)

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"by_status":         counts,
		"pending_decisions": pendingDecisions,
		"overdue_reviews":   overdue,
	})
}

// AssignEditor attaches a handling editor to a submission.
func AssignEditor(c *gin.Context) {
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		EditorID int `json:"editor_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var editor models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.EditorID).
		First(&editor).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Editor not found"})
		return
	}
	if !editor.IsPrivileged() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected user is not an editor"})
		return
	}

	if err := services.NewDecisionService(config.DB).AssignEditor(submissionID, req.EditorID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Editor assigned",
	})
}

// RecordDecision appends an editorial decision. On accept the submission is
// published into the latest issue; a missing issue comes back as a warning,
// not an error.
func RecordDecision(c *gin.Context) {
	editorID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.DecideInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.NewDecisionService(config.DB).Decide(submissionID, editorID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := gin.H{
		"success":  true,
		"decision": result.Decision,
	}
	if result.Article != nil {
		response["article"] = result.Article
	}
	if result.Warning != "" {
		response["warning"] = result.Warning
	}

	c.JSON(http.StatusCreated, response)
}

// ListSubmissionDecisions returns the decision history of a submission.
func ListSubmissionDecisions(c *gin.Context) {
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var decisions []models.EditorialDecision
	if err := config.DB.Preload("DecisionMaker").Preload("Reviews").
		Where("submission_id = ?", submissionID).
		Order("decided_at ASC").
		Find(&decisions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch decisions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"decisions": decisions,
		"total":     len(decisions),
	})
}
