package controllers

import (
	"net/http"
	"time"

	"journal-portal-api/config"
	"journal-portal-api/models"
	"journal-portal-api/services"

	"github.com/gin-gonic/gin"
)

// ListIssues returns issues, newest first. Unauthenticated readers could be
// served the same payload; the route sits behind auth like everything else.
func ListIssues(c *gin.Context) {
	query := config.DB.Model(&models.Issue{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var issues []models.Issue
	if err := query.Order("year DESC, number DESC").Find(&issues).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch issues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"issues":  issues,
		"total":   len(issues),
	})
}

// GetIssue returns one issue with its articles.
func GetIssue(c *gin.Context) {
	issueID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var issue models.Issue
	if err := config.DB.Preload("Articles").Preload("Articles.Authors").
		Where("issue_id = ?", issueID).
		First(&issue).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"issue":   issue,
	})
}

type IssueRequest struct {
	Year        int    `json:"year" binding:"required"`
	Number      int    `json:"number" binding:"required"`
	TitleRu     string `json:"title_ru"`
	TitleKk     string `json:"title_kk"`
	TitleEn     string `json:"title_en"`
	Status      string `json:"status"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// CreateIssue opens a new issue. Newly accepted articles land in the latest
// issue by (year, number), so creating one redirects future publications.
func CreateIssue(c *gin.Context) {
	var req IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.IssueDraft
	}
	switch status {
	case models.IssueDraft, models.IssuePublished, models.IssueArchived:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown issue status"})
		return
	}

	now := time.Now()
	issue := models.Issue{
		Year:        req.Year,
		Number:      req.Number,
		TitleRu:     req.TitleRu,
		TitleKk:     req.TitleKk,
		TitleEn:     req.TitleEn,
		Status:      status,
		Description: req.Description,
		Keywords:    req.Keywords,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == models.IssuePublished {
		issue.PublishedAt = &now
	}

	if err := config.DB.Create(&issue).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An issue with this year and number already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"issue":   issue,
	})
}

// PublishIssue flips an issue to published and stamps the date.
func PublishIssue(c *gin.Context) {
	issueID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var issue models.Issue
	if err := config.DB.Where("issue_id = ?", issueID).First(&issue).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if issue.IsPublished() {
		c.JSON(http.StatusOK, gin.H{"success": true, "issue": issue})
		return
	}

	now := time.Now()
	if err := config.DB.Model(&issue).Updates(map[string]interface{}{
		"status":       models.IssuePublished,
		"published_at": now,
		"updated_at":   now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish issue"})
		return
	}

	issue.Status = models.IssuePublished
	issue.PublishedAt = &now
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"issue":   issue,
	})
}

// MaterializeSubmission retries publication for an accepted submission that
// could not be placed into an issue at decision time.
func MaterializeSubmission(c *gin.Context) {
	editorID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var submission models.Submission
	if err := config.DB.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if submission.Status != models.SubmissionAccepted {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Only accepted submissions can be published"})
		return
	}

	article, err := services.NewPublicationService(config.DB).Materialize(submission.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Publication failed"})
		return
	}
	if article == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No issue exists to publish into"})
		return
	}

	if err := services.MarkPublished(config.DB, &submission, editorID); err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"article": article,
			"warning": "article created, but the submission status could not be advanced",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"article": article,
	})
}
