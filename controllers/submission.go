// controllers/submission.go
package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"journal-portal-api/config"
	"journal-portal-api/models"
	"journal-portal-api/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateSubmission starts a new draft for the authenticated author.
func CreateSubmission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateSubmissionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := services.NewSubmissionService(config.DB).Create(userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// UpdateSubmission updates the core bibliographic fields of a draft.
func UpdateSubmission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.CreateSubmissionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := services.NewSubmissionService(config.DB).UpdateCore(submissionID, userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// GetSubmission returns a submission with its relations. Authors see their
// own work; editors, admins and staff see everything.
func GetSubmission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	privileged, _ := c.Get("isPrivileged")

	query := config.DB.
		Preload("Section").
		Preload("CorrespondingAuthor").
		Preload("Authors", func(db *gorm.DB) *gorm.DB { return db.Order("author_order ASC") }).
		Preload("Authors.Author").
		Preload("Files")

	// Authors only see completed reviews marked visible to them; the
	// editorial office sees everything.
	if privileged == true {
		query = query.Preload("Reviews").Preload("EditorialDecisions")
	} else {
		query = query.Preload("Reviews", "status = ? AND visible_to_author = ?",
			models.ReviewCompleted, true)
	}

	var submission models.Submission
	if err := query.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	if submission.CorrespondingAuthorID != userID && privileged != true {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	// Confidential reviewer remarks never leave the editorial office.
	if privileged != true {
		for i := range submission.Reviews {
			submission.Reviews[i].CommentsForEditor = ""
			submission.Reviews[i].ConflictDetails = ""
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

// ListMySubmissions returns the author's submissions, optionally filtered by
// status (?status=draft).
func ListMySubmissions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Section").
		Where("corresponding_author_id = ?", userID)

	if status := c.Query("status"); status != "" {
		if !models.SubmissionStatus(status).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status filter"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var submissions []models.Submission
	if err := query.Order("updated_at DESC").Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// GetSubmissionReadiness reports whether a draft can be submitted and which
// required items are still missing.
func GetSubmissionReadiness(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var submission models.Submission
	if err := config.DB.Where("id = ? AND corresponding_author_id = ?", submissionID, userID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	blockers := submission.SubmitBlockers()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"ready":    len(blockers) == 0,
		"blockers": blockers,
	})
}

// SubmitSubmission locks the draft and hands it to the editorial office.
func SubmitSubmission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	submission, err := services.NewSubmissionService(config.DB).Submit(submissionID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission sent to the editorial office",
		"submission": submission,
	})
}

// WithdrawSubmission declines the submission at the author's request.
func WithdrawSubmission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := services.NewSubmissionService(config.DB).Withdraw(submissionID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Submission withdrawn",
	})
}

// UpdateSubmissionMetadata updates research/ethics metadata.
func UpdateSubmissionMetadata(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.MetadataInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.NewSubmissionService(config.DB).UpdateMetadata(submissionID, userID, req); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Metadata updated",
	})
}

// storeUploadedFile writes the multipart file under
// UPLOAD_PATH/submissions/<id>/ with a unique prefix.
func storeUploadedFile(c *gin.Context, submissionID int) (*services.StoredFile, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return nil, false
	}

	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	dir := filepath.Join(uploadPath, "submissions", strconv.Itoa(submissionID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload directory"})
		return nil, false
	}

	safeName := strings.ReplaceAll(filepath.Base(file.Filename), " ", "_")
	fullPath := filepath.Join(dir, uuid.New().String()[:8]+"_"+safeName)
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return nil, false
	}

	return &services.StoredFile{
		OriginalName: file.Filename,
		StoredPath:   fullPath,
		Size:         file.Size,
		MimeType:     file.Header.Get("Content-Type"),
	}, true
}

// UploadManuscript attaches or replaces the primary manuscript of a draft.
func UploadManuscript(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	stored, ok := storeUploadedFile(c, submissionID)
	if !ok {
		return
	}

	submission, err := services.NewSubmissionService(config.DB).SetManuscript(submissionID, userID, *stored)
	if err != nil {
		os.Remove(stored.StoredPath)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Manuscript uploaded",
		"submission": submission,
	})
}

// UploadSubmissionFile attaches a supplementary file of a given kind.
func UploadSubmissionFile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	kind := c.PostForm("file_type")
	if kind == "" {
		kind = models.FileKindSupplementary
	}

	stored, ok := storeUploadedFile(c, submissionID)
	if !ok {
		return
	}

	record, err := services.NewSubmissionService(config.DB).AttachFile(
		submissionID, userID, kind, c.PostForm("name"), c.PostForm("description"), *stored)
	if err != nil {
		os.Remove(stored.StoredPath)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"file":    record,
	})
}

// ResubmitSubmission uploads a revised manuscript after a revision request.
func ResubmitSubmission(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	stored, ok := storeUploadedFile(c, submissionID)
	if !ok {
		return
	}

	submission, err := services.NewSubmissionService(config.DB).Resubmit(submissionID, userID, *stored)
	if err != nil {
		os.Remove(stored.StoredPath)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Revision submitted",
		"submission": submission,
	})
}

// AddSubmissionAuthor appends a co-author to the ordered author list.
func AddSubmissionAuthor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.AddAuthorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := services.NewSubmissionService(config.DB).AddAuthor(submissionID, userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"author":  record,
	})
}

// RemoveSubmissionAuthor drops a non-corresponding author from a draft.
func RemoveSubmissionAuthor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	authorID, ok := pathID(c, "authorId")
	if !ok {
		return
	}

	if err := services.NewSubmissionService(config.DB).RemoveAuthor(submissionID, userID, authorID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Author removed",
	})
}

// ListSubmissionAuthors returns the ordered author list.
func ListSubmissionAuthors(c *gin.Context) {
	userID, ok := currentUserID(c)
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
	privileged, _ := c.Get("isPrivileged")
	if submission.CorrespondingAuthorID != userID && privileged != true {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var authors []models.SubmissionAuthor
	if err := config.DB.Preload("Author").
		Where("submission_id = ?", submissionID).
		Order("author_order ASC").
		Find(&authors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch authors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"authors": authors,
	})
}

// GetSubmissionHistory returns the status audit trail.
func GetSubmissionHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
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
	privileged, _ := c.Get("isPrivileged")
	if submission.CorrespondingAuthorID != userID && privileged != true {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	var history []models.SubmissionStatusHistory
	if err := config.DB.Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": history,
	})
}
