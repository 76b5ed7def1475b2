package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"journal-portal-api/models"
	"journal-portal-api/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionService drives the authoring workflow: stepwise edits of a draft
// submission up to the point it is locked by submit.
type SubmissionService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db, notifier: NewNotificationService(db)}
}

// generateSubmissionID produces the public id, e.g. SUB1A2B3C4D.
func generateSubmissionID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "SUB" + strings.ToUpper(hex[:8])
}

type CreateSubmissionInput struct {
	SectionID  *int   `json:"section_id"`
	TitleRu    string `json:"title_ru"`
	TitleKk    string `json:"title_kk"`
	TitleEn    string `json:"title_en"`
	AbstractRu string `json:"abstract_ru"`
	AbstractKk string `json:"abstract_kk"`
	AbstractEn string `json:"abstract_en"`
	KeywordsRu string `json:"keywords_ru"`
	KeywordsKk string `json:"keywords_kk"`
	KeywordsEn string `json:"keywords_en"`
	Language   string `json:"language"`
}

func validateCoreFields(in *CreateSubmissionInput) []string {
	var details []string
	if strings.TrimSpace(in.TitleRu) == "" {
		details = append(details, "title_ru is required")
	}
	if strings.TrimSpace(in.AbstractRu) == "" {
		details = append(details, "abstract_ru is required")
	}
	switch in.Language {
	case "", "ru", "kk", "en":
	default:
		details = append(details, "language must be ru, kk or en")
	}
	return details
}

// Create starts a new draft submission for the author and seeds the ordered
// author list with the corresponding author.
func (s *SubmissionService) Create(authorID int, in CreateSubmissionInput) (*models.Submission, error) {
	if details := validateCoreFields(&in); len(details) > 0 {
		return nil, newValidationError("invalid submission", details...)
	}

	var author models.User
	if err := s.db.Where("user_id = ? AND delete_at IS NULL", authorID).First(&author).Error; err != nil {
		return nil, fmt.Errorf("failed to load author: %w", err)
	}

	language := in.Language
	if language == "" {
		language = "ru"
	}

	now := time.Now()
	submission := models.Submission{
		SubmissionID:          generateSubmissionID(),
		SectionID:             in.SectionID,
		TitleRu:               strings.TrimSpace(in.TitleRu),
		TitleKk:               strings.TrimSpace(in.TitleKk),
		TitleEn:               strings.TrimSpace(in.TitleEn),
		AbstractRu:            strings.TrimSpace(in.AbstractRu),
		AbstractKk:            strings.TrimSpace(in.AbstractKk),
		AbstractEn:            strings.TrimSpace(in.AbstractEn),
		KeywordsRu:            strings.TrimSpace(in.KeywordsRu),
		KeywordsKk:            strings.TrimSpace(in.KeywordsKk),
		KeywordsEn:            strings.TrimSpace(in.KeywordsEn),
		Language:              language,
		CorrespondingAuthorID: authorID,
		Status:                models.SubmissionDraft,
		ReviewType:            "blind",
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}
		seed := models.SubmissionAuthor{
			SubmissionID:    submission.ID,
			AuthorID:        authorID,
			AuthorOrder:     1,
			IsCorresponding: true,
			IsPrincipal:     true,
			Email:           author.Email,
			CreatedAt:       now,
		}
		if author.Affiliation != nil {
			seed.Affiliation = *author.Affiliation
		}
		if author.ORCID != nil {
			seed.ORCID = *author.ORCID
		}
		return tx.Create(&seed).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	return &submission, nil
}

// loadOwned fetches a submission and verifies the actor is its
// corresponding author.
func (s *SubmissionService) loadOwned(submissionID, authorID int) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newPreconditionError("submission not found")
		}
		return nil, err
	}
	if submission.CorrespondingAuthorID != authorID {
		return nil, newPreconditionError("submission belongs to another author")
	}
	return &submission, nil
}

// UpdateCore updates title/abstract/keywords/section while the submission is
// still a draft.
func (s *SubmissionService) UpdateCore(submissionID, authorID int, in CreateSubmissionInput) (*models.Submission, error) {
	submission, err := s.loadOwned(submissionID, authorID)
	if err != nil {
		return nil, err
	}
	if !submission.IsEditable() {
		return nil, newPreconditionError("submitted submissions cannot be edited")
	}
	if details := validateCoreFields(&in); len(details) > 0 {
		return nil, newValidationError("invalid submission", details...)
	}

	updates := map[string]interface{}{
		"title_ru":    strings.TrimSpace(in.TitleRu),
		"title_kk":    strings.TrimSpace(in.TitleKk),
		"title_en":    strings.TrimSpace(in.TitleEn),
		"abstract_ru": strings.TrimSpace(in.AbstractRu),
		"abstract_kk": strings.TrimSpace(in.AbstractKk),
		"abstract_en": strings.TrimSpace(in.AbstractEn),
		"keywords_ru": strings.TrimSpace(in.KeywordsRu),
		"keywords_kk": strings.TrimSpace(in.KeywordsKk),
		"keywords_en": strings.TrimSpace(in.KeywordsEn),
		"updated_at":  time.Now(),
	}
	if in.SectionID != nil {
		updates["section_id"] = *in.SectionID
	}
	if in.Language != "" {
		updates["language"] = in.Language
	}

	if err := s.db.Model(&models.Submission{}).Where("id = ?", submission.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	if err := s.db.First(submission, submission.ID).Error; err != nil {
		return nil, err
	}
	return submission, nil
}

// ValidateUpload checks a candidate file against the size ceiling and the
// per-kind extension whitelist before anything is stored.
func ValidateUpload(filename string, size int64, kind string) error {
	var details []string
	if !models.IsValidFileKind(kind) {
		details = append(details, fmt.Sprintf("unknown file kind %q", kind))
	}
	if size > models.MaxFileSize {
		details = append(details, "file exceeds the 50 MB limit")
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	allowed := false
	for _, candidate := range models.AllowedExtensions(kind) {
		if ext == candidate {
			allowed = true
			break
		}
	}
	if !allowed {
		details = append(details, fmt.Sprintf("extension %q is not allowed for %s files", ext, kind))
	}
	if len(details) > 0 {
		return newValidationError("invalid file", details...)
	}
	return nil
}

type StoredFile struct {
	OriginalName string
	StoredPath   string
	Size         int64
	MimeType     string
}

// SetManuscript attaches or replaces the primary manuscript of a draft.
func (s *SubmissionService) SetManuscript(submissionID, authorID int, file StoredFile) (*models.Submission, error) {
	submission, err := s.loadOwned(submissionID, authorID)
	if err != nil {
		return nil, err
	}
	if !submission.IsEditable() {
		return nil, newPreconditionError("submitted submissions cannot be edited")
	}
	if err := ValidateUpload(file.OriginalName, file.Size, models.FileKindManuscript); err != nil {
		return nil, err
	}

	if err := s.db.Model(&models.Submission{}).Where("id = ?", submission.ID).Updates(map[string]interface{}{
		"manuscript_name": file.OriginalName,
		"manuscript_path": file.StoredPath,
		"manuscript_size": file.Size,
		"updated_at":      time.Now(),
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to attach manuscript: %w", err)
	}

	submission.ManuscriptName = &file.OriginalName
	submission.ManuscriptPath = &file.StoredPath
	submission.ManuscriptSize = &file.Size
	return submission, nil
}

// AttachFile appends a supplementary file. Versions count up per file kind
// so revision history survives re-uploads.
func (s *SubmissionService) AttachFile(submissionID, authorID int, kind, name, description string, file StoredFile) (*models.SubmissionFile, error) {
	submission, err := s.loadOwned(submissionID, authorID)
	if err != nil {
		return nil, err
	}
	if !submission.IsEditable() && submission.Status != models.SubmissionRevisionRequested {
		return nil, newPreconditionError("files can only be added to drafts or revisions")
	}
	if err := ValidateUpload(file.OriginalName, file.Size, kind); err != nil {
		return nil, err
	}

	name = utils.SanitizeInput(name)
	description = utils.SanitizeInput(description)

	var maxVersion int
	if err := s.db.Model(&models.SubmissionFile{}).
		Where("submission_id = ? AND file_type = ? AND delete_at IS NULL", submission.ID, kind).
		Select("COALESCE(MAX(version), 0)").
		Scan(&maxVersion).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve file version: %w", err)
	}

	if name == "" {
		name = file.OriginalName
	}

	record := models.SubmissionFile{
		SubmissionID: submission.ID,
		FileType:     kind,
		Name:         name,
		Description:  description,
		OriginalName: file.OriginalName,
		StoredPath:   file.StoredPath,
		FileSize:     file.Size,
		MimeType:     file.MimeType,
		Version:      maxVersion + 1,
		UploadedBy:   authorID,
		UploadedAt:   time.Now(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to store file record: %w", err)
	}
	return &record, nil
}

type AddAuthorInput struct {
	AuthorID        int    `json:"author_id"`
	AuthorOrder     int    `json:"author_order"`
	IsCorresponding bool   `json:"is_corresponding"`
	IsPrincipal     bool   `json:"is_principal"`
	Affiliation     string `json:"affiliation"`
	ORCID           string `json:"orcid"`
	Email           string `json:"email"`
}

// AddAuthor appends an author to the ordered list. At most one author per
// submission may be corresponding.
func (s *SubmissionService) AddAuthor(submissionID, actorID int, in AddAuthorInput) (*models.SubmissionAuthor, error) {
	submission, err := s.loadOwned(submissionID, actorID)
	if err != nil {
		return nil, err
	}
	if !submission.IsEditable() {
		return nil, newPreconditionError("submitted submissions cannot be edited")
	}

	if in.Email != "" && !utils.ValidateEmail(in.Email) {
		return nil, newValidationError("invalid author", "email is not valid")
	}

	var candidate models.User
	if err := s.db.Where("user_id = ? AND delete_at IS NULL", in.AuthorID).First(&candidate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newValidationError("author user not found")
		}
		return nil, err
	}

	var existing int64
	if err := s.db.Model(&models.SubmissionAuthor{}).
		Where("submission_id = ? AND author_id = ?", submission.ID, in.AuthorID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, newValidationError("author is already listed on this submission")
	}

	if in.IsCorresponding {
		var corresponding int64
		if err := s.db.Model(&models.SubmissionAuthor{}).
			Where("submission_id = ? AND is_corresponding = ?", submission.ID, true).
			Count(&corresponding).Error; err != nil {
			return nil, err
		}
		if corresponding > 0 {
			return nil, newValidationError("submission already has a corresponding author")
		}
	}

	if in.AuthorOrder == 0 {
		var maxOrder int
		s.db.Model(&models.SubmissionAuthor{}).
			Where("submission_id = ?", submission.ID).
			Select("COALESCE(MAX(author_order), 0)").
			Scan(&maxOrder)
		in.AuthorOrder = maxOrder + 1
	}

	email := in.Email
	if email == "" {
		email = candidate.Email
	}

	record := models.SubmissionAuthor{
		SubmissionID:    submission.ID,
		AuthorID:        in.AuthorID,
		AuthorOrder:     in.AuthorOrder,
		IsCorresponding: in.IsCorresponding,
		IsPrincipal:     in.IsPrincipal,
		Affiliation:     in.Affiliation,
		ORCID:           in.ORCID,
		Email:           email,
		CreatedAt:       time.Now(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, newConflictError("author is already listed on this submission")
		}
		return nil, fmt.Errorf("failed to add author: %w", err)
	}
	return &record, nil
}

// RemoveAuthor drops a non-corresponding author from a draft.
func (s *SubmissionService) RemoveAuthor(submissionID, actorID, submissionAuthorID int) error {
	submission, err := s.loadOwned(submissionID, actorID)
	if err != nil {
		return err
	}
	if !submission.IsEditable() {
		return newPreconditionError("submitted submissions cannot be edited")
	}

	var record models.SubmissionAuthor
	if err := s.db.Where("submission_author_id = ? AND submission_id = ?", submissionAuthorID, submission.ID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newValidationError("author record not found")
		}
		return err
	}
	if record.IsCorresponding {
		return newPreconditionError("the corresponding author cannot be removed")
	}
	return s.db.Delete(&record).Error
}

type MetadataInput struct {
	ResearchField      *string `json:"research_field"`
	Methodology        *string `json:"methodology"`
	Funding            *string `json:"funding"`
	EthicsApproval     *bool   `json:"ethics_approval"`
	EthicsCommittee    *string `json:"ethics_committee"`
	ConflictOfInterest *string `json:"conflict_of_interest"`
	DataAvailability   *string `json:"data_availability"`
	AuthorComments     *string `json:"author_comments"`
}

// UpdateMetadata is a free-form update of research/ethics metadata; it has
// no state-transition side effects.
func (s *SubmissionService) UpdateMetadata(submissionID, authorID int, in MetadataInput) error {
	submission, err := s.loadOwned(submissionID, authorID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if in.ResearchField != nil {
		updates["research_field"] = *in.ResearchField
	}
	if in.Methodology != nil {
		updates["methodology"] = *in.Methodology
	}
	if in.Funding != nil {
		updates["funding"] = *in.Funding
	}
	if in.EthicsApproval != nil {
		updates["ethics_approval"] = *in.EthicsApproval
	}
	if in.EthicsCommittee != nil {
		updates["ethics_committee"] = *in.EthicsCommittee
	}
	if in.ConflictOfInterest != nil {
		updates["conflict_of_interest"] = *in.ConflictOfInterest
	}
	if in.DataAvailability != nil {
		updates["data_availability"] = *in.DataAvailability
	}
	if in.AuthorComments != nil {
		updates["author_comments"] = *in.AuthorComments
	}

	return s.db.Model(&models.Submission{}).Where("id = ?", submission.ID).Updates(updates).Error
}

// Submit locks the draft. All preconditions are re-checked here, so calling
// it on an already submitted record fails instead of double-stamping.
func (s *SubmissionService) Submit(submissionID, authorID int) (*models.Submission, error) {
	submission, err := s.loadOwned(submissionID, authorID)
	if err != nil {
		return nil, err
	}
	if submission.Status != models.SubmissionDraft {
		return nil, newPreconditionError("submission has already been submitted")
	}
	if blockers := submission.SubmitBlockers(); len(blockers) > 0 {
		return nil, newValidationError("submission is not ready", blockers...)
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Submission{}).
			Where("id = ?", submission.ID).
			Update("submitted_at", now).Error; err != nil {
			return err
		}
		return transitionStatus(tx, submission, models.SubmissionSubmitted, authorID, "author submitted")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit: %w", err)
	}
	submission.SubmittedAt = &now

	// Best effort, after commit.
	var full models.Submission
	if err := s.db.Preload("CorrespondingAuthor").Preload("Section").First(&full, submission.ID).Error; err == nil {
		s.notifier.SubmissionReceived(&full)
	}

	return submission, nil
}

// Withdraw declines the submission at the author's request. Forbidden once
// published or already declined.
func (s *SubmissionService) Withdraw(submissionID, authorID int) error {
	submission, err := s.loadOwned(submissionID, authorID)
	if err != nil {
		return err
	}
	if !submission.Status.CanWithdraw() {
		return newPreconditionError("this submission can no longer be withdrawn")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return transitionStatus(tx, submission, models.SubmissionDeclined, authorID, "withdrawn by author")
	})
}

// Resubmit uploads a revised manuscript after a revision request, advancing
// the revision round. Subsequent reviews snapshot the new round number.
func (s *SubmissionService) Resubmit(submissionID, authorID int, file StoredFile) (*models.Submission, error) {
	submission, err := s.loadOwned(submissionID, authorID)
	if err != nil {
		return nil, err
	}
	if submission.Status != models.SubmissionRevisionRequested {
		return nil, newPreconditionError("no revision has been requested for this submission")
	}
	if err := ValidateUpload(file.OriginalName, file.Size, models.FileKindManuscript); err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Submission{}).
			Where("id = ?", submission.ID).
			Updates(map[string]interface{}{
				"manuscript_name":    file.OriginalName,
				"manuscript_path":    file.StoredPath,
				"manuscript_size":    file.Size,
				"revision_round":     gorm.Expr("revision_round + 1"),
				"last_revision_date": now,
			}).Error; err != nil {
			return err
		}
		return transitionStatus(tx, submission, models.SubmissionRevisionSubmitted, authorID, "revision submitted")
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resubmit: %w", err)
	}

	if err := s.db.First(submission, submission.ID).Error; err != nil {
		return nil, err
	}
	return submission, nil
}

// isDuplicateKeyError detects MySQL duplicate-entry violations surfaced
// through GORM.
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
