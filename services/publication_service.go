package services

import (
	"errors"
	"fmt"
	"time"

	"journal-portal-api/models"

	"gorm.io/gorm"
)

// IssueResolver picks the issue a freshly accepted article is attached to.
// Kept injectable so the "latest issue regardless of status" policy can be
// swapped for a published-only one without touching the materializer.
type IssueResolver func(tx *gorm.DB) (*models.Issue, error)

// LatestIssue resolves the issue with the maximum (year, number) pair across
// all issues, whatever their status. Returns (nil, nil) when no issue exists.
func LatestIssue(tx *gorm.DB) (*models.Issue, error) {
	var issue models.Issue
	err := tx.Order("year DESC, number DESC").First(&issue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// LatestPublishedIssue is the stricter alternative policy: only published
// issues are eligible targets.
func LatestPublishedIssue(tx *gorm.DB) (*models.Issue, error) {
	var issue models.Issue
	err := tx.Where("status = ?", models.IssuePublished).
		Order("year DESC, number DESC").First(&issue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// PublicationService projects an accepted submission into a published
// article. The projection is idempotent with respect to article identity:
// re-running it updates the same article row.
type PublicationService struct {
	db           *gorm.DB
	ResolveIssue IssueResolver
}

func NewPublicationService(db *gorm.DB) *PublicationService {
	return &PublicationService{db: db, ResolveIssue: LatestIssue}
}

// normalizePages applies the placeholder paging policy: unset pages default
// to 1..2 and page_end always lands strictly after page_start.
func normalizePages(start, end int) (int, int) {
	if start <= 0 {
		start = 1
	}
	if end <= start {
		end = start + 1
	}
	return start, end
}

// Materialize creates or updates the article for the submission and returns
// it. A nil article with a nil error means no issue exists yet; the caller
// treats that as a recoverable condition, not a failure. The whole
// projection runs in one transaction so the article row and its author set
// are never observed half-written.
func (s *PublicationService) Materialize(submissionID int) (*models.Article, error) {
	var article *models.Article

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var submission models.Submission
		if err := tx.Preload("Authors").Where("id = ?", submissionID).First(&submission).Error; err != nil {
			return fmt.Errorf("failed to load submission: %w", err)
		}

		issue, err := s.ResolveIssue(tx)
		if err != nil {
			return fmt.Errorf("failed to resolve target issue: %w", err)
		}
		if issue == nil {
			return nil
		}

		now := time.Now()

		var existing models.Article
		isNew := false
		err = tx.Where("submission_id = ?", submission.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			isNew = true
			existing = models.Article{
				SubmissionID: &submission.ID,
				CreatedAt:    now,
			}
		} else if err != nil {
			return err
		}

		existing.IssueID = issue.IssueID
		existing.SectionID = submission.SectionID

		existing.TitleRu = submission.DisplayTitleRu()
		existing.TitleKk = submission.TitleKk
		existing.TitleEn = submission.TitleEn
		existing.AbstractRu = submission.AbstractRu
		existing.AbstractKk = submission.AbstractKk
		existing.AbstractEn = submission.AbstractEn
		existing.KeywordsRu = submission.KeywordsRu
		existing.KeywordsKk = submission.KeywordsKk
		existing.KeywordsEn = submission.KeywordsEn
		existing.Language = submission.Language

		existing.PageStart, existing.PageEnd = normalizePages(existing.PageStart, existing.PageEnd)

		// Never clobber a PDF that is already attached.
		if (isNew || !existing.HasPDF()) && submission.HasManuscript() {
			existing.PDFName = submission.ManuscriptName
			existing.PDFPath = submission.ManuscriptPath
		}

		existing.Status = models.ArticlePublished
		if submission.SubmittedAt != nil {
			existing.SubmittedAt = submission.SubmittedAt
		} else {
			existing.SubmittedAt = &now
		}
		existing.PublishedAt = &now
		existing.UpdatedAt = now

		if err := tx.Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to save article: %w", err)
		}

		// Full replace: the article author set mirrors the submission's
		// author set at materialization time.
		links := make([]models.ArticleAuthor, 0, len(submission.Authors)+1)
		seen := map[int]bool{}
		for _, sa := range submission.Authors {
			if !seen[sa.AuthorID] {
				seen[sa.AuthorID] = true
				links = append(links, models.ArticleAuthor{ArticleID: existing.ArticleID, UserID: sa.AuthorID})
			}
		}
		if !seen[submission.CorrespondingAuthorID] {
			links = append(links, models.ArticleAuthor{ArticleID: existing.ArticleID, UserID: submission.CorrespondingAuthorID})
		}
		if err := tx.Where("article_id = ?", existing.ArticleID).Delete(&models.ArticleAuthor{}).Error; err != nil {
			return fmt.Errorf("failed to clear article authors: %w", err)
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("failed to set article authors: %w", err)
		}

		article = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return article, nil
}
