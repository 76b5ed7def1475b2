package services

import (
	"fmt"
	"log"
	"time"

	"journal-portal-api/config"
	"journal-portal-api/models"

	"gorm.io/gorm"
)

// NotificationService dispatches workflow notifications: an in-app
// notification row plus a best-effort email. Delivery failures are logged
// and swallowed; workflow correctness never depends on them.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) dispatch(userID int, email, kind, title, message string, submissionID *int) {
	row := models.Notification{
		UserID:              userID,
		Kind:                kind,
		Title:               title,
		Message:             message,
		RelatedSubmissionID: submissionID,
		CreateAt:            time.Now(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("notification: failed to store %s for user %d: %v", kind, userID, err)
	}

	if email == "" {
		return
	}
	if err := config.SendMail([]string{email}, title, "<pre>"+message+"</pre>"); err != nil {
		log.Printf("notification: failed to email %s to %s: %v", kind, email, err)
	}
}

// SubmissionReceived confirms to the corresponding author that the
// manuscript reached the editorial office.
func (s *NotificationService) SubmissionReceived(submission *models.Submission) {
	author := submission.CorrespondingAuthor
	if author == nil {
		return
	}

	section := "Не указан"
	if submission.Section != nil {
		section = submission.Section.TitleRu
	}

	title := fmt.Sprintf("Подача получена: %s", submission.SubmissionID)
	message := fmt.Sprintf(
		"Здравствуйте, %s!\n\nВаша статья «%s» успешно получена редакцией.\n\nID подачи: %s\nРаздел: %s\n\nВы можете отслеживать статус вашей подачи в личном кабинете.\n\nС уважением,\nРедакция журнала",
		author.DisplayName(), submission.TitleRu, submission.SubmissionID, section,
	)
	s.dispatch(author.UserID, author.Email, models.NotifySubmissionReceived, title, message, &submission.ID)
}

// ReviewInvitation invites the assigned reviewer.
func (s *NotificationService) ReviewInvitation(assignment *models.ReviewAssignment) {
	reviewer := assignment.Reviewer
	submission := assignment.Submission
	if reviewer == nil || submission == nil {
		return
	}

	deadline := "Не указан"
	if assignment.ReviewDue != nil {
		deadline = assignment.ReviewDue.Format("02.01.2006")
	}

	invitation := ""
	if assignment.InvitationMessage != "" {
		invitation = fmt.Sprintf("\nСообщение от редактора:\n%s\n", assignment.InvitationMessage)
	}

	title := fmt.Sprintf("Приглашение к рецензированию: %s", submission.SubmissionID)
	message := fmt.Sprintf(
		"Здравствуйте, %s!\n\nВас приглашают провести рецензию статьи:\n\nНазвание: %s\nID подачи: %s\n%s\nДедлайн: %s\n\nПожалуйста, примите или отклоните приглашение в вашем личном кабинете.",
		reviewer.DisplayName(), submission.TitleRu, submission.SubmissionID, invitation, deadline,
	)
	s.dispatch(reviewer.UserID, reviewer.Email, models.NotifyReviewInvitation, title, message, &submission.ID)
}

// ReviewCompleted tells the assigned editor a review arrived. No-op when
// the submission has no assigned editor.
func (s *NotificationService) ReviewCompleted(review *models.Review) {
	submission := review.Submission
	if submission == nil || submission.AssignedEditor == nil {
		return
	}
	editor := submission.AssignedEditor

	reviewerName := "рецензентом"
	if review.Reviewer != nil {
		reviewerName = review.Reviewer.DisplayName()
	}

	title := fmt.Sprintf("Рецензия завершена: %s", submission.SubmissionID)
	message := fmt.Sprintf(
		"Рецензия для подачи %s была завершена (%s).\n\nРекомендация: %s\n\nПожалуйста, просмотрите рецензию и примите решение.",
		submission.SubmissionID, reviewerName, review.Recommendation,
	)
	s.dispatch(editor.UserID, editor.Email, models.NotifyReviewCompleted, title, message, &submission.ID)
}

// EditorialDecision notifies the corresponding author of the verdict.
func (s *NotificationService) EditorialDecision(decision *models.EditorialDecision) {
	submission := decision.Submission
	if submission == nil || submission.CorrespondingAuthor == nil {
		return
	}
	author := submission.CorrespondingAuthor

	comments := ""
	if decision.CommentsForAuthor != "" {
		comments = fmt.Sprintf("\nКомментарии редактора:\n%s\n", decision.CommentsForAuthor)
	}

	title := fmt.Sprintf("Решение по вашей статье: %s", submission.SubmissionID)
	message := fmt.Sprintf(
		"Здравствуйте, %s!\n\nПо вашей статье «%s» (ID: %s) принято решение: %s\n%s\nВы можете просмотреть детали в вашем личном кабинете.",
		author.DisplayName(), submission.TitleRu, submission.SubmissionID, decision.Decision, comments,
	)
	s.dispatch(author.UserID, author.Email, models.NotifyEditorialDecision, title, message, &submission.ID)
}
