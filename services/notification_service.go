package services

import (
	"fmt"
	"log"

	"document-flow-api/config"
	"document-flow-api/models"
)

// Notification delivery is best-effort: a mail failure is logged, never
// surfaced to the workflow caller, and never rolls back a transition.

// NotifyAssignment mails a specialist that a document was assigned to them.
func NotifyAssignment(doc *models.Document, assignee *models.User, actor *models.User, comments string) {
	if assignee == nil || assignee.Email == "" {
		return
	}
	subject := fmt.Sprintf("Văn bản mới được giao: %s", doc.DocumentNumber)
	body := fmt.Sprintf(
		"<p>Đồng chí được giao xử lý văn bản <b>%s</b> — %s.</p><p>Người giao: %s</p><p>Ý kiến: %s</p>",
		doc.DocumentNumber, doc.Title, actor.FullName, comments,
	)
	if doc.ProcessDeadline != nil {
		body += fmt.Sprintf("<p>Hạn xử lý: %s</p>", doc.ProcessDeadline.Format("02/01/2006"))
	}
	if err := config.SendMail([]string{assignee.Email}, subject, body); err != nil {
		log.Printf("Warning: assignment mail to %s failed: %v", assignee.Email, err)
	}
}

// NotifyDeadline mails an assignee that a document is past its deadline.
func NotifyDeadline(doc *models.Document, assignee *models.User) {
	if assignee == nil || assignee.Email == "" {
		return
	}
	subject := fmt.Sprintf("Văn bản quá hạn xử lý: %s", doc.DocumentNumber)
	body := fmt.Sprintf(
		"<p>Văn bản <b>%s</b> — %s đã quá hạn xử lý (%s).</p>",
		doc.DocumentNumber, doc.Title, doc.ProcessDeadline.Format("02/01/2006"),
	)
	if err := config.SendMail([]string{assignee.Email}, subject, body); err != nil {
		log.Printf("Warning: deadline mail to %s failed: %v", assignee.Email, err)
	}
}
