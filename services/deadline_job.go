package services

import (
	"log"
	"time"

	"document-flow-api/config"
	"document-flow-api/models"

	"github.com/robfig/cron/v3"
)

// StartDeadlineReminders schedules the daily overdue-document scan. The
// returned cron is already running; stop it on shutdown.
func StartDeadlineReminders(spec string) *cron.Cron {
	if spec == "" {
		spec = "0 7 * * *" // 07:00 every day
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, RunDeadlineScan); err != nil {
		log.Printf("Warning: failed to schedule deadline scan: %v", err)
		return c
	}
	c.Start()
	return c
}

// RunDeadlineScan mails the most recent assignee of every document still in
// specialist processing past its deadline.
func RunDeadlineScan() {
	var docs []models.Document
	err := config.DB.
		Where("status_code = ? AND process_deadline IS NOT NULL AND process_deadline < ? AND delete_at IS NULL",
			models.StatusSpecialistProcessing, time.Now()).
		Find(&docs).Error
	if err != nil {
		log.Printf("Warning: deadline scan query failed: %v", err)
		return
	}

	store := NewGormWorkflowStore(config.DB)
	for i := range docs {
		assignees, err := store.Assignees(docs[i].DocumentID)
		if err != nil {
			log.Printf("Warning: failed to load assignees for document %d: %v", docs[i].DocumentID, err)
			continue
		}
		if len(assignees) == 0 {
			continue
		}
		NotifyDeadline(&docs[i], &assignees[0])
	}
	if len(docs) > 0 {
		log.Printf("Deadline scan: %d overdue document(s) processed", len(docs))
	}
}
