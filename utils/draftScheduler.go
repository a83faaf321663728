package utils

import (
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"filings/database"
	"filings/models"
)

// InitializeDraftScheduler starts the daily stale draft purge.
func InitializeDraftScheduler(ttlDays int) *cron.Cron {
	entry := log.WithField("scheduler", "drafts")
	entry.Info("Initializing draft scheduler...")

	c := cron.New()

	// Run daily at 2 AM
	c.AddFunc("0 2 * * *", func() {
		n, err := PurgeStaleDrafts(database.Database.Db, ttlDays, time.Now())
		if err != nil {
			entry.WithError(err).Error("Error purging stale drafts")
			return
		}
		entry.WithField("purged", n).Info("Stale drafts purged")
	})

	c.Start()
	entry.WithField("ttlDays", ttlDays).Info("Draft scheduler started - runs daily at 2 AM")
	return c
}

// PurgeStaleDrafts soft-deletes DRAFT tickets last touched before the start
// of the day ttlDays ago. Tickets past DRAFT and drafts opened by a completed
// payment are never touched.
func PurgeStaleDrafts(db *gorm.DB, ttlDays int, at time.Time) (int64, error) {
	if ttlDays <= 0 {
		return 0, nil
	}
	cutoff := now.With(at.AddDate(0, 0, -ttlDays)).BeginningOfDay()

	paid := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.PaymentTransaction{}).
		Select("1").
		Where("payment_transactions.ticket_id = tickets.id AND payment_transactions.status = ?", models.PaymentCompleted)

	result := db.
		Where("status = ? AND updated_at < ?", models.TicketDraft, cutoff).
		Where("NOT EXISTS (?)", paid).
		Delete(&models.Ticket{})
	return result.RowsAffected, result.Error
}
