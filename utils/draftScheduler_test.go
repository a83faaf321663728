package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filings/models"
	"filings/testutil"
)

func TestPurgeStaleDrafts(t *testing.T) {
	db := testutil.Setup(t)
	at := time.Date(2026, 3, 20, 15, 0, 0, 0, time.Local)

	mk := func(status models.TicketStatus, touched time.Time) uint {
		tk := models.Ticket{UserID: 1, RegistrationType: "gst", Status: status}
		require.NoError(t, db.Create(&tk).Error)
		require.NoError(t, db.Model(&tk).UpdateColumn("updated_at", touched).Error)
		return tk.ID
	}

	stale := mk(models.TicketDraft, at.AddDate(0, 0, -45))
	fresh := mk(models.TicketDraft, at.AddDate(0, 0, -3))
	submitted := mk(models.TicketSubmitted, at.AddDate(0, 0, -90))
	paid := mk(models.TicketDraft, at.AddDate(0, 0, -60))
	unpaid := mk(models.TicketDraft, at.AddDate(0, 0, -60))

	txn := func(ticketID uint, status models.PaymentStatus, receipt string) {
		require.NoError(t, db.Create(&models.PaymentTransaction{
			UserID: 1, PackageID: 7, TicketID: ticketID, Amount: 999,
			Status: status, Receipt: receipt, TransactionDate: at,
		}).Error)
	}
	txn(paid, models.PaymentCompleted, "rcpt_paid")
	txn(unpaid, models.PaymentFailed, "rcpt_failed")

	n, err := PurgeStaleDrafts(db, 30, at)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var left []uint
	require.NoError(t, db.Model(&models.Ticket{}).Order("id").Pluck("id", &left).Error)
	assert.Equal(t, []uint{fresh, submitted, paid}, left)
	assert.NotContains(t, left, unpaid)
	assert.NotContains(t, left, stale)
}

func TestPurgeStaleDraftsDisabled(t *testing.T) {
	db := testutil.Setup(t)
	n, err := PurgeStaleDrafts(db, 0, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}
