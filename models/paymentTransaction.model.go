package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus defines the status of a package payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// PaymentTransaction records every package checkout attempt.
type PaymentTransaction struct {
	gorm.Model
	UserID           uint          `gorm:"not null;index" json:"userId"`
	PackageID        uint          `gorm:"not null;index" json:"packageId"`
	TicketID         uint          `gorm:"default:0" json:"ticketId"`
	RegistrationType string        `gorm:"type:varchar(50)" json:"registrationType"`
	Amount           float64       `gorm:"not null" json:"amount"`
	Currency         string        `gorm:"type:varchar(3);default:'INR'" json:"currency"`
	Status           PaymentStatus `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	Receipt          string        `gorm:"type:varchar(64);uniqueIndex" json:"receipt"`

	// Payment gateway details
	PaymentOrderID string `gorm:"type:varchar(100)" json:"paymentOrderId"`
	PaymentID      string `gorm:"type:varchar(100);index" json:"paymentId"`
	Redirect       string `gorm:"type:text" json:"redirect"`
	FailureReason  string `gorm:"type:text" json:"failureReason"`

	TransactionDate time.Time `gorm:"not null" json:"transactionDate"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
