package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginTracking records where each successful login came from.
type LoginTracking struct {
	gorm.Model
	UserID    uint      `gorm:"not null;index" json:"userId"`
	IPAddress string    `gorm:"type:varchar(64)" json:"ipAddress"`
	Device    string    `gorm:"type:text" json:"device"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
}

func (LoginTracking) TableName() string {
	return "login_trackings"
}
