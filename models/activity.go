package models

import (
	"time"
)

// Activity type tags used across the feed.
const (
	ActivityAppCreated         = "APP_CREATED"
	ActivityAppCompleted       = "APP_COMPLETED"
	ActivityAppRejected        = "APP_REJECTED"
	ActivityUniversityAssigned = "UNIVERSITY_ASSIGNED"
	ActivityDocumentVerified   = "DOC_VERIFIED"
	ActivityPaymentNew         = "PAYMENT_NEW"
	ActivityPaymentDeleted     = "PAYMENT_DELETE"
)

// Activity is an append-only audit feed row. Rows are never updated.
type Activity struct {
	ActivityID  int       `gorm:"primaryKey;column:activity_id" json:"activity_id"`
	Type        string    `gorm:"column:type" json:"type"`
	Title       string    `gorm:"column:title" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Actor       string    `gorm:"column:actor" json:"actor"`
	Color       string    `gorm:"column:color" json:"color"`
	RefID       string    `gorm:"column:ref_id" json:"ref_id"`
	CreateAt    time.Time `gorm:"column:create_at" json:"create_at"`
}

// TableName overrides
func (Activity) TableName() string {
	return "activities"
}
