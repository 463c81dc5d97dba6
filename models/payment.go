package models

import (
	"time"
)

// Payment methods accepted by the agency.
const (
	MethodCash         = "CASH"
	MethodOrangeMoney  = "ORANGE_MONEY"
	MethodMoovMoney    = "MOOV_MONEY"
	MethodWave         = "WAVE"
	MethodBankTransfer = "BANK_TRANSFER"
)

// Payment statuses.
const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

type Payment struct {
	PaymentID     int        `gorm:"primaryKey;column:payment_id" json:"payment_id"`
	UserID        int        `gorm:"column:user_id" json:"user_id"`
	ApplicationID *int       `gorm:"column:application_id" json:"application_id,omitempty"`
	Amount        float64    `gorm:"column:amount" json:"amount"`
	Currency      string     `gorm:"column:currency" json:"currency"`
	Method        string     `gorm:"column:method" json:"method"`
	Status        string     `gorm:"column:status;default:COMPLETED" json:"status"`
	Reference     string     `gorm:"column:reference" json:"reference,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	User        User         `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	Application *Application `gorm:"foreignKey:ApplicationID;references:ApplicationID" json:"application,omitempty"`
}

// TableName overrides
func (Payment) TableName() string {
	return "payments"
}
