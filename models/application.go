package models

import (
	"time"
)

// Application status values, ordered along the common path. REJECTED is
// terminal and reachable from any non-terminal status.
const (
	StatusDraft         = "DRAFT"
	StatusSubmitted     = "SUBMITTED"
	StatusUnderReview   = "UNDER_REVIEW"
	StatusAccepted      = "ACCEPTED"
	StatusJW202Received = "JW202_RECEIVED"
	StatusVisaGranted   = "VISA_GRANTED"
	StatusFlightBooked  = "FLIGHT_BOOKED"
	StatusCompleted     = "COMPLETED"
	StatusRejected      = "REJECTED"
)

type Application struct {
	ApplicationID   int        `gorm:"primaryKey;column:application_id" json:"application_id"`
	UserID          int        `gorm:"column:user_id" json:"user_id"`
	UniversityID    *int       `gorm:"column:university_id" json:"university_id,omitempty"`
	Country         string     `gorm:"column:country" json:"country"`
	DesiredProgram  string     `gorm:"column:desired_program" json:"desired_program"`
	Status          string     `gorm:"column:status" json:"status"`
	Progress        int        `gorm:"column:progress" json:"progress"`
	ApplicationFee  int64      `gorm:"column:application_fee" json:"application_fee"`
	RejectionReason string     `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	User       User        `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	University *University `gorm:"foreignKey:UniversityID;references:UniversityID" json:"university,omitempty"`
	Documents  []Document  `gorm:"foreignKey:ApplicationID" json:"documents,omitempty"`
	Payments   []Payment   `gorm:"foreignKey:ApplicationID" json:"payments,omitempty"`
}

// IsTerminal reports whether the application can no longer move forward.
func (a *Application) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusRejected
}

// TableName overrides
func (Application) TableName() string {
	return "applications"
}
