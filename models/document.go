package models

import (
	"time"
)

// Document verification states. PENDING is initial, both others terminal.
const (
	DocumentPending  = "PENDING"
	DocumentApproved = "APPROVED"
	DocumentRejected = "REJECTED"
)

type Document struct {
	DocumentID    int        `gorm:"primaryKey;column:document_id" json:"document_id"`
	ApplicationID int        `gorm:"column:application_id" json:"application_id"`
	Type          string     `gorm:"column:type" json:"type"` // free-form tag: PASSPORT, DIPLOMA, ...
	Name          string     `gorm:"column:name" json:"name"` // original filename for display
	StorageKey    string     `gorm:"column:storage_key" json:"-"`
	URL           string     `gorm:"column:url" json:"url"`
	Status        string     `gorm:"column:status;default:PENDING" json:"status"`
	VerifiedBy    *int       `gorm:"column:verified_by" json:"verified_by,omitempty"`
	Comment       string     `gorm:"column:comment" json:"comment,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Application Application `gorm:"foreignKey:ApplicationID;references:ApplicationID" json:"application,omitempty"`
	Verifier    *User       `gorm:"foreignKey:VerifiedBy;references:UserID" json:"verifier,omitempty"`
}

// TableName overrides
func (Document) TableName() string {
	return "documents"
}
