package models

import (
	"time"
)

type University struct {
	UniversityID int        `gorm:"primaryKey;column:university_id" json:"university_id"`
	Name         string     `gorm:"column:name" json:"name"`
	City         string     `gorm:"column:city" json:"city"`
	Country      string     `gorm:"column:country" json:"country"`
	Summary      string     `gorm:"column:summary" json:"summary"`
	Description  string     `gorm:"column:description;type:text" json:"description"`
	CostRange    string     `gorm:"column:cost_range" json:"cost_range"`
	Programs     string     `gorm:"column:programs;type:text" json:"programs"`
	Images       string     `gorm:"column:images;type:text" json:"images"` // JSON array of URLs
	BrochureURL  *string    `gorm:"column:brochure_url" json:"brochure_url,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (University) TableName() string {
	return "universities"
}
