package services

import (
	"time"

	"study-abroad-api/models"

	"gorm.io/gorm"
)

// Feed display colors, kept as the frontend expects them.
const (
	ColorGreen  = "bg-green-700"
	ColorYellow = "bg-yellow-500"
	ColorRed    = "bg-red-500"
	ColorBlue   = "bg-blue-500"
)

// LogActivity appends one audit feed row. Rows are append-only.
func LogActivity(db *gorm.DB, activity models.Activity) error {
	if activity.CreateAt.IsZero() {
		activity.CreateAt = time.Now()
	}
	return db.Create(&activity).Error
}

// RecentActivities returns the newest feed rows, most recent first.
func RecentActivities(db *gorm.DB, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	var activities []models.Activity
	err := db.Order("create_at DESC").Limit(limit).Find(&activities).Error
	return activities, err
}
