package controllers

import (
	"net/http"

	"study-abroad-api/config"
	"study-abroad-api/models"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats aggregates the figures shown on the admin dashboard
func GetDashboardStats(c *gin.Context) {
	var totalStudents int64
	config.DB.Model(&models.User{}).
		Where("role = ? AND delete_at IS NULL", models.RoleStudent).
		Count(&totalStudents)

	var totalApplications int64
	config.DB.Model(&models.Application{}).Count(&totalApplications)

	// Applications per status
	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var byStatus []statusCount
	config.DB.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus)

	var pendingDocuments int64
	config.DB.Model(&models.Document{}).
		Where("status = ?", models.DocumentPending).
		Count(&pendingDocuments)

	// Payments stay in their recorded currency here; reconciliation per
	// dossier goes through the balance endpoint.
	type currencyTotal struct {
		Currency string  `json:"currency"`
		Total    float64 `json:"total"`
	}
	var paymentTotals []currencyTotal
	config.DB.Model(&models.Payment{}).
		Select("currency, SUM(amount) AS total").
		Where("status = ?", models.PaymentCompleted).
		Group("currency").
		Scan(&paymentTotals)

	c.JSON(http.StatusOK, gin.H{
		"total_students":     totalStudents,
		"total_applications": totalApplications,
		"by_status":          byStatus,
		"pending_documents":  pendingDocuments,
		"payment_totals":     paymentTotals,
	})
}
