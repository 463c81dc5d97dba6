package controllers

import (
	"net/http"
	"strconv"

	"study-abroad-api/config"
	"study-abroad-api/models"
	"study-abroad-api/services"

	"github.com/gin-gonic/gin"
)

// GetPayments lists payments, filtered by user when requested (admin)
func GetPayments(c *gin.Context) {
	var payments []models.Payment
	query := config.DB.Preload("User").Preload("Application").
		Order("create_at DESC")

	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if appID := c.Query("application_id"); appID != "" {
		query = query.Where("application_id = ?", appID)
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	if err := query.Limit(limit).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"total":    len(payments),
	})
}

// GetMyPayments lists the calling student's own payments
func GetMyPayments(c *gin.Context) {
	userID, _ := c.Get("userID")

	var payments []models.Payment
	if err := config.DB.Preload("Application").Preload("Application.University").
		Where("user_id = ?", userID).
		Order("create_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"total":    len(payments),
	})
}

// RecordPayment registers a payment event against a student (admin)
func RecordPayment(c *gin.Context) {
	type RecordPaymentRequest struct {
		UserID        int     `json:"user_id" binding:"required"`
		ApplicationID *int    `json:"application_id"`
		Amount        float64 `json:"amount" binding:"required"`
		Currency      string  `json:"currency" binding:"required"`
		Method        string  `json:"method" binding:"required"`
		Reference     string  `json:"reference"`
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Name the payer in the feed, not the admin doing data entry
	var payer models.User
	payerName := ""
	if err := config.DB.First(&payer, req.UserID).Error; err == nil {
		payerName = payer.FullName
	}

	payment, err := Payments.RecordPayment(config.DB, services.RecordPaymentInput{
		UserID:        req.UserID,
		ApplicationID: req.ApplicationID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Method:        req.Method,
		Reference:     req.Reference,
		ActorName:     payerName,
	}, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment recorded",
		"payment": payment,
	})
}

// DeletePayment removes a payment event (admin)
func DeletePayment(c *gin.Context) {
	paymentID, err := strconv.Atoi(c.Param("payment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment id"})
		return
	}

	if err := Payments.DeletePayment(config.DB, paymentID, currentActor(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}
