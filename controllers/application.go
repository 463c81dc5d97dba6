package controllers

import (
	"net/http"
	"strconv"

	"study-abroad-api/config"
	"study-abroad-api/models"
	"study-abroad-api/services"

	"github.com/gin-gonic/gin"
)

// GetApplications returns list of applications
func GetApplications(c *gin.Context) {
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	var applications []models.Application
	query := config.DB.Preload("User").Preload("University").Preload("Documents")

	// Students only see their own dossiers
	if role.(string) != models.RoleAdmin {
		query = query.Where("user_id = ?", userID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if country := c.Query("country"); country != "" {
		query = query.Where("LOWER(TRIM(country)) = ?", services.NormalizeCountry(country))
	}

	if err := query.Order("create_at DESC").Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"total":        len(applications),
	})
}

// GetApplication returns single application by ID
func GetApplication(c *gin.Context) {
	id := c.Param("id")
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	var application models.Application
	query := config.DB.Preload("User").Preload("University").
		Preload("Documents").Preload("Payments").
		Where("application_id = ?", id)

	if role.(string) != models.RoleAdmin {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.First(&application).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application": application,
	})
}

// CreateApplication opens a new dossier for the calling student
func CreateApplication(c *gin.Context) {
	type CreateApplicationRequest struct {
		Country           string `json:"country" binding:"required"`
		DesiredProgram    string `json:"desired_program"`
		UniversityID      *int   `json:"university_id"`
		FullName          string `json:"full_name" binding:"required"`
		PassportNumber    string `json:"passport_number"`
		MedicalConditions string `json:"medical_conditions"`
	}

	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	application, err := Lifecycle.CreateApplication(config.DB, services.CreateApplicationInput{
		StudentID:         userID.(int),
		Country:           req.Country,
		DesiredProgram:    req.DesiredProgram,
		UniversityID:      req.UniversityID,
		FullName:          req.FullName,
		PassportNumber:    req.PassportNumber,
		MedicalConditions: req.MedicalConditions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application created successfully",
		"application": application,
	})
}

// UpdateApplicationStatus moves the dossier along its lifecycle (admin)
func UpdateApplicationStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	type StatusRequest struct {
		Status string `json:"status" binding:"required"`
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := Lifecycle.TransitionStatus(config.DB, id, req.Status, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Status updated",
		"application": application,
	})
}

// RejectApplication closes a dossier with a mandatory reason (admin)
func RejectApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	type RejectRequest struct {
		Reason string `json:"reason" binding:"required"`
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := Lifecycle.Reject(config.DB, id, req.Reason, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Application rejected",
		"application": application,
	})
}

// AssignUniversity links a university to the dossier (admin)
func AssignUniversity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	type AssignRequest struct {
		UniversityID int `json:"university_id" binding:"required"`
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	application, err := Lifecycle.AssignUniversity(config.DB, id, req.UniversityID, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "University assigned",
		"application": application,
	})
}

// DeleteApplication removes a dossier and its documents (admin)
func DeleteApplication(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	keys, err := Lifecycle.DeleteApplication(config.DB, id, currentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}

	// Blob cleanup is best-effort: the rows are already gone.
	for _, key := range keys {
		if err := Store.Delete(c.Request.Context(), key); err != nil {
			continue
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// GetBalance returns the payment reconciliation for one application
func GetBalance(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	// Students may only inspect their own dossier's balance
	if role.(string) != models.RoleAdmin {
		var application models.Application
		if err := config.DB.Where("application_id = ? AND user_id = ?", id, userID).
			First(&application).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
	}

	balance, err := Payments.ComputeBalance(config.DB, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
