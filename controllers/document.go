package controllers

import (
	"net/http"
	"strconv"

	"study-abroad-api/config"
	"study-abroad-api/models"
	"study-abroad-api/services"

	"github.com/gin-gonic/gin"
)

// UploadDocument attaches a supporting file to the caller's application
func UploadDocument(c *gin.Context) {
	applicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	docType := c.PostForm("type")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot read uploaded file"})
		return
	}
	defer src.Close()

	userID, _ := c.Get("userID")

	document, err := Documents.Upload(c.Request.Context(), config.DB, services.UploadInput{
		ApplicationID: applicationID,
		StudentID:     userID.(int),
		Type:          docType,
		Filename:      file.Filename,
		ContentType:   file.Header.Get("Content-Type"),
		Size:          file.Size,
		Content:       src,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Document uploaded successfully",
		"document": document,
	})
}

// GetDocuments lists documents attached to an application
func GetDocuments(c *gin.Context) {
	applicationID := c.Param("id")
	userID, _ := c.Get("userID")
	role, _ := c.Get("role")

	// Ownership check for students
	if role.(string) != models.RoleAdmin {
		var application models.Application
		if err := config.DB.Where("application_id = ? AND user_id = ?", applicationID, userID).
			First(&application).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
	}

	var documents []models.Document
	if err := config.DB.Preload("Verifier").
		Where("application_id = ?", applicationID).
		Order("create_at DESC").Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"total":     len(documents),
	})
}

// VerifyDocument records the admin decision on a document
func VerifyDocument(c *gin.Context) {
	documentID, err := strconv.Atoi(c.Param("document_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid document id"})
		return
	}

	type VerifyRequest struct {
		Status  string `json:"status" binding:"required"`
		Comment string `json:"comment"`
	}
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	document, err := Documents.Verify(config.DB, documentID, req.Status, currentActor(c), req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Document reviewed",
		"document": document,
	})
}

// GetPendingDocuments lists all documents awaiting review (admin)
func GetPendingDocuments(c *gin.Context) {
	var documents []models.Document
	if err := config.DB.Preload("Application").Preload("Application.User").
		Where("status = ?", models.DocumentPending).
		Order("create_at ASC").Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"documents": documents,
		"total":     len(documents),
	})
}
