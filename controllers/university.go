package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"study-abroad-api/config"
	"study-abroad-api/models"
	"study-abroad-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUniversityImages = 3

var universityImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// GetUniversities lists the catalog (public)
func GetUniversities(c *gin.Context) {
	var universities []models.University
	query := config.DB.Where("delete_at IS NULL")

	if country := c.Query("country"); country != "" {
		query = query.Where("LOWER(TRIM(country)) = ?", strings.ToLower(strings.TrimSpace(country)))
	}

	if err := query.Order("name ASC").Find(&universities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch universities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"universities": universities,
		"total":        len(universities),
	})
}

// GetUniversity returns one university (public)
func GetUniversity(c *gin.Context) {
	id := c.Param("id")

	var university models.University
	if err := config.DB.Where("university_id = ? AND delete_at IS NULL", id).
		First(&university).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "University not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"university": university})
}

// CreateUniversity adds a listing with images and optional brochure (admin)
func CreateUniversity(c *gin.Context) {
	name := utils.SanitizeInput(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}

	images := form.File["images"]
	if len(images) > maxUniversityImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Maximum %d images", maxUniversityImages)})
		return
	}
	for _, img := range images {
		if !universityImageTypes[img.Header.Get("Content-Type")] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only JPG, PNG and WEBP images are allowed"})
			return
		}
	}

	// Upload images first; refuse the listing if any upload fails
	var imageURLs []string
	var storedKeys []string
	for _, img := range images {
		src, err := img.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot read image"})
			return
		}
		key := fmt.Sprintf("universities/%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(img.Filename)))
		url, err := Store.Put(c.Request.Context(), key, src, img.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			cleanupKeys(c, storedKeys)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image upload failed, please try again"})
			return
		}
		imageURLs = append(imageURLs, url)
		storedKeys = append(storedKeys, key)
	}

	var brochureURL *string
	if pdf, err := c.FormFile("brochure"); err == nil {
		if pdf.Header.Get("Content-Type") != "application/pdf" {
			cleanupKeys(c, storedKeys)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Brochure must be a PDF"})
			return
		}
		src, err := pdf.Open()
		if err != nil {
			cleanupKeys(c, storedKeys)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Cannot read brochure"})
			return
		}
		key := fmt.Sprintf("universities/%s.pdf", uuid.NewString())
		url, err := Store.Put(c.Request.Context(), key, src, "application/pdf")
		src.Close()
		if err != nil {
			cleanupKeys(c, storedKeys)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Brochure upload failed, please try again"})
			return
		}
		brochureURL = &url
		storedKeys = append(storedKeys, key)
	}

	imagesJSON, _ := json.Marshal(imageURLs)
	now := time.Now()
	university := models.University{
		Name:        name,
		City:        utils.SanitizeInput(c.PostForm("city")),
		Country:     utils.SanitizeInput(c.PostForm("country")),
		Summary:     utils.SanitizeInput(c.PostForm("summary")),
		Description: c.PostForm("description"),
		CostRange:   utils.SanitizeInput(c.PostForm("cost_range")),
		Programs:    utils.SanitizeInput(c.PostForm("programs")),
		Images:      string(imagesJSON),
		BrochureURL: brochureURL,
		CreateAt:    &now,
		UpdateAt:    &now,
	}

	if err := config.DB.Create(&university).Error; err != nil {
		cleanupKeys(c, storedKeys)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save university"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "University created successfully",
		"university": university,
	})
}

// UpdateUniversity edits the descriptive fields of a listing (admin)
func UpdateUniversity(c *gin.Context) {
	id := c.Param("id")

	var university models.University
	if err := config.DB.Where("university_id = ? AND delete_at IS NULL", id).
		First(&university).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "University not found"})
		return
	}

	type UpdateUniversityRequest struct {
		Name        string `json:"name"`
		City        string `json:"city"`
		Country     string `json:"country"`
		Summary     string `json:"summary"`
		Description string `json:"description"`
		CostRange   string `json:"cost_range"`
		Programs    string `json:"programs"`
	}

	var req UpdateUniversityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	if req.Name != "" {
		university.Name = utils.SanitizeInput(req.Name)
	}
	if req.City != "" {
		university.City = utils.SanitizeInput(req.City)
	}
	if req.Country != "" {
		university.Country = utils.SanitizeInput(req.Country)
	}
	if req.Summary != "" {
		university.Summary = utils.SanitizeInput(req.Summary)
	}
	if req.Description != "" {
		university.Description = req.Description
	}
	if req.CostRange != "" {
		university.CostRange = utils.SanitizeInput(req.CostRange)
	}
	if req.Programs != "" {
		university.Programs = utils.SanitizeInput(req.Programs)
	}
	university.UpdateAt = &now

	if err := config.DB.Save(&university).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update university"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "University updated successfully",
		"university": university,
	})
}

// DeleteUniversity soft deletes a listing (admin)
func DeleteUniversity(c *gin.Context) {
	id := c.Param("id")

	var university models.University
	if err := config.DB.Where("university_id = ? AND delete_at IS NULL", id).
		First(&university).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "University not found"})
		return
	}

	now := time.Now()
	university.DeleteAt = &now
	if err := config.DB.Save(&university).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete university"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "University deleted successfully"})
}

func cleanupKeys(c *gin.Context, keys []string) {
	for _, key := range keys {
		_ = Store.Delete(c.Request.Context(), key)
	}
}
