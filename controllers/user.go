package controllers

import (
	"net/http"
	"time"

	"study-abroad-api/config"
	"study-abroad-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetStudents lists student accounts (admin)
func GetStudents(c *gin.Context) {
	var students []models.User
	query := config.DB.Where("role = ? AND delete_at IS NULL", models.RoleStudent)

	if search := c.Query("q"); search != "" {
		like := "%" + search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ?", like, like)
	}

	if err := query.Order("create_at DESC").Find(&students).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"students": students,
		"total":    len(students),
	})
}

// GetStudent returns one student with applications and payments (admin)
func GetStudent(c *gin.Context) {
	id := c.Param("id")

	var student models.User
	if err := config.DB.Preload("Applications").Preload("Applications.University").
		Preload("Applications.Documents").Preload("Payments").
		Where("user_id = ? AND role = ? AND delete_at IS NULL", id, models.RoleStudent).
		First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"student": student})
}

// UpdateUserRole promotes or demotes an account (admin)
func UpdateUserRole(c *gin.Context) {
	id := c.Param("id")

	type RoleRequest struct {
		Role string `json:"role" binding:"required"`
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role != models.RoleStudent && req.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be STUDENT or ADMIN"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	user.Role = req.Role
	user.UpdateAt = &now
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Role updated",
		"user":    user,
	})
}

// DeleteUser soft deletes a user and removes their dossiers (admin)
func DeleteUser(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", id).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var applications []models.Application
		if err := tx.Where("user_id = ?", user.UserID).Find(&applications).Error; err != nil {
			return err
		}

		for _, application := range applications {
			if err := tx.Where("application_id = ?", application.ApplicationID).
				Delete(&models.Document{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.UserID).
			Delete(&models.Application{}).Error; err != nil {
			return err
		}

		// Payments keep their financial history, detached from dossiers
		if err := tx.Model(&models.Payment{}).
			Where("user_id = ?", user.UserID).
			Update("application_id", nil).Error; err != nil {
			return err
		}

		now := time.Now()
		user.DeleteAt = &now
		return tx.Save(&user).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
