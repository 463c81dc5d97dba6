package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"study-abroad-api/config"
	"study-abroad-api/models"
	"study-abroad-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetConversations lists the conversations the caller takes part in.
// Admins see every conversation.
func GetConversations(c *gin.Context) {
	actor := currentActor(c)

	var conversations []models.Conversation
	query := config.DB.Preload("Participants").Preload("Participants.User").
		Preload("Application")

	if !actor.IsAdmin {
		query = query.Joins(
			"JOIN conversation_participants cp ON cp.conversation_id = conversations.conversation_id").
			Where("cp.user_id = ?", actor.UserID)
	}

	if err := query.Order("conversations.update_at DESC").Find(&conversations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversations": conversations,
		"total":         len(conversations),
	})
}

// CreateConversation opens a thread with a student, optionally attached to
// one of their applications (admin)
func CreateConversation(c *gin.Context) {
	actor := currentActor(c)

	type CreateConversationRequest struct {
		StudentID     int    `json:"student_id" binding:"required"`
		Subject       string `json:"subject" binding:"required"`
		ApplicationID *int   `json:"application_id"`
	}

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var student models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.StudentID).
		First(&student).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}

	if req.ApplicationID != nil {
		var count int64
		config.DB.Model(&models.Application{}).
			Where("application_id = ? AND user_id = ?", *req.ApplicationID, req.StudentID).
			Count(&count)
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Application does not belong to this student"})
			return
		}
	}

	now := time.Now()
	conversation := models.Conversation{
		ApplicationID: req.ApplicationID,
		Subject:       utils.SanitizeInput(req.Subject),
		CreateAt:      &now,
		UpdateAt:      &now,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conversation).Error; err != nil {
			return err
		}
		participants := []models.ConversationParticipant{
			{ConversationID: conversation.ConversationID, UserID: actor.UserID, CreateAt: &now},
			{ConversationID: conversation.ConversationID, UserID: student.UserID, CreateAt: &now},
		}
		return tx.Create(&participants).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Conversation created",
		"conversation": conversation,
	})
}

// GetMessages returns a conversation with its messages, oldest first
func GetMessages(c *gin.Context) {
	actor := currentActor(c)
	conversationID := c.Param("id")

	var conversation models.Conversation
	if err := config.DB.Preload("Participants").Preload("Participants.User").
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("create_at ASC")
		}).Preload("Messages.Sender").
		Where("conversation_id = ?", conversationID).
		First(&conversation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	if !actor.IsAdmin && !isParticipant(conversation, actor.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversation": conversation})
}

// PostMessage appends a message; the other participants get a mail
// notification, best effort.
func PostMessage(c *gin.Context) {
	actor := currentActor(c)
	conversationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation id"})
		return
	}

	type MessageRequest struct {
		Content string `json:"content" binding:"required"`
	}
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var conversation models.Conversation
	if err := config.DB.Preload("Participants").Preload("Participants.User").
		Where("conversation_id = ?", conversationID).
		First(&conversation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	if !actor.IsAdmin && !isParticipant(conversation, actor.UserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	now := time.Now()
	message := models.Message{
		ConversationID: conversation.ConversationID,
		SenderID:       actor.UserID,
		Content:        req.Content,
		CreateAt:       &now,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("conversation_id = ?", conversation.ConversationID).
			Update("update_at", now).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	// Notify the other participants without holding up the response
	var recipients []string
	for _, p := range conversation.Participants {
		if p.UserID != actor.UserID && p.User.Email != "" {
			recipients = append(recipients, p.User.Email)
		}
	}
	if len(recipients) > 0 {
		subject := conversation.Subject
		go func() {
			body := fmt.Sprintf(
				"<p>Vous avez reçu un nouveau message de %s.</p><p>Sujet : %s</p><p>Connectez-vous à votre espace pour répondre.</p>",
				actor.Name, subject)
			if err := config.SendMail(recipients, "Nouveau message - "+subject, body); err != nil {
				log.Printf("mail notification failed: %v", err)
			}
		}()
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent",
		"data":    message,
	})
}

func isParticipant(conversation models.Conversation, userID int) bool {
	for _, p := range conversation.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
