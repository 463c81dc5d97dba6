package models

import (
	"time"
)

// Conversation groups messages between staff and an applicant, optionally
// tied to one application.
type Conversation struct {
	ConversationID int        `gorm:"primaryKey;column:conversation_id" json:"conversation_id"`
	ApplicationID  *int       `gorm:"column:application_id" json:"application_id,omitempty"`
	Subject        string     `gorm:"column:subject" json:"subject"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt       *time.Time `gorm:"column:update_at" json:"update_at"`

	// Relations
	Application  *Application              `gorm:"foreignKey:ApplicationID;references:ApplicationID" json:"application,omitempty"`
	Participants []ConversationParticipant `gorm:"foreignKey:ConversationID" json:"participants,omitempty"`
	Messages     []Message                 `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

type ConversationParticipant struct {
	ParticipantID  int        `gorm:"primaryKey;column:participant_id" json:"participant_id"`
	ConversationID int        `gorm:"column:conversation_id" json:"conversation_id"`
	UserID         int        `gorm:"column:user_id" json:"user_id"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	User User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

type Message struct {
	MessageID      int        `gorm:"primaryKey;column:message_id" json:"message_id"`
	ConversationID int        `gorm:"column:conversation_id" json:"conversation_id"`
	SenderID       int        `gorm:"column:sender_id" json:"sender_id"`
	Content        string     `gorm:"column:content;type:text" json:"content"`
	CreateAt       *time.Time `gorm:"column:create_at" json:"create_at"`

	// Relations
	Sender User `gorm:"foreignKey:SenderID;references:UserID" json:"sender,omitempty"`
}

// TableName overrides
func (Conversation) TableName() string {
	return "conversations"
}

func (ConversationParticipant) TableName() string {
	return "conversation_participants"
}

func (Message) TableName() string {
	return "messages"
}
