package models

import (
	"time"
)

// Role values stored on users.role
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

type User struct {
	UserID            int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	FullName          string     `gorm:"column:full_name" json:"full_name"`
	Email             string     `gorm:"column:email;unique" json:"email"`
	Phone             string     `gorm:"column:phone" json:"phone"`
	PassportNumber    string     `gorm:"column:passport_number" json:"passport_number,omitempty"`
	MedicalConditions string     `gorm:"column:medical_conditions" json:"medical_conditions,omitempty"`
	Password          string     `gorm:"column:password" json:"-"`
	Role              string     `gorm:"column:role;default:STUDENT" json:"role"`
	CreateAt          *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt          *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt          *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Applications []Application `gorm:"foreignKey:UserID" json:"applications,omitempty"`
	Payments     []Payment     `gorm:"foreignKey:UserID" json:"payments,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TableName overrides
func (User) TableName() string {
	return "users"
}
