// Bootstrap tool: creates the first admin account.
// cmd/seed-admin/main.go
package main

import (
	"flag"
	"log"
	"time"

	"study-abroad-api/config"
	"study-abroad-api/models"
	"study-abroad-api/utils"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (min 8 characters)")
	name := flag.String("name", "Administrateur", "admin display name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("Usage: seed-admin -email admin@agence.example -password <secret> [-name <name>]")
	}
	if !utils.ValidateEmail(*email) {
		log.Fatal("Invalid email address")
	}
	if ok, msg := utils.ValidatePassword(*password); !ok {
		log.Fatal(msg)
	}

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	config.InitDB()

	var existing models.User
	err := config.DB.Where("email = ? AND delete_at IS NULL", *email).First(&existing).Error
	if err == nil {
		if existing.Role == models.RoleAdmin {
			log.Printf("User %s is already an admin, nothing to do", *email)
			return
		}
		now := time.Now()
		existing.Role = models.RoleAdmin
		existing.UpdateAt = &now
		if err := config.DB.Save(&existing).Error; err != nil {
			log.Fatal("Failed to promote user:", err)
		}
		log.Printf("Promoted existing user %s to admin", *email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	now := time.Now()
	admin := models.User{
		Email:    *email,
		Password: string(hashed),
		FullName: *name,
		Role:     models.RoleAdmin,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Printf("Admin %s created (user_id=%d)", admin.Email, admin.UserID)
}
