// Migration script to hash existing plaintext passwords
// cmd/migrate-passwords/main.go
package main

import (
	"log"
	"strings"

	"document-flow-api/config"
	"document-flow-api/models"
	"document-flow-api/utils"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config.InitDB()

	var users []models.User
	if err := config.DB.Find(&users).Error; err != nil {
		log.Fatal("Failed to fetch users:", err)
	}

	migrated := 0
	for _, user := range users {
		// Skip if already hashed (bcrypt hashes start with $2)
		if strings.HasPrefix(user.Password, "$2") {
			continue
		}

		hashed, err := utils.HashPassword(user.Password)
		if err != nil {
			log.Printf("Failed to hash password for %s: %v", user.Username, err)
			continue
		}

		if err := config.DB.Model(&models.User{}).
			Where("user_id = ?", user.UserID).
			Update("password", hashed).Error; err != nil {
			log.Printf("Failed to update %s: %v", user.Username, err)
			continue
		}
		migrated++
	}

	log.Printf("Done: %d password(s) migrated", migrated)
}
