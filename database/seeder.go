// database/seeder.go
package database

import (
	"errors"
	"log"

	"shipments-app/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
	SeedCategory(db)
}

func SeedCategory(db *gorm.DB) {
	categories := []models.Category{
		{Code: "GENERAL", Name: "GENERAL"},
	}

	for _, c := range categories {
		var existing models.Category
		if err := db.Where("code = ?", c.Code).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				db.Create(&c)
			}
		}
	}
}

func SeedUserMaster(db *gorm.DB) {
	users := []models.User{
		{
			Username: "admin",
			Password: "admin",
			Name:     "Admin",
			Email:    "admin@example.com",
			Role:     "admin",
		},
	}

	for _, user := range users {
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Println("Failed to hash password for user:", user.Username, err)
				continue
			}
			user.Password = string(hashed)
			if err := db.Create(&user).Error; err != nil {
				log.Println("Failed to insert user:", user.Username, err)
			} else {
				log.Println("Insert user:", user.Username)
			}
		}
	}
}
