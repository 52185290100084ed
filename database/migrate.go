// database/migrate.go
package database

import (
	"shipments-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.Category{},
		&models.Product{},
		&models.Customer{},
		&models.ShipmentHeader{},
		&models.ShipmentBox{},
		&models.ShipmentBoxProduct{},
		&models.ShipmentDraft{},
		&models.ImportFileLog{},
	)
}
