package models

import "gorm.io/gorm"

// Product is a catalog entry. Products are never physically removed
// through the API; delete deactivates them.
type Product struct {
	gorm.Model
	SKU        string   `json:"sku" gorm:"unique;size:20"`
	Name       string   `json:"name"`
	CategoryID uint     `json:"category_id"`
	Category   Category `json:"category" gorm:"foreignKey:CategoryID"`
	Origin     string   `json:"origin"`
	IsActive   bool     `json:"is_active" gorm:"default:true"`
	CreatedBy  int
	UpdatedBy  int
	DeletedBy  int
}

type Category struct {
	gorm.Model
	Code      string `json:"code" gorm:"unique"`
	Name      string `json:"name"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}
