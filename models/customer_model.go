package models

import "gorm.io/gorm"

type Customer struct {
	gorm.Model
	Code      string `json:"code" gorm:"unique;size:20"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	City      string `json:"city"`
	State     string `json:"state"`
	Region    string `json:"region"`
	StateCode string `json:"state_code"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}
