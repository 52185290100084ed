package models

import "gorm.io/gorm"

// ShipmentHeader owns its boxes, boxes own their product lines; neither
// has a lifecycle outside the shipment. Volume, VolumeWeight and
// FinalWeight on a box are stored for listing convenience but summary
// figures are always recomputed from the raw box fields on read.
type ShipmentHeader struct {
	gorm.Model
	InvoiceNo   string        `json:"invoice_no" gorm:"unique"`
	CustomerID  uint          `json:"customer_id"`
	PartyName   string        `json:"party_name"`
	Date        string        `json:"date"`
	RequiredQty int           `json:"required_qty"`
	StartTime   string        `json:"start_time"`
	EndTime     string        `json:"end_time"`
	Status      string        `json:"status" gorm:"default:'packing'"`
	Notes       string        `json:"notes"`
	CreatedBy   int           `json:"created_by"`
	UpdatedBy   int           `json:"updated_by"`
	DeletedBy   int           `json:"deleted_by"`
	Boxes       []ShipmentBox `json:"boxes" gorm:"foreignKey:ShipmentID;references:ID;constraint:OnDelete:CASCADE"`
}

type ShipmentBox struct {
	gorm.Model
	ShipmentID   uint                 `json:"shipment_id"`
	BoxNo        string               `json:"box_no"`
	IsShortBox   bool                 `json:"is_short_box"`
	Length       float64              `json:"length" gorm:"default:0"`
	Height       float64              `json:"height" gorm:"default:0"`
	Width        float64              `json:"width" gorm:"default:0"`
	Weight       float64              `json:"weight" gorm:"default:0"`
	Volume       float64              `json:"volume" gorm:"default:0"`
	VolumeWeight float64              `json:"volume_weight" gorm:"default:0"`
	FinalWeight  float64              `json:"final_weight" gorm:"default:0"`
	Products     []ShipmentBoxProduct `json:"products" gorm:"foreignKey:BoxID;references:ID;constraint:OnDelete:CASCADE"`
}

type ShipmentBoxProduct struct {
	gorm.Model
	BoxID       uint   `json:"box_id"`
	ProductID   uint   `json:"product_id"`
	SKU         string `json:"sku"`
	ProductName string `json:"product_name"`
	ExternalSKU string `json:"external_sku"`
	Quantity    int    `json:"quantity"`
}

// ShipmentDraft is the server-side scratch copy of one operator's
// in-progress shipment, keyed per operator.
type ShipmentDraft struct {
	gorm.Model
	DraftKey string `json:"draft_key" gorm:"unique"`
	Payload  string `json:"payload" gorm:"type:text"`
}
