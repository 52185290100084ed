package repositories

import (
	"errors"
	"time"

	"shipments-app/models"
	"shipments-app/packing"
	"shipments-app/types"

	"gorm.io/gorm"
)

// ShipmentRepository is the persistence gateway for finalized shipment
// documents. Documents are written whole; reads hand the box rows back to
// the packing aggregator so summary figures are never trusted from
// storage.
type ShipmentRepository struct {
	DB *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{DB: db}
}

// Create persists a finalized shipment. A taken invoice number comes back
// as a DuplicateInvoice validation error, unchanged for the caller.
func (r *ShipmentRepository) Create(doc *packing.Shipment, userID int) (*models.ShipmentHeader, error) {
	var existing models.ShipmentHeader
	if err := r.DB.Where("invoice_no = ?", doc.InvoiceNo).First(&existing).Error; err == nil {
		return nil, packing.NewValidationError(packing.KindDuplicateInvoice, "invoice %s already exists", doc.InvoiceNo)
	}

	header := models.ShipmentHeader{
		InvoiceNo:   doc.InvoiceNo,
		CustomerID:  doc.CustomerID,
		PartyName:   doc.PartyName,
		Date:        doc.Date,
		RequiredQty: doc.RequiredQty,
		StartTime:   doc.StartTime,
		EndTime:     doc.EndTime,
		Status:      doc.Status,
		Notes:       doc.Notes,
		CreatedBy:   userID,
		Boxes:       toModelBoxes(doc.Boxes),
	}

	if err := r.DB.Create(&header).Error; err != nil {
		return nil, invoiceConflict(err, doc.InvoiceNo)
	}
	return &header, nil
}

// invoiceConflict maps a unique-key violation on the invoice number to
// the DuplicateInvoice validation error. The pre-checks in Create and
// Update cover the common case; this covers the race where two creates
// pass the pre-check and the constraint decides.
func invoiceConflict(err error, invoice string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return packing.NewValidationError(packing.KindDuplicateInvoice, "invoice %s already exists", invoice)
	}
	return err
}

func (r *ShipmentRepository) GetByID(id uint) (*models.ShipmentHeader, error) {
	var header models.ShipmentHeader
	err := r.DB.Preload("Boxes", func(db *gorm.DB) *gorm.DB {
		return db.Order("shipment_boxes.id ASC")
	}).Preload("Boxes.Products").First(&header, id).Error
	if err != nil {
		return nil, err
	}
	return &header, nil
}

func (r *ShipmentRepository) List() ([]models.ShipmentHeader, error) {
	var headers []models.ShipmentHeader
	err := r.DB.Preload("Boxes", func(db *gorm.DB) *gorm.DB {
		return db.Order("shipment_boxes.id ASC")
	}).Preload("Boxes.Products").Order("created_at DESC").Find(&headers).Error
	return headers, err
}

// Update replaces the whole document: header fields plus the full box
// list. Read-modify-write at document granularity, last writer wins.
func (r *ShipmentRepository) Update(id uint, doc *packing.Shipment, userID int) (*models.ShipmentHeader, error) {
	header, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if doc.InvoiceNo != header.InvoiceNo {
		var existing models.ShipmentHeader
		if err := r.DB.Where("invoice_no = ? AND id <> ?", doc.InvoiceNo, id).First(&existing).Error; err == nil {
			return nil, packing.NewValidationError(packing.KindDuplicateInvoice, "invoice %s already exists", doc.InvoiceNo)
		}
	}

	err = r.DB.Transaction(func(tx *gorm.DB) error {
		var boxIDs []uint
		for _, box := range header.Boxes {
			boxIDs = append(boxIDs, box.ID)
		}
		if len(boxIDs) > 0 {
			if err := tx.Unscoped().Where("box_id IN ?", boxIDs).Delete(&models.ShipmentBoxProduct{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("shipment_id = ?", id).Delete(&models.ShipmentBox{}).Error; err != nil {
				return err
			}
		}

		boxes := toModelBoxes(doc.Boxes)
		for i := range boxes {
			boxes[i].ShipmentID = id
		}
		if len(boxes) > 0 {
			if err := tx.Create(&boxes).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.ShipmentHeader{}).Where("id = ?", id).Updates(map[string]interface{}{
			"invoice_no":   doc.InvoiceNo,
			"customer_id":  doc.CustomerID,
			"party_name":   doc.PartyName,
			"date":         doc.Date,
			"required_qty": doc.RequiredQty,
			"start_time":   doc.StartTime,
			"end_time":     doc.EndTime,
			"status":       doc.Status,
			"notes":        doc.Notes,
			"updated_by":   userID,
		}).Error
	})
	if err != nil {
		return nil, invoiceConflict(err, doc.InvoiceNo)
	}

	return r.GetByID(id)
}

func (r *ShipmentRepository) UpdateStatus(id uint, status string, userID int) error {
	return r.DB.Model(&models.ShipmentHeader{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_by": userID,
	}).Error
}

func (r *ShipmentRepository) Delete(id uint, userID int) error {
	var header models.ShipmentHeader
	if err := r.DB.First(&header, id).Error; err != nil {
		return err
	}

	header.DeletedBy = userID
	if err := r.DB.Select("deleted_by").Where("id = ?", id).Updates(&header).Error; err != nil {
		return err
	}
	return r.DB.Delete(&header).Error
}

// PackingBoxes rebuilds the core box shapes from stored rows. Derived
// figures are recomputed from the raw dimension fields, never read back.
func PackingBoxes(header *models.ShipmentHeader) []packing.Box {
	boxes := make([]packing.Box, len(header.Boxes))
	for i, row := range header.Boxes {
		box := packing.Box{
			ID:         types.SnowflakeID(row.ID),
			BoxNo:      row.BoxNo,
			IsShortBox: row.IsShortBox,
			Length:     row.Length,
			Height:     row.Height,
			Width:      row.Width,
			Weight:     row.Weight,
			Products:   make([]packing.ProductLine, len(row.Products)),
		}
		for j, line := range row.Products {
			box.Products[j] = packing.ProductLine{
				ID:          types.SnowflakeID(line.ID),
				ProductID:   line.ProductID,
				SKU:         line.SKU,
				ProductName: line.ProductName,
				ExternalSKU: line.ExternalSKU,
				Quantity:    line.Quantity,
			}
		}
		box.Recompute()
		boxes[i] = box
	}
	return boxes
}

// Facts converts a stored shipment into the report input shape.
func Facts(header *models.ShipmentHeader) packing.ShipmentFacts {
	date, err := time.Parse("2006-01-02", header.Date)
	if err != nil {
		date = header.CreatedAt
	}
	return packing.ShipmentFacts{
		PartyName: header.PartyName,
		Date:      date,
		Boxes:     PackingBoxes(header),
	}
}

func toModelBoxes(boxes []packing.Box) []models.ShipmentBox {
	rows := make([]models.ShipmentBox, len(boxes))
	for i, box := range boxes {
		row := models.ShipmentBox{
			BoxNo:        box.BoxNo,
			IsShortBox:   box.IsShortBox,
			Length:       box.Length,
			Height:       box.Height,
			Width:        box.Width,
			Weight:       box.Weight,
			Volume:       box.Volume,
			VolumeWeight: box.VolumeWeight,
			FinalWeight:  box.FinalWeight,
			Products:     make([]models.ShipmentBoxProduct, len(box.Products)),
		}
		for j, line := range box.Products {
			row.Products[j] = models.ShipmentBoxProduct{
				ProductID:   line.ProductID,
				SKU:         line.SKU,
				ProductName: line.ProductName,
				ExternalSKU: line.ExternalSKU,
				Quantity:    line.Quantity,
			}
		}
		rows[i] = row
	}
	return rows
}

// ErrNotFound reports whether err is the gorm record-not-found error.
func ErrNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
