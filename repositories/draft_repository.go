package repositories

import (
	"errors"

	"shipments-app/models"

	"gorm.io/gorm"
)

// DraftRepository stores draft payloads in the database, one row per
// operator key, so an in-progress shipment survives a server restart.
// It implements packing.DraftStore.
type DraftRepository struct {
	DB *gorm.DB
}

func NewDraftRepository(db *gorm.DB) *DraftRepository {
	return &DraftRepository{DB: db}
}

func (r *DraftRepository) Get(key string) ([]byte, bool) {
	var draft models.ShipmentDraft
	if err := r.DB.Where("draft_key = ?", key).First(&draft).Error; err != nil {
		return nil, false
	}
	return []byte(draft.Payload), true
}

func (r *DraftRepository) Set(key string, value []byte) error {
	var draft models.ShipmentDraft
	err := r.DB.Where("draft_key = ?", key).First(&draft).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return r.DB.Create(&models.ShipmentDraft{DraftKey: key, Payload: string(value)}).Error
	}

	draft.Payload = string(value)
	return r.DB.Save(&draft).Error
}

func (r *DraftRepository) Remove(key string) error {
	return r.DB.Unscoped().Where("draft_key = ?", key).Delete(&models.ShipmentDraft{}).Error
}
