package repositories

import (
	"errors"
	"fmt"
	"testing"

	"shipments-app/packing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestInvoiceConflictMapsDuplicateKey(t *testing.T) {
	err := invoiceConflict(gorm.ErrDuplicatedKey, "INV-01")

	var ve *packing.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, packing.KindDuplicateInvoice, ve.Kind)
	assert.Contains(t, ve.Message, "INV-01")
}

func TestInvoiceConflictMapsWrappedDuplicateKey(t *testing.T) {
	wrapped := fmt.Errorf("create shipment: %w", gorm.ErrDuplicatedKey)
	err := invoiceConflict(wrapped, "INV-02")

	assert.True(t, packing.IsKind(err, packing.KindDuplicateInvoice))
}

func TestInvoiceConflictPassesOtherErrorsThrough(t *testing.T) {
	cause := errors.New("connection reset")
	assert.Equal(t, cause, invoiceConflict(cause, "INV-03"))
	assert.Nil(t, invoiceConflict(nil, "INV-04"))
}
