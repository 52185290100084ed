package packing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDraft(t *testing.T) (*Draft, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewDraft("draft:test", store, testCatalog(), testCustomers()), store
}

func TestDraftAddBoxNumbersSequentially(t *testing.T) {
	d, _ := newTestDraft(t)

	first, err := d.AddBox(normalBoxSpec(5, "2"))
	require.NoError(t, err)
	second, err := d.AddBox(normalBoxSpec(3, "1"))
	require.NoError(t, err)

	assert.Equal(t, "1", first.BoxNo)
	assert.Equal(t, "2", second.BoxNo)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 5.0, first.FinalWeight)
}

func TestDraftAddBoxValidationLeavesStateUntouched(t *testing.T) {
	d, _ := newTestDraft(t)

	_, err := d.AddBox(shortBoxSpec("1"))
	require.NoError(t, err)

	_, err = d.AddBox(shortBoxSpec("2"))
	assert.True(t, IsKind(err, KindDuplicateShortBox))
	assert.Len(t, d.Boxes(), 1)
}

func TestDraftEditBoxKeepsIdentityAndNumber(t *testing.T) {
	d, _ := newTestDraft(t)

	_, err := d.AddBox(normalBoxSpec(5, "2"))
	require.NoError(t, err)
	box, err := d.AddBox(normalBoxSpec(3, "1"))
	require.NoError(t, err)

	edited, err := d.EditBox(box.ID, normalBoxSpec(7, "4"))
	require.NoError(t, err)

	assert.Equal(t, box.ID, edited.ID)
	assert.Equal(t, "2", edited.BoxNo)
	assert.Equal(t, 7.0, edited.Weight)
	assert.Equal(t, 4, edited.Products[0].Quantity)
}

func TestDraftEditBoxNotFound(t *testing.T) {
	d, _ := newTestDraft(t)

	_, err := d.EditBox(12345, normalBoxSpec(5, "1"))
	assert.ErrorIs(t, err, ErrBoxNotFound)
}

func TestDraftCopyBoxAssignsFreshIdentities(t *testing.T) {
	d, _ := newTestDraft(t)

	original, err := d.AddBox(normalBoxSpec(5, "2"))
	require.NoError(t, err)

	dup, err := d.CopyBox(original.ID)
	require.NoError(t, err)

	assert.Equal(t, "2", dup.BoxNo)
	assert.NotEqual(t, original.ID, dup.ID)
	require.Len(t, dup.Products, 1)
	assert.NotEqual(t, original.Products[0].ID, dup.Products[0].ID)
	assert.Equal(t, original.Products[0].SKU, dup.Products[0].SKU)
	assert.Equal(t, original.FinalWeight, dup.FinalWeight)
}

func TestDraftCopyShortBoxRejected(t *testing.T) {
	d, _ := newTestDraft(t)

	short, err := d.AddBox(shortBoxSpec("1"))
	require.NoError(t, err)

	_, err = d.CopyBox(short.ID)
	assert.True(t, IsKind(err, KindDuplicateShortBox))
	assert.Len(t, d.Boxes(), 1)
}

func TestDraftRemoveBoxRenumbers(t *testing.T) {
	d, _ := newTestDraft(t)
	d.now = func() time.Time { return time.Time{} }

	_, err := d.AddBox(normalBoxSpec(1, "1"))
	require.NoError(t, err)
	middle, err := d.AddBox(normalBoxSpec(2, "1"))
	require.NoError(t, err)
	_, err = d.AddBox(normalBoxSpec(3, "1"))
	require.NoError(t, err)

	require.NoError(t, d.RemoveBox(middle.ID))

	boxes := d.Boxes()
	require.Len(t, boxes, 2)
	assert.Equal(t, "1", boxes[0].BoxNo)
	assert.Equal(t, "2", boxes[1].BoxNo)
	assert.Equal(t, 1.0, boxes[0].Weight)
	assert.Equal(t, 3.0, boxes[1].Weight)
}

func TestDraftRemoveBoxGuardRejectsRapidSecondRemoval(t *testing.T) {
	d, _ := newTestDraft(t)

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return clock }

	first, err := d.AddBox(normalBoxSpec(1, "1"))
	require.NoError(t, err)
	second, err := d.AddBox(normalBoxSpec(2, "1"))
	require.NoError(t, err)

	require.NoError(t, d.RemoveBox(first.ID))

	// still inside the cooldown window
	err = d.RemoveBox(second.ID)
	assert.ErrorIs(t, err, ErrRemovalInProgress)
	assert.Len(t, d.Boxes(), 1)

	clock = clock.Add(time.Second)
	require.NoError(t, d.RemoveBox(second.ID))
	assert.Empty(t, d.Boxes())
}

func TestDraftAddAndRemoveProduct(t *testing.T) {
	d, _ := newTestDraft(t)

	box, err := d.AddBox(normalBoxSpec(5, "2"))
	require.NoError(t, err)

	line, err := d.AddProduct(box.ID, LineSpec{SKU: "SKU-2", Quantity: "3"})
	require.NoError(t, err)
	assert.NotZero(t, line.ID)
	assert.Equal(t, 5, d.Totals().TotalPieces)

	require.NoError(t, d.RemoveProduct(box.ID, line.ID))
	assert.Equal(t, 2, d.Totals().TotalPieces)

	err = d.RemoveProduct(box.ID, line.ID)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestDraftPersistFailureLeavesStateUntouched(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore()}
	d := NewDraft("draft:test", store, testCatalog(), testCustomers())

	_, err := d.AddBox(normalBoxSpec(5, "1"))
	require.NoError(t, err)

	store.failSet = true
	_, err = d.AddBox(normalBoxSpec(3, "1"))
	require.Error(t, err)
	assert.Len(t, d.Boxes(), 1)
}

func TestDraftReloadFromStore(t *testing.T) {
	store := NewMemoryStore()
	d := NewDraft("draft:test", store, testCatalog(), testCustomers())

	require.NoError(t, d.SetHeader(Header{InvoiceNo: "inv-01", CustomerCode: "cust1", RequiredQty: 2}))
	_, err := d.AddBox(normalBoxSpec(5, "2"))
	require.NoError(t, err)

	reloaded := NewDraft("draft:test", store, testCatalog(), testCustomers())

	assert.Equal(t, "INV-01", reloaded.Header().InvoiceNo)
	assert.Equal(t, "CUST1", reloaded.Header().CustomerCode)
	boxes := reloaded.Boxes()
	require.Len(t, boxes, 1)
	assert.Equal(t, "1", boxes[0].BoxNo)
	assert.Equal(t, 5.0, boxes[0].FinalWeight)
}

func TestSubmitRequiresCompleteHeader(t *testing.T) {
	d, _ := newTestDraft(t)
	_, err := d.AddBox(normalBoxSpec(5, "1"))
	require.NoError(t, err)

	// invoice missing
	_, err = d.Submit(nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, KindInvalidHeader, ve.Kind)

	// required quantity missing
	require.NoError(t, d.SetHeader(Header{InvoiceNo: "INV-01", CustomerCode: "CUST1"}))
	_, err = d.Submit(nil)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, KindInvalidHeader, ve.Kind)
	assert.True(t, IsKind(err, KindInvalidHeader))
}

func TestSubmitRejectsEmptyDraftAndEmptyBox(t *testing.T) {
	d, _ := newTestDraft(t)
	require.NoError(t, d.SetHeader(Header{InvoiceNo: "INV-01", CustomerCode: "CUST1", RequiredQty: 1}))

	_, err := d.Submit(nil)
	assert.True(t, IsKind(err, KindEmptyBox))

	box, err := d.AddBox(normalBoxSpec(5, "1"))
	require.NoError(t, err)
	require.NoError(t, d.RemoveProduct(box.ID, box.Products[0].ID))

	_, err = d.Submit(nil)
	assert.True(t, IsKind(err, KindEmptyBox))
}

func TestSubmitUnknownCustomerRetainsDraft(t *testing.T) {
	d, store := newTestDraft(t)
	require.NoError(t, d.SetHeader(Header{InvoiceNo: "INV-01", CustomerCode: "NOPE", RequiredQty: 1}))
	_, err := d.AddBox(normalBoxSpec(5, "1"))
	require.NoError(t, err)

	_, err = d.Submit(nil)
	assert.True(t, IsKind(err, KindUnknownCustomer))

	assert.Len(t, d.Boxes(), 1)
	_, ok := store.Get("draft:test")
	assert.True(t, ok)
}

func TestSubmitRejectsMismatchedPartyName(t *testing.T) {
	d, _ := newTestDraft(t)
	require.NoError(t, d.SetHeader(Header{
		InvoiceNo: "INV-01", CustomerCode: "CUST1",
		PartyName: "Someone Else", RequiredQty: 1,
	}))
	_, err := d.AddBox(normalBoxSpec(5, "1"))
	require.NoError(t, err)

	_, err = d.Submit(nil)
	assert.True(t, IsKind(err, KindUnknownCustomer))
}

func TestSubmitSuccessClearsDraft(t *testing.T) {
	d, store := newTestDraft(t)
	require.NoError(t, d.SetHeader(Header{
		InvoiceNo: "inv-01", CustomerCode: "CUST1",
		PartyName: "acme trading", Date: "2026-03-01", RequiredQty: 2,
	}))
	_, err := d.AddBox(normalBoxSpec(5, "2"))
	require.NoError(t, err)

	var persisted *Shipment
	doc, err := d.Submit(func(s *Shipment) error {
		persisted = s
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, persisted)

	assert.Equal(t, "INV-01", doc.InvoiceNo)
	assert.Equal(t, uint(10), doc.CustomerID)
	assert.Equal(t, "Acme Trading", doc.PartyName)
	assert.Equal(t, StatusPacking, doc.Status)
	require.Len(t, doc.Boxes, 1)
	assert.Equal(t, 5.0, doc.Boxes[0].FinalWeight)

	assert.Empty(t, d.Boxes())
	assert.Equal(t, Header{}, d.Header())
	_, ok := store.Get("draft:test")
	assert.False(t, ok)
}

func TestSubmitPersistFailureRetainsDraft(t *testing.T) {
	d, store := newTestDraft(t)
	require.NoError(t, d.SetHeader(Header{InvoiceNo: "INV-01", CustomerCode: "CUST1", RequiredQty: 1}))
	_, err := d.AddBox(normalBoxSpec(5, "1"))
	require.NoError(t, err)

	_, err = d.Submit(func(*Shipment) error {
		return errors.New("gateway down")
	})
	require.Error(t, err)

	assert.Len(t, d.Boxes(), 1)
	assert.Equal(t, "INV-01", d.Header().InvoiceNo)
	_, ok := store.Get("draft:test")
	assert.True(t, ok)
}

func TestQuantityMatch(t *testing.T) {
	d, _ := newTestDraft(t)
	require.NoError(t, d.SetHeader(Header{InvoiceNo: "INV-01", CustomerCode: "CUST1", RequiredQty: 3}))

	_, err := d.AddBox(normalBoxSpec(5, "2"))
	require.NoError(t, err)

	required, packed, match := d.QuantityMatch()
	assert.Equal(t, 3, required)
	assert.Equal(t, 2, packed)
	assert.False(t, match)

	_, err = d.AddBox(shortBoxSpec("1"))
	require.NoError(t, err)

	_, _, match = d.QuantityMatch()
	assert.True(t, match)
}
