package packing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBoxResolvesLines(t *testing.T) {
	v := NewValidator(testCatalog())

	lines, err := v.ValidateBox(BoxSpec{
		Length: 10, Height: 10, Width: 10, Weight: 5,
		Products: []LineSpec{
			{SKU: "sku-1", ExternalSKU: " EXT-9 ", Quantity: "3"},
			{SKU: "SKU-2", Quantity: "1"},
		},
	}, false)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, uint(1), lines[0].ProductID)
	assert.Equal(t, "SKU-1", lines[0].SKU)
	assert.Equal(t, "Alpha", lines[0].ProductName)
	assert.Equal(t, "EXT-9", lines[0].ExternalSKU)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestValidateBoxRejectsZeroDimensions(t *testing.T) {
	v := NewValidator(testCatalog())

	cases := []struct {
		name string
		spec BoxSpec
	}{
		{"zero length", BoxSpec{Height: 10, Width: 10, Weight: 5}},
		{"zero weight", BoxSpec{Length: 10, Height: 10, Width: 10}},
		{"negative width", BoxSpec{Length: 10, Height: 10, Width: -1, Weight: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.spec.Products = []LineSpec{{SKU: "SKU-1", Quantity: "1"}}
			_, err := v.ValidateBox(tc.spec, false)
			assert.True(t, IsKind(err, KindInvalidDimensions))
		})
	}
}

func TestValidateBoxShortBoxSkipsDimensionCheck(t *testing.T) {
	v := NewValidator(testCatalog())

	lines, err := v.ValidateBox(shortBoxSpec("2"), false)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestValidateBoxRejectsSecondShortBox(t *testing.T) {
	v := NewValidator(testCatalog())

	_, err := v.ValidateBox(shortBoxSpec("2"), true)
	assert.True(t, IsKind(err, KindDuplicateShortBox))
}

func TestValidateBoxRejectsEmptyBox(t *testing.T) {
	v := NewValidator(testCatalog())

	_, err := v.ValidateBox(BoxSpec{Length: 10, Height: 10, Width: 10, Weight: 5}, false)
	assert.True(t, IsKind(err, KindEmptyBox))
}

func TestResolveLineUnknownSku(t *testing.T) {
	v := NewValidator(testCatalog())

	_, err := v.ResolveLine(LineSpec{SKU: "NOPE", Quantity: "1"})
	assert.True(t, IsKind(err, KindUnknownSku))

	_, err = v.ResolveLine(LineSpec{SKU: "  ", Quantity: "1"})
	assert.True(t, IsKind(err, KindUnknownSku))
}

func TestResolveLineQuantityParsing(t *testing.T) {
	v := NewValidator(testCatalog())

	for _, bad := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := v.ResolveLine(LineSpec{SKU: "SKU-1", Quantity: bad})
		assert.True(t, IsKind(err, KindInvalidQuantity), "quantity %q", bad)
	}

	line, err := v.ResolveLine(LineSpec{SKU: "SKU-1", Quantity: " 2 "})
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)
}

func TestValidateBoxesNumbersSequentially(t *testing.T) {
	v := NewValidator(testCatalog())

	boxes, err := v.ValidateBoxes([]BoxSpec{
		normalBoxSpec(5, "2"),
		shortBoxSpec("1"),
		normalBoxSpec(3, "4"),
	})
	require.NoError(t, err)
	require.Len(t, boxes, 3)

	assert.Equal(t, "1", boxes[0].BoxNo)
	assert.Equal(t, "2", boxes[1].BoxNo)
	assert.Equal(t, "3", boxes[2].BoxNo)
	assert.NotZero(t, boxes[0].ID)
	assert.Equal(t, 5.0, boxes[0].FinalWeight)
}

func TestValidateBoxesRejectsTwoShortBoxes(t *testing.T) {
	v := NewValidator(testCatalog())

	_, err := v.ValidateBoxes([]BoxSpec{
		shortBoxSpec("1"),
		shortBoxSpec("2"),
	})
	assert.True(t, IsKind(err, KindDuplicateShortBox))
}
