package packing

import (
	"strconv"
	"strings"
)

// Validator checks a box before it is committed to a shipment. Product
// lines are resolved against the catalog and come back denormalized
// (product id, SKU, name captured at validation time).
type Validator struct {
	Catalog CatalogLookup
}

func NewValidator(catalog CatalogLookup) *Validator {
	return &Validator{Catalog: catalog}
}

// ValidateBox validates spec and resolves its product lines. hasShortBox
// tells the validator whether the shipment already holds a short box
// other than the one being validated.
func (v *Validator) ValidateBox(spec BoxSpec, hasShortBox bool) ([]ProductLine, error) {
	if spec.IsShortBox && hasShortBox {
		return nil, NewValidationError(KindDuplicateShortBox, "shipment already has a short box")
	}

	if !spec.IsShortBox {
		// All four fields must be filled with a positive value. A zero
		// weight on a normal box is rejected, same as a zero dimension.
		dims := map[string]float64{
			"length": spec.Length,
			"height": spec.Height,
			"width":  spec.Width,
			"weight": spec.Weight,
		}
		for _, name := range []string{"length", "height", "width", "weight"} {
			if !(finite(dims[name]) > 0) {
				return nil, NewValidationError(KindInvalidDimensions, "box %s must be a number greater than zero", name)
			}
		}
	}

	if len(spec.Products) == 0 {
		return nil, NewValidationError(KindEmptyBox, "box has no products")
	}

	lines := make([]ProductLine, 0, len(spec.Products))
	for _, lineSpec := range spec.Products {
		line, err := v.ResolveLine(lineSpec)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	return lines, nil
}

// ValidateBoxes validates a full replacement box list, enforcing the
// single-short-box rule across the whole set. Boxes come back numbered
// 1..N in input order with fresh identities and derived figures.
func (v *Validator) ValidateBoxes(specs []BoxSpec) ([]Box, error) {
	seenShort := false
	boxes := make([]Box, 0, len(specs))
	for _, spec := range specs {
		lines, err := v.ValidateBox(spec, seenShort)
		if err != nil {
			return nil, err
		}
		if spec.IsShortBox {
			seenShort = true
		}
		box := newBox(spec, lines)
		box.BoxNo = boxNo(len(boxes) + 1)
		boxes = append(boxes, box)
	}
	return boxes, nil
}

// ResolveLine validates a single product line input and resolves its SKU
// through the catalog lookup. The line comes back without an identity;
// the lifecycle manager assigns one when the line is committed.
func (v *Validator) ResolveLine(spec LineSpec) (*ProductLine, error) {
	sku := strings.ToUpper(strings.TrimSpace(spec.SKU))
	if sku == "" {
		return nil, NewValidationError(KindUnknownSku, "product SKU is required")
	}

	info, err := v.Catalog.ResolveSku(sku)
	if err != nil || info == nil {
		return nil, NewValidationError(KindUnknownSku, "SKU %s not found", sku)
	}

	qty, err := strconv.Atoi(strings.TrimSpace(spec.Quantity))
	if err != nil || qty < 1 {
		return nil, NewValidationError(KindInvalidQuantity, "quantity for %s must be a whole number of at least 1", sku)
	}

	return &ProductLine{
		ProductID:   info.ProductID,
		SKU:         info.SKU,
		ProductName: info.ProductName,
		ExternalSKU: strings.TrimSpace(spec.ExternalSKU),
		Quantity:    qty,
	}, nil
}
