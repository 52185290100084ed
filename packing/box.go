package packing

import (
	"strconv"

	"shipments-app/idgen"
	"shipments-app/types"
)

// ProductLine is one product entry inside a box. SKU and product name are
// denormalized from the catalog at the time the line is added, not joined
// live on read.
type ProductLine struct {
	ID          types.SnowflakeID `json:"id"`
	ProductID   uint              `json:"product_id"`
	SKU         string            `json:"sku"`
	ProductName string            `json:"product_name"`
	ExternalSKU string            `json:"external_sku,omitempty"`
	Quantity    int               `json:"quantity"`
}

// Box is one carton of a shipment. Volume, VolumeWeight and FinalWeight
// are derived from the raw dimension fields and recomputed on every
// structural change; they are never trusted from storage.
type Box struct {
	ID         types.SnowflakeID `json:"id"`
	BoxNo      string            `json:"box_no"`
	IsShortBox bool              `json:"is_short_box"`
	Length     float64           `json:"length"`
	Height     float64           `json:"height"`
	Width      float64           `json:"width"`
	Weight     float64           `json:"weight"`

	Volume       float64 `json:"volume"`
	VolumeWeight float64 `json:"volume_weight"`
	FinalWeight  float64 `json:"final_weight"`

	Products []ProductLine `json:"products"`
}

// Recompute rederives the box figures from its own dimension and weight
// fields. A short box has all of them forced to zero no matter what was
// submitted for it.
func (b *Box) Recompute() {
	if b.IsShortBox {
		b.Length, b.Height, b.Width, b.Weight = 0, 0, 0, 0
	}
	b.Volume = Volume(b.Length, b.Height, b.Width)
	b.VolumeWeight = VolumetricWeight(b.Volume)
	b.FinalWeight = FinalWeight(b.Weight, b.VolumeWeight)
}

// Pieces is the total quantity over the box product lines.
func (b *Box) Pieces() int {
	total := 0
	for _, line := range b.Products {
		total += line.Quantity
	}
	return total
}

// LineSpec is the operator input for one product line. Quantity arrives
// as the raw form value and must parse to an integer >= 1.
type LineSpec struct {
	SKU         string `json:"sku"`
	ExternalSKU string `json:"external_sku"`
	Quantity    string `json:"quantity"`
}

// BoxSpec is the operator input for a box before validation.
type BoxSpec struct {
	IsShortBox bool       `json:"is_short_box"`
	Length     float64    `json:"length"`
	Height     float64    `json:"height"`
	Width      float64    `json:"width"`
	Weight     float64    `json:"weight"`
	Products   []LineSpec `json:"products"`
}

func boxNo(n int) string {
	return strconv.Itoa(n)
}

// newBox assembles a box from a validated spec and its resolved lines,
// assigning fresh identities and computing the derived figures.
func newBox(spec BoxSpec, lines []ProductLine) Box {
	box := Box{
		ID:         types.SnowflakeID(idgen.GenerateID()),
		IsShortBox: spec.IsShortBox,
		Length:     finite(spec.Length),
		Height:     finite(spec.Height),
		Width:      finite(spec.Width),
		Weight:     finite(spec.Weight),
		Products:   make([]ProductLine, len(lines)),
	}
	for i, line := range lines {
		if line.ID == 0 {
			line.ID = types.SnowflakeID(idgen.GenerateID())
		}
		box.Products[i] = line
	}
	box.Recompute()
	return box
}
