package packing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBox(isShort bool, l, h, w, weight float64, qty int) Box {
	box := Box{
		IsShortBox: isShort,
		Length:     l, Height: h, Width: w, Weight: weight,
		Products: []ProductLine{{ProductID: 1, SKU: "SKU-1", Quantity: qty}},
	}
	box.Recompute()
	return box
}

func TestSummarize(t *testing.T) {
	boxes := []Box{
		makeBox(false, 10, 10, 10, 5, 4),
		makeBox(false, 50, 50, 50, 1, 2),
	}

	totals := Summarize(boxes)

	assert.Equal(t, 6, totals.TotalPieces)
	assert.Equal(t, 6.0, totals.TotalWeight)
	assert.Equal(t, 126000.0, totals.TotalVolume)
	assert.Equal(t, 28.0, totals.TotalVolumeWeight)
	assert.Equal(t, 28.0, totals.ChargedWeight)
}

// The charged weight compares aggregate actual weight against aggregate
// volumetric weight. Summing the per-box final weights would give 32.78
// here (5.00 + 27.78); the shipment-level comparison gives 28.00.
func TestChargedWeightIsAggregateComparison(t *testing.T) {
	boxes := []Box{
		makeBox(false, 10, 10, 10, 5, 1),
		makeBox(false, 50, 50, 50, 1, 1),
	}

	totals := Summarize(boxes)

	perBoxSum := boxes[0].FinalWeight + boxes[1].FinalWeight
	assert.Equal(t, 32.78, perBoxSum)
	assert.Equal(t, 28.0, totals.ChargedWeight)
}

func TestSummarizeSplitsShortQuantity(t *testing.T) {
	boxes := []Box{
		makeBox(false, 10, 10, 10, 5, 7),
		makeBox(true, 0, 0, 0, 0, 3),
	}

	totals := Summarize(boxes)

	assert.Equal(t, 10, totals.TotalPieces)
	assert.Equal(t, 7, totals.AvailableQty)
	assert.Equal(t, 3, totals.ShortQty)
	assert.Equal(t, totals.TotalPieces, totals.AvailableQty+totals.ShortQty)
}

func TestSummarizeEmpty(t *testing.T) {
	totals := Summarize(nil)
	assert.Equal(t, 0, totals.TotalPieces)
	assert.Equal(t, 0.0, totals.ChargedWeight)
}

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func TestGroupByParty(t *testing.T) {
	shipments := []ShipmentFacts{
		{PartyName: "Acme Trading", Date: day("2026-03-01"), Boxes: []Box{makeBox(false, 10, 10, 10, 5, 1)}},
		{PartyName: "Acme Trading", Date: day("2026-03-05"), Boxes: []Box{makeBox(false, 10, 10, 10, 3, 1), makeBox(true, 0, 0, 0, 0, 1)}},
		{PartyName: "Beta Goods", Date: day("2026-03-02"), Boxes: []Box{makeBox(false, 50, 50, 50, 1, 1)}},
	}

	report := GroupByParty(shipments, nil, nil)
	require.Len(t, report, 2)

	assert.Equal(t, "Acme Trading", report[0].PartyName)
	assert.Equal(t, 2, report[0].ShipmentCount)
	assert.Equal(t, 3, report[0].BoxCount)
	assert.Equal(t, 8.0, report[0].TotalWeight)
	assert.Equal(t, 8.0, report[0].ChargedWeight)

	assert.Equal(t, "Beta Goods", report[1].PartyName)
	assert.Equal(t, 1, report[1].ShipmentCount)
	assert.Equal(t, 27.78, report[1].ChargedWeight)
}

// Grouping is by the stored party name string. The same customer recorded
// under two spellings produces two rows.
func TestGroupByPartySeparatesSpellings(t *testing.T) {
	shipments := []ShipmentFacts{
		{PartyName: "Acme Trading", Date: day("2026-03-01"), Boxes: []Box{makeBox(false, 10, 10, 10, 5, 1)}},
		{PartyName: "ACME TRADING", Date: day("2026-03-01"), Boxes: []Box{makeBox(false, 10, 10, 10, 5, 1)}},
	}

	report := GroupByParty(shipments, nil, nil)
	assert.Len(t, report, 2)
}

func TestGroupByPartyDateRangeIsInclusive(t *testing.T) {
	shipments := []ShipmentFacts{
		{PartyName: "Acme Trading", Date: day("2026-02-28"), Boxes: []Box{makeBox(false, 10, 10, 10, 1, 1)}},
		{PartyName: "Acme Trading", Date: day("2026-03-01"), Boxes: []Box{makeBox(false, 10, 10, 10, 2, 1)}},
		{PartyName: "Acme Trading", Date: day("2026-03-31"), Boxes: []Box{makeBox(false, 10, 10, 10, 4, 1)}},
		{PartyName: "Acme Trading", Date: day("2026-04-01"), Boxes: []Box{makeBox(false, 10, 10, 10, 8, 1)}},
	}

	start := day("2026-03-01")
	end := day("2026-03-31")
	report := GroupByParty(shipments, &start, &end)
	require.Len(t, report, 1)

	assert.Equal(t, 2, report[0].ShipmentCount)
	assert.Equal(t, 6.0, report[0].TotalWeight)
}
