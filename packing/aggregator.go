package packing

import (
	"math"
	"time"

	"golang.org/x/exp/slices"
)

// Totals are the shipment-level figures derived from its boxes.
//
// ChargedWeight compares the aggregate actual weight against the
// aggregate volumetric weight. That is not the same number as summing the
// per-box final weights: a shipment with one weight-dominant box and one
// volume-dominant box charges less under this rule than under a per-box
// sum, and this aggregation order is the contract.
type Totals struct {
	TotalPieces       int     `json:"total_pieces"`
	TotalWeight       float64 `json:"total_weight"`
	TotalVolume       float64 `json:"total_volume"`
	TotalVolumeWeight float64 `json:"total_volume_weight"`
	ChargedWeight     float64 `json:"charged_weight"`
	AvailableQty      int     `json:"available_qty"`
	ShortQty          int     `json:"short_qty"`
}

// Summarize computes shipment totals from the ordered box list.
func Summarize(boxes []Box) Totals {
	var t Totals
	for _, box := range boxes {
		pieces := box.Pieces()
		t.TotalPieces += pieces
		if box.IsShortBox {
			t.ShortQty += pieces
		} else {
			t.AvailableQty += pieces
		}
		t.TotalWeight += box.Weight
		t.TotalVolume += box.Volume
		t.TotalVolumeWeight += box.VolumeWeight
	}
	t.TotalWeight = round2(t.TotalWeight)
	t.TotalVolume = round2(t.TotalVolume)
	t.TotalVolumeWeight = round2(t.TotalVolumeWeight)
	t.ChargedWeight = round2(math.Max(t.TotalWeight, t.TotalVolumeWeight))
	return t
}

// ShipmentFacts is the slice of a stored shipment the report needs.
type ShipmentFacts struct {
	PartyName string
	Date      time.Time
	Boxes     []Box
}

// PartyReport is one row of the per-customer shipment report.
type PartyReport struct {
	PartyName     string  `json:"party_name"`
	ShipmentCount int     `json:"shipment_count"`
	BoxCount      int     `json:"box_count"`
	TotalWeight   float64 `json:"total_weight"`
	ChargedWeight float64 `json:"charged_weight"`
}

// GroupByParty groups shipments by their denormalized party name over an
// inclusive date range (nil bounds are open). Grouping is by the name
// string, not the customer reference: two shipments for the same customer
// with differently spelled party names land in separate rows.
func GroupByParty(shipments []ShipmentFacts, startDate, endDate *time.Time) []PartyReport {
	rows := map[string]*PartyReport{}

	for _, s := range shipments {
		if startDate != nil && s.Date.Before(*startDate) {
			continue
		}
		if endDate != nil && s.Date.After(*endDate) {
			continue
		}

		row, ok := rows[s.PartyName]
		if !ok {
			row = &PartyReport{PartyName: s.PartyName}
			rows[s.PartyName] = row
		}

		totals := Summarize(s.Boxes)
		row.ShipmentCount++
		row.BoxCount += len(s.Boxes)
		row.TotalWeight = round2(row.TotalWeight + totals.TotalWeight)
		row.ChargedWeight = round2(row.ChargedWeight + totals.ChargedWeight)
	}

	report := make([]PartyReport, 0, len(rows))
	for _, row := range rows {
		report = append(report, *row)
	}
	slices.SortFunc(report, func(a, b PartyReport) int {
		switch {
		case a.PartyName < b.PartyName:
			return -1
		case a.PartyName > b.PartyName:
			return 1
		default:
			return 0
		}
	})
	return report
}
