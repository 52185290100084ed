package packing

// Shipment status values. Progression is a simple linear state machine;
// a status can only move forward, never back.
const (
	StatusDraft     = "draft"
	StatusPacking   = "packing"
	StatusReady     = "ready"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
)

var statusRank = map[string]int{
	StatusDraft:     0,
	StatusPacking:   1,
	StatusReady:     2,
	StatusShipped:   3,
	StatusDelivered: 4,
}

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvance reports whether a shipment may move from one status to
// another. Staying on the same status is allowed, moving backwards is not.
func CanAdvance(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}
