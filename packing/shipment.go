package packing

// Header holds the operator-entered shipment fields of a draft.
type Header struct {
	InvoiceNo    string `json:"invoice_no"`
	CustomerCode string `json:"customer_code"`
	PartyName    string `json:"party_name"`
	Date         string `json:"date"`
	RequiredQty  int    `json:"required_qty"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Notes        string `json:"notes"`
}

// Shipment is the finalized document handed to the persistence gateway
// on submit. Summary figures are intentionally absent: they are always
// rederived from the boxes when the document is read back.
type Shipment struct {
	InvoiceNo   string `json:"invoice_no"`
	CustomerID  uint   `json:"customer_id"`
	PartyName   string `json:"party_name"`
	Date        string `json:"date"`
	RequiredQty int    `json:"required_qty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
	Boxes       []Box  `json:"boxes"`
}
