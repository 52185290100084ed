package packing

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"shipments-app/idgen"
	"shipments-app/types"
)

// removalCooldown keeps the removal guard latched for a short moment
// after a renumbering pass finishes, to absorb duplicate rapid-fire
// triggers from the UI.
const removalCooldown = 300 * time.Millisecond

// PersistFunc hands the finalized shipment document to the persistence
// gateway at submit time.
type PersistFunc func(*Shipment) error

// Draft is the single in-progress shipment of one operator session. Every
// structural change revalidates, recomputes derived figures and writes
// the whole draft back to the injected DraftStore, so it survives page
// reloads before submission. Mutations are all-or-nothing: a failed
// operation leaves the draft exactly as it was.
type Draft struct {
	mu sync.Mutex

	key       string
	store     DraftStore
	validator *Validator
	customers CustomerLookup

	header Header
	boxes  []Box

	removal removalGuard
	now     func() time.Time
}

type draftState struct {
	Header Header `json:"header"`
	Boxes  []Box  `json:"boxes"`
}

// NewDraft loads the draft stored under key, or starts an empty one. A
// payload that no longer parses is discarded rather than blocking the
// operator.
func NewDraft(key string, store DraftStore, catalog CatalogLookup, customers CustomerLookup) *Draft {
	d := &Draft{
		key:       key,
		store:     store,
		validator: NewValidator(catalog),
		customers: customers,
		now:       time.Now,
	}

	if payload, ok := store.Get(key); ok {
		var state draftState
		if err := json.Unmarshal(payload, &state); err == nil {
			d.header = state.Header
			d.boxes = state.Boxes
			for i := range d.boxes {
				d.boxes[i].Recompute()
			}
		}
	}

	return d
}

// Header returns the current draft header.
func (d *Draft) Header() Header {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.header
}

// Boxes returns a copy of the current box list.
func (d *Draft) Boxes() []Box {
	d.mu.Lock()
	defer d.mu.Unlock()
	return copyBoxes(d.boxes)
}

// Totals summarizes the current box list.
func (d *Draft) Totals() Totals {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Summarize(d.boxes)
}

// QuantityMatch reports the advisory comparison of packed pieces against
// the operator-entered required quantity. A mismatch never blocks submit.
func (d *Draft) QuantityMatch() (required, packed int, match bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	required = d.header.RequiredQty
	packed = Summarize(d.boxes).TotalPieces
	return required, packed, required == packed
}

// SetHeader replaces the draft header.
func (d *Draft) SetHeader(h Header) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	h.InvoiceNo = strings.ToUpper(strings.TrimSpace(h.InvoiceNo))
	h.CustomerCode = strings.ToUpper(strings.TrimSpace(h.CustomerCode))
	if err := d.persist(h, d.boxes); err != nil {
		return err
	}
	d.header = h
	return nil
}

// AddBox validates spec, assigns the next sequential box number and
// appends the box.
func (d *Draft) AddBox(spec BoxSpec) (*Box, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	lines, err := d.validator.ValidateBox(spec, d.hasShortBox(0))
	if err != nil {
		return nil, err
	}

	box := newBox(spec, lines)
	box.BoxNo = boxNo(len(d.boxes) + 1)

	next := append(copyBoxes(d.boxes), box)
	if err := d.persist(d.header, next); err != nil {
		return nil, err
	}
	d.boxes = next
	return &box, nil
}

// EditBox replaces the box with the given identity in place. The box
// keeps its number; everything else is rebuilt from spec, with the same
// validation as AddBox.
func (d *Draft) EditBox(id types.SnowflakeID, spec BoxSpec) (*Box, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOf(id)
	if idx < 0 {
		return nil, ErrBoxNotFound
	}

	lines, err := d.validator.ValidateBox(spec, d.hasShortBox(id))
	if err != nil {
		return nil, err
	}

	box := newBox(spec, lines)
	box.ID = id
	box.BoxNo = d.boxes[idx].BoxNo

	next := copyBoxes(d.boxes)
	next[idx] = box
	if err := d.persist(d.header, next); err != nil {
		return nil, err
	}
	d.boxes = next
	return &box, nil
}

// CopyBox duplicates a box at the end of the list. The copy gets a new
// identity, the next box number and fresh product line identities so the
// copied lines can be removed independently of the original.
func (d *Draft) CopyBox(id types.SnowflakeID) (*Box, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOf(id)
	if idx < 0 {
		return nil, ErrBoxNotFound
	}

	src := d.boxes[idx]
	if src.IsShortBox && d.hasShortBox(0) {
		return nil, NewValidationError(KindDuplicateShortBox, "shipment already has a short box")
	}

	box := src
	box.ID = types.SnowflakeID(idgen.GenerateID())
	box.BoxNo = boxNo(len(d.boxes) + 1)
	box.Products = make([]ProductLine, len(src.Products))
	for i, line := range src.Products {
		line.ID = types.SnowflakeID(idgen.GenerateID())
		box.Products[i] = line
	}
	box.Recompute()

	next := append(copyBoxes(d.boxes), box)
	if err := d.persist(d.header, next); err != nil {
		return nil, err
	}
	d.boxes = next
	return &box, nil
}

// RemoveBox removes the box and renumbers the remainder to stay
// contiguous 1..N in their current order. A removal arriving while the
// previous one is still settling is rejected with ErrRemovalInProgress.
func (d *Draft) RemoveBox(id types.SnowflakeID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.removal.tryAcquire(d.now()) {
		return ErrRemovalInProgress
	}
	defer func() { d.removal.release(d.now()) }()

	idx := d.indexOf(id)
	if idx < 0 {
		return ErrBoxNotFound
	}

	next := make([]Box, 0, len(d.boxes)-1)
	next = append(next, copyBoxes(d.boxes[:idx])...)
	next = append(next, copyBoxes(d.boxes[idx+1:])...)
	for i := range next {
		next[i].BoxNo = boxNo(i + 1)
	}

	if err := d.persist(d.header, next); err != nil {
		return err
	}
	d.boxes = next
	return nil
}

// AddProduct appends a validated product line to the box and recomputes
// its figures. Box numbering is untouched.
func (d *Draft) AddProduct(id types.SnowflakeID, spec LineSpec) (*ProductLine, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOf(id)
	if idx < 0 {
		return nil, ErrBoxNotFound
	}

	line, err := d.validator.ResolveLine(spec)
	if err != nil {
		return nil, err
	}
	line.ID = types.SnowflakeID(idgen.GenerateID())

	next := copyBoxes(d.boxes)
	next[idx].Products = append(next[idx].Products, *line)
	next[idx].Recompute()

	if err := d.persist(d.header, next); err != nil {
		return nil, err
	}
	d.boxes = next
	return line, nil
}

// RemoveProduct removes one product line from the box. The box may end
// up empty; submit rejects it then.
func (d *Draft) RemoveProduct(id, lineID types.SnowflakeID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := d.indexOf(id)
	if idx < 0 {
		return ErrBoxNotFound
	}

	next := copyBoxes(d.boxes)
	lines := next[idx].Products
	lineIdx := -1
	for i, line := range lines {
		if line.ID == lineID {
			lineIdx = i
			break
		}
	}
	if lineIdx < 0 {
		return ErrLineNotFound
	}

	next[idx].Products = append(lines[:lineIdx:lineIdx], lines[lineIdx+1:]...)
	next[idx].Recompute()

	if err := d.persist(d.header, next); err != nil {
		return err
	}
	d.boxes = next
	return nil
}

// Submit finalizes the draft. The header must be complete, the customer
// must resolve through the lookup (a free-typed party name matching no
// customer record blocks submission), and the draft must hold at least
// one box with products. The document is handed to persist; only when
// that succeeds is the scratch draft cleared. Any failure leaves the
// draft untouched so the operator can correct and retry.
func (d *Draft) Submit(persist PersistFunc) (*Shipment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	h := d.header
	if h.InvoiceNo == "" {
		return nil, NewValidationError(KindInvalidHeader, "invoice number is required")
	}
	if h.RequiredQty < 1 {
		return nil, NewValidationError(KindInvalidHeader, "required quantity must be at least 1")
	}
	if len(d.boxes) == 0 {
		return nil, NewValidationError(KindEmptyBox, "shipment has no boxes")
	}
	for _, box := range d.boxes {
		if len(box.Products) == 0 {
			return nil, NewValidationError(KindEmptyBox, "box %s has no products", box.BoxNo)
		}
	}

	if h.CustomerCode == "" {
		return nil, NewValidationError(KindUnknownCustomer, "customer is required")
	}
	customer, err := d.customers.ResolveCustomer(h.CustomerCode)
	if err != nil || customer == nil {
		return nil, NewValidationError(KindUnknownCustomer, "customer %s not found", h.CustomerCode)
	}
	if h.PartyName != "" && !strings.EqualFold(h.PartyName, customer.Name) {
		return nil, NewValidationError(KindUnknownCustomer, "party name %q does not match customer %s", h.PartyName, customer.Code)
	}

	boxes := copyBoxes(d.boxes)
	for i := range boxes {
		boxes[i].Recompute()
	}

	doc := &Shipment{
		InvoiceNo:   strings.ToUpper(h.InvoiceNo),
		CustomerID:  customer.ID,
		PartyName:   customer.Name,
		Date:        h.Date,
		RequiredQty: h.RequiredQty,
		StartTime:   h.StartTime,
		EndTime:     h.EndTime,
		Status:      StatusPacking,
		Notes:       h.Notes,
		Boxes:       boxes,
	}

	if persist != nil {
		if err := persist(doc); err != nil {
			return nil, err
		}
	}

	d.store.Remove(d.key)
	d.header = Header{}
	d.boxes = nil
	return doc, nil
}

// hasShortBox reports whether any box other than exclude is a short box.
func (d *Draft) hasShortBox(exclude types.SnowflakeID) bool {
	for _, box := range d.boxes {
		if box.IsShortBox && box.ID != exclude {
			return true
		}
	}
	return false
}

func (d *Draft) indexOf(id types.SnowflakeID) int {
	for i, box := range d.boxes {
		if box.ID == id {
			return i
		}
	}
	return -1
}

func (d *Draft) persist(h Header, boxes []Box) error {
	payload, err := json.Marshal(draftState{Header: h, Boxes: boxes})
	if err != nil {
		return err
	}
	return d.store.Set(d.key, payload)
}

func copyBoxes(boxes []Box) []Box {
	out := make([]Box, len(boxes))
	for i, box := range boxes {
		products := make([]ProductLine, len(box.Products))
		copy(products, box.Products)
		box.Products = products
		out[i] = box
	}
	return out
}

// removalGuard is a single-slot latch around the renumbering pass. It is
// scoped to one draft, not global.
type removalGuard struct {
	busy    bool
	readyAt time.Time
}

func (g *removalGuard) tryAcquire(now time.Time) bool {
	if g.busy || now.Before(g.readyAt) {
		return false
	}
	g.busy = true
	return true
}

func (g *removalGuard) release(now time.Time) {
	g.busy = false
	g.readyAt = now.Add(removalCooldown)
}
