package packing

import (
	"errors"
	"fmt"
)

// Kind tags a validation failure so callers can render or branch on it.
type Kind string

const (
	KindInvalidHeader     Kind = "InvalidHeader"
	KindEmptyBox          Kind = "EmptyBox"
	KindDuplicateShortBox Kind = "DuplicateShortBox"
	KindInvalidDimensions Kind = "InvalidDimensions"
	KindUnknownSku        Kind = "UnknownSku"
	KindInvalidQuantity   Kind = "InvalidQuantity"
	KindUnknownCustomer   Kind = "UnknownCustomer"
	KindDuplicateInvoice  Kind = "DuplicateInvoice"
)

// ValidationError is a local validation failure. It is detected and
// reported synchronously at the point of the offending operation and
// always carries a single human-readable message.
type ValidationError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(kind Kind, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a ValidationError of the given kind.
func IsKind(err error, kind Kind) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind == kind
	}
	return false
}

// ErrRemovalInProgress rejects a box removal that arrives while another
// removal is still renumbering the box list. The caller should retry
// after the first removal settles, not queue behind it.
var ErrRemovalInProgress = errors.New("box removal already in progress")

var (
	ErrBoxNotFound  = errors.New("box not found")
	ErrLineNotFound = errors.New("product line not found")
)
