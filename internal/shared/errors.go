package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced client or document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrClientInUse indicates a client cannot be deleted while documents reference it.
	ErrClientInUse = errors.New("client has documents and cannot be deleted")
	// ErrInvalidTransition is the base error for state machine violations.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrFinalized is the base error for edits against a non-draft document.
	ErrFinalized = errors.New("document is finalized")
	// ErrInvalidPayment is the base error for payments the document cannot accept.
	ErrInvalidPayment = errors.New("invalid payment")
)

// InvalidTransitionError reports a rejected status change, naming both ends.
type InvalidTransitionError struct {
	DocType string
	From    string
	To      string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition for %s: %s -> %s", e.DocType, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// FinalizedError reports a financial edit or delete attempted outside draft.
type FinalizedError struct {
	Status string
}

func (e *FinalizedError) Error() string {
	return fmt.Sprintf("document is finalized: current status %s", e.Status)
}

func (e *FinalizedError) Unwrap() error { return ErrFinalized }

// InvalidPaymentError reports a payment against a quotation or draft.
type InvalidPaymentError struct {
	Reason string
}

func (e *InvalidPaymentError) Error() string {
	return "invalid payment: " + e.Reason
}

func (e *InvalidPaymentError) Unwrap() error { return ErrInvalidPayment }
