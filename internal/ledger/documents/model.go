package documents

import (
	"encoding/json"
	"time"

	"github.com/inkbill/inkbill/internal/money"
)

// DocumentType discriminates invoices from quotations.
type DocumentType string

const (
	TypeInvoice   DocumentType = "invoice"
	TypeQuotation DocumentType = "quotation"
)

// DocumentStatus enumerates lifecycle states. Approved, Rejected and Invoiced
// apply to quotations only.
type DocumentStatus string

const (
	StatusDraft         DocumentStatus = "draft"
	StatusSent          DocumentStatus = "sent"
	StatusPaid          DocumentStatus = "paid"
	StatusPartiallyPaid DocumentStatus = "partially_paid"
	StatusVoid          DocumentStatus = "void"
	StatusApproved      DocumentStatus = "approved"
	StatusRejected      DocumentStatus = "rejected"
	StatusInvoiced      DocumentStatus = "invoiced"
)

// quotationOnly reports whether a status exists only in the quotation workflow.
func quotationOnly(s DocumentStatus) bool {
	return s == StatusApproved || s == StatusRejected || s == StatusInvoiced
}

// Document is a billing document header. Monetary totals are derived columns
// owned by the lifecycle engine; they are recomputed from items and tax rate,
// never accepted from callers.
type Document struct {
	ID           int64           `json:"id" db:"id"`
	ClientID     int64           `json:"client_id" db:"client_id"`
	Number       string          `json:"number" db:"number"`
	Name         string          `json:"name" db:"name"`
	Type         DocumentType    `json:"type" db:"type"`
	Status       DocumentStatus  `json:"status" db:"status"`
	IssueDate    time.Time       `json:"issue_date" db:"issue_date"`
	DueDate      *time.Time      `json:"due_date,omitempty" db:"due_date"`
	Notes        *string         `json:"notes,omitempty" db:"notes"`
	TaxRate      float64         `json:"tax_rate" db:"tax_rate"`
	Subtotal     money.Money     `json:"subtotal" db:"subtotal"`
	TaxTotal     money.Money     `json:"tax_total" db:"tax_total"`
	GrandTotal   money.Money     `json:"grand_total" db:"grand_total"`
	AmountPaid   money.Money     `json:"amount_paid" db:"amount_paid"`
	BalanceDue   money.Money     `json:"balance_due" db:"balance_due"`
	DesignConfig json.RawMessage `json:"design_config,omitempty" db:"design_config"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`

	Items    []LineItem `json:"items,omitempty" db:"-"`
	Payments []Payment  `json:"payments,omitempty" db:"-"`
}

// LineItem is one billed line. Total is rounded to a whole minor unit per
// line before summation so the subtotal is reproducible regardless of order.
type LineItem struct {
	ID          int64       `json:"id" db:"id"`
	DocumentID  int64       `json:"document_id" db:"document_id"`
	Position    int         `json:"position" db:"position"`
	Description string      `json:"description" db:"description"`
	Quantity    float64     `json:"quantity" db:"quantity"`
	UnitPrice   money.Money `json:"unit_price" db:"unit_price"`
	Total       money.Money `json:"total" db:"total"`
}

// Payment is an append-only record of money received against an invoice.
type Payment struct {
	ID         int64       `json:"id" db:"id"`
	DocumentID int64       `json:"document_id" db:"document_id"`
	Amount     money.Money `json:"amount" db:"amount"`
	Date       time.Time   `json:"date" db:"date"`
	Method     string      `json:"method" db:"method"`
	Reference  *string     `json:"reference,omitempty" db:"reference"`
	Notes      *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

// DocumentWithClient joins the client display name for list views.
type DocumentWithClient struct {
	Document
	ClientName string `json:"client_name" db:"client_name"`
}
