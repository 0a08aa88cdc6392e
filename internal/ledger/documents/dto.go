package documents

import (
	"encoding/json"
	"time"

	"github.com/inkbill/inkbill/internal/money"
)

// LineItemInput is a caller-supplied line. Unit price arrives as a decimal
// value and is converted to minor units at decode time.
type LineItemInput struct {
	Description string      `json:"description" validate:"required,max=500"`
	Quantity    float64     `json:"quantity" validate:"gte=0"`
	UnitPrice   money.Money `json:"unit_price"`
}

// CreateDocumentRequest creates a draft invoice or quotation. Items may be
// empty; a zero-value draft is legal.
type CreateDocumentRequest struct {
	ClientID     int64           `json:"client_id" validate:"required,gt=0"`
	Type         DocumentType    `json:"type" validate:"required,oneof=invoice quotation"`
	Name         *string         `json:"name,omitempty" validate:"omitempty,max=200"`
	IssueDate    time.Time       `json:"issue_date" validate:"required"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	Items        []LineItemInput `json:"items" validate:"dive"`
	TaxRate      *float64        `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes        *string         `json:"notes,omitempty"`
	DesignConfig json.RawMessage `json:"design_config,omitempty"`
}

// FinancialEdit mutates the money-bearing fields of a document. Accepted only
// while the document is in draft.
type FinancialEdit struct {
	Items   *[]LineItemInput `json:"items,omitempty" validate:"omitempty,dive"`
	TaxRate *float64         `json:"tax_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// OptionalDate distinguishes an absent field from an explicit null, so a due
// date can be cleared by sending null rather than omitting the key.
type OptionalDate struct {
	Set   bool
	Value *time.Time
}

func (o *OptionalDate) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

func (o OptionalDate) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// MetadataEdit mutates presentation fields; allowed in any status.
type MetadataEdit struct {
	Name         *string         `json:"name,omitempty" validate:"omitempty,max=200"`
	Notes        *string         `json:"notes,omitempty"`
	IssueDate    *time.Time      `json:"issue_date,omitempty"`
	DueDate      OptionalDate    `json:"due_date"`
	DesignConfig json.RawMessage `json:"design_config,omitempty"`
}

// UpdateDocumentRequest groups changes into explicit commands so the edit
// lock and transition rules are enforced per group rather than by inspecting
// arbitrary field maps.
type UpdateDocumentRequest struct {
	Status    *DocumentStatus `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid partially_paid void approved rejected invoiced"`
	Financial *FinancialEdit  `json:"financial,omitempty"`
	Metadata  *MetadataEdit   `json:"metadata,omitempty"`
}

// AddPaymentRequest records money received against an invoice.
type AddPaymentRequest struct {
	Amount    money.Money `json:"amount"`
	Date      time.Time   `json:"date" validate:"required"`
	Method    string      `json:"method" validate:"required,max=100"`
	Reference *string     `json:"reference,omitempty" validate:"omitempty,max=200"`
	Notes     *string     `json:"notes,omitempty"`
}
