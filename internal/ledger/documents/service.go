package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkbill/inkbill/internal/ledger/clients"
	"github.com/inkbill/inkbill/internal/ledger/settings"
	"github.com/inkbill/inkbill/internal/money"
	"github.com/inkbill/inkbill/internal/shared"
)

// quotePrefix is fixed; the invoice prefix is configurable via settings.
const quotePrefix = "QT"

// SettingsPort resolves the global billing defaults consulted at create time.
type SettingsPort interface {
	Billing(ctx context.Context) (settings.Billing, error)
}

// Service is the document lifecycle engine. Every mutation runs as a single
// transaction: it loads current state, validates against the state machine
// and edit-lock rules, recomputes totals and persists atomically.
type Service struct {
	repo       Repository
	clientRepo clients.Repository
	settings   SettingsPort
}

func NewService(repo Repository, clientRepo clients.Repository, settingsPort SettingsPort) *Service {
	return &Service{
		repo:       repo,
		clientRepo: clientRepo,
		settings:   settingsPort,
	}
}

// Create assigns a number, computes totals and persists the draft document
// with its items in one transaction. An empty item list is legal.
func (s *Service) Create(ctx context.Context, req CreateDocumentRequest) (*Document, error) {
	if _, err := s.clientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, fmt.Errorf("verify client: %w", err)
	}

	billing, err := s.settings.Billing(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve billing defaults: %w", err)
	}

	taxRate := billing.TaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	totals := ComputeTotals(req.Items, taxRate)

	name := defaultName(req.Type)
	if req.Name != nil && *req.Name != "" {
		name = *req.Name
	}

	prefix := billing.InvoicePrefix
	if req.Type == TypeQuotation {
		prefix = quotePrefix
	}

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		number, err := repo.NextNumber(ctx, req.Type, prefix)
		if err != nil {
			return fmt.Errorf("next document number: %w", err)
		}

		doc := Document{
			ClientID:     req.ClientID,
			Number:       number,
			Name:         name,
			Type:         req.Type,
			Status:       StatusDraft,
			IssueDate:    req.IssueDate,
			DueDate:      req.DueDate,
			Notes:        req.Notes,
			TaxRate:      taxRate,
			Subtotal:     totals.Subtotal,
			TaxTotal:     totals.TaxTotal,
			GrandTotal:   totals.GrandTotal,
			AmountPaid:   0,
			BalanceDue:   totals.GrandTotal,
			DesignConfig: req.DesignConfig,
			CreatedAt:    time.Now().UTC(),
		}

		id, err = repo.Create(ctx, doc)
		if err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		return insertItems(ctx, repo, id, req.Items)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

// Update applies a status change, a financial edit and/or a metadata edit.
// Status changes go through the state machine; financial edits require draft
// status and trigger a full totals recomputation with wholesale item
// replacement. The load, the validation and the writes all run inside one
// transaction so a concurrent commit cannot slip past the checks.
func (s *Service) Update(ctx context.Context, id int64, req UpdateDocumentRequest) (*Document, error) {
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		current, err := repo.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get document: %w", err)
		}

		if req.Status != nil {
			if err := ValidateTransition(current.Type, current.Status, *req.Status); err != nil {
				return err
			}
		}

		touchesFinancials := req.Financial != nil && (req.Financial.Items != nil || req.Financial.TaxRate != nil)
		if touchesFinancials && current.Status != StatusDraft {
			return &shared.FinalizedError{Status: string(current.Status)}
		}

		var fields FieldUpdates

		if req.Status != nil && *req.Status != current.Status {
			fields.Status = req.Status
		}

		if touchesFinancials {
			items := itemInputs(current.Items)
			if req.Financial.Items != nil {
				items = *req.Financial.Items
				if err := repo.DeleteItems(ctx, id); err != nil {
					return fmt.Errorf("delete items: %w", err)
				}
				if err := insertItems(ctx, repo, id, items); err != nil {
					return err
				}
			}
			taxRate := current.TaxRate
			if req.Financial.TaxRate != nil {
				taxRate = *req.Financial.TaxRate
				fields.TaxRate = req.Financial.TaxRate
			}

			totals := ComputeTotals(items, taxRate)
			balance := money.Max(0, totals.GrandTotal.Sub(current.AmountPaid))
			fields.Subtotal = &totals.Subtotal
			fields.TaxTotal = &totals.TaxTotal
			fields.GrandTotal = &totals.GrandTotal
			fields.BalanceDue = &balance
		}

		if req.Metadata != nil {
			fields.Name = req.Metadata.Name
			fields.Notes = req.Metadata.Notes
			fields.IssueDate = req.Metadata.IssueDate
			if req.Metadata.DueDate.Set {
				if req.Metadata.DueDate.Value != nil {
					fields.DueDate = req.Metadata.DueDate.Value
				} else {
					fields.ClearDueDate = true
				}
			}
			fields.DesignConfig = req.Metadata.DesignConfig
		}

		return repo.Update(ctx, id, fields)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

// AddPayment records money received against a sent invoice. Payments are
// append-only; amount_paid only ever increases. An overpayment is recorded
// verbatim while the balance clamps to zero.
func (s *Service) AddPayment(ctx context.Context, id int64, req AddPaymentRequest) (*Document, error) {
	if req.Amount <= 0 {
		return nil, &shared.InvalidPaymentError{Reason: "amount must be positive"}
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		current, err := repo.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get document: %w", err)
		}
		if current.Type == TypeQuotation {
			return &shared.InvalidPaymentError{Reason: "quotations cannot receive payments"}
		}
		if current.Status == StatusDraft {
			return &shared.InvalidPaymentError{Reason: "document must be sent before recording a payment"}
		}

		reference := req.Reference
		if reference == nil {
			generated := "RCPT-" + uuid.NewString()
			reference = &generated
		}

		payment := Payment{
			DocumentID: id,
			Amount:     req.Amount,
			Date:       req.Date,
			Method:     req.Method,
			Reference:  reference,
			Notes:      req.Notes,
			CreatedAt:  time.Now().UTC(),
		}
		if _, err := repo.InsertPayment(ctx, payment); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		newPaid := current.AmountPaid.Add(req.Amount)
		newBalance := money.Max(0, current.GrandTotal.Sub(newPaid))
		status := StatusPartiallyPaid
		if newBalance.IsZero() {
			status = StatusPaid
		}

		return repo.ApplyPayment(ctx, id, newPaid, newBalance, status)
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, id)
}

// Delete removes a document and, by cascade, its items and payments. Only
// draft and void documents may be deleted; anything sent or paid must be
// voided instead. The status check and the delete share one transaction.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		current, err := repo.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get document: %w", err)
		}
		if current.Status != StatusDraft && current.Status != StatusVoid {
			return &shared.FinalizedError{Status: string(current.Status)}
		}
		return repo.Delete(ctx, id)
	})
}

// Get returns a document with its items and payment history.
func (s *Service) Get(ctx context.Context, id int64) (*Document, error) {
	return s.repo.Get(ctx, id)
}

// List returns all documents newest-first with client names joined.
func (s *Service) List(ctx context.Context) ([]DocumentWithClient, error) {
	return s.repo.List(ctx)
}

func defaultName(t DocumentType) string {
	if t == TypeQuotation {
		return "New Quote"
	}
	return "New Invoice"
}

func insertItems(ctx context.Context, repo Repository, documentID int64, items []LineItemInput) error {
	for i, input := range items {
		item := LineItem{
			DocumentID:  documentID,
			Position:    i + 1,
			Description: input.Description,
			Quantity:    input.Quantity,
			UnitPrice:   input.UnitPrice,
			Total:       input.UnitPrice.MulFloat(input.Quantity),
		}
		if _, err := repo.InsertItem(ctx, item); err != nil {
			return fmt.Errorf("insert line item: %w", err)
		}
	}
	return nil
}

func itemInputs(items []LineItem) []LineItemInput {
	out := make([]LineItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, LineItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return out
}
