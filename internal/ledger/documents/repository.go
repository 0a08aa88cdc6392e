package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkbill/inkbill/internal/money"
	"github.com/inkbill/inkbill/internal/platform/db"
	"github.com/inkbill/inkbill/internal/shared"
)

// Repository defines persistence for documents, their items and payments.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	NextNumber(ctx context.Context, docType DocumentType, prefix string) (string, error)
	Create(ctx context.Context, doc Document) (int64, error)
	InsertItem(ctx context.Context, item LineItem) (int64, error)
	DeleteItems(ctx context.Context, documentID int64) error
	InsertPayment(ctx context.Context, payment Payment) (int64, error)
	ApplyPayment(ctx context.Context, id int64, amountPaid, balanceDue money.Money, status DocumentStatus) error
	Update(ctx context.Context, id int64, fields FieldUpdates) error
	Get(ctx context.Context, id int64) (*Document, error)
	List(ctx context.Context) ([]DocumentWithClient, error)
	Delete(ctx context.Context, id int64) error
}

// FieldUpdates names every column the engine may rewrite on an existing
// document. Derived totals are set exclusively by the service.
type FieldUpdates struct {
	Status       *DocumentStatus
	Name         *string
	Notes        *string
	IssueDate    *time.Time
	DueDate      *time.Time
	ClearDueDate bool
	TaxRate      *float64
	Subtotal     *money.Money
	TaxTotal     *money.Money
	GrandTotal   *money.Money
	BalanceDue   *money.Money
	DesignConfig json.RawMessage
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL-backed document repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

// NextNumber issues the next gapless sequence value for a document type and
// formats it as "{prefix}-{seq zero-padded to 4}". The upsert takes a row
// lock, so concurrent creations serialize; it must run inside the same
// transaction as the document insert.
func (r *repository) NextNumber(ctx context.Context, docType DocumentType, prefix string) (string, error) {
	var seq int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_sequences (doc_type, seq)
		VALUES ($1, 1)
		ON CONFLICT (doc_type)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq
	`, string(docType)).Scan(&seq)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d", prefix, seq), nil
}

func (r *repository) Create(ctx context.Context, doc Document) (int64, error) {
	design := doc.DesignConfig
	if len(design) == 0 {
		design = json.RawMessage(`{}`)
	}
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO documents (
			client_id, number, name, type, status, issue_date, due_date, notes,
			tax_rate, subtotal, tax_total, grand_total, amount_paid, balance_due,
			design_config, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`,
		doc.ClientID, doc.Number, doc.Name, string(doc.Type), string(doc.Status),
		doc.IssueDate, doc.DueDate, doc.Notes, doc.TaxRate,
		doc.Subtotal.MinorUnits(), doc.TaxTotal.MinorUnits(), doc.GrandTotal.MinorUnits(),
		doc.AmountPaid.MinorUnits(), doc.BalanceDue.MinorUnits(),
		design, doc.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) InsertItem(ctx context.Context, item LineItem) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO document_items (document_id, position, description, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, item.DocumentID, item.Position, item.Description, item.Quantity,
		item.UnitPrice.MinorUnits(), item.Total.MinorUnits(),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) DeleteItems(ctx context.Context, documentID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM document_items WHERE document_id = $1`, documentID)
	return err
}

func (r *repository) InsertPayment(ctx context.Context, payment Payment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO payments (document_id, amount, date, method, reference, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, payment.DocumentID, payment.Amount.MinorUnits(), payment.Date,
		payment.Method, payment.Reference, payment.Notes, payment.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) ApplyPayment(ctx context.Context, id int64, amountPaid, balanceDue money.Money, status DocumentStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE documents SET amount_paid = $1, balance_due = $2, status = $3 WHERE id = $4
	`, amountPaid.MinorUnits(), balanceDue.MinorUnits(), string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Update(ctx context.Context, id int64, fields FieldUpdates) error {
	sets := make([]string, 0, 11)
	args := make([]any, 0, 12)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if fields.Status != nil {
		add("status", string(*fields.Status))
	}
	if fields.Name != nil {
		add("name", *fields.Name)
	}
	if fields.Notes != nil {
		add("notes", *fields.Notes)
	}
	if fields.IssueDate != nil {
		add("issue_date", *fields.IssueDate)
	}
	if fields.ClearDueDate {
		add("due_date", nil)
	} else if fields.DueDate != nil {
		add("due_date", *fields.DueDate)
	}
	if fields.TaxRate != nil {
		add("tax_rate", *fields.TaxRate)
	}
	if fields.Subtotal != nil {
		add("subtotal", fields.Subtotal.MinorUnits())
	}
	if fields.TaxTotal != nil {
		add("tax_total", fields.TaxTotal.MinorUnits())
	}
	if fields.GrandTotal != nil {
		add("grand_total", fields.GrandTotal.MinorUnits())
	}
	if fields.BalanceDue != nil {
		add("balance_due", fields.BalanceDue.MinorUnits())
	}
	if len(fields.DesignConfig) > 0 {
		add("design_config", fields.DesignConfig)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE documents SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

const documentColumns = `
	id, client_id, number, name, type, status, issue_date, due_date, notes,
	tax_rate, subtotal, tax_total, grand_total, amount_paid, balance_due,
	design_config, created_at`

func (r *repository) Get(ctx context.Context, id int64) (*Document, error) {
	row := r.db.QueryRow(ctx, `SELECT`+documentColumns+` FROM documents WHERE id = $1`, id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Items = items

	payments, err := r.listPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Payments = payments

	return doc, nil
}

func (r *repository) List(ctx context.Context) ([]DocumentWithClient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT d.id, d.client_id, d.number, d.name, d.type, d.status, d.issue_date,
		       d.due_date, d.notes, d.tax_rate, d.subtotal, d.tax_total, d.grand_total,
		       d.amount_paid, d.balance_due, d.design_config, d.created_at, c.name AS client_name
		FROM documents d
		LEFT JOIN clients c ON d.client_id = c.id
		ORDER BY d.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DocumentWithClient
	for rows.Next() {
		var (
			dwc      DocumentWithClient
			docType  string
			status   string
			subtotal, taxTotal, grandTotal, amountPaid, balanceDue int64
			design   []byte
		)
		if err := rows.Scan(
			&dwc.ID, &dwc.ClientID, &dwc.Number, &dwc.Name, &docType, &status,
			&dwc.IssueDate, &dwc.DueDate, &dwc.Notes, &dwc.TaxRate,
			&subtotal, &taxTotal, &grandTotal, &amountPaid, &balanceDue,
			&design, &dwc.CreatedAt, &dwc.ClientName,
		); err != nil {
			return nil, err
		}
		dwc.Type = DocumentType(docType)
		dwc.Status = DocumentStatus(status)
		dwc.Subtotal = money.FromMinorUnits(subtotal)
		dwc.TaxTotal = money.FromMinorUnits(taxTotal)
		dwc.GrandTotal = money.FromMinorUnits(grandTotal)
		dwc.AmountPaid = money.FromMinorUnits(amountPaid)
		dwc.BalanceDue = money.FromMinorUnits(balanceDue)
		dwc.DesignConfig = json.RawMessage(design)
		out = append(out, dwc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) listItems(ctx context.Context, documentID int64) ([]LineItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, document_id, position, description, quantity, unit_price, total
		FROM document_items WHERE document_id = $1 ORDER BY position
	`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var (
			item      LineItem
			unitPrice int64
			total     int64
		)
		if err := rows.Scan(&item.ID, &item.DocumentID, &item.Position, &item.Description, &item.Quantity, &unitPrice, &total); err != nil {
			return nil, err
		}
		item.UnitPrice = money.FromMinorUnits(unitPrice)
		item.Total = money.FromMinorUnits(total)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) listPayments(ctx context.Context, documentID int64) ([]Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, document_id, amount, date, method, reference, notes, created_at
		FROM payments WHERE document_id = $1 ORDER BY created_at, id
	`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var (
			p      Payment
			amount int64
		)
		if err := rows.Scan(&p.ID, &p.DocumentID, &amount, &p.Date, &p.Method, &p.Reference, &p.Notes, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Amount = money.FromMinorUnits(amount)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func scanDocument(row pgx.Row) (*Document, error) {
	var (
		doc      Document
		docType  string
		status   string
		subtotal, taxTotal, grandTotal, amountPaid, balanceDue int64
		design   []byte
	)
	if err := row.Scan(
		&doc.ID, &doc.ClientID, &doc.Number, &doc.Name, &docType, &status,
		&doc.IssueDate, &doc.DueDate, &doc.Notes, &doc.TaxRate,
		&subtotal, &taxTotal, &grandTotal, &amountPaid, &balanceDue,
		&design, &doc.CreatedAt,
	); err != nil {
		return nil, err
	}
	doc.Type = DocumentType(docType)
	doc.Status = DocumentStatus(status)
	doc.Subtotal = money.FromMinorUnits(subtotal)
	doc.TaxTotal = money.FromMinorUnits(taxTotal)
	doc.GrandTotal = money.FromMinorUnits(grandTotal)
	doc.AmountPaid = money.FromMinorUnits(amountPaid)
	doc.BalanceDue = money.FromMinorUnits(balanceDue)
	doc.DesignConfig = json.RawMessage(design)
	return &doc, nil
}
