package clients

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkbill/inkbill/internal/shared"
)

// Repository defines client persistence.
type Repository interface {
	Create(ctx context.Context, client Client) (int64, error)
	Update(ctx context.Context, id int64, fields FieldUpdates) error
	Get(ctx context.Context, id int64) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Delete(ctx context.Context, id int64) error
}

// FieldUpdates names the mutable client columns.
type FieldUpdates struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	TaxID   *string
}

// foreignKeyViolation is the PostgreSQL error code raised when a delete is
// blocked by the documents FK RESTRICT constraint.
const foreignKeyViolation = "23503"

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL-backed client repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, client Client) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO clients (name, email, phone, address, tax_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, client.Name, client.Email, client.Phone, client.Address, client.TaxID, client.CreatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, fields FieldUpdates) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clients SET
			name = COALESCE($1, name),
			email = COALESCE($2, email),
			phone = COALESCE($3, phone),
			address = COALESCE($4, address),
			tax_id = COALESCE($5, tax_id)
		WHERE id = $6
	`, fields.Name, fields.Email, fields.Phone, fields.Address, fields.TaxID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Client, error) {
	var c Client
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, email, phone, address, tax_id, created_at
		FROM clients WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.TaxID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, address, tax_id, created_at
		FROM clients ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.TaxID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return shared.ErrClientInUse
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
