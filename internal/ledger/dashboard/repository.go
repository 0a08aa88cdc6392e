package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkbill/inkbill/internal/money"
)

// Repository computes dashboard aggregates from the document ledger.
type Repository interface {
	Load(ctx context.Context) (Stats, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the PostgreSQL-backed stats repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Load(ctx context.Context) (Stats, error) {
	var stats Stats

	var paid, partial int64
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(grand_total) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(amount_paid) FILTER (WHERE status = 'partially_paid'), 0)
		FROM documents
	`).Scan(&paid, &partial)
	if err != nil {
		return Stats{}, err
	}
	stats.TotalRevenue = money.FromMinorUnits(paid + partial)

	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM documents
		WHERE status NOT IN ('paid', 'void') AND due_date IS NOT NULL AND due_date < CURRENT_DATE
	`).Scan(&stats.OverdueCount)
	if err != nil {
		return Stats{}, err
	}

	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM documents WHERE status = 'draft'
	`).Scan(&stats.DraftCount)
	if err != nil {
		return Stats{}, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT to_char(date_trunc('month', issue_date), 'YYYY-MM') AS month,
		       SUM(grand_total)
		FROM documents
		WHERE status IN ('paid', 'partially_paid')
		  AND issue_date >= date_trunc('month', CURRENT_DATE) - INTERVAL '5 months'
		GROUP BY month
		ORDER BY month
	`)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			point  MonthRevenue
			amount int64
		)
		if err := rows.Scan(&point.Month, &amount); err != nil {
			return Stats{}, err
		}
		point.Amount = money.FromMinorUnits(amount)
		stats.RevenueTrend = append(stats.RevenueTrend, point)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	return stats, nil
}
