package dashboard

import "github.com/inkbill/inkbill/internal/money"

// MonthRevenue is one point of the revenue trend, keyed by issue month.
type MonthRevenue struct {
	Month  string      `json:"month"`
	Amount money.Money `json:"amount"`
}

// Stats aggregates the dashboard figures. Revenue counts fully paid grand
// totals plus the paid portion of partially paid documents.
type Stats struct {
	TotalRevenue money.Money    `json:"total_revenue"`
	OverdueCount int            `json:"overdue_count"`
	DraftCount   int            `json:"draft_count"`
	RevenueTrend []MonthRevenue `json:"revenue_trend"`
}
