package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	rows map[string]json.RawMessage
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[string]json.RawMessage)}
}

func (m *memoryRepo) All(ctx context.Context) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(m.rows))
	for k, v := range m.rows {
		out[k] = v
	}
	return out, nil
}

func (m *memoryRepo) Upsert(ctx context.Context, entries map[string]json.RawMessage) error {
	for k, v := range entries {
		m.rows[k] = v
	}
	return nil
}

func TestGetReturnsDefaultsWhenEmpty(t *testing.T) {
	service := NewService(newMemoryRepo())

	got, err := service.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 15.0, got.TaxRate)
	require.Equal(t, "R", got.CurrencySymbol)
	require.Equal(t, "INV", got.InvoicePrefix)
	require.Nil(t, got.CompanyName)
}

func TestStoredValuesOverlayDefaults(t *testing.T) {
	repo := newMemoryRepo()
	repo.rows["tax_rate"] = json.RawMessage(`20`)
	repo.rows["company_name"] = json.RawMessage(`"Inkbill Studio"`)
	service := NewService(repo)

	got, err := service.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, 20.0, got.TaxRate)
	require.NotNil(t, got.CompanyName)
	require.Equal(t, "Inkbill Studio", *got.CompanyName)
	// Untouched keys keep their defaults.
	require.Equal(t, "INV", got.InvoicePrefix)
}

func TestUpdateWritesOnlyProvidedFields(t *testing.T) {
	repo := newMemoryRepo()
	service := NewService(repo)

	prefix := "BILL"
	got, err := service.Update(context.Background(), UpdateSettingsRequest{InvoicePrefix: &prefix})
	require.NoError(t, err)
	require.Equal(t, "BILL", got.InvoicePrefix)
	require.Equal(t, 15.0, got.TaxRate)

	require.Len(t, repo.rows, 1)
	require.Contains(t, repo.rows, "invoice_prefix")
}

func TestUpdateEmptyRequestIsReadOnly(t *testing.T) {
	repo := newMemoryRepo()
	service := NewService(repo)

	got, err := service.Update(context.Background(), UpdateSettingsRequest{})
	require.NoError(t, err)
	require.Equal(t, Defaults(), got)
	require.Empty(t, repo.rows)
}

func TestBillingProjection(t *testing.T) {
	repo := newMemoryRepo()
	repo.rows["tax_rate"] = json.RawMessage(`0`)
	service := NewService(repo)

	billing, err := service.Billing(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0.0, billing.TaxRate)
	require.Equal(t, "INV", billing.InvoicePrefix)
	require.Equal(t, "R", billing.CurrencySymbol)
}
