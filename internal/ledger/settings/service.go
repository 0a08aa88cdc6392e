package settings

import (
	"context"
	"encoding/json"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the stored settings overlaid on the defaults, so missing keys
// always resolve to a usable value.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	out := Defaults()

	rows, err := s.repo.All(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if len(rows) == 0 {
		return out, nil
	}

	blob, err := json.Marshal(rows)
	if err != nil {
		return Settings{}, fmt.Errorf("merge settings: %w", err)
	}
	if err := json.Unmarshal(blob, &out); err != nil {
		return Settings{}, fmt.Errorf("merge settings: %w", err)
	}
	return out, nil
}

// Update persists the non-nil fields and returns the merged result.
func (s *Service) Update(ctx context.Context, req UpdateSettingsRequest) (Settings, error) {
	blob, err := json.Marshal(req)
	if err != nil {
		return Settings{}, fmt.Errorf("encode settings: %w", err)
	}

	entries := make(map[string]json.RawMessage)
	if err := json.Unmarshal(blob, &entries); err != nil {
		return Settings{}, fmt.Errorf("encode settings: %w", err)
	}
	if len(entries) == 0 {
		return s.Get(ctx)
	}

	if err := s.repo.Upsert(ctx, entries); err != nil {
		return Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return s.Get(ctx)
}

// Billing resolves the defaults the document lifecycle engine consults.
func (s *Service) Billing(ctx context.Context) (Billing, error) {
	all, err := s.Get(ctx)
	if err != nil {
		return Billing{}, err
	}
	return Billing{
		TaxRate:        all.TaxRate,
		InvoicePrefix:  all.InvoicePrefix,
		CurrencySymbol: all.CurrencySymbol,
	}, nil
}
