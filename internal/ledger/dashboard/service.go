package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Service serves dashboard statistics through the cache. Concurrent requests
// for the same figures collapse into a single recomputation.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Stats returns the cached dashboard aggregates, computing them on a miss.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	value, err, _ := s.group.Do("stats", func() (interface{}, error) {
		key, err := s.cache.BuildKey(ctx, "dashboard", "stats")
		if err != nil {
			return Stats{}, err
		}
		var stats Stats
		if err := s.cache.FetchJSON(ctx, key, &stats, func(ctx context.Context) (interface{}, error) {
			return s.repo.Load(ctx)
		}); err != nil {
			return Stats{}, fmt.Errorf("load dashboard stats: %w", err)
		}
		return stats, nil
	})
	if err != nil {
		return Stats{}, err
	}
	return value.(Stats), nil
}

// Refresh discards cached figures and recomputes them. Used by the background
// rewarm job so reads stay warm between writes.
func (s *Service) Refresh(ctx context.Context) (Stats, error) {
	if err := s.cache.Bump(ctx); err != nil {
		return Stats{}, fmt.Errorf("bump stats cache: %w", err)
	}
	return s.Stats(ctx)
}
