package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/inkbill/inkbill/internal/money"
)

type countingRepo struct {
	loads int
	stats Stats
}

func (c *countingRepo) Load(ctx context.Context) (Stats, error) {
	c.loads++
	return c.stats, nil
}

func testStats() Stats {
	return Stats{
		TotalRevenue: money.FromMinorUnits(123000),
		OverdueCount: 2,
		DraftCount:   5,
		RevenueTrend: []MonthRevenue{
			{Month: "2025-05", Amount: money.FromMinorUnits(53000)},
			{Month: "2025-06", Amount: money.FromMinorUnits(70000)},
		},
	}
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestStatsCachesAcrossCalls(t *testing.T) {
	repo := &countingRepo{stats: testStats()}
	service := NewService(repo, newTestCache(t))
	ctx := context.Background()

	first, err := service.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, testStats(), first)
	require.Equal(t, 1, repo.loads)

	second, err := service.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, repo.loads, "second call must come from cache")
}

func TestRefreshInvalidatesAndRecomputes(t *testing.T) {
	repo := &countingRepo{stats: testStats()}
	service := NewService(repo, newTestCache(t))
	ctx := context.Background()

	_, err := service.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, repo.loads)

	repo.stats.DraftCount = 9
	refreshed, err := service.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, repo.loads)
	require.Equal(t, 9, refreshed.DraftCount)

	cached, err := service.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 9, cached.DraftCount)
	require.Equal(t, 2, repo.loads)
}

func TestStatsWithoutRedisDegradesToDirectLoad(t *testing.T) {
	repo := &countingRepo{stats: testStats()}
	service := NewService(repo, NewCache(nil, time.Minute))
	ctx := context.Background()

	first, err := service.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, testStats(), first)

	_, err = service.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, repo.loads, "no cache means every call loads")
}
