package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"move-advisor/domain"
)

func TestCalculationRepositoryMemory_SaveAndRecent(t *testing.T) {
	repo := NewCalculationRepositoryMemory()

	for i := 0; i < 5; i++ {
		err := repo.Save(domain.FinancialProfile{}, domain.CalculationResult{
			NewLoanAmount: float64(i),
		})
		require.NoError(t, err)
	}

	recent := repo.Recent(3)
	require.Len(t, recent, 3)
	assert.InDelta(t, 2, recent[0].NewLoanAmount, 0.001)
	assert.InDelta(t, 4, recent[2].NewLoanAmount, 0.001)

	all := repo.Recent(0)
	assert.Len(t, all, 5)
}

func TestCalculationRepositoryMemory_Bounded(t *testing.T) {
	repo := NewCalculationRepositoryMemory()

	for i := 0; i < maxStoredCalculations+20; i++ {
		require.NoError(t, repo.Save(domain.FinancialProfile{}, domain.CalculationResult{
			NewLoanAmount: float64(i),
		}))
	}

	all := repo.Recent(0)
	require.Len(t, all, maxStoredCalculations)
	// Oldest entries were evicted.
	assert.InDelta(t, 20, all[0].NewLoanAmount, 0.001)
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))
	got, ok := cache.Get(ctx, "key")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			key := fmt.Sprintf("key-%d", n)
			_ = cache.Set(ctx, key, "v", 0)
			_, _ = cache.Get(ctx, key)
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
