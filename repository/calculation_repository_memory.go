package repository

import (
	"sync"

	"move-advisor/domain"
)

// maxStoredCalculations bounds the in-memory history.
const maxStoredCalculations = 100

// CalculationRepositoryMemory is an in-memory, process-lifetime
// implementation of CalculationRepository. Nothing is persisted.
type CalculationRepositoryMemory struct {
	mu      sync.Mutex
	results []domain.CalculationResult
}

// NewCalculationRepositoryMemory creates an empty in-memory repository.
func NewCalculationRepositoryMemory() *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		results: []domain.CalculationResult{},
	}
}

// Save appends the result, evicting the oldest entry once full.
func (r *CalculationRepositoryMemory) Save(
	profile domain.FinancialProfile,
	result domain.CalculationResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results = append(r.results, result)
	if len(r.results) > maxStoredCalculations {
		r.results = r.results[len(r.results)-maxStoredCalculations:]
	}
	return nil
}

// Recent returns up to limit of the most recent results, newest last.
func (r *CalculationRepositoryMemory) Recent(limit int) []domain.CalculationResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 || limit > len(r.results) {
		limit = len(r.results)
	}
	out := make([]domain.CalculationResult, limit)
	copy(out, r.results[len(r.results)-limit:])
	return out
}
