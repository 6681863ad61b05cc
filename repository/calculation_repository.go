package repository

import "move-advisor/domain"

// CalculationRepository records completed calculations. Storage is
// best-effort: the calculator treats a failed save as non-critical.
type CalculationRepository interface {
	Save(profile domain.FinancialProfile, result domain.CalculationResult) error
	Recent(limit int) []domain.CalculationResult
}
