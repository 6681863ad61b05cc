package service

import (
	"math"

	"go.uber.org/zap"

	"move-advisor/domain"
	"move-advisor/repository"
)

// roundToCents rounds a dollar amount to 2 decimals.
func roundToCents(value float64) float64 {
	return math.Round(value*100) / 100
}

// AmortizedPayment returns the level monthly principal-and-interest
// payment for a fully amortizing loan. monthlyRate is the periodic
// rate (annual rate / 12, as a fraction). The zero-rate branch divides
// the principal evenly across the term.
func AmortizedPayment(principal, monthlyRate float64, termMonths int) float64 {
	n := float64(termMonths)
	if monthlyRate == 0 {
		return principal / n
	}
	pow := math.Pow(1+monthlyRate, n)
	return principal * monthlyRate * pow / (pow - 1)
}

// CalculatorService derives affordability metrics from a financial
// profile. The computation itself is pure; each successful result is
// additionally recorded in the repository for later inspection, which
// is non-critical and never fails a request.
type CalculatorService struct {
	repo   repository.CalculationRepository
	logger *zap.Logger
}

// NewCalculatorService creates a CalculatorService backed by the given
// repository.
func NewCalculatorService(repo repository.CalculationRepository, logger *zap.Logger) *CalculatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorService{repo: repo, logger: logger}
}

// validate applies the input rules in a fixed order so the first
// failing rule always produces the same error for the same profile.
func validate(p domain.FinancialProfile) error {
	if p.CurrentHomeValue <= 0 {
		return domain.NewValidationError("currentHomeValue", "home value must be positive")
	}
	if p.NewHomePrice <= 0 {
		return domain.NewValidationError("newHomePrice", "new home price must be positive")
	}
	if p.NewInterestRate <= 0 {
		return domain.NewValidationError("newInterestRate", "interest rate must be positive")
	}
	if p.MonthlyGrossIncome <= 0 {
		return domain.NewValidationError("monthlyGrossIncome", "income must be positive to compute DTI")
	}
	return nil
}

// Compute validates the profile and derives the full calculation
// result. Negative sale proceeds and negative loan amounts are not
// errors: they are carried through so the caller can surface a
// warning instead of blocking the user.
func (s *CalculatorService) Compute(profile domain.FinancialProfile) (domain.CalculationResult, error) {
	if err := validate(profile); err != nil {
		return domain.CalculationResult{}, err
	}

	sellingCosts := profile.CurrentHomeValue * SellingCostRate
	proceeds := profile.CurrentHomeValue - profile.CurrentMortgageBalance - sellingCosts
	downPayment := math.Max(0, proceeds)
	newLoanAmount := profile.NewHomePrice - downPayment

	var monthlyTax, monthlyInsurance float64
	if ov := profile.PropertyDetailOverride; ov != nil {
		monthlyTax = ov.AnnualTaxes / 12
		monthlyInsurance = ov.AnnualInsurance / 12
	} else {
		monthlyTax = profile.NewHomePrice * FallbackTaxRate / 12
		monthlyInsurance = profile.NewHomePrice * FallbackInsuranceRate / 12
	}

	monthlyRate := profile.NewInterestRate / 100 / 12
	principalAndInterest := AmortizedPayment(newLoanAmount, monthlyRate, LoanTermMonths)
	newMonthlyPayment := principalAndInterest + monthlyTax + monthlyInsurance

	totalMonthlyDebt := profile.RecurringDebts.Total()
	currentDTI := (profile.CurrentMonthlyPayment + totalMonthlyDebt) / profile.MonthlyGrossIncome * 100
	newDTI := (newMonthlyPayment + totalMonthlyDebt) / profile.MonthlyGrossIncome * 100

	result := domain.CalculationResult{
		ProceedsFromSale:         roundToCents(proceeds),
		SellingCosts:             roundToCents(sellingCosts),
		DownPayment:              roundToCents(downPayment),
		NewLoanAmount:            roundToCents(newLoanAmount),
		PrincipalAndInterest:     roundToCents(principalAndInterest),
		MonthlyTax:               roundToCents(monthlyTax),
		MonthlyInsurance:         roundToCents(monthlyInsurance),
		NewMonthlyPayment:        roundToCents(newMonthlyPayment),
		TotalMonthlyDebt:         roundToCents(totalMonthlyDebt),
		CurrentDTI:               roundToCents(currentDTI),
		NewDTI:                   roundToCents(newDTI),
		MonthlyPaymentDifference: roundToCents(newMonthlyPayment - profile.CurrentMonthlyPayment),
		NegativeEquity:           proceeds < 0,
	}

	if s.repo != nil {
		if err := s.repo.Save(profile, result); err != nil {
			s.logger.Warn("failed to record calculation", zap.Error(err))
		}
	}

	return result, nil
}
