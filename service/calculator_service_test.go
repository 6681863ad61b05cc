package service

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"move-advisor/domain"
)

type mockCalculationRepo struct {
	saveCalled bool
	forceError bool
}

func (m *mockCalculationRepo) Save(
	profile domain.FinancialProfile,
	result domain.CalculationResult,
) error {
	m.saveCalled = true
	if m.forceError {
		return errors.New("save error")
	}
	return nil
}

func (m *mockCalculationRepo) Recent(limit int) []domain.CalculationResult {
	return nil
}

func baseProfile() domain.FinancialProfile {
	return domain.FinancialProfile{
		CurrentHomeValue:       500000,
		CurrentMortgageBalance: 250000,
		CurrentMonthlyPayment:  2500,
		NewHomePrice:           750000,
		NewInterestRate:        6.5,
		MonthlyGrossIncome:     10000,
		RecurringDebts: domain.RecurringDebts{
			Auto:    400,
			Student: 300,
		},
	}
}

func TestCompute_EquityAndLoanAmount(t *testing.T) {
	svc := NewCalculatorService(&mockCalculationRepo{}, nil)

	result, err := svc.Compute(baseProfile())
	require.NoError(t, err)

	assert.InDelta(t, 40000, result.SellingCosts, 0.01)
	assert.InDelta(t, 210000, result.ProceedsFromSale, 0.01)
	assert.InDelta(t, 210000, result.DownPayment, 0.01)
	assert.InDelta(t, 540000, result.NewLoanAmount, 0.01)
	assert.False(t, result.NegativeEquity)
}

func TestCompute_MonthlyPaymentBreakdown(t *testing.T) {
	svc := NewCalculatorService(&mockCalculationRepo{}, nil)

	result, err := svc.Compute(baseProfile())
	require.NoError(t, err)

	// 540000 at 6.5% over 360 months.
	assert.InDelta(t, 3413.17, result.PrincipalAndInterest, 0.01)
	// Heuristic fallback: 1.25% and 0.5% of price, annually.
	assert.InDelta(t, 781.25, result.MonthlyTax, 0.01)
	assert.InDelta(t, 312.50, result.MonthlyInsurance, 0.01)
	assert.InDelta(t, 4506.92, result.NewMonthlyPayment, 0.01)
}

func TestCompute_DTIRatios(t *testing.T) {
	svc := NewCalculatorService(&mockCalculationRepo{}, nil)

	result, err := svc.Compute(baseProfile())
	require.NoError(t, err)

	assert.InDelta(t, 700, result.TotalMonthlyDebt, 0.01)
	// (2500 + 700) / 10000 * 100
	assert.InDelta(t, 32.00, result.CurrentDTI, 0.01)
	// (4506.92 + 700) / 10000 * 100
	assert.InDelta(t, 52.07, result.NewDTI, 0.01)
	assert.InDelta(t, 2006.92, result.MonthlyPaymentDifference, 0.01)

	assert.GreaterOrEqual(t, result.CurrentDTI, 0.0)
	assert.GreaterOrEqual(t, result.NewDTI, 0.0)
}

func TestCompute_NegativeEquityIsWarningNotError(t *testing.T) {
	svc := NewCalculatorService(&mockCalculationRepo{}, nil)

	profile := baseProfile()
	profile.CurrentHomeValue = 100000
	profile.CurrentMortgageBalance = 200000

	result, err := svc.Compute(profile)
	require.NoError(t, err)

	assert.InDelta(t, 8000, result.SellingCosts, 0.01)
	assert.InDelta(t, -108000, result.ProceedsFromSale, 0.01)
	assert.InDelta(t, 0, result.DownPayment, 0.01)
	// Down payment clamps at zero, so the full price is financed.
	assert.InDelta(t, profile.NewHomePrice, result.NewLoanAmount, 0.01)
	assert.True(t, result.NegativeEquity)
}

func TestCompute_ValidationRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.FinancialProfile)
		message string
	}{
		{
			name:    "zero home value",
			mutate:  func(p *domain.FinancialProfile) { p.CurrentHomeValue = 0 },
			message: "home value must be positive",
		},
		{
			name:    "negative new price",
			mutate:  func(p *domain.FinancialProfile) { p.NewHomePrice = -1 },
			message: "new home price must be positive",
		},
		{
			name:    "zero rate",
			mutate:  func(p *domain.FinancialProfile) { p.NewInterestRate = 0 },
			message: "interest rate must be positive",
		},
		{
			name:    "zero income",
			mutate:  func(p *domain.FinancialProfile) { p.MonthlyGrossIncome = 0 },
			message: "income must be positive to compute DTI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockCalculationRepo{}
			svc := NewCalculatorService(repo, nil)

			profile := baseProfile()
			tt.mutate(&profile)

			_, err := svc.Compute(profile)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)
			assert.False(t, repo.saveCalled, "repository must not be touched on validation failure")
		})
	}
}

func TestCompute_ValidationOrderIsFixed(t *testing.T) {
	svc := NewCalculatorService(&mockCalculationRepo{}, nil)

	// Everything invalid at once: the home value rule must win.
	profile := domain.FinancialProfile{}
	_, err := svc.Compute(profile)
	require.Error(t, err)
	assert.Equal(t, "home value must be positive", err.Error())
}

func TestCompute_PropertyDetailOverride(t *testing.T) {
	svc := NewCalculatorService(&mockCalculationRepo{}, nil)

	profile := baseProfile()
	profile.PropertyDetailOverride = &domain.PropertyDetail{
		AnnualTaxes:     6000,
		AnnualInsurance: 1200,
	}

	result, err := svc.Compute(profile)
	require.NoError(t, err)

	assert.InDelta(t, 500, result.MonthlyTax, 0.001)
	assert.InDelta(t, 100, result.MonthlyInsurance, 0.001)
}

func TestCompute_Deterministic(t *testing.T) {
	svc := NewCalculatorService(&mockCalculationRepo{}, nil)
	profile := baseProfile()

	first, err := svc.Compute(profile)
	require.NoError(t, err)
	second, err := svc.Compute(profile)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompute_NearZeroRateStaysFinite(t *testing.T) {
	svc := NewCalculatorService(&mockCalculationRepo{}, nil)

	profile := baseProfile()
	profile.NewInterestRate = 0.0001

	result, err := svc.Compute(profile)
	require.NoError(t, err)

	assert.False(t, math.IsNaN(result.PrincipalAndInterest))
	assert.False(t, math.IsInf(result.PrincipalAndInterest, 0))
	// At a vanishing rate the payment approaches straight division.
	assert.InDelta(t, result.NewLoanAmount/360, result.PrincipalAndInterest, 1.0)
}

func TestCompute_DownPaymentExceedsPrice(t *testing.T) {
	svc := NewCalculatorService(&mockCalculationRepo{}, nil)

	// Proceeds larger than the new price: the loan amount goes
	// negative and is carried through the amortization unmodified.
	profile := baseProfile()
	profile.CurrentHomeValue = 2000000
	profile.CurrentMortgageBalance = 0
	profile.NewHomePrice = 500000

	result, err := svc.Compute(profile)
	require.NoError(t, err)

	assert.Less(t, result.NewLoanAmount, 0.0)
	assert.Less(t, result.PrincipalAndInterest, 0.0)
}

func TestAmortizedPayment_ZeroRateBranch(t *testing.T) {
	got := AmortizedPayment(540000, 0, 360)
	assert.InDelta(t, 540000.0/360.0, got, 0.0001)
}

func TestAmortizedPayment_StandardRate(t *testing.T) {
	monthlyRate := 6.5 / 100 / 12
	got := AmortizedPayment(540000, monthlyRate, 360)
	assert.InDelta(t, 3413.17, got, 0.01)
}

func TestCompute_SaveFailureDoesNotFailRequest(t *testing.T) {
	repo := &mockCalculationRepo{forceError: true}
	svc := NewCalculatorService(repo, nil)

	_, err := svc.Compute(baseProfile())
	require.NoError(t, err)
	assert.True(t, repo.saveCalled)
}
