package domain

// Status classifies a result figure for presentation.
type Status string

const (
	StatusFavorable Status = "favorable"
	StatusCaution   Status = "caution"
	StatusAdverse   Status = "adverse"
)

// DTIWarningThreshold is the conventional lending ceiling for the new
// debt-to-income ratio, in percent.
const DTIWarningThreshold = 43.0

// CalculationResult holds every derived figure from one calculation.
// Results are recomputed from scratch on each request and never merged.
type CalculationResult struct {
	ProceedsFromSale         float64 `json:"proceedsFromSale"`
	SellingCosts             float64 `json:"sellingCosts"`
	DownPayment              float64 `json:"downPayment"`
	NewLoanAmount            float64 `json:"newLoanAmount"`
	PrincipalAndInterest     float64 `json:"principalAndInterest"`
	MonthlyTax               float64 `json:"monthlyTax"`
	MonthlyInsurance         float64 `json:"monthlyInsurance"`
	NewMonthlyPayment        float64 `json:"newMonthlyPayment"`
	TotalMonthlyDebt         float64 `json:"totalMonthlyDebt"`
	CurrentDTI               float64 `json:"currentDTI"`
	NewDTI                   float64 `json:"newDTI"`
	MonthlyPaymentDifference float64 `json:"monthlyPaymentDifference"`

	// NegativeEquity is a soft warning: the sale does not cover the
	// mortgage balance plus selling costs. The result is still valid.
	NegativeEquity bool `json:"negativeEquity"`
}

// PaymentChangeStatus classifies the monthly payment delta: any
// increase is adverse, a decrease or no change is favorable.
func (r CalculationResult) PaymentChangeStatus() Status {
	if r.MonthlyPaymentDifference > 0 {
		return StatusAdverse
	}
	return StatusFavorable
}

// DTIStatus classifies the new debt-to-income ratio against the
// lending threshold and against the user's current ratio.
func (r CalculationResult) DTIStatus() Status {
	if r.NewDTI > DTIWarningThreshold {
		return StatusAdverse
	}
	if r.NewDTI > r.CurrentDTI {
		return StatusCaution
	}
	return StatusFavorable
}
