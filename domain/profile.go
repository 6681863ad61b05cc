package domain

// RecurringDebts holds the user's non-housing monthly debt obligations.
type RecurringDebts struct {
	Auto       float64 `json:"auto"`
	Student    float64 `json:"student"`
	CreditCard float64 `json:"creditCard"`
	Other      float64 `json:"other"`
}

// Total sums all recurring debt categories.
func (d RecurringDebts) Total() float64 {
	return d.Auto + d.Student + d.CreditCard + d.Other
}

// PropertyDetail is an exact annual tax/insurance figure for the new
// home. When present on a profile it replaces the heuristic estimates.
type PropertyDetail struct {
	AnnualTaxes     float64 `json:"annualTaxes"`
	AnnualInsurance float64 `json:"annualInsurance"`
}

// FinancialProfile is the full set of user-entered facts a calculation
// runs on. A profile is built fresh for every calculation request.
type FinancialProfile struct {
	CurrentHomeValue       float64         `json:"currentHomeValue"`
	CurrentMortgageBalance float64         `json:"currentMortgageBalance"`
	CurrentMonthlyPayment  float64         `json:"currentMonthlyPayment"`
	NewHomePrice           float64         `json:"newHomePrice"`
	NewInterestRate        float64         `json:"newInterestRate"` // annual, percent
	MonthlyGrossIncome     float64         `json:"monthlyGrossIncome"`
	RecurringDebts         RecurringDebts  `json:"recurringDebts"`
	PropertyDetailOverride *PropertyDetail `json:"propertyDetailOverride,omitempty"`
}
