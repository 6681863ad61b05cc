package service

const (
	// SellingCostRate is the fixed fraction of the current home value
	// assumed lost to commission and closing costs on sale.
	SellingCostRate = 0.08

	// FallbackTaxRate and FallbackInsuranceRate are annual rates
	// against the new home price, used when no exact property detail
	// override is supplied.
	FallbackTaxRate       = 0.0125
	FallbackInsuranceRate = 0.005

	// LoanTermMonths is the fixed 30-year amortization term.
	LoanTermMonths = 360
)
