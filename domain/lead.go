package domain

// Lead is a contact capture forwarded to the marketing webhook along
// with a plain-text summary of the calculation.
type Lead struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Summary string `json:"summary"`
}

// MarketEstimate is the structured property estimate returned by the
// valuation service for an address and proposed price.
type MarketEstimate struct {
	EstimatedTaxes     float64 `json:"estimatedTaxes"`
	EstimatedInsurance float64 `json:"estimatedInsurance"`
	MarketTrends       string  `json:"marketTrends"`
}
