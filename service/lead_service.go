package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"move-advisor/domain"
)

// LeadService forwards contact captures to the marketing webhook as a
// form-encoded POST. One shot, no retry: a non-2xx response is an
// error the caller surfaces to the user.
type LeadService struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewLeadService creates a LeadService targeting the given webhook.
func NewLeadService(webhookURL string, logger *zap.Logger) *LeadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadService{
		webhookURL: webhookURL,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Submit validates and posts the lead. The summary field carries the
// plain-text calculation snapshot built by BuildSummary.
func (s *LeadService) Submit(ctx context.Context, lead domain.Lead) error {
	if s.webhookURL == "" {
		return errors.New("lead webhook is not configured")
	}
	if strings.TrimSpace(lead.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(lead.Email) == "" {
		return errors.New("email is required")
	}

	form := url.Values{}
	form.Set("name", lead.Name)
	form.Set("email", lead.Email)
	form.Set("phone", lead.Phone)
	form.Set("summary", lead.Summary)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lead submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("lead webhook rejected submission (status %d)", resp.StatusCode)
	}

	s.logger.Info("lead submitted", zap.String("email", lead.Email))
	return nil
}

// BuildSummary renders the full input and output set as plain text for
// the webhook payload and the analysis prompt.
func BuildSummary(profile domain.FinancialProfile, result domain.CalculationResult) string {
	var b strings.Builder

	b.WriteString("HOME MOVE AFFORDABILITY SUMMARY\n\n")

	b.WriteString("Current situation:\n")
	fmt.Fprintf(&b, "  Home value: $%.2f\n", profile.CurrentHomeValue)
	fmt.Fprintf(&b, "  Mortgage balance: $%.2f\n", profile.CurrentMortgageBalance)
	fmt.Fprintf(&b, "  Monthly payment: $%.2f\n", profile.CurrentMonthlyPayment)
	fmt.Fprintf(&b, "  Gross monthly income: $%.2f\n", profile.MonthlyGrossIncome)
	fmt.Fprintf(&b, "  Other monthly debts: $%.2f\n\n", profile.RecurringDebts.Total())

	b.WriteString("Proposed move:\n")
	fmt.Fprintf(&b, "  New home price: $%.2f\n", profile.NewHomePrice)
	fmt.Fprintf(&b, "  Interest rate: %.2f%%\n", profile.NewInterestRate)
	if ov := profile.PropertyDetailOverride; ov != nil {
		fmt.Fprintf(&b, "  Annual taxes (provided): $%.2f\n", ov.AnnualTaxes)
		fmt.Fprintf(&b, "  Annual insurance (provided): $%.2f\n", ov.AnnualInsurance)
	}
	b.WriteString("\n")

	b.WriteString("Results:\n")
	fmt.Fprintf(&b, "  Proceeds from sale: $%.2f\n", result.ProceedsFromSale)
	if result.NegativeEquity {
		b.WriteString("  WARNING: sale proceeds do not cover payoff and selling costs\n")
	}
	fmt.Fprintf(&b, "  New loan amount: $%.2f\n", result.NewLoanAmount)
	fmt.Fprintf(&b, "  New monthly payment: $%.2f\n", result.NewMonthlyPayment)
	fmt.Fprintf(&b, "  Current DTI: %.2f%%\n", result.CurrentDTI)
	fmt.Fprintf(&b, "  New DTI: %.2f%%\n", result.NewDTI)
	fmt.Fprintf(&b, "  Monthly payment change: $%+.2f\n", result.MonthlyPaymentDifference)

	return b.String()
}
