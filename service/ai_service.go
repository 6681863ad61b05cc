package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"move-advisor/config"
	"move-advisor/domain"
	"move-advisor/repository"
)

const propertyEstimateTTL = time.Hour

// AIService calls the text-generation collaborator for home-value
// estimates, structured property details, and the narrative analysis.
// With no API key configured the service runs disabled: valuation and
// property-detail lookups fail, the analysis falls back to a
// deterministic locally-built narrative.
type AIService struct {
	apiKey     string
	apiURL     string
	model      string
	maxTokens  int
	enabled    bool
	cache      repository.CacheRepository
	httpClient *http.Client
	logger     *zap.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const systemPrompt = "You are a mortgage affordability advisor for US home buyers. " +
	"You explain debt-to-income ratios, monthly housing payments, and sale proceeds " +
	"in plain language. You never promise loan approval and you always note that " +
	"figures are estimates, not underwriting decisions."

// NewAIService builds the collaborator client from configuration. A
// missing API key is logged, not fatal.
func NewAIService(cfg config.AIConfig, cache repository.CacheRepository, logger *zap.Logger) *AIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	enabled := cfg.APIKey != ""
	if !enabled {
		logger.Warn("no AI API key configured, analysis will use fallback text")
	}
	return &AIService{
		apiKey:    cfg.APIKey,
		apiURL:    cfg.APIURL,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		enabled:   enabled,
		cache:     cache,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether remote calls are configured.
func (s *AIService) Enabled() bool {
	return s.enabled
}

// EstimateHomeValue asks the collaborator for a market value for the
// address. The response must parse as a single non-zero integer USD
// amount; anything else is an error and the caller keeps its prior
// value.
func (s *AIService) EstimateHomeValue(ctx context.Context, address string) (float64, error) {
	if !s.enabled {
		return 0, errors.New("valuation service is not configured")
	}
	if strings.TrimSpace(address) == "" {
		return 0, errors.New("address is required")
	}

	prompt := fmt.Sprintf(
		"Estimate the current market value in USD of the home at: %s\n"+
			"Respond with a single integer number only. No currency symbol, no commas, no words.",
		address)

	raw, err := s.callLLM(ctx, prompt)
	if err != nil {
		return 0, err
	}

	value, err := parseDollarInteger(raw)
	if err != nil {
		return 0, fmt.Errorf("valuation response was not a usable number: %w", err)
	}
	return value, nil
}

// parseDollarInteger extracts a non-zero integer dollar amount from a
// model response, tolerating stray symbols and separators.
func parseDollarInteger(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errors.New("estimate is zero")
	}
	return float64(n), nil
}

// EstimatePropertyDetails asks for annual taxes, insurance, and a
// market-trends blurb for the address at the proposed price. Responses
// are cached per address+price so re-runs of the same scenario skip
// the remote call.
func (s *AIService) EstimatePropertyDetails(ctx context.Context, address string, price float64) (domain.MarketEstimate, error) {
	if !s.enabled {
		return domain.MarketEstimate{}, errors.New("property detail service is not configured")
	}
	if strings.TrimSpace(address) == "" {
		return domain.MarketEstimate{}, errors.New("address is required")
	}

	cacheKey := fmt.Sprintf("property-detail:%s:%.0f", strings.ToLower(strings.TrimSpace(address)), price)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			var est domain.MarketEstimate
			if err := json.Unmarshal([]byte(cached), &est); err == nil {
				return est, nil
			}
		}
	}

	prompt := fmt.Sprintf(
		`For the home at %s with a purchase price of $%.0f, estimate annual property taxes and annual homeowners insurance, and summarize the local market trend in one sentence.
Respond with JSON only, exactly this shape:
{"estimatedTaxes": <number>, "estimatedInsurance": <number>, "marketTrends": "<string>"}`,
		address, price)

	raw, err := s.callLLM(ctx, prompt)
	if err != nil {
		return domain.MarketEstimate{}, err
	}

	est, err := parseMarketEstimate(raw)
	if err != nil {
		return domain.MarketEstimate{}, err
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(est); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(encoded), propertyEstimateTTL); err != nil {
				s.logger.Warn("failed to cache property estimate", zap.Error(err))
			}
		}
	}

	return est, nil
}

// parseMarketEstimate decodes the structured property response. All
// three fields are required; a missing or zero field is a failure.
func parseMarketEstimate(raw string) (domain.MarketEstimate, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var est domain.MarketEstimate
	if err := json.Unmarshal([]byte(cleaned), &est); err != nil {
		return domain.MarketEstimate{}, fmt.Errorf("property detail response was not valid JSON: %w", err)
	}
	if est.EstimatedTaxes == 0 || est.EstimatedInsurance == 0 || est.MarketTrends == "" {
		return domain.MarketEstimate{}, errors.New("property detail response missing required fields")
	}
	return est, nil
}

// GenerateAnalysis produces the narrative commentary for a completed
// calculation. On any failure, or with the service disabled, the
// deterministic fallback narrative is returned instead so the user
// always gets an explanation.
func (s *AIService) GenerateAnalysis(ctx context.Context, profile domain.FinancialProfile, result domain.CalculationResult) string {
	if !s.enabled {
		return s.fallbackAnalysis(profile, result)
	}

	prompt := fmt.Sprintf(`Analyze this home move scenario and write an affordability briefing.

CURRENT SITUATION:
- Home value: $%.2f
- Mortgage balance: $%.2f
- Monthly housing payment: $%.2f
- Gross monthly income: $%.2f
- Other monthly debts: $%.2f

PROPOSED MOVE:
- New home price: $%.2f
- Interest rate: %.2f%% (30-year fixed)
- Estimated proceeds from sale: $%.2f
- New loan amount: $%.2f
- New monthly payment (PITI): $%.2f
- Current DTI: %.2f%%, new DTI: %.2f%%
- Monthly payment change: $%.2f

FORMAT, exactly:
1. A heading "## TL;DR" followed by a two-sentence verdict.
2. Five sections, each opening with "### " plus one of these emoji and titles, in order:
   💰 Equity Position, 🏠 New Payment, 📊 Debt-to-Income, ⚖️ Trade-offs, ✅ Next Steps.
3. Close with a single disclaimer sentence stating these are estimates, not a lending decision.`,
		profile.CurrentHomeValue, profile.CurrentMortgageBalance, profile.CurrentMonthlyPayment,
		profile.MonthlyGrossIncome, result.TotalMonthlyDebt,
		profile.NewHomePrice, profile.NewInterestRate,
		result.ProceedsFromSale, result.NewLoanAmount, result.NewMonthlyPayment,
		result.CurrentDTI, result.NewDTI, result.MonthlyPaymentDifference)

	analysis, err := s.callLLM(ctx, prompt)
	if err != nil {
		s.logger.Error("analysis request failed, serving fallback", zap.Error(err))
		return s.fallbackAnalysis(profile, result)
	}
	return analysis
}

// fallbackAnalysis builds the narrative locally from the computed
// numbers, mirroring the section structure of the remote response.
func (s *AIService) fallbackAnalysis(profile domain.FinancialProfile, result domain.CalculationResult) string {
	var b strings.Builder

	b.WriteString("## TL;DR\n")
	switch result.DTIStatus() {
	case domain.StatusAdverse:
		fmt.Fprintf(&b, "The new debt-to-income ratio of %.1f%% exceeds the %.0f%% conventional lending threshold. This move would stretch the budget significantly.\n\n",
			result.NewDTI, domain.DTIWarningThreshold)
	case domain.StatusCaution:
		fmt.Fprintf(&b, "The move is workable, but the debt-to-income ratio rises from %.1f%% to %.1f%%. Plan for the higher monthly commitment.\n\n",
			result.CurrentDTI, result.NewDTI)
	default:
		fmt.Fprintf(&b, "The move looks affordable: the debt-to-income ratio stays at or below its current level at %.1f%%. The numbers support proceeding.\n\n",
			result.NewDTI)
	}

	b.WriteString("### 💰 Equity Position\n")
	if result.NegativeEquity {
		fmt.Fprintf(&b, "Selling is projected to leave a shortfall of $%.2f after the mortgage payoff and an estimated $%.2f in selling costs. The full new home price of $%.2f would need financing.\n\n",
			-result.ProceedsFromSale, result.SellingCosts, profile.NewHomePrice)
	} else {
		fmt.Fprintf(&b, "Selling the current home is projected to net $%.2f after an estimated $%.2f in selling costs, available as a down payment.\n\n",
			result.ProceedsFromSale, result.SellingCosts)
	}

	b.WriteString("### 🏠 New Payment\n")
	fmt.Fprintf(&b, "A $%.2f loan at %.2f%% over 30 years comes to $%.2f in principal and interest, plus $%.2f taxes and $%.2f insurance: $%.2f per month all-in.\n\n",
		result.NewLoanAmount, profile.NewInterestRate, result.PrincipalAndInterest,
		result.MonthlyTax, result.MonthlyInsurance, result.NewMonthlyPayment)

	b.WriteString("### 📊 Debt-to-Income\n")
	fmt.Fprintf(&b, "Debt-to-income moves from %.2f%% to %.2f%%. Lenders typically look for %.0f%% or below on conventional loans.\n\n",
		result.CurrentDTI, result.NewDTI, domain.DTIWarningThreshold)

	b.WriteString("### ⚖️ Trade-offs\n")
	if result.MonthlyPaymentDifference > 0 {
		fmt.Fprintf(&b, "The monthly housing payment increases by $%.2f. That money is committed before any other spending.\n\n",
			result.MonthlyPaymentDifference)
	} else {
		fmt.Fprintf(&b, "The monthly housing payment decreases by $%.2f, freeing room in the monthly budget.\n\n",
			-result.MonthlyPaymentDifference)
	}

	b.WriteString("### ✅ Next Steps\n")
	b.WriteString("Confirm the actual payoff amount on the current mortgage, get the new home's real tax and insurance figures, and compare rate quotes from at least two lenders.\n\n")

	b.WriteString("These figures are estimates for planning purposes and are not a lending decision.")
	return b.String()
}

func (s *AIService) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: s.maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", err
	}

	if len(chat.Choices) == 0 {
		return "", errors.New("no response from AI")
	}

	return chat.Choices[0].Message.Content, nil
}
