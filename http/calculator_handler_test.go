package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"move-advisor/domain"
	"move-advisor/repository"
	"move-advisor/service"
)

func newCalculatorHandler() *CalculatorHandler {
	repo := repository.NewCalculationRepositoryMemory()
	return NewCalculatorHandler(service.NewCalculatorService(repo, nil))
}

func TestCalculateHandler_OK(t *testing.T) {
	handler := newCalculatorHandler()

	body := []byte(`{
		"currentHomeValue": 500000,
		"currentMortgageBalance": 250000,
		"currentMonthlyPayment": 2500,
		"newHomePrice": 750000,
		"newInterestRate": 6.5,
		"monthlyGrossIncome": 10000,
		"recurringDebts": {"auto": 400, "student": 300}
	}`)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result domain.CalculationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.InDelta(t, 210000, result.ProceedsFromSale, 0.01)
	assert.InDelta(t, 540000, result.NewLoanAmount, 0.01)
	assert.False(t, result.NegativeEquity)
}

func TestCalculateHandler_ValidationFailure(t *testing.T) {
	handler := newCalculatorHandler()

	body := []byte(`{
		"currentHomeValue": 500000,
		"newHomePrice": 750000,
		"newInterestRate": 6.5,
		"monthlyGrossIncome": 0
	}`)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "income must be positive to compute DTI", resp.Error)
}

func TestCalculateHandler_BadRequestBody(t *testing.T) {
	handler := newCalculatorHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/calculate",
		bytes.NewBuffer([]byte(`{invalid-json}`)))
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCalculateHandler_NegativeEquityStillReturnsResult(t *testing.T) {
	handler := newCalculatorHandler()

	body := []byte(`{
		"currentHomeValue": 100000,
		"currentMortgageBalance": 200000,
		"currentMonthlyPayment": 1200,
		"newHomePrice": 300000,
		"newInterestRate": 6.5,
		"monthlyGrossIncome": 8000
	}`)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.Calculate(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result domain.CalculationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.True(t, result.NegativeEquity)
	assert.InDelta(t, -108000, result.ProceedsFromSale, 0.01)
}
