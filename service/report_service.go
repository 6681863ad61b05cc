package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"move-advisor/domain"
)

const (
	pageMarginLeft  = 15.0
	pageMarginTop   = 15.0
	pageMarginRight = 15.0
	reportWidth     = 210.0 - pageMarginLeft - pageMarginRight
)

// ReportService renders a PDF snapshot of a calculation for download.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// Generate builds the PDF document and returns its bytes.
func (s *ReportService) Generate(profile domain.FinancialProfile, result domain.CalculationResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginLeft, pageMarginTop, pageMarginRight)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(reportWidth, 12, "Home Move Affordability Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(reportWidth, 7,
		fmt.Sprintf("Generated %s", time.Now().Format("2 January 2006")),
		"", 1, "C", false, 0, "")
	pdf.Ln(6)

	s.addSection(pdf, "Your Current Situation", [][2]string{
		{"Home value", dollars(profile.CurrentHomeValue)},
		{"Mortgage balance", dollars(profile.CurrentMortgageBalance)},
		{"Monthly housing payment", dollars(profile.CurrentMonthlyPayment)},
		{"Gross monthly income", dollars(profile.MonthlyGrossIncome)},
		{"Other monthly debts", dollars(result.TotalMonthlyDebt)},
	})

	s.addSection(pdf, "Proposed Move", [][2]string{
		{"New home price", dollars(profile.NewHomePrice)},
		{"Interest rate (30-year fixed)", fmt.Sprintf("%.2f%%", profile.NewInterestRate)},
		{"Estimated selling costs", dollars(result.SellingCosts)},
		{"Proceeds from sale", dollars(result.ProceedsFromSale)},
		{"Down payment", dollars(result.DownPayment)},
		{"New loan amount", dollars(result.NewLoanAmount)},
	})

	s.addSection(pdf, "New Monthly Payment", [][2]string{
		{"Principal and interest", dollars(result.PrincipalAndInterest)},
		{"Property taxes", dollars(result.MonthlyTax)},
		{"Homeowners insurance", dollars(result.MonthlyInsurance)},
		{"Total monthly payment", dollars(result.NewMonthlyPayment)},
	})

	// Key metrics with status coloring
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(reportWidth, 9, "Key Metrics", "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	s.addMetricRow(pdf, "Current debt-to-income",
		fmt.Sprintf("%.2f%%", result.CurrentDTI), domain.StatusFavorable)
	s.addMetricRow(pdf, "New debt-to-income",
		fmt.Sprintf("%.2f%%", result.NewDTI), result.DTIStatus())
	s.addMetricRow(pdf, "Monthly payment change",
		fmt.Sprintf("%+.2f", result.MonthlyPaymentDifference), result.PaymentChangeStatus())
	pdf.Ln(4)

	if result.NegativeEquity {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(180, 60, 0)
		pdf.MultiCell(reportWidth, 6,
			"Warning: the projected sale does not cover the mortgage payoff and estimated selling costs. The full purchase price would need to be financed.",
			"", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(reportWidth, 5,
		"These figures are estimates for planning purposes only and do not constitute a lending decision or an offer of credit.",
		"", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportService) addSection(pdf *fpdf.Fpdf, title string, rows [][2]string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(reportWidth, 9, title, "B", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	for _, row := range rows {
		pdf.CellFormat(reportWidth*0.6, 7, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(reportWidth*0.4, 7, row[1], "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (s *ReportService) addMetricRow(pdf *fpdf.Fpdf, label, value string, status domain.Status) {
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	pdf.CellFormat(reportWidth*0.6, 7, label, "", 0, "L", false, 0, "")

	switch status {
	case domain.StatusAdverse:
		pdf.SetTextColor(190, 30, 30)
	case domain.StatusCaution:
		pdf.SetTextColor(200, 130, 0)
	default:
		pdf.SetTextColor(20, 130, 60)
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(reportWidth*0.4, 7, value, "", 1, "R", false, 0, "")
}

func dollars(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
