package services

import (
	"fmt"
	"math"

	"pricegenie-api/pkg/models"

	"github.com/shopspring/decimal"
)

// EMIService computes home loan instalments and repayment schedules.
type EMIService struct{}

func NewEMIService() *EMIService {
	return &EMIService{}
}

// CalculateEMI returns the monthly instalment for principal borrowed at
// annualRate percent over years:
//
//	EMI = P·r·(1+r)^n / ((1+r)^n − 1),  r = annualRate/1200, n = 12·years
func CalculateEMI(principal, annualRate float64, years int) float64 {
	n := float64(years * 12)
	if n <= 0 {
		return 0
	}
	r := annualRate / (12 * 100)
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// CalculateLoan applies the down payment and produces the full summary.
func (s *EMIService) CalculateLoan(req models.LoanRequest) (*models.LoanSummary, error) {
	if err := validateLoan(req); err != nil {
		return nil, err
	}

	downPayment := req.LoanAmount * (req.DownPaymentPercent / 100)
	actualLoan := req.LoanAmount - downPayment

	emi := CalculateEMI(actualLoan, req.InterestRate, req.TenureYears)
	totalPayment := emi * float64(req.TenureYears*12)
	totalInterest := totalPayment - actualLoan

	summary := &models.LoanSummary{
		LoanAmount:    req.LoanAmount,
		DownPayment:   roundMoney(downPayment),
		ActualLoan:    roundMoney(actualLoan),
		InterestRate:  req.InterestRate,
		TenureYears:   req.TenureYears,
		MonthlyEMI:    roundMoney(emi),
		TotalPayment:  roundMoney(totalPayment),
		TotalInterest: roundMoney(totalInterest),
		Schedule:      YearlySchedule(actualLoan, req.InterestRate, req.TenureYears, emi),
	}

	summary.Breakdown = paymentBreakdown(actualLoan, summary.TotalInterest)
	summary.Formatted = map[string]string{
		"loan_amount":    FormatRupees(actualLoan),
		"down_payment":   FormatRupees(downPayment),
		"interest_rate":  fmt.Sprintf("%g%% per annum", req.InterestRate),
		"tenure":         fmt.Sprintf("%d years", req.TenureYears),
		"monthly_emi":    FormatRupees(emi),
		"total_interest": FormatRupees(summary.TotalInterest),
		"total_payment":  FormatRupees(summary.TotalPayment),
	}
	return summary, nil
}

// YearlySchedule projects the outstanding balance at the end of every year.
// Interest is charged yearly on the opening balance and the remainder of
// twelve instalments reduces the principal.
func YearlySchedule(principal, annualRate float64, years int, emi float64) []models.YearlyBalance {
	schedule := make([]models.YearlyBalance, 0, years)
	yearlyPayment := emi * 12
	remaining := principal

	for year := 1; year <= years; year++ {
		interest := remaining * (annualRate / 100)
		principalPaid := yearlyPayment - interest
		remaining -= principalPaid
		if remaining < 0 {
			remaining = 0
		}
		schedule = append(schedule, models.YearlyBalance{
			Year:               year,
			InterestPaid:       roundMoney(interest),
			PrincipalPaid:      roundMoney(principalPaid),
			OutstandingBalance: roundMoney(remaining),
		})
	}
	return schedule
}

func paymentBreakdown(principal, interest float64) []models.PaymentShare {
	total := principal + interest
	share := func(v float64) float64 {
		if total == 0 {
			return 0
		}
		return roundMoney(v / total * 100)
	}
	return []models.PaymentShare{
		{Label: "Principal", Value: roundMoney(principal), Percent: share(principal)},
		{Label: "Interest", Value: roundMoney(interest), Percent: share(interest)},
	}
}

func validateLoan(req models.LoanRequest) error {
	switch {
	case req.LoanAmount <= 0 || math.IsNaN(req.LoanAmount) || math.IsInf(req.LoanAmount, 0):
		return fmt.Errorf("%w: loan amount must be positive", ErrInvalidInput)
	case req.InterestRate < 0 || math.IsNaN(req.InterestRate):
		return fmt.Errorf("%w: interest rate cannot be negative", ErrInvalidInput)
	case req.TenureYears < 1:
		return fmt.Errorf("%w: loan tenure must be at least one year", ErrInvalidInput)
	case math.IsNaN(req.DownPaymentPercent) || req.DownPaymentPercent < 0 || req.DownPaymentPercent >= 100:
		return fmt.Errorf("%w: down payment must be between 0 and 100 percent", ErrInvalidInput)
	}
	return nil
}

// roundMoney rounds to paise. Non-finite values are returned unchanged.
func roundMoney(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
