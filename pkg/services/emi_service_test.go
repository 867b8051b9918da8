package services

import (
	"math"
	"testing"

	"pricegenie-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCalculateEMI(t *testing.T) {
	assert.InDelta(t, 34712.93, CalculateEMI(4000000, 8.5, 20), 0.01)
	assert.InDelta(t, 87915.89, CalculateEMI(1000000, 10, 1), 0.01)
	assert.Equal(t, 10000.0, CalculateEMI(1200000, 0, 10))
	assert.Equal(t, 0.0, CalculateEMI(1200000, 8, 0))
}

func TestCalculateLoan(t *testing.T) {
	svc := NewEMIService()

	summary, err := svc.CalculateLoan(models.LoanRequest{
		LoanAmount:         5000000,
		InterestRate:       8.5,
		TenureYears:        20,
		DownPaymentPercent: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, 1000000.0, summary.DownPayment)
	assert.Equal(t, 4000000.0, summary.ActualLoan)
	assert.Equal(t, 34712.93, summary.MonthlyEMI)
	assert.InDelta(t, 8331103.04, summary.TotalPayment, 0.01)
	assert.InDelta(t, 4331103.04, summary.TotalInterest, 0.01)
	assert.Len(t, summary.Schedule, 20)

	assert.Equal(t, "₹40,00,000", summary.Formatted["loan_amount"])
	assert.Equal(t, "₹10,00,000", summary.Formatted["down_payment"])
	assert.Equal(t, "₹34,712", summary.Formatted["monthly_emi"])
	assert.Equal(t, "8.5% per annum", summary.Formatted["interest_rate"])
	assert.Equal(t, "20 years", summary.Formatted["tenure"])

	require.Len(t, summary.Breakdown, 2)
	assert.Equal(t, "Principal", summary.Breakdown[0].Label)
	assert.InDelta(t, 100.0, summary.Breakdown[0].Percent+summary.Breakdown[1].Percent, 0.02)
}

func TestCalculateLoanValidation(t *testing.T) {
	svc := NewEMIService()

	testCases := []struct {
		name string
		req  models.LoanRequest
	}{
		{"zero amount", models.LoanRequest{LoanAmount: 0, InterestRate: 8, TenureYears: 10}},
		{"negative rate", models.LoanRequest{LoanAmount: 100000, InterestRate: -1, TenureYears: 10}},
		{"zero tenure", models.LoanRequest{LoanAmount: 100000, InterestRate: 8, TenureYears: 0}},
		{"full down payment", models.LoanRequest{LoanAmount: 100000, InterestRate: 8, TenureYears: 10, DownPaymentPercent: 100}},
		{"negative down payment", models.LoanRequest{LoanAmount: 100000, InterestRate: 8, TenureYears: 10, DownPaymentPercent: -5}},
		{"NaN amount", models.LoanRequest{LoanAmount: math.NaN(), InterestRate: 8, TenureYears: 10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CalculateLoan(tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestYearlySchedule(t *testing.T) {
	schedule := YearlySchedule(1200000, 0, 10, 10000)
	require.Len(t, schedule, 10)
	for i, row := range schedule {
		assert.Equal(t, i+1, row.Year)
		assert.Equal(t, 0.0, row.InterestPaid)
		assert.Equal(t, 120000.0, row.PrincipalPaid)
	}
	assert.Equal(t, 0.0, schedule[9].OutstandingBalance)

	first := YearlySchedule(1000000, 10, 1, CalculateEMI(1000000, 10, 1))[0]
	assert.Equal(t, 100000.0, first.InterestPaid)
	assert.InDelta(t, 45009.35, first.OutstandingBalance, 0.01)
}

func TestYearlyScheduleClampsAtZero(t *testing.T) {
	schedule := YearlySchedule(100000, 0, 2, 20000)
	require.Len(t, schedule, 2)
	assert.Equal(t, 0.0, schedule[0].OutstandingBalance)
	assert.Equal(t, 0.0, schedule[1].OutstandingBalance)
}

func TestExportLoanWorkbook(t *testing.T) {
	summary, err := NewEMIService().CalculateLoan(models.LoanRequest{
		LoanAmount: 2500000, InterestRate: 9, TenureYears: 5, DownPaymentPercent: 10,
	})
	require.NoError(t, err)

	buf, err := ExportLoanWorkbook(summary)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Schedule"}, f.GetSheetList())

	rows, err := f.GetRows("Schedule")
	require.NoError(t, err)
	assert.Len(t, rows, 6)
	assert.Equal(t, "Year", rows[0][0])
	assert.Equal(t, "5", rows[5][0])

	label, err := f.GetCellValue("Summary", "A6")
	require.NoError(t, err)
	assert.Equal(t, "Monthly EMI", label)
	display, err := f.GetCellValue("Summary", "C6")
	require.NoError(t, err)
	assert.Equal(t, summary.Formatted["monthly_emi"], display)
}
