package services

import (
	"fmt"
	"math"

	"pricegenie-api/pkg/models"
)

// InvestmentService evaluates rental property returns.
type InvestmentService struct{}

func NewInvestmentService() *InvestmentService {
	return &InvestmentService{}
}

// CalculateROI returns the total return on investment in percent:
// appreciation plus rent collected over the period, relative to the purchase price.
func CalculateROI(purchasePrice, currentValue, monthlyRent float64, years int) float64 {
	totalReturn := currentValue - purchasePrice + monthlyRent*12*float64(years)
	return totalReturn / purchasePrice * 100
}

// CalculateRentalYield returns the annual rent as a percentage of value.
func CalculateRentalYield(propertyValue, monthlyRent float64) float64 {
	return monthlyRent * 12 / propertyValue * 100
}

// Analyze computes the investment summary for req.
func (s *InvestmentService) Analyze(req models.InvestmentRequest) (*models.InvestmentSummary, error) {
	switch {
	case !(req.PurchasePrice > 0) || math.IsInf(req.PurchasePrice, 0):
		return nil, fmt.Errorf("%w: purchase price must be positive", ErrInvalidInput)
	case !(req.CurrentValue > 0) || math.IsInf(req.CurrentValue, 0):
		return nil, fmt.Errorf("%w: expected value must be positive", ErrInvalidInput)
	case !(req.MonthlyRent >= 0):
		return nil, fmt.Errorf("%w: monthly rent cannot be negative", ErrInvalidInput)
	case req.PeriodYears < 1:
		return nil, fmt.Errorf("%w: investment period must be at least one year", ErrInvalidInput)
	}

	roi := CalculateROI(req.PurchasePrice, req.CurrentValue, req.MonthlyRent, req.PeriodYears)
	rentalYield := CalculateRentalYield(req.PurchasePrice, req.MonthlyRent)
	appreciation := req.CurrentValue - req.PurchasePrice
	rentalReturns := req.MonthlyRent * 12 * float64(req.PeriodYears)
	totalReturn := appreciation + rentalReturns
	perYear := roi / float64(req.PeriodYears)

	return &models.InvestmentSummary{
		ROI:           roundMoney(roi),
		ROIPerYear:    roundMoney(perYear),
		RentalYield:   roundMoney(rentalYield),
		TotalReturn:   roundMoney(totalReturn),
		Appreciation:  roundMoney(appreciation),
		RentalReturns: roundMoney(rentalReturns),
		Formatted: map[string]string{
			"roi":            fmt.Sprintf("%.1f%%", roi),
			"roi_per_year":   fmt.Sprintf("%.1f%% per year", perYear),
			"rental_yield":   fmt.Sprintf("%.1f%%", rentalYield),
			"total_return":   FormatRupees(totalReturn),
			"appreciation":   FormatRupees(appreciation),
			"rental_returns": FormatRupees(rentalReturns),
		},
	}, nil
}

// ComparisonTable lists typical returns of common investment options.
func (s *InvestmentService) ComparisonTable() []models.InvestmentOption {
	return []models.InvestmentOption{
		{InvestmentType: "Real Estate", ExpectedReturns: "8-12%", RiskLevel: "Medium", Liquidity: "Low"},
		{InvestmentType: "Fixed Deposit", ExpectedReturns: "6-7%", RiskLevel: "Low", Liquidity: "Medium"},
		{InvestmentType: "Mutual Funds", ExpectedReturns: "12-15%", RiskLevel: "Medium-High", Liquidity: "High"},
		{InvestmentType: "Gold", ExpectedReturns: "8-10%", RiskLevel: "Medium", Liquidity: "High"},
	}
}
