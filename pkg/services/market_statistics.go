package services

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"pricegenie-api/pkg/models"
)

// outlierZScore is the |z| of price per sq ft above which a listing is
// reported as an outlier.
const outlierZScore = 2.5

// MarketStats computes spread, area/price relationship and price-per-sqft
// outliers for listings.
func MarketStats(listings []models.Listing) models.MarketStatistics {
	stats := models.MarketStatistics{Outliers: []models.PriceOutlier{}}
	if len(listings) == 0 {
		return stats
	}

	areas := make([]float64, len(listings))
	prices := make([]float64, len(listings))
	perSqft := make([]float64, len(listings))
	for i, l := range listings {
		areas[i] = l.Area
		prices[i] = l.Price
		perSqft[i] = l.PricePerSqft
	}

	stats.MedianPrice = calculateMedian(prices)
	stats.PriceStdDev = calculateStandardDeviation(prices)
	if r, err := CalculateCorrelation(areas, prices); err == nil {
		stats.AreaPriceCorrelation = r
	}
	if reg, err := PerformLinearRegression(areas, prices); err == nil {
		stats.Regression = reg
	}

	mean := calculateMean(perSqft)
	stdDev := calculateStandardDeviation(perSqft)
	if stdDev > 0 {
		for i, l := range listings {
			z := (perSqft[i] - mean) / stdDev
			if math.Abs(z) > outlierZScore {
				stats.Outliers = append(stats.Outliers, models.PriceOutlier{
					Listing:  l,
					ZScore:   z,
					Severity: calculateSeverity(math.Abs(z)),
				})
			}
		}
	}
	return stats
}

// CalculateCorrelation returns the Pearson correlation of x and y.
func CalculateCorrelation(x, y []float64) (float64, error) {
	if len(x) != len(y) || len(x) == 0 {
		return 0, errors.New("series lengths differ or are empty")
	}

	n := float64(len(x))
	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
		sumY2 += y[i] * y[i]
	}

	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))
	if denominator == 0 {
		return 0, errors.New("zero variance")
	}
	return numerator / denominator, nil
}

// PerformLinearRegression fits y = slope*x + intercept by least squares.
func PerformLinearRegression(x, y []float64) (*models.RegressionResult, error) {
	if len(x) != len(y) || len(x) < 2 {
		return nil, errors.New("series lengths differ or have fewer than two points")
	}

	n := float64(len(x))
	var sumX, sumY, sumXY, sumX2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return nil, errors.New("zero variance in x")
	}
	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssTotal, ssResidual float64
	for i := range x {
		predicted := slope*x[i] + intercept
		ssTotal += (y[i] - meanY) * (y[i] - meanY)
		ssResidual += (y[i] - predicted) * (y[i] - predicted)
	}
	rSquared := 1.0
	if ssTotal > 0 {
		rSquared = 1 - ssResidual/ssTotal
	}

	return &models.RegressionResult{
		Slope:       slope,
		Intercept:   intercept,
		RSquared:    rSquared,
		Description: fmt.Sprintf("price = %.4f × area + %.2f (R² = %.3f)", slope, intercept, rSquared),
	}, nil
}

func calculateSeverity(absZScore float64) string {
	switch {
	case absZScore > 4.0:
		return "critical"
	case absZScore > 3.5:
		return "high"
	case absZScore > 3.0:
		return "medium"
	}
	return "low"
}

func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// calculateStandardDeviation is the population standard deviation.
func calculateStandardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := calculateMean(values)
	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}
	return math.Sqrt(sumSquaredDiff / float64(len(values)))
}

func calculateMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
