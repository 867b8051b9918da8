package models

// PredictionRequest represents a house price estimate request
type PredictionRequest struct {
	Area      float64 `json:"area"`
	Bedrooms  int     `json:"bhk"`
	Bathrooms int     `json:"bath"`
	Location  string  `json:"location" binding:"required"`

	// Descriptive fields collected by the form; the model does not use them.
	PropertyAge int      `json:"property_age,omitempty"`
	FloorNumber int      `json:"floor_number,omitempty"`
	TotalFloors int      `json:"total_floors,omitempty"`
	Furnishing  string   `json:"furnishing,omitempty"` // Unfurnished / Semi-furnished / Fully Furnished
	Parking     bool     `json:"parking,omitempty"`
	Facing      string   `json:"facing,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}

// PriceComparison compares the estimate with the area average price per sq ft.
type PriceComparison struct {
	AveragePricePerSqft float64 `json:"average_price_per_sqft"`
	DifferencePercent   float64 `json:"difference_percent"`
	Direction           string  `json:"direction"` // "above" or "below"
	Label               string  `json:"label"`
}

// PredictionResponse represents an estimated price
type PredictionResponse struct {
	PredictionID          string            `json:"prediction_id"`
	PriceLakhs            float64           `json:"price_lakhs"`
	FormattedPrice        string            `json:"formatted_price"`
	PricePerSqft          float64           `json:"price_per_sqft"`
	FormattedPricePerSqft string            `json:"formatted_price_per_sqft"`
	Comparison            PriceComparison   `json:"comparison"`
	LocationIndex         int               `json:"location_index"`
	Input                 PredictionRequest `json:"input"`
	Timestamp             string            `json:"timestamp"`
}

// LoanRequest represents a home loan EMI calculation request
type LoanRequest struct {
	LoanAmount         float64 `json:"loan_amount"`
	InterestRate       float64 `json:"interest_rate"` // annual, percent
	TenureYears        int     `json:"tenure_years"`
	DownPaymentPercent float64 `json:"down_payment_percent"`
}

// YearlyBalance is one row of the outstanding balance schedule.
type YearlyBalance struct {
	Year               int     `json:"year"`
	InterestPaid       float64 `json:"interest_paid"`
	PrincipalPaid      float64 `json:"principal_paid"`
	OutstandingBalance float64 `json:"outstanding_balance"`
}

// LoanSummary represents the result of an EMI calculation
type LoanSummary struct {
	LoanAmount    float64           `json:"loan_amount"`
	DownPayment   float64           `json:"down_payment"`
	ActualLoan    float64           `json:"actual_loan"`
	InterestRate  float64           `json:"interest_rate"`
	TenureYears   int               `json:"tenure_years"`
	MonthlyEMI    float64           `json:"monthly_emi"`
	TotalPayment  float64           `json:"total_payment"`
	TotalInterest float64           `json:"total_interest"`
	Formatted     map[string]string `json:"formatted"`
	Breakdown     []PaymentShare    `json:"breakdown"`
	Schedule      []YearlyBalance   `json:"schedule"`
}

// PaymentShare is a principal/interest slice of the total payment.
type PaymentShare struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// InvestmentRequest represents an ROI calculation request
type InvestmentRequest struct {
	PurchasePrice float64 `json:"purchase_price"`
	CurrentValue  float64 `json:"current_value"`
	MonthlyRent   float64 `json:"monthly_rent"`
	PeriodYears   int     `json:"period_years"`
}

// InvestmentSummary represents the result of an ROI calculation
type InvestmentSummary struct {
	ROI           float64           `json:"roi"`
	ROIPerYear    float64           `json:"roi_per_year"`
	RentalYield   float64           `json:"rental_yield"`
	TotalReturn   float64           `json:"total_return"`
	Appreciation  float64           `json:"appreciation"`
	RentalReturns float64           `json:"rental_returns"`
	Formatted     map[string]string `json:"formatted"`
}

// InvestmentOption is one row of the investment comparison table.
type InvestmentOption struct {
	InvestmentType  string `json:"investment_type"`
	ExpectedReturns string `json:"expected_returns"`
	RiskLevel       string `json:"risk_level"`
	Liquidity       string `json:"liquidity"`
}

// Listing is a single property record used by the market dashboard.
type Listing struct {
	Location     string  `json:"location"`
	Area         float64 `json:"area"`
	BHK          int     `json:"bhk"`
	Price        float64 `json:"price"` // lakhs
	PricePerSqft float64 `json:"price_per_sqft"`
	Date         string  `json:"date"` // YYYY-MM-DD
}

// MarketFilter narrows the listings shown on the dashboard.
type MarketFilter struct {
	Locations []string `json:"locations"`
	MinArea   float64  `json:"min_area"`
	MaxArea   float64  `json:"max_area"`
}

// MonthlyPrice is the average price of one month.
type MonthlyPrice struct {
	Month string  `json:"month"` // YYYY-MM
	Price float64 `json:"price"`
}

// HistogramBin is one bucket of the price distribution.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// LocationPrice aggregates listings of one location.
type LocationPrice struct {
	Location     string  `json:"location"`
	MeanPrice    float64 `json:"mean_price"`
	Count        int     `json:"count"`
	PricePerSqft float64 `json:"price_per_sqft"`
}

// BHKPrice aggregates listings by bedroom count.
type BHKPrice struct {
	BHK   int     `json:"bhk"`
	Price float64 `json:"price"`
	Count int     `json:"count"`
}

// ScatterPoint is an (area, price) pair coloured by BHK.
type ScatterPoint struct {
	Area  float64 `json:"area"`
	Price float64 `json:"price"`
	BHK   int     `json:"bhk"`
}

// MarketInsights are the headline numbers of the dashboard.
type MarketInsights struct {
	AveragePrice          float64 `json:"average_price"`
	FormattedAveragePrice string  `json:"formatted_average_price"`
	AveragePricePerSqft   float64 `json:"average_price_per_sqft"`
	FormattedPricePerSqft string  `json:"formatted_price_per_sqft"`
	MonthOverMonthChange  float64 `json:"month_over_month_change"`
}

// RegressionResult is a least-squares fit of price (lakhs) on area (sq ft).
type RegressionResult struct {
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	RSquared    float64 `json:"r_squared"`
	Description string  `json:"description"`
}

// PriceOutlier is a listing whose price per sq ft is far from the mean.
type PriceOutlier struct {
	Listing  Listing `json:"listing"`
	ZScore   float64 `json:"z_score"`
	Severity string  `json:"severity"` // low, medium, high, critical
}

// MarketStatistics summarises the spread of the filtered listings.
type MarketStatistics struct {
	MedianPrice          float64           `json:"median_price"`
	PriceStdDev          float64           `json:"price_std_dev"`
	AreaPriceCorrelation float64           `json:"area_price_correlation"`
	Regression           *RegressionResult `json:"regression,omitempty"`
	Outliers             []PriceOutlier    `json:"outliers"`
}

// MarketAnalytics represents the full dashboard payload
type MarketAnalytics struct {
	Filter             MarketFilter     `json:"filter"`
	AvailableLocations []string         `json:"available_locations"`
	ListingCount       int              `json:"listing_count"`
	PriceTrend         []MonthlyPrice   `json:"price_trend"`
	PriceDistribution  []HistogramBin   `json:"price_distribution"`
	ByLocation         []LocationPrice  `json:"by_location"`
	ByBHK              []BHKPrice       `json:"by_bhk"`
	AreaVsPrice        []ScatterPoint   `json:"area_vs_price"`
	Insights           MarketInsights   `json:"insights"`
	Statistics         MarketStatistics `json:"statistics"`
	Source             string           `json:"source"`
}

// FormatRequest formats an arbitrary amount the way the pages do
type FormatRequest struct {
	Amount      *float64 `json:"amount" binding:"required"`
	Suffix      string   `json:"suffix"`
	WholeRupees bool     `json:"whole_rupees"`
}
