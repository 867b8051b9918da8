package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"pricegenie-api/pkg/models"

	"github.com/google/uuid"
)

const (
	rupeesPerLakh = 100000.0
	// areaAveragePricePerSqft is the reference Bangalore rate used for the
	// "compared to area average" insight.
	areaAveragePricePerSqft = 6000.0
)

// PricePredictionService estimates house prices with a trained model.
type PricePredictionService struct {
	encoder   *FeatureEncoder
	predictor Predictor
}

// NewPricePredictionService creates the service. predictor may be nil, in
// which case every prediction fails with ErrModelUnavailable.
func NewPricePredictionService(catalog *LocationCatalog, predictor Predictor) *PricePredictionService {
	return &PricePredictionService{
		encoder:   NewFeatureEncoder(catalog),
		predictor: predictor,
	}
}

// Locations returns the selectable locations in display order.
func (s *PricePredictionService) Locations() []string {
	return s.encoder.Catalog().Names()
}

// ModelLoaded reports whether a predictor is configured.
func (s *PricePredictionService) ModelLoaded() bool {
	return s.predictor != nil
}

// Predict encodes the request, runs the model and builds the display result.
func (s *PricePredictionService) Predict(ctx context.Context, req models.PredictionRequest) (*models.PredictionResponse, error) {
	input := PredictionInput{
		Area:      req.Area,
		Bathrooms: req.Bathrooms,
		Bedrooms:  req.Bedrooms,
		Location:  req.Location,
	}

	x, err := s.encoder.Encode(input)
	if err != nil {
		return nil, err
	}
	if s.predictor == nil {
		return nil, fmt.Errorf("%w: no model configured", ErrModelUnavailable)
	}

	price, err := s.predictor.Predict(ctx, x)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, fmt.Errorf("%w: model returned %v", ErrModelUnavailable, price)
	}

	locIdx, _ := s.encoder.LocationIndex(req.Location)
	log.Printf("[predict] location=%q index=%d area=%.0f bhk=%d bath=%d -> %.2f lakhs",
		req.Location, locIdx, req.Area, req.Bedrooms, req.Bathrooms, price)

	perSqft := PricePerSqft(price, req.Area)
	return &models.PredictionResponse{
		PredictionID:          uuid.NewString(),
		PriceLakhs:            price,
		FormattedPrice:        FormatCurrency(price, "Lakhs"),
		PricePerSqft:          perSqft,
		FormattedPricePerSqft: FormatGrouped(perSqft),
		Comparison:            CompareToAreaAverage(perSqft),
		LocationIndex:         locIdx,
		Input:                 req,
		Timestamp:             time.Now().Format(time.RFC3339),
	}, nil
}

// PricePerSqft converts a price in lakhs to rupees per square foot. The
// magnitude is used, matching the displayed price.
func PricePerSqft(priceLakhs, area float64) float64 {
	if area <= 0 {
		return 0
	}
	return math.Abs(priceLakhs) * rupeesPerLakh / area
}

// CompareToAreaAverage expresses perSqft relative to the area average.
func CompareToAreaAverage(perSqft float64) models.PriceComparison {
	diff := (perSqft - areaAveragePricePerSqft) / areaAveragePricePerSqft * 100
	direction := "below"
	if diff > 0 {
		direction = "above"
	}
	return models.PriceComparison{
		AveragePricePerSqft: areaAveragePricePerSqft,
		DifferencePercent:   diff,
		Direction:           direction,
		Label:               fmt.Sprintf("%.1f%% %s average", math.Abs(diff), direction),
	}
}
