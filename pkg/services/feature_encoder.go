package services

import (
	"errors"
	"fmt"
	"math"
)

const (
	// FeatureVectorLength is the input width of the trained model.
	FeatureVectorLength = 244

	featureArea        = 0
	featureBathrooms   = 1
	featureBedrooms    = 2
	locationBlockStart = 3
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownLocation  = errors.New("unknown location")
	ErrModelUnavailable = errors.New("model unavailable")
)

// FeatureVector is the fixed-width model input:
// [area, bathrooms, bedrooms, one-hot location block...].
type FeatureVector []float64

// PredictionInput is the user-facing description of a property.
type PredictionInput struct {
	Area      float64
	Bathrooms int
	Bedrooms  int
	Location  string
}

// FeatureEncoder turns a PredictionInput into a FeatureVector using a
// LocationCatalog. It holds no mutable state.
type FeatureEncoder struct {
	catalog *LocationCatalog
}

func NewFeatureEncoder(catalog *LocationCatalog) *FeatureEncoder {
	return &FeatureEncoder{catalog: catalog}
}

// Catalog returns the catalog the encoder resolves locations against.
func (e *FeatureEncoder) Catalog() *LocationCatalog { return e.catalog }

// Encode builds the feature vector for input. The column order
// area, bathrooms, bedrooms matches the training data.
func (e *FeatureEncoder) Encode(input PredictionInput) (FeatureVector, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	offset, ok := e.catalog.Offset(input.Location)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocation, input.Location)
	}

	x := make(FeatureVector, FeatureVectorLength)
	x[featureArea] = input.Area
	x[featureBathrooms] = float64(input.Bathrooms)
	x[featureBedrooms] = float64(input.Bedrooms)
	x[locationBlockStart+offset] = 1
	return x, nil
}

// LocationIndex returns the vector index set for location.
func (e *FeatureEncoder) LocationIndex(location string) (int, error) {
	offset, ok := e.catalog.Offset(location)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLocation, location)
	}
	return locationBlockStart + offset, nil
}

func validateInput(input PredictionInput) error {
	if math.IsNaN(input.Area) || math.IsInf(input.Area, 0) || input.Area <= 0 {
		return fmt.Errorf("%w: area must be a positive number", ErrInvalidInput)
	}
	if input.Bathrooms < 1 {
		return fmt.Errorf("%w: number of bathrooms must be a positive number", ErrInvalidInput)
	}
	if input.Bedrooms < 1 {
		return fmt.Errorf("%w: BHK must be a positive number", ErrInvalidInput)
	}
	return nil
}
