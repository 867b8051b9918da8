package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Predictor is the capability the price service needs from a trained model.
type Predictor interface {
	Predict(ctx context.Context, x FeatureVector) (float64, error)
}

// PredictorFunc adapts a plain function to Predictor.
type PredictorFunc func(ctx context.Context, x FeatureVector) (float64, error)

func (f PredictorFunc) Predict(ctx context.Context, x FeatureVector) (float64, error) {
	return f(ctx, x)
}

// LinearModel is a fitted linear regression: y = intercept + coef · x.
type LinearModel struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

// LoadLinearModel reads a model exported as
// {"intercept": <float>, "coefficients": [<244 floats>]}.
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read model file: %v", ErrModelUnavailable, err)
	}

	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: failed to parse model file: %v", ErrModelUnavailable, err)
	}
	if len(m.Coefficients) != FeatureVectorLength {
		return nil, fmt.Errorf("%w: model has %d coefficients, expected %d",
			ErrModelUnavailable, len(m.Coefficients), FeatureVectorLength)
	}
	return &m, nil
}

// Predict implements Predictor.
func (m *LinearModel) Predict(_ context.Context, x FeatureVector) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("%w: input has %d features, model expects %d",
			ErrModelUnavailable, len(x), len(m.Coefficients))
	}
	y := m.Intercept
	for i, v := range x {
		if v != 0 {
			y += m.Coefficients[i] * v
		}
	}
	return y, nil
}
