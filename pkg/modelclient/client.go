package modelclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pricegenie-api/pkg/services"
)

// Client calls a remote model-serving endpoint that wraps the trained
// regression model. It satisfies services.Predictor.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for endpoint (e.g. http://ml:5000/predict).
// apiKey is optional and sent as the api-key header.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// PredictRequest is the body sent to the model server.
type PredictRequest struct {
	Features []float64 `json:"features"`
}

// PredictResponse is the body returned by the model server.
type PredictResponse struct {
	Prediction float64 `json:"prediction"`
}

// ErrorResponse is returned by the model server on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Predict implements services.Predictor. Every failure is reported as
// services.ErrModelUnavailable; nothing is retried.
func (c *Client) Predict(ctx context.Context, x services.FeatureVector) (float64, error) {
	var resp PredictResponse
	if err := c.doRequest(ctx, PredictRequest{Features: x}, &resp); err != nil {
		return 0, fmt.Errorf("%w: %v", services.ErrModelUnavailable, err)
	}
	return resp.Prediction, nil
}

func (c *Client) doRequest(ctx context.Context, requestData interface{}, responseData interface{}) error {
	requestBody, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("model server request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error != "" {
			return fmt.Errorf("model server error (status: %d): %s", resp.StatusCode, errorResp.Error)
		}
		return fmt.Errorf("model server error (status: %d)", resp.StatusCode)
	}

	if err := json.Unmarshal(body, responseData); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
