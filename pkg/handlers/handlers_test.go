package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	config "pricegenie-api/configs"
	"pricegenie-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		AdminUsername: "admin",
		AdminPassword: "secret",
	}
}

func newTestRouter(cfg *config.Config, predictor services.Predictor) *gin.Engine {
	catalog := services.DefaultLocationCatalog()
	return NewRouter(cfg, Services{
		Prediction: services.NewPricePredictionService(catalog, predictor),
		EMI:        services.NewEMIService(),
		Investment: services.NewInvestmentService(),
		Market:     services.NewMarketService(catalog),
		Monitoring: services.NewMonitoringService(),
	})
}

func fixedPredictor(price float64) services.Predictor {
	return services.PredictorFunc(func(context.Context, services.FeatureVector) (float64, error) {
		return price, nil
	})
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(testConfig(), fixedPredictor(50))

	w := doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["modelLoaded"])
}

func TestGetLocations(t *testing.T) {
	r := newTestRouter(testConfig(), nil)

	w := doJSON(r, http.MethodGet, "/api/v1/locations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(24), body["count"])
	assert.Equal(t, false, body["model_loaded"])
	assert.Contains(t, body["locations"], "Whitefield")
}

func TestPredictEndpoint(t *testing.T) {
	r := newTestRouter(testConfig(), fixedPredictor(85.5))

	w := doJSON(r, http.MethodPost, "/api/v1/predict", map[string]interface{}{
		"area": 1200, "bhk": 2, "bath": 2, "location": "Koramangala",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "₹85.50 Lakhs", data["formatted_price"])
	assert.Equal(t, float64(43), data["location_index"])
	assert.NotEmpty(t, data["prediction_id"])
}

func TestPredictEndpointErrors(t *testing.T) {
	testCases := []struct {
		name      string
		predictor services.Predictor
		body      interface{}
		status    int
	}{
		{"unknown location", fixedPredictor(1), map[string]interface{}{"area": 1000, "bhk": 2, "bath": 2, "location": "Atlantis"}, http.StatusBadRequest},
		{"invalid area", fixedPredictor(1), map[string]interface{}{"area": 0, "bhk": 2, "bath": 2, "location": "Hebbal"}, http.StatusBadRequest},
		{"missing location", fixedPredictor(1), map[string]interface{}{"area": 1000, "bhk": 2, "bath": 2}, http.StatusBadRequest},
		{"no model", nil, map[string]interface{}{"area": 1000, "bhk": 2, "bath": 2, "location": "Hebbal"}, http.StatusServiceUnavailable},
		{"infinite estimate", fixedPredictor(math.Inf(1)), map[string]interface{}{"area": 1e308, "bhk": 2, "bath": 2, "location": "Hebbal"}, http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(testConfig(), tc.predictor)
			w := doJSON(r, http.MethodPost, "/api/v1/predict", tc.body)
			assert.Equal(t, tc.status, w.Code)
			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestEMIEndpoints(t *testing.T) {
	r := newTestRouter(testConfig(), nil)
	req := map[string]interface{}{
		"loan_amount": 5000000, "interest_rate": 8.5, "tenure_years": 20, "down_payment_percent": 20,
	}

	w := doJSON(r, http.MethodPost, "/api/v1/emi", req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, 34712.93, data["monthly_emi"])
	assert.Len(t, data["schedule"], 20)

	w = doJSON(r, http.MethodPost, "/api/v1/emi/schedule.xlsx", req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Schedule")

	w = doJSON(r, http.MethodPost, "/api/v1/emi", map[string]interface{}{"loan_amount": 0, "interest_rate": 8, "tenure_years": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvestmentEndpoints(t *testing.T) {
	r := newTestRouter(testConfig(), nil)

	w := doJSON(r, http.MethodPost, "/api/v1/investment/roi", map[string]interface{}{
		"purchase_price": 5000000, "current_value": 6000000, "monthly_rent": 20000, "period_years": 5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(44), data["roi"])

	w = doJSON(r, http.MethodGet, "/api/v1/investment/comparison", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 4)

	w = doJSON(r, http.MethodPost, "/api/v1/investment/roi", map[string]interface{}{"purchase_price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarketEndpoints(t *testing.T) {
	r := newTestRouter(testConfig(), nil)

	w := doJSON(r, http.MethodGet, "/api/v1/market/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(100), data["listing_count"])
	assert.Equal(t, "sample", data["source"])

	w = doJSON(r, http.MethodGet, "/api/v1/market/analytics?min_area=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(r, http.MethodGet, "/api/v1/market/analytics?min_area=2000&max_area=1000", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "listings.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("location,area,bhk,price,date\nHebbal,1000,2,60,2024-01-01\nHebbal,1400,3,80,2024-02-01\nKengeri,900,2,40,2024-02-03\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/market/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(3), decode(t, w)["stored"])

	w = doJSON(r, http.MethodGet, "/api/v1/market/analytics?locations=Hebbal&min_area=1200", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data = decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["listing_count"])
	assert.Equal(t, "listings.csv", data["source"])

	req = httptest.NewRequest(http.MethodPost, "/api/v1/market/import", bytes.NewBufferString("location,price\nA,1\n"))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/market/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sample", decode(t, w)["source"])
}

func TestFormatEndpoint(t *testing.T) {
	r := newTestRouter(testConfig(), nil)

	w := doJSON(r, http.MethodPost, "/api/v1/format", map[string]interface{}{"amount": 1234567.891, "suffix": "Lakhs"})
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "₹12,34,567.89 Lakhs", data["formatted"])

	w = doJSON(r, http.MethodPost, "/api/v1/format", map[string]interface{}{"amount": 100000, "whole_rupees": true})
	require.Equal(t, http.StatusOK, w.Code)
	data = decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "₹1,00,000", data["formatted"])

	w = doJSON(r, http.MethodPost, "/api/v1/format", map[string]interface{}{"amount": -1e19, "whole_rupees": true})
	require.Equal(t, http.StatusOK, w.Code)
	data = decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "-₹1,00,00,00,00,00,00,00,00,000", data["formatted"])

	w = doJSON(r, http.MethodPost, "/api/v1/format", map[string]interface{}{"suffix": "Lakhs"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMaintenanceMode(t *testing.T) {
	r := newTestRouter(testConfig(), nil)

	w := doJSON(r, http.MethodPost, "/api/v1/admin/maintenance/start", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/admin/maintenance/start", map[string]string{"username": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/admin/maintenance/start", map[string]string{"username": "admin", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	w = doJSON(r, http.MethodGet, "/api/v1/admin/health-status", nil)
	assert.Equal(t, true, decode(t, w)["isMaintenanceMode"])

	w = doJSON(r, http.MethodPost, "/api/v1/admin/maintenance/stop", map[string]string{"username": "admin", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMaintenanceModeHashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := testConfig()
	cfg.AdminPasswordHash = string(hash)
	r := newTestRouter(cfg, nil)

	// the plain password is ignored once a hash is configured
	w := doJSON(r, http.MethodPost, "/api/v1/admin/maintenance/start", map[string]string{"username": "admin", "password": "secret"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/admin/maintenance/start", map[string]string{"username": "admin", "password": "hashed-secret"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMonitoringLogs(t *testing.T) {
	r := newTestRouter(testConfig(), nil)

	doJSON(r, http.MethodGet, "/api/v1/locations", nil)
	doJSON(r, http.MethodPost, "/api/v1/predict", map[string]interface{}{"area": 1000, "bhk": 2, "bath": 2, "location": "Hebbal"})

	w := doJSON(r, http.MethodGet, "/api/v1/monitoring/logs?period=1h", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	endpoints := body["endpoints"].(map[string]interface{})
	assert.Equal(t, float64(1), endpoints["/api/v1/locations"])
	assert.Equal(t, float64(1), endpoints["/api/v1/predict"])
	assert.Len(t, body["recentErrors"], 1)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "key-123"
	r := newTestRouter(cfg, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/locations", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil)
	req.Header.Set("X-API-KEY", "key-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 2
	r := newTestRouter(cfg, nil)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/locations", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/api/v1/locations", nil).Code)
	w := doJSON(r, http.MethodGet, "/api/v1/locations", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	assert.Nil(t, NewRateLimiter(0, 10))
}
