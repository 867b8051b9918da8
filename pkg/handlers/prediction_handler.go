package handlers

import (
	"net/http"

	"pricegenie-api/pkg/models"
	"pricegenie-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// PredictionHandler serves the price estimator.
type PredictionHandler struct {
	service *services.PricePredictionService
}

func NewPredictionHandler(service *services.PricePredictionService) *PredictionHandler {
	return &PredictionHandler{service: service}
}

// GetLocations lists the locations the model knows about.
func (h *PredictionHandler) GetLocations(c *gin.Context) {
	locations := h.service.Locations()
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"locations":    locations,
		"count":        len(locations),
		"model_loaded": h.service.ModelLoaded(),
	})
}

// Predict estimates the price of a property.
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req models.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Predict(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}
