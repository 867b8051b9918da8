package handlers

import (
	"pricegenie-api/pkg/models"
	"pricegenie-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// InvestmentHandler serves the ROI calculator.
type InvestmentHandler struct {
	service *services.InvestmentService
}

func NewInvestmentHandler(service *services.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

// AnalyzeROI computes ROI and rental yield for a property.
func (h *InvestmentHandler) AnalyzeROI(c *gin.Context) {
	var req models.InvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	summary, err := h.service.Analyze(req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, summary)
}

func (h *InvestmentHandler) GetComparison(c *gin.Context) {
	respondOK(c, h.service.ComparisonTable())
}
