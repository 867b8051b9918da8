package handlers

import (
	"net/http"

	"pricegenie-api/pkg/models"
	"pricegenie-api/pkg/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EMIHandler serves the loan calculator.
type EMIHandler struct {
	service *services.EMIService
}

func NewEMIHandler(service *services.EMIService) *EMIHandler {
	return &EMIHandler{service: service}
}

// Calculate returns the EMI summary and yearly schedule.
func (h *EMIHandler) Calculate(c *gin.Context) {
	summary, ok := h.calculate(c)
	if !ok {
		return
	}
	respondOK(c, summary)
}

// ExportSchedule returns the same calculation as an .xlsx download.
func (h *EMIHandler) ExportSchedule(c *gin.Context) {
	summary, ok := h.calculate(c)
	if !ok {
		return
	}

	buf, err := services.ExportLoanWorkbook(summary)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="emi_schedule.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *EMIHandler) calculate(c *gin.Context) (*models.LoanSummary, bool) {
	var req models.LoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return nil, false
	}
	summary, err := h.service.CalculateLoan(req)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return summary, true
}
