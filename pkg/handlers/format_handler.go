package handlers

import (
	"math"

	"pricegenie-api/pkg/models"
	"pricegenie-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// FormatAmount renders an amount in rupees with Indian digit grouping.
func FormatAmount(c *gin.Context) {
	var req models.FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "amount is required")
		return
	}
	amount := *req.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		badRequest(c, "amount must be a finite number")
		return
	}

	var formatted string
	if req.WholeRupees {
		formatted = services.FormatRupees(amount)
	} else {
		formatted = services.FormatCurrency(amount, req.Suffix)
	}
	respondOK(c, gin.H{"amount": amount, "formatted": formatted})
}
