package handlers

import (
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"pricegenie-api/pkg/models"
	"pricegenie-api/pkg/services"

	"github.com/gin-gonic/gin"
)

const maxImportBytes = 10 << 20

// MarketHandler serves the market analytics dashboard.
type MarketHandler struct {
	service *services.MarketService
}

func NewMarketHandler(service *services.MarketService) *MarketHandler {
	return &MarketHandler{service: service}
}

// GetAnalytics aggregates the active listings.
// Query: locations=A,B&min_area=800&max_area=2000
func (h *MarketHandler) GetAnalytics(c *gin.Context) {
	var filter models.MarketFilter
	if raw := strings.TrimSpace(c.Query("locations")); raw != "" {
		for _, loc := range strings.Split(raw, ",") {
			if loc = strings.TrimSpace(loc); loc != "" {
				filter.Locations = append(filter.Locations, loc)
			}
		}
	}

	var err error
	if filter.MinArea, err = parseAreaBound(c.Query("min_area")); err != nil {
		badRequest(c, "invalid min_area")
		return
	}
	if filter.MaxArea, err = parseAreaBound(c.Query("max_area")); err != nil {
		badRequest(c, "invalid max_area")
		return
	}
	if filter.MaxArea > 0 && filter.MinArea > filter.MaxArea {
		badRequest(c, "min_area must not exceed max_area")
		return
	}

	respondOK(c, h.service.Analytics(filter))
}

// ImportListings replaces the active listings with an uploaded CSV or XLSX
// file (multipart field "file"). A raw body is accepted as CSV.
func (h *MarketHandler) ImportListings(c *gin.Context) {
	var (
		name string
		data []byte
	)

	if file, err := c.FormFile("file"); err == nil {
		if file.Size > maxImportBytes {
			badRequest(c, "file too large")
			return
		}
		f, err := file.Open()
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		defer f.Close()
		if data, err = io.ReadAll(f); err != nil {
			badRequest(c, err.Error())
			return
		}
		name = file.Filename
	} else {
		b, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportBytes))
		if err != nil || len(b) == 0 {
			badRequest(c, "listings not provided (multipart file 'file' or CSV body)")
			return
		}
		data = b
		name = c.DefaultQuery("filename", "upload.csv")
	}

	listings, err := services.ParseListings(name, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
			"hint":    "columns: location, area, bhk, price (lakhs), optional price_per_sqft and date",
		})
		return
	}

	h.service.Replace(listings, name)
	log.Printf("📥 [market] imported %d listings from %s", len(listings), name)
	c.JSON(http.StatusOK, gin.H{"success": true, "source": name, "stored": len(listings)})
}

// ResetListings restores the sample dataset.
func (h *MarketHandler) ResetListings(c *gin.Context) {
	h.service.ResetToSample()
	listings, source := h.service.Listings()
	c.JSON(http.StatusOK, gin.H{"success": true, "source": source, "stored": len(listings)})
}

func parseAreaBound(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
