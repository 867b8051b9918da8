package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"pricegenie-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

var listingDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
	"02/01/2006",
	"20060102",
}

// Accepted header spellings, compared after lower-casing and trimming.
var (
	locationHeaders = []string{"location", "locality", "area_name"}
	areaHeaders     = []string{"area", "total_sqft", "sqft", "area (sq ft)"}
	bhkHeaders      = []string{"bhk", "bedrooms", "size"}
	priceHeaders    = []string{"price", "price (lakhs)", "price_lakhs"}
	perSqftHeaders  = []string{"price_per_sqft", "price per sqft", "rate"}
	dateHeaders     = []string{"date", "month", "listing_date"}
)

// ParseListings reads listings from an uploaded .csv or .xlsx file. Rows
// with a missing location or non-numeric area/bhk/price are skipped.
func ParseListings(fileName string, data []byte) ([]models.Listing, error) {
	var rows [][]string

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx":
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook: %w", err)
		}
		defer f.Close()
		rows, err = f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet rows: %w", err)
		}
	case ".csv", "":
		r := csv.NewReader(bytes.NewReader(data))
		r.FieldsPerRecord = -1
		var err error
		rows, err = r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported file type: %s (use .csv or .xlsx)", fileName)
	}

	return parseListingRows(rows)
}

func parseListingRows(rows [][]string) ([]models.Listing, error) {
	if len(rows) == 0 {
		return nil, errors.New("listings: no data")
	}

	header := normalizeHeader(rows[0])
	locIdx := findIndex(header, locationHeaders)
	areaIdx := findIndex(header, areaHeaders)
	bhkIdx := findIndex(header, bhkHeaders)
	priceIdx := findIndex(header, priceHeaders)
	if locIdx == -1 || areaIdx == -1 || bhkIdx == -1 || priceIdx == -1 {
		return nil, errors.New("listings: location, area, bhk and price columns are required")
	}
	perSqftIdx := findIndex(header, perSqftHeaders)
	dateIdx := findIndex(header, dateHeaders)

	listings := make([]models.Listing, 0, len(rows)-1)
	for _, row := range rows[1:] {
		location := cell(row, locIdx)
		if location == "" {
			continue
		}
		area, ok := parseNumber(cell(row, areaIdx))
		if !ok || area <= 0 {
			continue
		}
		bhk, ok := parseNumber(cell(row, bhkIdx))
		if !ok || bhk < 1 {
			continue
		}
		price, ok := parseNumber(cell(row, priceIdx))
		if !ok {
			continue
		}

		perSqft, ok := parseNumber(cell(row, perSqftIdx))
		if !ok {
			perSqft = PricePerSqft(price, area)
		}

		var date string
		if d, ok := parseAnyDate(cell(row, dateIdx), listingDateLayouts); ok {
			date = d.Format("2006-01-02")
		}

		listings = append(listings, models.Listing{
			Location:     location,
			Area:         area,
			BHK:          int(bhk),
			Price:        price,
			PricePerSqft: perSqft,
			Date:         date,
		})
	}

	if len(listings) == 0 {
		return nil, errors.New("listings: no valid rows")
	}
	return listings, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts values such as "1,200", "1.5e3" or "85.5 L".
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		s = filterNumeric(s)
		if s == "" {
			return 0, false
		}
		if v, err = strconv.ParseFloat(s, 64); err != nil {
			return 0, false
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseAnyDate(s string, layouts []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// try to split date part if time included
	if i := strings.IndexAny(s, " T"); i > 0 {
		part := s[:i]
		for _, layout := range layouts {
			if t, err := time.Parse(layout, part); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func normalizeHeader(hdr []string) []string {
	out := make([]string, len(hdr))
	for i, v := range hdr {
		// Remove UTF-8 BOM if present, then trim and lowercase
		v = strings.TrimPrefix(v, "\ufeff")
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

func findIndex(hdr []string, candidates []string) int {
	for _, c := range candidates {
		for i, v := range hdr {
			if v == c {
				return i
			}
		}
	}
	return -1
}

// filterNumeric keeps digits, dot, minus, and an exponent marker (with its
// sign) that follows a digit.
func filterNumeric(s string) string {
	rs := []rune(s)
	b := make([]rune, 0, len(rs))
	for i, r := range rs {
		switch {
		case isDigit(r) || r == '.' || r == '-':
			b = append(b, r)
		case r == '+' && len(b) > 0 && (b[len(b)-1] == 'e' || b[len(b)-1] == 'E'):
			b = append(b, r)
		case (r == 'e' || r == 'E') && i > 0 && i+1 < len(rs) && isDigit(rs[i-1]) &&
			(isDigit(rs[i+1]) || rs[i+1] == '-' || rs[i+1] == '+'):
			b = append(b, r)
		}
	}
	return string(b)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
