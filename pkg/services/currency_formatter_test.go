package services

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	testCases := []struct {
		amount   float64
		suffix   string
		expected string
	}{
		{1234567.891, "Lakhs", "₹12,34,567.89 Lakhs"},
		{999.5, "Lakhs", "₹999.50 Lakhs"},
		{-50.0, "Lakhs", "₹50.00 Lakhs"},
		{0, "Lakhs", "₹0.00 Lakhs"},
		{1000, "", "₹1,000.00"},
		{85.456, "Lakhs", "₹85.46 Lakhs"},
		{123456789, "", "₹12,34,56,789.00"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatCurrency(tc.amount, tc.suffix), "FormatCurrency(%v, %q)", tc.amount, tc.suffix)
	}
}

func TestFormatRupees(t *testing.T) {
	testCases := []struct {
		amount   float64
		expected string
	}{
		{100000, "₹1,00,000"},
		{0, "₹0"},
		{999, "₹999"},
		{4999999.99, "₹49,99,999"},
		{-5000, "-₹5,000"},
		{-0.4, "₹0"},
		{1e19, "₹1,00,00,00,00,00,00,00,00,000"},
		{-1e19, "-₹1,00,00,00,00,00,00,00,00,000"},
		{12345678901234567890, "₹1,23,45,67,89,01,23,45,67,168"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatRupees(tc.amount), "FormatRupees(%v)", tc.amount)
	}
}

func TestGroupIndian(t *testing.T) {
	testCases := map[string]string{
		"":           "",
		"7":          "7",
		"123":        "123",
		"1234":       "1,234",
		"12345":      "12,345",
		"123456":     "1,23,456",
		"1234567":    "12,34,567",
		"1234567890": "1,23,45,67,890",
	}
	for in, expected := range testCases {
		assert.Equal(t, expected, GroupIndian(in), "GroupIndian(%q)", in)
	}
}

func TestGroupIndianRoundTrip(t *testing.T) {
	values := []int64{0, 1, 12, 999, 1000, 99999, 100000, 1234567, 9876543210, 1<<62 + 12345}
	for n := int64(1); n < 1e15; n = n*7 + 3 {
		values = append(values, n)
	}

	for _, v := range values {
		digits := strconv.FormatInt(v, 10)
		grouped := GroupIndian(digits)
		assert.Equal(t, digits, strings.ReplaceAll(grouped, ",", ""), "value %d", v)

		groups := strings.Split(grouped, ",")
		if len(groups) > 1 {
			assert.Len(t, groups[len(groups)-1], 3)
			for _, g := range groups[1 : len(groups)-1] {
				assert.Len(t, g, 2)
			}
		}
	}
}

func TestFormatLakhsShortAndGrouped(t *testing.T) {
	assert.Equal(t, "₹112.40 L", FormatLakhsShort(112.4))
	assert.Equal(t, "₹6,123.45", FormatGrouped(6123.451))
	assert.Equal(t, "₹1,234,567.00", FormatGrouped(1234567))
}
