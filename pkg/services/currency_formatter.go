package services

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const rupeeSymbol = "₹"

var groupedPrinter = message.NewPrinter(language.English)

// FormatCurrency renders |amount| with two decimals and Indian digit
// grouping, e.g. FormatCurrency(1234567.891, "Lakhs") == "₹12,34,567.89 Lakhs".
// The sign is dropped. An empty suffix is omitted.
func FormatCurrency(amount float64, suffix string) string {
	fixed := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	whole, frac, _ := strings.Cut(fixed, ".")

	out := rupeeSymbol + GroupIndian(whole) + "." + frac
	if suffix != "" {
		out += " " + suffix
	}
	return out
}

// FormatRupees is the whole-rupee variant used by the loan and investment
// calculators. The fraction is truncated; negative amounts keep a leading
// minus sign ("-₹5,000").
func FormatRupees(amount float64) string {
	whole := math.Trunc(amount)
	sign := ""
	if whole < 0 {
		sign = "-"
	}
	if math.IsNaN(whole) || math.IsInf(whole, 0) {
		return sign + rupeeSymbol + strconv.FormatFloat(math.Abs(whole), 'f', -1, 64)
	}
	return sign + rupeeSymbol + GroupIndian(strconv.FormatFloat(math.Abs(whole), 'f', 0, 64))
}

// FormatLakhsShort is the compact dashboard form, e.g. "₹112.40 L".
func FormatLakhsShort(amount float64) string {
	return rupeeSymbol + strconv.FormatFloat(amount, 'f', 2, 64) + " L"
}

// FormatGrouped renders amount with western thousands separators and two
// decimals, e.g. "₹6,123.45". Used for price per square foot.
func FormatGrouped(amount float64) string {
	return groupedPrinter.Sprintf("%s%.2f", rupeeSymbol, amount)
}

// GroupIndian inserts commas into a string of digits using the Indian
// convention: the last three digits form one group, every group to the
// left has two. Inputs of three digits or fewer are returned unchanged.
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	groups := make([]string, 0, len(head)/2+2)
	if len(head)%2 == 1 {
		groups = append(groups, head[:1])
		head = head[1:]
	}
	for len(head) > 0 {
		groups = append(groups, head[:2])
		head = head[2:]
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
