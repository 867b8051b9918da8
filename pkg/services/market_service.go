package services

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"pricegenie-api/pkg/models"
)

const (
	sampleSeed       = 42
	sampleSize       = 100
	sampleLocations  = 8
	histogramBins    = 30
	sampleSourceName = "sample"
)

// MarketService holds the listings behind the market dashboard. It starts
// with a deterministic sample and can be replaced by an imported file.
type MarketService struct {
	mu        sync.RWMutex
	locations []string
	listings  []models.Listing
	source    string
}

// NewMarketService seeds the dashboard with sample listings spread over the
// first few catalog locations.
func NewMarketService(catalog *LocationCatalog) *MarketService {
	entries := catalog.Entries()
	if len(entries) > sampleLocations {
		entries = entries[:sampleLocations]
	}
	locations := make([]string, len(entries))
	for i, e := range entries {
		locations[i] = e.Name
	}

	s := &MarketService{locations: locations}
	s.ResetToSample()
	return s
}

// GenerateSampleData produces n pseudo-random listings. The same seed always
// yields the same listings.
func GenerateSampleData(locations []string, seed int64, n int) []models.Listing {
	if len(locations) == 0 || n <= 0 {
		return []models.Listing{}
	}
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	out := make([]models.Listing, n)
	for i := 0; i < n; i++ {
		out[i] = models.Listing{
			Location:     locations[rng.Intn(len(locations))],
			Area:         600 + rng.Float64()*2400,
			BHK:          1 + rng.Intn(4),
			Price:        30 + rng.Float64()*170,
			PricePerSqft: 4000 + rng.Float64()*4000,
			Date:         start.AddDate(0, 0, i).Format("2006-01-02"),
		}
	}
	return out
}

// ResetToSample discards imported data and restores the sample listings.
func (s *MarketService) ResetToSample() {
	sample := GenerateSampleData(s.locations, sampleSeed, sampleSize)
	s.Replace(sample, sampleSourceName)
}

// Replace swaps the active dataset.
func (s *MarketService) Replace(listings []models.Listing, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = listings
	s.source = source
}

// Listings returns a copy of the active dataset and its source name.
func (s *MarketService) Listings() ([]models.Listing, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Listing, len(s.listings))
	copy(out, s.listings)
	return out, s.source
}

// Analytics filters the active dataset and aggregates it for the dashboard.
func (s *MarketService) Analytics(filter models.MarketFilter) models.MarketAnalytics {
	listings, source := s.Listings()
	result := AnalyzeListings(listings, filter)
	result.Source = source
	return result
}

// AnalyzeListings aggregates listings after applying filter. An empty
// location list selects every location; a zero area bound is open.
func AnalyzeListings(listings []models.Listing, filter models.MarketFilter) models.MarketAnalytics {
	filtered := FilterListings(listings, filter)

	trend := monthlyAverages(filtered)
	insights := models.MarketInsights{
		AveragePrice:         meanOf(filtered, func(l models.Listing) float64 { return l.Price }),
		AveragePricePerSqft:  meanOf(filtered, func(l models.Listing) float64 { return l.PricePerSqft }),
		MonthOverMonthChange: monthOverMonth(trend),
	}
	insights.FormattedAveragePrice = FormatLakhsShort(insights.AveragePrice)
	insights.FormattedPricePerSqft = FormatGrouped(insights.AveragePricePerSqft)

	scatter := make([]models.ScatterPoint, len(filtered))
	for i, l := range filtered {
		scatter[i] = models.ScatterPoint{Area: l.Area, Price: l.Price, BHK: l.BHK}
	}

	return models.MarketAnalytics{
		Filter:             filter,
		AvailableLocations: uniqueLocations(listings),
		ListingCount:       len(filtered),
		PriceTrend:         trend,
		PriceDistribution:  priceHistogram(filtered, histogramBins),
		ByLocation:         locationAverages(filtered),
		ByBHK:              bhkAverages(filtered),
		AreaVsPrice:        scatter,
		Insights:           insights,
		Statistics:         MarketStats(filtered),
	}
}

// FilterListings keeps listings in the selected locations and area range.
func FilterListings(listings []models.Listing, filter models.MarketFilter) []models.Listing {
	selected := make(map[string]bool, len(filter.Locations))
	for _, loc := range filter.Locations {
		selected[loc] = true
	}

	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if len(selected) > 0 && !selected[l.Location] {
			continue
		}
		if filter.MinArea > 0 && l.Area < filter.MinArea {
			continue
		}
		if filter.MaxArea > 0 && l.Area > filter.MaxArea {
			continue
		}
		out = append(out, l)
	}
	return out
}

func uniqueLocations(listings []models.Listing) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, l := range listings {
		if !seen[l.Location] {
			seen[l.Location] = true
			out = append(out, l.Location)
		}
	}
	sort.Strings(out)
	return out
}

func monthlyAverages(listings []models.Listing) []models.MonthlyPrice {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, l := range listings {
		if len(l.Date) < 7 {
			continue
		}
		month := l.Date[:7]
		sums[month] += l.Price
		counts[month]++
	}

	out := make([]models.MonthlyPrice, 0, len(sums))
	for month, sum := range sums {
		out = append(out, models.MonthlyPrice{Month: month, Price: sum / float64(counts[month])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// monthOverMonth is the percentage change between the last two months.
func monthOverMonth(trend []models.MonthlyPrice) float64 {
	if len(trend) < 2 {
		return 0
	}
	prev := trend[len(trend)-2].Price
	last := trend[len(trend)-1].Price
	if prev == 0 {
		return 0
	}
	return math.Round((last-prev)/prev*1000) / 10
}

func priceHistogram(listings []models.Listing, bins int) []models.HistogramBin {
	if len(listings) == 0 || bins <= 0 {
		return []models.HistogramBin{}
	}

	lo, hi := listings[0].Price, listings[0].Price
	for _, l := range listings[1:] {
		lo = math.Min(lo, l.Price)
		hi = math.Max(hi, l.Price)
	}
	if hi == lo {
		return []models.HistogramBin{{Lower: lo, Upper: hi, Count: len(listings)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	for _, l := range listings {
		idx := int((l.Price - lo) / width)
		if idx >= bins {
			idx = bins - 1 // max value belongs to the last bin
		}
		out[idx].Count++
	}
	return out
}

func locationAverages(listings []models.Listing) []models.LocationPrice {
	type acc struct {
		price, perSqft float64
		count          int
	}
	byLoc := make(map[string]*acc)
	for _, l := range listings {
		a, ok := byLoc[l.Location]
		if !ok {
			a = &acc{}
			byLoc[l.Location] = a
		}
		a.price += l.Price
		a.perSqft += l.PricePerSqft
		a.count++
	}

	out := make([]models.LocationPrice, 0, len(byLoc))
	for loc, a := range byLoc {
		out = append(out, models.LocationPrice{
			Location:     loc,
			MeanPrice:    a.price / float64(a.count),
			Count:        a.count,
			PricePerSqft: a.perSqft / float64(a.count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MeanPrice == out[j].MeanPrice {
			return out[i].Location < out[j].Location
		}
		return out[i].MeanPrice < out[j].MeanPrice
	})
	return out
}

func bhkAverages(listings []models.Listing) []models.BHKPrice {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, l := range listings {
		sums[l.BHK] += l.Price
		counts[l.BHK]++
	}
	out := make([]models.BHKPrice, 0, len(sums))
	for bhk, sum := range sums {
		out = append(out, models.BHKPrice{BHK: bhk, Price: sum / float64(counts[bhk]), Count: counts[bhk]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BHK < out[j].BHK })
	return out
}

func meanOf(listings []models.Listing, field func(models.Listing) float64) float64 {
	if len(listings) == 0 {
		return 0
	}
	sum := 0.0
	for _, l := range listings {
		sum += field(l)
	}
	return sum / float64(len(listings))
}
