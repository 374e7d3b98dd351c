package quote

import (
	"math"
	"strconv"
	"strings"

	"beebee/models"
	"beebee/utils"
)

// Refinement add-ons applied on top of an area-based estimate.
const (
	BathroomRate = 25.0
	RoomRate     = 10.0
	RoomCap      = 80.0

	bathroomSpread = 1.2
	roomSpread     = 1.1
)

// Estimator turns what a customer tells us about a job into a price range.
// It holds no mutable state and is safe for concurrent use.
type Estimator struct {
	rates RateTables
}

func NewEstimator(rates RateTables) *Estimator {
	if rates.tables == nil {
		rates = DefaultRates()
	}
	return &Estimator{rates: rates}
}

// Estimate never fails. Without a usable square footage the flat base range of
// the matching table is returned and bathroom/room counts are ignored. Other
// and unrecognized categories always get the flat Other range.
func (e *Estimator) Estimate(in models.QuoteInput) models.QuoteResult {
	table, ok := e.rates.tableFor(in.Category, in.Subtype)
	if !ok {
		other := e.rates.Table(models.RateOther)
		return models.QuoteResult{Low: other.BaseMin, High: other.BaseMax}
	}

	area, ok := positive(in.AreaSqFt)
	if !ok {
		return models.QuoteResult{Low: table.BaseMin, High: table.BaseMax}
	}

	low := math.Max(table.BaseMin, area*table.PerAreaUnitMin)
	high := math.Max(table.BaseMax, area*table.PerAreaUnitMax)

	if baths, ok := positive(in.BathroomCount); ok {
		low += baths * BathroomRate
		high += baths * BathroomRate * bathroomSpread
	}
	if rooms, ok := positive(in.RoomCount); ok {
		add := math.Min(rooms*RoomRate, RoomCap)
		low += add
		high += add * roomSpread
	}

	return models.QuoteResult{
		Low:         roundWhole(low),
		High:        roundWhole(high),
		IsAreaBased: true,
	}
}

// FromRequest parses raw form values into a QuoteInput.
func FromRequest(service, cleaningType string, sqft, baths, rooms models.FormValue) models.QuoteInput {
	return models.QuoteInput{
		Category:      models.ParseCategory(service),
		Subtype:       models.ParseSubtype(cleaningType),
		AreaSqFt:      ParseMetric(sqft.String()),
		BathroomCount: ParseMetric(baths.String()),
		RoomCount:     ParseMetric(rooms.String()),
	}
}

// ParseMetric returns nil for anything that is not a finite number above zero.
func ParseMetric(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return Metric(n)
}

// Metric wraps n, or returns nil when n is not usable.
func Metric(n float64) *float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return nil
	}
	return &n
}

// CanEstimate reports whether the range was derived from the property size.
// Other, and anything not recognized as a category, is always considered
// estimable since it has no size-based pricing.
func CanEstimate(in models.QuoteInput, r models.QuoteResult) bool {
	if r.IsAreaBased {
		return true
	}
	return !areaPriced(in.Category)
}

// FormatRange renders "$1,200 – $1,800".
func FormatRange(low, high float64) string {
	return utils.FormatUSDWhole(low) + " – " + utils.FormatUSDWhole(high)
}

func positive(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	n := *v
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return 0, false
	}
	return n, true
}

// roundWhole rounds half up like the site's Math.round.
func roundWhole(v float64) float64 {
	return math.Floor(v + 0.5)
}
