package quote

import (
	"errors"
	"fmt"
	"math"

	"beebee/config"
	"beebee/models"
)

// RateTables is the immutable pricing configuration for every job type.
// Build it with DefaultRates or NewRateTables; it is never mutated afterwards.
type RateTables struct {
	tables map[models.RateKey]models.RateTable
}

// DefaultRates returns the published Utah-market pricing.
func DefaultRates() RateTables {
	return RateTables{tables: map[models.RateKey]models.RateTable{
		models.RateHomeRegular:  {PerAreaUnitMin: 0.10, PerAreaUnitMax: 0.18, BaseMin: 100, BaseMax: 150},
		models.RateHomeDeep:     {PerAreaUnitMin: 0.15, PerAreaUnitMax: 0.25, BaseMin: 150, BaseMax: 250},
		models.RateMoveInOut:    {PerAreaUnitMin: 0.12, PerAreaUnitMax: 0.22, BaseMin: 200, BaseMax: 350},
		models.RateCommercial:   {PerAreaUnitMin: 0.08, PerAreaUnitMax: 0.15, BaseMin: 150, BaseMax: 250},
		models.RateConstruction: {PerAreaUnitMin: 0.15, PerAreaUnitMax: 0.28, BaseMin: 250, BaseMax: 400},
		models.RateOther:        {PerAreaUnitMin: 0.10, PerAreaUnitMax: 0.20, BaseMin: 120, BaseMax: 200},
	}}
}

// NewRateTables overlays overrides from the config file on the defaults.
// Unknown keys and inconsistent ranges are rejected.
func NewRateTables(overrides map[string]config.RateConfig) (RateTables, error) {
	base := DefaultRates()
	merged := make(map[models.RateKey]models.RateTable, len(base.tables))
	for k, v := range base.tables {
		merged[k] = v
	}

	for name, rc := range overrides {
		key := models.RateKey(name)
		if _, ok := merged[key]; !ok {
			return RateTables{}, fmt.Errorf("unknown rate table %q", name)
		}
		t := models.RateTable{
			PerAreaUnitMin: rc.PerSqFtMin,
			PerAreaUnitMax: rc.PerSqFtMax,
			BaseMin:        rc.BaseMin,
			BaseMax:        rc.BaseMax,
		}
		if err := validateTable(t); err != nil {
			return RateTables{}, fmt.Errorf("rate table %q: %w", name, err)
		}
		merged[key] = t
	}
	return RateTables{tables: merged}, nil
}

func validateTable(t models.RateTable) error {
	for _, v := range []float64{t.PerAreaUnitMin, t.PerAreaUnitMax, t.BaseMin, t.BaseMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return errors.New("values must be finite and non-negative")
		}
	}
	if t.PerAreaUnitMin > t.PerAreaUnitMax {
		return fmt.Errorf("per square foot min %.2f exceeds max %.2f", t.PerAreaUnitMin, t.PerAreaUnitMax)
	}
	if t.BaseMin > t.BaseMax {
		return fmt.Errorf("base min %.2f exceeds max %.2f", t.BaseMin, t.BaseMax)
	}
	return nil
}

// Table returns the table for key. Every key in models.AllRateKeys is present.
func (r RateTables) Table(key models.RateKey) models.RateTable {
	return r.tables[key]
}

func areaPriced(category models.ServiceCategory) bool {
	switch category {
	case models.CategoryHomeCleaning, models.CategoryMoveInOut,
		models.CategoryCommercialCleaning, models.CategoryConstruction:
		return true
	}
	return false
}

// tableFor picks the area-priced table for category. It reports false for
// Other and for any value outside the known categories.
func (r RateTables) tableFor(category models.ServiceCategory, subtype models.CleaningSubtype) (models.RateTable, bool) {
	var key models.RateKey
	switch category {
	case models.CategoryHomeCleaning:
		key = models.RateHomeRegular
		if subtype == models.SubtypeDeep {
			key = models.RateHomeDeep
		}
	case models.CategoryMoveInOut:
		key = models.RateMoveInOut
	case models.CategoryCommercialCleaning:
		key = models.RateCommercial
	case models.CategoryConstruction:
		key = models.RateConstruction
	default:
		return models.RateTable{}, false
	}
	return r.tables[key], true
}
