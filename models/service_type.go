// models/service_type.go
package models

import "strings"

// ServiceCategory is the kind of cleaning a customer asks a quote for.
type ServiceCategory int

const (
	CategoryOther ServiceCategory = iota
	CategoryHomeCleaning
	CategoryCommercialCleaning
	CategoryMoveInOut
	CategoryConstruction
)

// Form values used by the contact page.
const (
	ServiceHomeCleaning       = "Home Cleaning"
	ServiceCommercialCleaning = "Commercial Cleaning"
	ServiceMoveInOut          = "Move In/Out Cleaning"
	ServiceConstruction       = "Construction Cleaning"
	ServiceOther              = "Other"
)

func (c ServiceCategory) String() string {
	switch c {
	case CategoryHomeCleaning:
		return ServiceHomeCleaning
	case CategoryCommercialCleaning:
		return ServiceCommercialCleaning
	case CategoryMoveInOut:
		return ServiceMoveInOut
	case CategoryConstruction:
		return ServiceConstruction
	default:
		return ServiceOther
	}
}

// ParseCategory maps a form value to a category. Anything unrecognised,
// including the empty string, is CategoryOther.
func ParseCategory(s string) ServiceCategory {
	switch strings.TrimSpace(s) {
	case ServiceHomeCleaning:
		return CategoryHomeCleaning
	case ServiceCommercialCleaning:
		return CategoryCommercialCleaning
	case ServiceMoveInOut:
		return CategoryMoveInOut
	case ServiceConstruction:
		return CategoryConstruction
	default:
		return CategoryOther
	}
}

// CleaningSubtype only matters for home cleaning.
type CleaningSubtype int

const (
	SubtypeRegular CleaningSubtype = iota
	SubtypeDeep
)

const (
	CleaningRegular = "Regular Cleaning"
	CleaningDeep    = "Deep Cleaning"
)

func (s CleaningSubtype) String() string {
	if s == SubtypeDeep {
		return CleaningDeep
	}
	return CleaningRegular
}

func ParseSubtype(s string) CleaningSubtype {
	if strings.TrimSpace(s) == CleaningDeep {
		return SubtypeDeep
	}
	return SubtypeRegular
}
