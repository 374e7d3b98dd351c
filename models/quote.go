package models

// RateKey identifies one of the six pricing tables.
type RateKey string

const (
	RateHomeRegular  RateKey = "home-regular"
	RateHomeDeep     RateKey = "home-deep"
	RateMoveInOut    RateKey = "move-in-out"
	RateCommercial   RateKey = "commercial"
	RateConstruction RateKey = "construction"
	RateOther        RateKey = "other"
)

// AllRateKeys lists every table the estimator expects to find.
var AllRateKeys = []RateKey{
	RateHomeRegular,
	RateHomeDeep,
	RateMoveInOut,
	RateCommercial,
	RateConstruction,
	RateOther,
}

// RateTable holds per-square-foot pricing and the flat floor for one kind of job.
type RateTable struct {
	PerAreaUnitMin float64 `json:"perAreaUnitMin"`
	PerAreaUnitMax float64 `json:"perAreaUnitMax"`
	BaseMin        float64 `json:"baseMin"`
	BaseMax        float64 `json:"baseMax"`
}

// QuoteInput is what the contact form knows about a job. Nil metrics were not
// provided (or were not usable numbers).
type QuoteInput struct {
	Category      ServiceCategory
	Subtype       CleaningSubtype
	AreaSqFt      *float64
	BathroomCount *float64
	RoomCount     *float64
}

type QuoteResult struct {
	Low         float64 `json:"min"`
	High        float64 `json:"max"`
	IsAreaBased bool    `json:"isAreaBased"`
}

// QuoteRequest is the JSON body accepted by the estimate endpoint.
type QuoteRequest struct {
	Service       string    `json:"service"`
	CleaningType  string    `json:"cleaningType"`
	SquareFootage FormValue `json:"squareFootage"`
	Bathrooms     FormValue `json:"bathrooms"`
	Rooms         FormValue `json:"rooms"`
}

type QuoteResponse struct {
	QuoteResult
	CanEstimate bool   `json:"canEstimate"`
	Formatted   string `json:"formatted"`
}
