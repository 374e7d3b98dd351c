package models

// Email is a rendered message ready to hand to the mail provider.
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// ContactRequest is the lead form posted from the contact page. Property
// metrics arrive as raw form values and are optional.
type ContactRequest struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Service       string    `json:"service"`
	CleaningType  string    `json:"cleaningType"`
	SquareFootage FormValue `json:"squareFootage"`
	Floors        FormValue `json:"floors"`
	Bathrooms     FormValue `json:"bathrooms"`
	Kitchens      FormValue `json:"kitchens"`
	Rooms         FormValue `json:"rooms"`
	Message       string    `json:"message"`
}

type ContactResult struct {
	ID       string      `json:"id,omitempty"`
	Estimate QuoteResult `json:"estimate"`
}
