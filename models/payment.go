package models

// PaymentKind tells the deposit link apart from the balance link.
type PaymentKind string

const (
	PaymentDeposit PaymentKind = "deposit"
	PaymentBalance PaymentKind = "balance"
)

// PaymentLinkRequest describes one hosted checkout link to create.
type PaymentLinkRequest struct {
	Kind               PaymentKind
	InvoiceNumber      string
	CustomerName       string
	AmountCents        int64
	Currency           string
	ProductName        string
	ProductDescription string
	RedirectURL        string
}

type PaymentLink struct {
	Kind   PaymentKind `json:"type"`
	URL    string      `json:"url"`
	Amount float64     `json:"amount"`
}

// PaymentLinkResponse is returned by the payment-link endpoint.
type PaymentLinkResponse struct {
	URL           string  `json:"url"`
	DepositAmount float64 `json:"depositAmount"`
	Total         float64 `json:"total"`
}
