package models

import "math"

// LineItem is one billable row on an invoice. Amount is always recomputed from
// Quantity and UnitPrice before it is used.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// InvoicePayload is what the admin invoice builder posts.
type InvoicePayload struct {
	InvoiceNumber   string     `json:"invoiceNumber"`
	InvoiceDate     string     `json:"invoiceDate"`
	DueDate         string     `json:"dueDate"`
	CustomerName    string     `json:"customerName"`
	CustomerEmail   string     `json:"customerEmail,omitempty"`
	CustomerAddress string     `json:"customerAddress,omitempty"`
	LineItems       []LineItem `json:"lineItems"`
	TaxRate         *float64   `json:"taxRate,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

type InvoiceTotals struct {
	Subtotal  float64 `json:"subtotal"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`
}

// MinimumChargeCents is the smallest amount the payment processor accepts.
const MinimumChargeCents = 50

// DepositSplit divides a total into an upfront deposit and the remaining balance.
type DepositSplit struct {
	DepositAmount float64 `json:"depositAmount"`
	BalanceAmount float64 `json:"balanceAmount"`
}

// Deposit returns the deposit and whether it is large enough to charge.
func (s DepositSplit) Deposit() (float64, bool) {
	return s.DepositAmount, Payable(s.DepositAmount)
}

// Balance returns the balance and whether it is large enough to charge.
func (s DepositSplit) Balance() (float64, bool) {
	return s.BalanceAmount, Payable(s.BalanceAmount)
}

// Cents converts a rounded currency amount to minor units.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Payable reports whether amount clears MinimumChargeCents.
func Payable(amount float64) bool {
	return Cents(amount) >= MinimumChargeCents
}

// InvoiceDocument is everything the PDF renderer needs. Links are optional.
type InvoiceDocument struct {
	Invoice InvoicePayload
	Totals  InvoiceTotals
	Deposit *PaymentLink
	Balance *PaymentLink
}

// InvoicePreview is returned by the totals endpoint so the builder can show
// exactly what the PDF and payment links will use.
type InvoicePreview struct {
	LineItems []LineItem `json:"lineItems"`
	InvoiceTotals
	DepositSplit
	DepositPayable bool `json:"depositPayable"`
	BalancePayable bool `json:"balancePayable"`
}
