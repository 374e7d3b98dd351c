package invoice

import (
	"errors"

	"github.com/shopspring/decimal"

	"beebee/models"
)

// DefaultDepositFraction is the share of the total collected when a quote is accepted.
const DefaultDepositFraction = 0.5

// MinimumChargeCents mirrors models.MinimumChargeCents for callers of this package.
const MinimumChargeCents = models.MinimumChargeCents

var ErrNoLineItems = errors.New("at least one line item is required")

// ComputeTotals recomputes every line amount from quantity and unit price,
// discarding any supplied amount, and sums them with the optional tax rate.
// The normalized items are returned so callers render exactly what was summed.
func ComputeTotals(items []models.LineItem, taxRate *float64) (models.InvoiceTotals, []models.LineItem, error) {
	if len(items) == 0 {
		return models.InvoiceTotals{}, nil, ErrNoLineItems
	}

	normalized := make([]models.LineItem, len(items))
	sum := decimal.Zero
	for i, item := range items {
		amount := decimal.NewFromFloat(item.Quantity).Mul(decimal.NewFromFloat(item.UnitPrice)).Round(2)
		item.Amount = amount.InexactFloat64()
		normalized[i] = item
		sum = sum.Add(amount)
	}

	subtotal := sum.Round(2)
	tax := decimal.Zero
	if taxRate != nil && *taxRate > 0 {
		tax = subtotal.Mul(decimal.NewFromFloat(*taxRate)).Round(2)
	}
	total := subtotal.Add(tax).Round(2)

	return models.InvoiceTotals{
		Subtotal:  subtotal.InexactFloat64(),
		TaxAmount: tax.InexactFloat64(),
		Total:     total.InexactFloat64(),
	}, normalized, nil
}

// Split always returns both portions, rounded to cents independently.
func Split(total, fraction float64) models.DepositSplit {
	t := decimal.NewFromFloat(total)
	f := decimal.NewFromFloat(fraction)
	return models.DepositSplit{
		DepositAmount: t.Mul(f).Round(2).InexactFloat64(),
		BalanceAmount: t.Mul(decimal.NewFromInt(1).Sub(f)).Round(2).InexactFloat64(),
	}
}

// SplitDeposit returns nil when the deposit is too small to charge. A non-nil
// result may still carry an unpayable balance; check Balance() before linking it.
func SplitDeposit(total, fraction float64) *models.DepositSplit {
	s := Split(total, fraction)
	if _, ok := s.Deposit(); !ok {
		return nil
	}
	return &s
}
