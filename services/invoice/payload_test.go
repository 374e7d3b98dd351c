package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beebee/models"
)

var fixedNow = time.Date(2026, time.March, 9, 15, 4, 0, 0, time.UTC)

func TestNormalize_Defaults(t *testing.T) {
	p, totals, err := Normalize(models.InvoicePayload{
		CustomerName: "Jane Doe",
		LineItems:    []models.LineItem{{Description: "Move-out clean", Quantity: 1, UnitPrice: 320}},
	}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, DefaultInvoiceNumber, p.InvoiceNumber)
	assert.Equal(t, "2026-03-09", p.InvoiceDate)
	assert.Equal(t, "2026-03-09", p.DueDate)
	require.NotNil(t, p.TaxRate)
	assert.Zero(t, *p.TaxRate)
	assert.Equal(t, 320.0, totals.Total)
	assert.Equal(t, 320.0, p.LineItems[0].Amount)
}

func TestNormalize_DueDateFollowsInvoiceDate(t *testing.T) {
	p, _, err := Normalize(models.InvoicePayload{
		InvoiceNumber: "INV-042",
		InvoiceDate:   "2026-01-15",
		LineItems:     []models.LineItem{{Quantity: 1, UnitPrice: 10}},
	}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "INV-042", p.InvoiceNumber)
	assert.Equal(t, "2026-01-15", p.DueDate)
}

func TestNormalize_RequiresLineItems(t *testing.T) {
	_, _, err := Normalize(models.InvoicePayload{InvoiceNumber: "INV-9"}, fixedNow)
	assert.ErrorIs(t, err, ErrNoLineItems)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice-INV-001.pdf", Filename("INV-001"))
	assert.Equal(t, "invoice-2026_03_Smith_.pdf", Filename("2026/03 Smith!"))
	assert.Equal(t, "invoice-a_b.pdf", Filename("a_b"))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "03/09/2026", DisplayDate("2026-03-09"))
	assert.Equal(t, "soon", DisplayDate("soon"))
}
