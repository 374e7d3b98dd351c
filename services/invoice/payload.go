package invoice

import (
	"regexp"
	"time"

	"beebee/models"
)

const DefaultInvoiceNumber = "INV-001"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// Normalize fills the defaults the admin builder leaves blank and recomputes
// totals. now is taken as a parameter so dates are deterministic in tests.
func Normalize(p models.InvoicePayload, now time.Time) (models.InvoicePayload, models.InvoiceTotals, error) {
	today := now.Format(time.DateOnly)
	if p.InvoiceNumber == "" {
		p.InvoiceNumber = DefaultInvoiceNumber
	}
	if p.InvoiceDate == "" {
		p.InvoiceDate = today
	}
	if p.DueDate == "" {
		p.DueDate = p.InvoiceDate
	}
	if p.TaxRate == nil {
		zero := 0.0
		p.TaxRate = &zero
	}

	totals, items, err := ComputeTotals(p.LineItems, p.TaxRate)
	if err != nil {
		return p, models.InvoiceTotals{}, err
	}
	p.LineItems = items
	return p, totals, nil
}

// Filename is the attachment name for an invoice PDF.
func Filename(invoiceNumber string) string {
	return "invoice-" + unsafeFilenameChars.ReplaceAllString(invoiceNumber, "_") + ".pdf"
}

// DisplayDate renders a YYYY-MM-DD date as MM/DD/YYYY. Anything else is
// returned unchanged.
func DisplayDate(iso string) string {
	t, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return iso
	}
	return t.Format("01/02/2006")
}
