package invoice

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"beebee/models"
	"beebee/utils"
)

// Renderer produces a printable invoice.
type Renderer interface {
	Render(doc models.InvoiceDocument) ([]byte, error)
}

// PDFRenderer lays out an A4 invoice with gofpdf core fonts. Totals are taken
// from the document as computed; the renderer never recomputes them.
type PDFRenderer struct {
	BusinessName string
	Tagline      string
	LogoPath     string
	logger       *zap.Logger
}

func NewPDFRenderer(businessName, logoPath string, logger *zap.Logger) *PDFRenderer {
	return &PDFRenderer{
		BusinessName: businessName,
		Tagline:      "Professional Cleaning Services",
		LogoPath:     logoPath,
		logger:       logger,
	}
}

const (
	pageMargin = 14.0
	colDesc    = 92.0
	colQty     = 18.0
	colPrice   = 34.0
	colAmount  = 38.0
)

func (r *PDFRenderer) Render(doc models.InvoiceDocument) ([]byte, error) {
	inv := doc.Invoice

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.InvoiceNumber, true)
	pdf.SetAuthor(r.BusinessName, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(140, 140, 140)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	r.header(pdf, tr)
	r.parties(pdf, tr, inv)
	r.lineItems(pdf, tr, inv.LineItems)
	r.totals(pdf, inv.TaxRate, doc.Totals)

	if inv.Notes != "" {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 7, "Notes", "T", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(102, 102, 102)
		pdf.MultiCell(0, 5, tr(inv.Notes), "", "L", false)
	}

	r.paymentLinks(pdf, doc.Deposit, doc.Balance)

	if err := pdf.Error(); err != nil {
		r.logger.Error("invoice pdf: layout failed", zap.String("invoice", inv.InvoiceNumber), zap.Error(err))
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.logger.Error("invoice pdf: output failed", zap.String("invoice", inv.InvoiceNumber), zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) header(pdf *gofpdf.Fpdf, tr func(string) string) {
	textX := pageMargin
	if r.LogoPath != "" {
		if _, err := os.Stat(r.LogoPath); err == nil {
			pdf.ImageOptions(r.LogoPath, pageMargin, pageMargin, 28, 0, false,
				gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
			textX += 34
		} else {
			r.logger.Warn("invoice pdf: logo not found, rendering without it", zap.String("path", r.LogoPath))
		}
	}

	pdf.SetXY(textX, pageMargin)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, tr(r.BusinessName), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 6, tr(r.Tagline), "", 1, "L", false, 0, "")
	pdf.SetY(pageMargin + 28)
}

func (r *PDFRenderer) parties(pdf *gofpdf.Fpdf, tr func(string) string, inv models.InvoicePayload) {
	top := pdf.GetY()

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(100, 7, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{inv.CustomerName, inv.CustomerEmail, inv.CustomerAddress} {
		if line != "" {
			pdf.MultiCell(100, 5, tr(line), "", "L", false)
		}
	}
	billBottom := pdf.GetY()

	meta := [][2]string{
		{"Invoice #", inv.InvoiceNumber},
		{"Date", DisplayDate(inv.InvoiceDate)},
		{"Due Date", DisplayDate(inv.DueDate)},
	}
	y := top
	for _, row := range meta {
		pdf.SetXY(130, y)
		pdf.SetTextColor(102, 102, 102)
		pdf.CellFormat(24, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 6, tr(row[1]), "", 0, "L", false, 0, "")
		y += 6
	}

	if y > billBottom {
		billBottom = y
	}
	pdf.SetXY(pageMargin, billBottom+8)
}

func (r *PDFRenderer) lineItems(pdf *gofpdf.Fpdf, tr func(string) string, items []models.LineItem) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(244, 244, 244)
	pdf.SetDrawColor(221, 221, 221)
	pdf.CellFormat(colDesc, 8, "Description", "B", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, 8, "Qty", "B", 0, "L", true, 0, "")
	pdf.CellFormat(colPrice, 8, "Unit Price", "B", 0, "R", true, 0, "")
	pdf.CellFormat(colAmount, 8, "Amount", "B", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetDrawColor(238, 238, 238)
	for _, item := range items {
		pdf.CellFormat(colDesc, 8, tr(truncate(item.Description, 60)), "B", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 8, strconv.FormatFloat(item.Quantity, 'f', -1, 64), "B", 0, "L", false, 0, "")
		pdf.CellFormat(colPrice, 8, utils.FormatUSD(item.UnitPrice), "B", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, 8, utils.FormatUSD(item.Amount), "B", 1, "R", false, 0, "")
	}
}

func (r *PDFRenderer) totals(pdf *gofpdf.Fpdf, taxRate *float64, t models.InvoiceTotals) {
	const labelX = 120.0
	pdf.Ln(6)

	row := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetX(labelX)
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(38, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, value, "", 1, "R", false, 0, "")
	}

	row("Subtotal", utils.FormatUSD(t.Subtotal), false)
	if taxRate != nil && *taxRate > 0 {
		row(fmt.Sprintf("Tax (%.0f%%)", *taxRate*100), utils.FormatUSD(t.TaxAmount), false)
	}
	pdf.Ln(2)
	row("Total", utils.FormatUSD(t.Total), true)
}

func (r *PDFRenderer) paymentLinks(pdf *gofpdf.Fpdf, deposit, balance *models.PaymentLink) {
	if deposit == nil && balance == nil {
		return
	}

	pdf.Ln(8)
	pdf.SetDrawColor(238, 238, 238)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Pay Online", "T", 1, "L", false, 0, "")

	link := func(text string, l *models.PaymentLink) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(51, 51, 51)
		pdf.CellFormat(0, 6, text, "", 1, "L", false, 0, "")
		pdf.SetTextColor(37, 99, 235)
		pdf.CellFormat(0, 6, l.URL, "", 1, "L", false, 0, l.URL)
		pdf.Ln(2)
	}

	if deposit != nil {
		link(fmt.Sprintf("50%% deposit (%s) due at acceptance:", utils.FormatUSD(deposit.Amount)), deposit)
	}
	if balance != nil {
		link(fmt.Sprintf("Balance (%s) due after service:", utils.FormatUSD(balance.Amount)), balance)
	}
	pdf.SetTextColor(0, 0, 0)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
