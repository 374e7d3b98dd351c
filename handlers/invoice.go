package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"beebee/models"
	"beebee/services/invoice"
	"beebee/services/payment"
	"beebee/utils"
)

// LinkIssuer is implemented by payment.Issuer.
type LinkIssuer interface {
	Enabled() bool
	IssueDeposit(ctx context.Context, inv models.InvoicePayload, total float64) (*models.PaymentLink, error)
	IssueAll(ctx context.Context, inv models.InvoicePayload, total float64) (deposit, balance *models.PaymentLink, err error)
}

type InvoiceHandler struct {
	issuer   LinkIssuer
	renderer invoice.Renderer
	now      func() time.Time
}

func NewInvoiceHandler(issuer LinkIssuer, renderer invoice.Renderer) *InvoiceHandler {
	return &InvoiceHandler{issuer: issuer, renderer: renderer, now: time.Now}
}

// bindInvoice decodes and normalizes the builder payload, writing the error
// response itself when that fails.
func (h *InvoiceHandler) bindInvoice(c *gin.Context) (models.InvoicePayload, models.InvoiceTotals, bool) {
	var body models.InvoicePayload
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return body, models.InvoiceTotals{}, false
	}

	payload, totals, err := invoice.Normalize(body, h.now())
	if errors.Is(err, invoice.ErrNoLineItems) {
		utils.JSONError(c, http.StatusBadRequest, "At least one line item is required", "")
		return payload, totals, false
	}
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid invoice", err.Error())
		return payload, totals, false
	}
	return payload, totals, true
}

// TotalsHandler previews totals and the deposit split without side effects.
func (h *InvoiceHandler) TotalsHandler(c *gin.Context) {
	payload, totals, ok := h.bindInvoice(c)
	if !ok {
		return
	}

	split := invoice.Split(totals.Total, invoice.DefaultDepositFraction)
	_, depositOK := split.Deposit()
	_, balanceOK := split.Balance()

	c.JSON(http.StatusOK, models.InvoicePreview{
		LineItems:      payload.LineItems,
		InvoiceTotals:  totals,
		DepositSplit:   split,
		DepositPayable: depositOK,
		BalancePayable: balanceOK,
	})
}

// PDFHandler renders the invoice with whichever payment links could be issued.
func (h *InvoiceHandler) PDFHandler(c *gin.Context) {
	payload, totals, ok := h.bindInvoice(c)
	if !ok {
		return
	}
	logger := getLogger(c).With(zap.String("invoice", payload.InvoiceNumber))

	deposit, balance, err := h.issuer.IssueAll(c.Request.Context(), payload, totals.Total)
	if err != nil {
		logger.Error("Payment link creation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to generate PDF", err.Error())
		return
	}

	pdf, err := h.renderer.Render(models.InvoiceDocument{
		Invoice: payload,
		Totals:  totals,
		Deposit: deposit,
		Balance: balance,
	})
	if err != nil {
		logger.Error("PDF rendering failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to generate PDF", err.Error())
		return
	}

	logger.Info("Invoice PDF generated",
		zap.Float64("total", totals.Total),
		zap.Bool("depositLink", deposit != nil),
		zap.Bool("balanceLink", balance != nil),
	)
	c.Header("Content-Disposition", `attachment; filename="`+invoice.Filename(payload.InvoiceNumber)+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// PaymentLinkHandler creates a standalone deposit link.
func (h *InvoiceHandler) PaymentLinkHandler(c *gin.Context) {
	if !h.issuer.Enabled() {
		utils.JSONError(c, http.StatusInternalServerError, "Stripe is not configured. Add STRIPE_SECRET_KEY to .env.local", "")
		return
	}

	payload, totals, ok := h.bindInvoice(c)
	if !ok {
		return
	}

	link, err := h.issuer.IssueDeposit(c.Request.Context(), payload, totals.Total)
	switch {
	case errors.Is(err, payment.ErrDepositBelowMinimum), errors.Is(err, payment.ErrPaymentsNotConfigured):
		utils.JSONError(c, http.StatusBadRequest, "Could not create payment link. Deposit must be at least $0.50, and Stripe must be configured.", "")
		return
	case err != nil:
		getLogger(c).Error("Payment link creation failed", zap.String("invoice", payload.InvoiceNumber), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create payment link", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.PaymentLinkResponse{
		URL:           link.URL,
		DepositAmount: link.Amount,
		Total:         totals.Total,
	})
}
