package payment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"beebee/models"
	"beebee/services/invoice"
)

// Issuer turns invoice totals into deposit and balance links. With a nil
// creator every link is omitted.
type Issuer struct {
	creator      LinkCreator
	cache        LinkCache
	siteURL      string
	businessName string
	fraction     float64
	logger       *zap.Logger
}

func NewIssuer(creator LinkCreator, cache LinkCache, siteURL, businessName string, logger *zap.Logger) *Issuer {
	return &Issuer{
		creator:      creator,
		cache:        cache,
		siteURL:      strings.TrimRight(siteURL, "/"),
		businessName: businessName,
		fraction:     invoice.DefaultDepositFraction,
		logger:       logger,
	}
}

// Enabled reports whether a payment provider is configured.
func (i *Issuer) Enabled() bool {
	return i.creator != nil
}

// IssueDeposit creates the deposit link for the payment-link endpoint, where
// an unconfigured provider or a sub-minimum deposit is an error.
func (i *Issuer) IssueDeposit(ctx context.Context, inv models.InvoicePayload, total float64) (*models.PaymentLink, error) {
	if !i.Enabled() {
		return nil, ErrPaymentsNotConfigured
	}
	split := invoice.SplitDeposit(total, i.fraction)
	if split == nil {
		return nil, ErrDepositBelowMinimum
	}
	return i.issue(ctx, inv, models.PaymentDeposit, split.DepositAmount)
}

// IssueAll creates the deposit and balance links concurrently. Each is nil
// when its amount is below the processor minimum or payments are disabled.
func (i *Issuer) IssueAll(ctx context.Context, inv models.InvoicePayload, total float64) (deposit, balance *models.PaymentLink, err error) {
	if !i.Enabled() {
		return nil, nil, nil
	}

	split := invoice.Split(total, i.fraction)
	g, gctx := errgroup.WithContext(ctx)

	if amount, ok := split.Deposit(); ok {
		g.Go(func() error {
			link, err := i.issue(gctx, inv, models.PaymentDeposit, amount)
			deposit = link
			return err
		})
	}
	if amount, ok := split.Balance(); ok {
		g.Go(func() error {
			link, err := i.issue(gctx, inv, models.PaymentBalance, amount)
			balance = link
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return deposit, balance, nil
}

func (i *Issuer) issue(ctx context.Context, inv models.InvoicePayload, kind models.PaymentKind, amount float64) (*models.PaymentLink, error) {
	req := i.request(inv, kind, amount)

	key := cacheKey(req)
	if i.cache != nil {
		if url, ok := i.cache.Get(ctx, key); ok {
			i.logger.Debug("Payment link served from cache", zap.String("key", key))
			return &models.PaymentLink{Kind: kind, URL: url, Amount: amount}, nil
		}
	}

	url, err := i.creator.CreateLink(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s link for invoice %s: %w", kind, inv.InvoiceNumber, err)
	}
	if i.cache != nil {
		i.cache.Set(ctx, key, url)
	}
	return &models.PaymentLink{Kind: kind, URL: url, Amount: amount}, nil
}

func (i *Issuer) request(inv models.InvoicePayload, kind models.PaymentKind, amount float64) models.PaymentLinkRequest {
	req := models.PaymentLinkRequest{
		Kind:          kind,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.CustomerName,
		AmountCents:   models.Cents(amount),
		Currency:      "usd",
		RedirectURL:   i.siteURL + "/contact?paid=1",
	}
	switch kind {
	case models.PaymentDeposit:
		req.ProductName = fmt.Sprintf("%.0f%% Deposit - Invoice %s", i.fraction*100, inv.InvoiceNumber)
		req.ProductDescription = fmt.Sprintf("%s - Deposit for %s. Balance due after service.", i.businessName, inv.CustomerName)
	default:
		req.ProductName = "Balance Due - Invoice " + inv.InvoiceNumber
		req.ProductDescription = fmt.Sprintf("%s - Remaining balance for %s. Due after service.", i.businessName, inv.CustomerName)
	}
	return req
}
