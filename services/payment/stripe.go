package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"beebee/models"
)

// StripeLinkCreator creates a one-off product and price, then a payment link
// for it.
type StripeLinkCreator struct {
	api    *client.API
	logger *zap.Logger
}

func NewStripeLinkCreator(secretKey string, logger *zap.Logger) *StripeLinkCreator {
	return newStripeLinkCreator(secretKey, nil, logger)
}

// newStripeLinkCreator lets tests point the client at a fake API.
func newStripeLinkCreator(secretKey string, backends *stripe.Backends, logger *zap.Logger) *StripeLinkCreator {
	return &StripeLinkCreator{
		api:    client.New(secretKey, backends),
		logger: logger,
	}
}

func (s *StripeLinkCreator) CreateLink(ctx context.Context, req models.PaymentLinkRequest) (string, error) {
	productParams := &stripe.ProductParams{
		Name: stripe.String(req.ProductName),
	}
	if req.ProductDescription != "" {
		productParams.Description = stripe.String(req.ProductDescription)
	}
	productParams.Context = ctx
	product, err := s.api.Products.New(productParams)
	if err != nil {
		return "", fmt.Errorf("create stripe product: %w", err)
	}

	priceParams := &stripe.PriceParams{
		Currency:   stripe.String(req.Currency),
		UnitAmount: stripe.Int64(req.AmountCents),
		Product:    stripe.String(product.ID),
	}
	priceParams.Context = ctx
	price, err := s.api.Prices.New(priceParams)
	if err != nil {
		return "", fmt.Errorf("create stripe price: %w", err)
	}

	linkParams := &stripe.PaymentLinkParams{
		LineItems: []*stripe.PaymentLinkLineItemParams{
			{Price: stripe.String(price.ID), Quantity: stripe.Int64(1)},
		},
	}
	if req.RedirectURL != "" {
		linkParams.AfterCompletion = &stripe.PaymentLinkAfterCompletionParams{
			Type:     stripe.String(string(stripe.PaymentLinkAfterCompletionTypeRedirect)),
			Redirect: &stripe.PaymentLinkAfterCompletionRedirectParams{URL: stripe.String(req.RedirectURL)},
		}
	}
	linkParams.AddMetadata("invoice_number", req.InvoiceNumber)
	linkParams.AddMetadata("customer_name", req.CustomerName)
	linkParams.AddMetadata("type", string(req.Kind))
	linkParams.Context = ctx

	link, err := s.api.PaymentLinks.New(linkParams)
	if err != nil {
		return "", fmt.Errorf("create stripe payment link: %w", err)
	}

	s.logger.Info("Payment link created",
		zap.String("invoice", req.InvoiceNumber),
		zap.String("type", string(req.Kind)),
		zap.Int64("amountCents", req.AmountCents),
		zap.String("paymentLink", link.ID),
	)
	return link.URL, nil
}
