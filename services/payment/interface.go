package payment

import (
	"context"
	"errors"

	"beebee/models"
)

var (
	ErrPaymentsNotConfigured = errors.New("stripe is not configured")
	ErrDepositBelowMinimum   = errors.New("deposit must be at least $0.50")
)

// LinkCreator creates a hosted payment page for a single fixed amount.
type LinkCreator interface {
	CreateLink(ctx context.Context, req models.PaymentLinkRequest) (string, error)
}

// LinkCache remembers links already created for an identical charge so that
// regenerating a PDF does not mint a new Stripe link each time.
type LinkCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, url string)
}
