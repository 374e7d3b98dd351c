package payment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"beebee/models"
)

// stubCreator records every request and hands back a predictable URL.
type stubCreator struct {
	mu   sync.Mutex
	reqs []models.PaymentLinkRequest
	err  error
}

func (s *stubCreator) CreateLink(_ context.Context, req models.PaymentLinkRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return "", s.err
	}
	return "https://pay.test/" + string(req.Kind), nil
}

func (s *stubCreator) calls() []models.PaymentLinkRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.PaymentLinkRequest(nil), s.reqs...)
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newMemoryCache() *memoryCache { return &memoryCache{items: map[string]string{}} }

func (c *memoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, key, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = url
}

var testInvoice = models.InvoicePayload{InvoiceNumber: "INV-7", CustomerName: "Jane Doe"}

func newTestIssuer(creator LinkCreator, cache LinkCache) *Issuer {
	return NewIssuer(creator, cache, "https://beebee.test/", "BeeBee Cleaning", zap.NewNop())
}

func TestIssueAll_CreatesBothLinks(t *testing.T) {
	creator := &stubCreator{}
	deposit, balance, err := newTestIssuer(creator, nil).IssueAll(context.Background(), testInvoice, 108)
	require.NoError(t, err)

	require.NotNil(t, deposit)
	require.NotNil(t, balance)
	assert.Equal(t, 54.0, deposit.Amount)
	assert.Equal(t, "https://pay.test/deposit", deposit.URL)
	assert.Equal(t, 54.0, balance.Amount)

	reqs := creator.calls()
	require.Len(t, reqs, 2)
	byKind := map[models.PaymentKind]models.PaymentLinkRequest{}
	for _, r := range reqs {
		byKind[r.Kind] = r
	}

	dep := byKind[models.PaymentDeposit]
	assert.Equal(t, int64(5400), dep.AmountCents)
	assert.Equal(t, "usd", dep.Currency)
	assert.Equal(t, "50% Deposit - Invoice INV-7", dep.ProductName)
	assert.Equal(t, "https://beebee.test/contact?paid=1", dep.RedirectURL)
	assert.Equal(t, "Jane Doe", dep.CustomerName)

	assert.Equal(t, "Balance Due - Invoice INV-7", byKind[models.PaymentBalance].ProductName)
}

func TestIssueAll_SkipsSubMinimumAmounts(t *testing.T) {
	creator := &stubCreator{}
	deposit, balance, err := newTestIssuer(creator, nil).IssueAll(context.Background(), testInvoice, 0.80)
	require.NoError(t, err)

	assert.Nil(t, deposit)
	assert.Nil(t, balance)
	assert.Empty(t, creator.calls())
}

func TestIssueAll_DisabledReturnsNothing(t *testing.T) {
	i := newTestIssuer(nil, nil)
	assert.False(t, i.Enabled())

	deposit, balance, err := i.IssueAll(context.Background(), testInvoice, 500)
	require.NoError(t, err)
	assert.Nil(t, deposit)
	assert.Nil(t, balance)
}

func TestIssueAll_PropagatesProviderError(t *testing.T) {
	boom := errors.New("card_error")
	_, _, err := newTestIssuer(&stubCreator{err: boom}, nil).IssueAll(context.Background(), testInvoice, 200)
	assert.ErrorIs(t, err, boom)
}

func TestIssueDeposit(t *testing.T) {
	creator := &stubCreator{}
	i := newTestIssuer(creator, nil)

	link, err := i.IssueDeposit(context.Background(), testInvoice, 250)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentDeposit, link.Kind)
	assert.Equal(t, 125.0, link.Amount)

	_, err = i.IssueDeposit(context.Background(), testInvoice, 0.98)
	assert.ErrorIs(t, err, ErrDepositBelowMinimum)

	_, err = newTestIssuer(nil, nil).IssueDeposit(context.Background(), testInvoice, 250)
	assert.ErrorIs(t, err, ErrPaymentsNotConfigured)
}

func TestIssue_UsesCache(t *testing.T) {
	creator := &stubCreator{}
	cache := newMemoryCache()
	i := newTestIssuer(creator, cache)

	first, err := i.IssueDeposit(context.Background(), testInvoice, 300)
	require.NoError(t, err)
	second, err := i.IssueDeposit(context.Background(), testInvoice, 300)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, creator.calls(), 1)
	assert.Contains(t, cache.items, "paylink:INV-7:deposit:15000")

	// a different amount is a different charge
	_, err = i.IssueDeposit(context.Background(), testInvoice, 310)
	require.NoError(t, err)
	assert.Len(t, creator.calls(), 2)
}
