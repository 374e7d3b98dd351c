package payment

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"beebee/models"
)

func fakeStripe(t *testing.T) (*httptest.Server, map[string]url.Values) {
	t.Helper()
	var mu sync.Mutex
	forms := map[string]url.Values{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		form, _ := url.ParseQuery(string(body))
		mu.Lock()
		forms[r.URL.Path] = form
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/products":
			_, _ = io.WriteString(w, `{"id":"prod_123","object":"product"}`)
		case "/v1/prices":
			_, _ = io.WriteString(w, `{"id":"price_123","object":"price"}`)
		case "/v1/payment_links":
			_, _ = io.WriteString(w, `{"id":"plink_123","object":"payment_link","url":"https://buy.stripe.com/test_123"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":{"message":"unknown path"}}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, forms
}

func TestStripeLinkCreator_CreateLink(t *testing.T) {
	srv, forms := fakeStripe(t)
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
	})
	creator := newStripeLinkCreator("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend}, zap.NewNop())

	got, err := creator.CreateLink(context.Background(), models.PaymentLinkRequest{
		Kind:          models.PaymentDeposit,
		InvoiceNumber: "INV-7",
		CustomerName:  "Jane Doe",
		AmountCents:   5400,
		Currency:      "usd",
		ProductName:   "50% Deposit - Invoice INV-7",
		RedirectURL:   "https://beebee.test/contact?paid=1",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://buy.stripe.com/test_123", got)

	assert.Equal(t, "50% Deposit - Invoice INV-7", forms["/v1/products"].Get("name"))
	assert.Equal(t, "5400", forms["/v1/prices"].Get("unit_amount"))
	assert.Equal(t, "prod_123", forms["/v1/prices"].Get("product"))

	link := forms["/v1/payment_links"]
	assert.Equal(t, "price_123", link.Get("line_items[0][price]"))
	assert.Equal(t, "INV-7", link.Get("metadata[invoice_number]"))
	assert.Equal(t, "deposit", link.Get("metadata[type]"))
	assert.Equal(t, "redirect", link.Get("after_completion[type]"))
	assert.Equal(t, "https://beebee.test/contact?paid=1", link.Get("after_completion[redirect][url]"))
}
