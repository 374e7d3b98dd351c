package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"beebee/handlers"
	"beebee/services/admin"
	"beebee/services/contact"
	"beebee/services/invoice"
	"beebee/services/notification"
	"beebee/services/payment"
	"beebee/services/quote"
)

func newRouter(t *testing.T) (*gin.Engine, *admin.SessionManager) {
	t.Helper()
	return newRouterWithOrigins(t, []string{"https://beebee.test"})
}

func newRouterWithOrigins(t *testing.T, origins []string) (*gin.Engine, *admin.SessionManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	estimator := quote.NewEstimator(quote.DefaultRates())
	sessions := admin.NewSessionManager(admin.SessionConfig{Password: "pw", Secret: "k"}, logger)
	leads := contact.NewLeadService(estimator, notification.DisabledMailer{}, contact.LeadConfig{}, logger)
	issuer := payment.NewIssuer(nil, nil, "https://beebee.test", "BeeBee Cleaning", logger)

	hb := &handlers.HandlerBundle{
		Quote:   handlers.NewQuoteHandler(estimator),
		Contact: handlers.NewContactHandler(leads),
		Auth:    handlers.NewAuthHandler(sessions, false),
		Invoice: handlers.NewInvoiceHandler(issuer, invoice.NewPDFRenderer("BeeBee Cleaning", "", logger)),
		Health:  handlers.NewHealthHandler(nil, false, false),
	}

	r := gin.New()
	RegisterRoutes(r, hb, Options{AllowedOrigins: origins, RequestsPerMinute: 5, Sessions: sessions})
	return r, sessions
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_Public(t *testing.T) {
	r, _ := newRouter(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(`{"service":"Other"}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_InvoiceRequiresSession(t *testing.T) {
	r, sessions := newRouter(t)
	body := `{"lineItems":[{"description":"x","quantity":1,"unitPrice":100}]}`

	for _, path := range []string{"/api/admin/invoice/totals", "/api/admin/invoice/pdf", "/api/admin/invoice/payment-link"} {
		w := serve(r, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	token, err := sessions.Issue()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/invoice/totals", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: token})
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// payment links need Stripe
	req = httptest.NewRequest(http.MethodPost, "/api/admin/invoice/payment-link", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: "admin_session", Value: token})
	w = serve(r, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRoutes_CORS(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/quote", nil)
	req.Header.Set("Origin", "https://beebee.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := serve(r, req)

	assert.Equal(t, "https://beebee.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRoutes_CORSRejectsUnlistedOrigin(t *testing.T) {
	r, _ := newRouter(t)

	for _, path := range []string{"/health", "/api/admin/auth/verify"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Origin", "https://evil.example")
		w := serve(r, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"), path)
	}
}

func TestRoutes_CORSWildcardOmitsCredentials(t *testing.T) {
	r, _ := newRouterWithOrigins(t, []string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRoutes_NoCORSByDefault(t *testing.T) {
	r, _ := newRouterWithOrigins(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := serve(r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}
