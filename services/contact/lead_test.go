package contact

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"beebee/models"
	"beebee/services/quote"
)

// recordingMailer keeps every e-mail it is asked to send.
type recordingMailer struct {
	mu     sync.Mutex
	sent   []models.Email
	failTo string
}

func (m *recordingMailer) Send(_ context.Context, e models.Email) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(e.To) > 0 && e.To[0] == m.failTo {
		return "", errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, e)
	return "id-" + e.To[0], nil
}

func (m *recordingMailer) byRecipient(to string) (models.Email, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.sent {
		if e.To[0] == to {
			return e, true
		}
	}
	return models.Email{}, false
}

func newTestLeadService(m *recordingMailer) *LeadService {
	s := NewLeadService(quote.NewEstimator(quote.DefaultRates()), m, LeadConfig{
		From:         "BeeBee Cleaning <noreply@beebee.test>",
		ContactEmail: "owner@beebee.test",
		BusinessName: "BeeBee Cleaning",
		ContactPhone: "385-326-5993",
		SiteURL:      "https://beebee.test",
	}, zap.NewNop())
	s.now = func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func validRequest() models.ContactRequest {
	return models.ContactRequest{
		Name:          "Jane <b>Doe</b>",
		Email:         "jane@example.com",
		Phone:         "801-555-0100",
		Service:       "Home Cleaning",
		CleaningType:  "Deep Cleaning",
		SquareFootage: "1000",
		Bathrooms:     "2",
		Rooms:         "10",
		Kitchens:      "1",
		Message:       "Dog friendly please\nGate code 12",
	}
}

func TestSubmit_SendsBothEmails(t *testing.T) {
	m := &recordingMailer{}
	res, err := newTestLeadService(m).Submit(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "id-owner@beebee.test", res.ID)
	assert.Equal(t, models.QuoteResult{Low: 280, High: 398, IsAreaBased: true}, res.Estimate)

	admin, ok := m.byRecipient("owner@beebee.test")
	require.True(t, ok)
	assert.Equal(t, "New Lead: Home Cleaning inquiry from Jane <b>Doe</b>", admin.Subject)
	assert.Contains(t, admin.HTML, "1000 sq ft")
	assert.Contains(t, admin.HTML, "Home Cleaning (Deep Cleaning)")
	assert.Contains(t, admin.HTML, "$280 – $398")
	assert.Contains(t, admin.HTML, "Dog friendly please<br>Gate code 12")
	assert.Contains(t, admin.HTML, "Not provided")
	assert.NotContains(t, admin.HTML, "<b>Doe</b>")
	assert.Contains(t, admin.HTML, "&lt;b&gt;Doe&lt;/b&gt;")

	customer, ok := m.byRecipient("jane@example.com")
	require.True(t, ok)
	assert.Equal(t, "We received your request, Jane <b>Doe</b>! - BeeBee Cleaning", customer.Subject)
	assert.Contains(t, customer.HTML, "1000 sq ft, 2 bathroom(s), 1 kitchen(s), 10 room(s)")
	assert.Contains(t, customer.HTML, "385-326-5993")
	assert.Contains(t, customer.HTML, "2026")
}

func TestSubmit_MissingFields(t *testing.T) {
	m := &recordingMailer{}
	req := validRequest()
	req.Phone = "  "
	req.Service = ""

	_, err := newTestLeadService(m).Submit(context.Background(), req)
	require.ErrorIs(t, err, ErrMissingFields)
	assert.Contains(t, err.Error(), "phone, service")
	assert.Empty(t, m.sent)
}

func TestSubmit_AnySendFailureFails(t *testing.T) {
	m := &recordingMailer{failTo: "jane@example.com"}
	_, err := newTestLeadService(m).Submit(context.Background(), validRequest())
	assert.Error(t, err)
}

func TestSubmit_OptionalFieldsOmitted(t *testing.T) {
	m := &recordingMailer{}
	req := models.ContactRequest{Name: "Sam", Email: "sam@example.com", Phone: "1", Service: "Other"}

	res, err := newTestLeadService(m).Submit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.QuoteResult{Low: 120, High: 200}, res.Estimate)

	admin, _ := m.byRecipient("owner@beebee.test")
	assert.NotContains(t, admin.HTML, "Square Footage")
	assert.Contains(t, admin.HTML, "No additional message provided.")

	customer, _ := m.byRecipient("sam@example.com")
	assert.NotContains(t, customer.HTML, "Property details")
}
