package contact

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"beebee/models"
	"beebee/services/notification"
	"beebee/services/quote"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

var ErrMissingFields = errors.New("missing required fields")

// LeadService handles contact-form submissions: it estimates the job and
// notifies both the business and the customer.
type LeadService struct {
	estimator *quote.Estimator
	mailer    notification.Mailer
	cfg       LeadConfig
	logger    *zap.Logger
	now       func() time.Time
}

type LeadConfig struct {
	From         string
	ContactEmail string
	BusinessName string
	ContactPhone string
	SiteURL      string
}

func NewLeadService(estimator *quote.Estimator, mailer notification.Mailer, cfg LeadConfig, logger *zap.Logger) *LeadService {
	return &LeadService{
		estimator: estimator,
		mailer:    mailer,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates the lead and sends both e-mails concurrently. If either
// send fails the whole submission fails.
func (s *LeadService) Submit(ctx context.Context, req models.ContactRequest) (*models.ContactResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	in := quote.FromRequest(req.Service, req.CleaningType, req.SquareFootage, req.Bathrooms, req.Rooms)
	estimate := s.estimator.Estimate(in)

	data := s.templateData(req, estimate)
	adminHTML, err := render("admin_lead.html", data)
	if err != nil {
		return nil, err
	}
	customerHTML, err := render("customer_confirmation.html", data)
	if err != nil {
		return nil, err
	}

	adminEmail := models.Email{
		From:    s.cfg.From,
		To:      []string{s.cfg.ContactEmail},
		Subject: fmt.Sprintf("New Lead: %s inquiry from %s", req.Service, req.Name),
		HTML:    adminHTML,
	}
	customerEmail := models.Email{
		From:    s.cfg.From,
		To:      []string{req.Email},
		Subject: fmt.Sprintf("We received your request, %s! - %s", req.Name, s.cfg.BusinessName),
		HTML:    customerHTML,
	}

	var adminID string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := s.mailer.Send(gctx, adminEmail)
		adminID = id
		return err
	})
	g.Go(func() error {
		_, err := s.mailer.Send(gctx, customerEmail)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Lead notification failed", zap.String("service", req.Service), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Lead received",
		zap.String("service", req.Service),
		zap.Float64("estimateLow", estimate.Low),
		zap.Float64("estimateHigh", estimate.High),
	)
	return &models.ContactResult{ID: adminID, Estimate: estimate}, nil
}

func validate(req models.ContactRequest) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"phone", req.Phone},
		{"service", req.Service},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

type detail struct {
	Label string
	Value string
}

type leadView struct {
	Name, Email, Phone, Address string
	Service                     string
	Details                     []detail
	PropertySummary             string
	MessageLines                []string
	Estimate                    string
	AreaBased                   bool
	Business                    string
	ContactPhone                string
	SiteURL                     string
	SiteHost                    string
	Year                        int
}

func (s *LeadService) templateData(req models.ContactRequest, estimate models.QuoteResult) leadView {
	service := req.Service
	if req.CleaningType != "" {
		service += " (" + req.CleaningType + ")"
	}
	address := req.Address
	if strings.TrimSpace(address) == "" {
		address = "Not provided"
	}

	var details []detail
	var summary []string
	add := func(label string, v models.FormValue, detailFmt, summaryFmt string) {
		raw := strings.TrimSpace(v.String())
		if raw == "" {
			return
		}
		details = append(details, detail{Label: label, Value: fmt.Sprintf(detailFmt, raw)})
		summary = append(summary, fmt.Sprintf(summaryFmt, raw))
	}
	add("Square Footage", req.SquareFootage, "%s sq ft", "%s sq ft")
	add("Floors", req.Floors, "%s", "%s floor(s)")
	add("Bathrooms", req.Bathrooms, "%s", "%s bathroom(s)")
	add("Kitchens", req.Kitchens, "%s", "%s kitchen(s)")
	add("Rooms", req.Rooms, "%s", "%s room(s)")

	var lines []string
	if msg := strings.TrimSpace(req.Message); msg != "" {
		lines = strings.Split(strings.ReplaceAll(msg, "\r\n", "\n"), "\n")
	}

	host := s.cfg.SiteURL
	if u, err := url.Parse(s.cfg.SiteURL); err == nil && u.Host != "" {
		host = u.Host
	}

	return leadView{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         address,
		Service:         service,
		Details:         details,
		PropertySummary: strings.Join(summary, ", "),
		MessageLines:    lines,
		Estimate:        quote.FormatRange(estimate.Low, estimate.High),
		AreaBased:       estimate.IsAreaBased,
		Business:        s.cfg.BusinessName,
		ContactPhone:    s.cfg.ContactPhone,
		SiteURL:         s.cfg.SiteURL,
		SiteHost:        host,
		Year:            s.now().Year(),
	}
}

func render(name string, data leadView) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
