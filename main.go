package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"beebee/config"
	"beebee/handlers"
	"beebee/middleware"
	"beebee/routes"
	"beebee/services/admin"
	"beebee/services/contact"
	"beebee/services/invoice"
	"beebee/services/notification"
	"beebee/services/payment"
	"beebee/services/quote"
	"beebee/utils"
)

func main() {
	// .env.local wins over .env; real environment variables win over both.
	for _, f := range []string{".env.local", ".env"} {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("main: could not load %s: %v", f, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}

	logger := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rates, err := quote.NewRateTables(cfg.Rates)
	if err != nil {
		logger.Fatal("main: invalid rate tables", zap.Error(err))
	}
	estimator := quote.NewEstimator(rates)

	// Optional Redis cache for payment links.
	var cacheClient *redis.Client
	var linkCache payment.LinkCache
	if cfg.RedisAddr != "" {
		cacheClient, err = utils.NewCacheClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
		if err != nil {
			logger.Warn("main: redis unavailable, payment links will not be cached", zap.Error(err))
			cacheClient = nil
		} else {
			linkCache = payment.NewRedisLinkCache(cacheClient, cfg.PaymentLinkCacheTTL(), logger)
		}
	}

	var linkCreator payment.LinkCreator
	if cfg.StripeEnabled() {
		linkCreator = payment.NewStripeLinkCreator(cfg.StripeSecretKey, logger)
	} else {
		logger.Warn("main: STRIPE_SECRET_KEY not set, invoices will be generated without payment links")
	}
	issuer := payment.NewIssuer(linkCreator, linkCache, cfg.SiteURL, cfg.BusinessName, logger)

	var mailer notification.Mailer = notification.DisabledMailer{}
	if cfg.MailEnabled() {
		mailer = notification.NewResendMailer(cfg.ResendAPIKey, logger)
	} else {
		logger.Warn("main: RESEND_API_KEY not set, contact submissions will fail")
	}

	sessions := admin.NewSessionManager(admin.SessionConfig{
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		Secret:       cfg.SessionSecret,
		TTL:          cfg.SessionTTL(),
	}, logger)
	if !sessions.Configured() {
		logger.Warn("main: ADMIN_PASSWORD not set, the invoice builder is disabled")
	}

	leads := contact.NewLeadService(estimator, mailer, contact.LeadConfig{
		From:         cfg.MailFrom,
		ContactEmail: cfg.ContactEmail,
		BusinessName: cfg.BusinessName,
		ContactPhone: cfg.ContactPhone,
		SiteURL:      cfg.SiteURL,
	}, logger)

	handlerBundle := &handlers.HandlerBundle{
		Quote:   handlers.NewQuoteHandler(estimator),
		Contact: handlers.NewContactHandler(leads),
		Auth:    handlers.NewAuthHandler(sessions, cfg.IsProduction()),
		Invoice: handlers.NewInvoiceHandler(issuer, invoice.NewPDFRenderer(cfg.BusinessName, cfg.LogoPath, logger)),
		Health:  handlers.NewHealthHandler(cacheClient, cfg.StripeEnabled(), cfg.MailEnabled()),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))

	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		AllowedOrigins:    cfg.AllowedOrigins(),
		RequestsPerMinute: cfg.MaxRequestsPerMin,
		Sessions:          sessions,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if cacheClient != nil {
		_ = cacheClient.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
