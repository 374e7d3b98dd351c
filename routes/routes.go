package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"beebee/handlers"
	"beebee/middleware"
)

// Options carries the route-level settings taken from config.
type Options struct {
	AllowedOrigins    []string
	RequestsPerMinute int
	Sessions          middleware.SessionValidator
}

// RegisterPublicRoutes registers the endpoints used by the marketing site.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	api := r.Group("/api")
	{
		api.POST("/quote", hb.Quote.EstimateHandler)
		api.POST("/contact", middleware.RateLimitMiddleware(opts.RequestsPerMinute), hb.Contact.SubmitHandler)
	}
}

// RegisterAdminRoutes sets up the admin login and the session-protected
// invoice builder.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	auth := r.Group("/api/admin/auth")
	{
		auth.POST("", middleware.RateLimitMiddleware(opts.RequestsPerMinute), hb.Auth.LoginHandler)
		auth.GET("/verify", hb.Auth.VerifyHandler)
		auth.DELETE("", hb.Auth.LogoutHandler)
	}

	inv := r.Group("/api/admin/invoice")
	{
		inv.Use(middleware.AdminSessionMiddleware(opts.Sessions))
		inv.POST("/totals", hb.Invoice.TotalsHandler)
		inv.POST("/pdf", hb.Invoice.PDFHandler)
		inv.POST("/payment-link", hb.Invoice.PaymentLinkHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.HealthHandler)
}

// corsMiddleware returns nil when no origins are configured, leaving the API
// same-origin only. A lone "*" opens reads to any origin but never sends
// credentials; the admin cookie is only honored for explicitly listed origins.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	if mw := corsMiddleware(opts.AllowedOrigins); mw != nil {
		r.Use(mw)
	}

	RegisterHealthRoute(r, hb)
	RegisterPublicRoutes(r, hb, opts)
	RegisterAdminRoutes(r, hb, opts)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}
