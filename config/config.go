package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSAllowOrigins  string `mapstructure:"CORS_ALLOW_ORIGINS"`

	// Public site.
	SiteURL      string `mapstructure:"SITE_URL"`
	BusinessName string `mapstructure:"BUSINESS_NAME"`
	ContactPhone string `mapstructure:"CONTACT_PHONE"`
	LogoPath     string `mapstructure:"LOGO_PATH"`

	// Admin session.
	AdminPassword     string `mapstructure:"ADMIN_PASSWORD"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
	SessionSecret     string `mapstructure:"SESSION_SECRET"`
	SessionTTLHours   int    `mapstructure:"SESSION_TTL_HOURS"`

	// Stripe.
	StripeSecretKey          string `mapstructure:"STRIPE_SECRET_KEY"`
	PaymentLinkCacheTTLHours int    `mapstructure:"PAYMENT_LINK_CACHE_TTL_HOURS"`

	// Resend.
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	MailFrom     string `mapstructure:"MAIL_FROM"`
	ContactEmail string `mapstructure:"CONTACT_EMAIL"`

	// Redis configuration. Empty address disables the payment-link cache.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Rate table overrides, only read from the config file.
	Rates map[string]RateConfig `mapstructure:"RATES"`
}

// RateConfig is a single rate table as written in config.yaml.
type RateConfig struct {
	PerSqFtMin float64 `mapstructure:"per_sqft_min"`
	PerSqFtMax float64 `mapstructure:"per_sqft_max"`
	BaseMin    float64 `mapstructure:"base_min"`
	BaseMax    float64 `mapstructure:"base_max"`
}

var defaults = map[string]any{
	"APP_PORT":                     "8080",
	"ENV":                          "development",
	"LOG_LEVEL":                    "info",
	"MAX_REQUESTS_PER_MIN":         20,
	"CORS_ALLOW_ORIGINS":           "",
	"SITE_URL":                     "https://beebeecleaningservices.com",
	"BUSINESS_NAME":                "BeeBee Cleaning",
	"CONTACT_PHONE":                "385-326-5993",
	"LOGO_PATH":                    "public/logo.png",
	"ADMIN_PASSWORD":               "",
	"ADMIN_PASSWORD_HASH":          "",
	"SESSION_SECRET":               "",
	"SESSION_TTL_HOURS":            24,
	"STRIPE_SECRET_KEY":            "",
	"PAYMENT_LINK_CACHE_TTL_HOURS": 72,
	"RESEND_API_KEY":               "",
	"MAIL_FROM":                    "BeeBee Cleaning <noreply@beebeecleaningservices.com>",
	"CONTACT_EMAIL":                "vivian@beebeecleaningservices.com",
	"REDIS_ADDR":                   "",
	"REDIS_PASSWORD":               "",
	"REDIS_CACHE_DB":               0,
}

// Load reads config.yaml from the working directory or ./config and overlays
// environment variables on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) PaymentLinkCacheTTL() time.Duration {
	return time.Duration(c.PaymentLinkCacheTTLHours) * time.Hour
}

// AllowedOrigins splits CORS_ALLOW_ORIGINS on commas. Empty means no
// cross-origin access.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) StripeEnabled() bool { return c.StripeSecretKey != "" }

func (c *Config) MailEnabled() bool { return c.ResendAPIKey != "" }
