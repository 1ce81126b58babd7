// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/bloodconnect/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for BloodConnect.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, stripe_secret_key, etc.
//   - Environment variables: BLOODCONNECT_MONGO_URI, BLOODCONNECT_TIMEZONE, etc.
//   - Command-line flags: --mongo_uri, --timezone, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "blood_connect_db", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},

	{Name: "cors_origins", Default: "", Desc: "Comma-separated allowed CORS origins (blank allows any)"},
	{Name: "rate_limit_per_minute", Default: 300, Desc: "Requests per minute per client IP (0 disables)"},

	{Name: "timezone", Default: "Local", Desc: "IANA timezone for daily/weekly/monthly donation stats"},

	// Stripe Checkout
	{Name: "stripe_secret_key", Default: "", Desc: "Stripe secret key (blank disables payments)"},
	{Name: "checkout_success_url", Default: "http://localhost:5173/funding/success?session_id={CHECKOUT_SESSION_ID}", Desc: "Checkout success redirect URL"},
	{Name: "checkout_cancel_url", Default: "http://localhost:5173/funding", Desc: "Checkout cancel redirect URL"},
	{Name: "checkout_currency", Default: "usd", Desc: "Checkout currency (ISO 4217, lower-case)"},

	{Name: "admin_email", Default: "", Desc: "Email of an existing user promoted to admin on startup"},

	// Audit trail: "all" (MongoDB + log), "db", "log", or "off"
	{Name: "audit_account", Default: "all", Desc: "Audit destination for registration and profile events"},
	{Name: "audit_admin", Default: "all", Desc: "Audit destination for admin user changes"},
	{Name: "audit_payment", Default: "all", Desc: "Audit destination for recorded fundings"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges, with precedence
// flags > env > files > defaults, reading WAFFLE_* for core and
// BLOODCONNECT_* for app keys.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "BLOODCONNECT", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		CORSOrigins:        splitList(appValues.String("cors_origins")),
		RateLimitPerMinute: appValues.Int("rate_limit_per_minute"),

		Timezone: appValues.String("timezone"),

		StripeSecretKey:    appValues.String("stripe_secret_key"),
		CheckoutSuccessURL: appValues.String("checkout_success_url"),
		CheckoutCancelURL:  appValues.String("checkout_cancel_url"),
		CheckoutCurrency:   appValues.String("checkout_currency"),

		AdminEmail: appValues.String("admin_email"),

		AuditAccount: appValues.String("audit_account"),
		AuditAdmin:   appValues.String("audit_admin"),
		AuditPayment: appValues.String("audit_payment"),
	}

	return coreCfg, appCfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// It checks the MongoDB URI format to catch configuration errors before
// attempting to connect, and makes sure the stats timezone resolves.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if _, err := loadLocation(appCfg.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", appCfg.Timezone, err)
	}
	if appCfg.RateLimitPerMinute < 0 {
		return fmt.Errorf("rate_limit_per_minute must not be negative")
	}
	if appCfg.StripeSecretKey != "" && (appCfg.CheckoutSuccessURL == "" || appCfg.CheckoutCancelURL == "") {
		return fmt.Errorf("checkout_success_url and checkout_cancel_url are required when stripe_secret_key is set")
	}
	for key, mode := range map[string]string{
		"audit_account": appCfg.AuditAccount,
		"audit_admin":   appCfg.AuditAdmin,
		"audit_payment": appCfg.AuditPayment,
	} {
		if !auditlog.ValidMode(mode) {
			return fmt.Errorf("%s must be one of all, db, log, off (got %q)", key, mode)
		}
	}
	if appCfg.StripeSecretKey == "" {
		logger.Warn("stripe_secret_key not set: checkout sessions are disabled and fundings need an explicit amount")
	}
	return nil
}

// loadLocation resolves a timezone name; blank means Local.
func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
