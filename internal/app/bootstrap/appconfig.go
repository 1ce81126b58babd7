// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration (ports, TLS, log level).
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// HTTP edge
	CORSOrigins        []string // allowed browser origins; empty allows any
	RateLimitPerMinute int      // per-IP request budget; 0 disables limiting

	// Timezone decides where a day, week and month begin for donation stats.
	Timezone string

	// Stripe Checkout. Payments are disabled when StripeSecretKey is empty.
	StripeSecretKey    string
	CheckoutSuccessURL string
	CheckoutCancelURL  string
	CheckoutCurrency   string

	// AdminEmail, when set, names an existing user promoted to admin at startup.
	AdminEmail string

	// Audit destinations per category: all, db, log or off.
	AuditAccount string
	AuditAdmin   string
	AuditPayment string
}
