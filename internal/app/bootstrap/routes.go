// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	adminfeature "github.com/dalemusser/bloodconnect/internal/app/features/admin"
	dashboardfeature "github.com/dalemusser/bloodconnect/internal/app/features/dashboard"
	donorsfeature "github.com/dalemusser/bloodconnect/internal/app/features/donors"
	errorsfeature "github.com/dalemusser/bloodconnect/internal/app/features/errors"
	fundingsfeature "github.com/dalemusser/bloodconnect/internal/app/features/fundings"
	healthfeature "github.com/dalemusser/bloodconnect/internal/app/features/health"
	homefeature "github.com/dalemusser/bloodconnect/internal/app/features/home"
	requestsfeature "github.com/dalemusser/bloodconnect/internal/app/features/requests"
	usersfeature "github.com/dalemusser/bloodconnect/internal/app/features/users"
	"github.com/dalemusser/bloodconnect/internal/app/lifecycle"
	requeststore "github.com/dalemusser/bloodconnect/internal/app/store/requests"
	userstore "github.com/dalemusser/bloodconnect/internal/app/store/users"
	"github.com/dalemusser/bloodconnect/internal/app/system/middleware"
	"github.com/dalemusser/bloodconnect/internal/app/system/payments"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Every feature gets the same database
// handle and error logger; request lifecycle rules live in one Manager
// shared by the requester and admin surfaces.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	loc, err := loadLocation(appCfg.Timezone)
	if err != nil {
		logger.Error("stats timezone", zap.String("timezone", appCfg.Timezone), zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase
	errLog := errorsfeature.NewErrorLogger(logger)
	auditLog := newAuditLogger(appCfg, deps, logger)
	manager := lifecycle.NewManager(userstore.New(db), requeststore.New(db), logger)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog(logger))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(corsOptions(appCfg.CORSOrigins)))
	if appCfg.RateLimitPerMinute > 0 {
		r.Use(httprate.LimitByIP(appCfg.RateLimitPerMinute, time.Minute))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorsfeature.Message(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorsfeature.Message(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", promhttp.Handler())

	homeHandler := homefeature.NewHandler()
	r.Mount("/", homefeature.Routes(homeHandler))

	usersHandler := usersfeature.NewHandler(db, errLog, auditLog, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler))

	donorsHandler := donorsfeature.NewHandler(db, errLog, logger)
	r.Mount("/donors", donorsfeature.Routes(donorsHandler))

	requestsHandler := requestsfeature.NewHandler(manager, errLog, auditLog, logger)
	r.Mount("/requests", requestsfeature.Routes(requestsHandler))

	// Admin user management and counters share one subrouter.
	adminHandler := adminfeature.NewHandler(db, manager, errLog, auditLog, logger)
	statsHandler := dashboardfeature.NewHandler(db, loc, logger)
	r.Route("/admin", func(r chi.Router) {
		adminfeature.MountRoutes(r, adminHandler)
		dashboardfeature.MountAdminRoutes(r, statsHandler)
	})
	r.Mount("/volunteer", dashboardfeature.VolunteerRoutes(statsHandler))

	fundingsHandler := fundingsfeature.NewHandler(db, paymentGateway(appCfg, logger), errLog, auditLog, logger)
	fundingsfeature.MountRoutes(r, fundingsHandler)

	return r, nil
}

// corsOptions allows every origin when none are configured.
func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}
}

// paymentGateway returns nil (an untyped nil interface) without a secret key,
// which the fundings handlers treat as "payments not configured".
func paymentGateway(appCfg AppConfig, logger *zap.Logger) payments.Gateway {
	if appCfg.StripeSecretKey == "" {
		return nil
	}
	logger.Info("stripe checkout enabled", zap.String("currency", appCfg.CheckoutCurrency))
	return payments.NewStripe(payments.StripeConfig{
		SecretKey:  appCfg.StripeSecretKey,
		SuccessURL: appCfg.CheckoutSuccessURL,
		CancelURL:  appCfg.CheckoutCancelURL,
		Currency:   appCfg.CheckoutCurrency,
	})
}
