// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/bloodconnect/internal/app/store/audit"
	"github.com/dalemusser/bloodconnect/internal/app/system/auditlog"
	"github.com/dalemusser/bloodconnect/internal/app/system/metrics"
	"github.com/dalemusser/bloodconnect/internal/app/system/normalize"
	"github.com/dalemusser/bloodconnect/internal/app/system/timeouts"
	"github.com/dalemusser/bloodconnect/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts configured from environment",
			zap.Duration("ping", cur.Ping),
			zap.Duration("short", cur.Short),
			zap.Duration("medium", cur.Medium),
			zap.Duration("long", cur.Long),
		)
	}

	metrics.MustRegister()

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, newAuditLogger(appCfg, deps, logger), logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureAdmin promotes an existing user to admin and reactivates them.
// A missing user is only logged: accounts are created by registration,
// which needs a password this process does not have.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, al *auditlog.Logger, logger *zap.Logger) error {
	email = normalize.Email(email)
	res, err := deps.MongoDatabase.Collection("users").UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"role":      models.RoleAdmin,
			"status":    models.UserActive,
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		logger.Error("promote admin failed", zap.String("email", email), zap.Error(err))
		return err
	}
	if res.MatchedCount == 0 {
		logger.Warn("admin_email does not match a registered user; register it and restart",
			zap.String("email", email))
		return nil
	}
	if res.ModifiedCount > 0 {
		logger.Info("promoted user to admin", zap.String("email", email))
		al.AdminPromoted(ctx, email)
	}
	return nil
}

func newAuditLogger(appCfg AppConfig, deps DBDeps, logger *zap.Logger) *auditlog.Logger {
	return auditlog.New(audit.New(deps.MongoDatabase), logger, auditlog.Config{
		Account: appCfg.AuditAccount,
		Admin:   appCfg.AuditAdmin,
		Payment: appCfg.AuditPayment,
	})
}
