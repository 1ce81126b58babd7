// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/bloodconnect/internal/app/store/audit"
	"go.uber.org/zap"
)

// Destinations for one category.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"
	ModeLog = "log"
	ModeOff = "off"
)

// Config picks a destination per event category.
// Blank values behave as ModeAll.
type Config struct {
	Account string
	Admin   string
	Payment string
}

// ValidMode reports whether m is a known destination (blank included).
func ValidMode(m string) bool {
	switch m {
	case "", ModeAll, ModeDB, ModeLog, ModeOff:
		return true
	}
	return false
}

// Logger records audit events to MongoDB (via audit.Store) and to zap.
// A nil *Logger is a no-op so handlers and tests may omit it.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

// clientIP prefers RemoteAddr, which chi's RealIP middleware has already
// rewritten from X-Forwarded-For / X-Real-IP when present.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func (l *Logger) mode(category string) string {
	var m string
	switch category {
	case audit.CategoryAccount:
		m = l.config.Account
	case audit.CategoryAdmin:
		m = l.config.Admin
	case audit.CategoryPayment:
		m = l.config.Payment
	}
	if m == "" {
		return ModeAll
	}
	return m
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
	}
	if event.Subject != "" {
		fields = append(fields, zap.String("subject", event.Subject))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}
	l.zapLog.Info("audit event", fields...)
}

// Log records event according to its category's destination. Store
// failures are logged and swallowed; the audited action has already happened.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	m := l.mode(event.Category)
	if m == ModeOff {
		return
	}
	if m == ModeAll || m == ModeLog {
		l.logToZap(event)
	}
	if m == ModeAll || m == ModeDB {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func (l *Logger) logRequest(r *http.Request, category, eventType, subject string, details map[string]string) {
	if l == nil {
		return
	}
	l.Log(r.Context(), audit.Event{
		Category:  category,
		EventType: eventType,
		Subject:   subject,
		IP:        clientIP(r),
		UserAgent: r.UserAgent(),
		Details:   details,
	})
}

// --- Account events ---

// UserRegistered logs a new registration.
func (l *Logger) UserRegistered(r *http.Request, email, role string) {
	l.logRequest(r, audit.CategoryAccount, audit.EventUserRegistered, email,
		map[string]string{"role": role})
}

// ProfileUpdated logs which profile fields a user changed.
func (l *Logger) ProfileUpdated(r *http.Request, email string, fields []string) {
	l.logRequest(r, audit.CategoryAccount, audit.EventProfileUpdated, email,
		map[string]string{"fields": strings.Join(fields, ",")})
}

// --- Admin events ---

func (l *Logger) UserStatusChanged(r *http.Request, email, status string) {
	l.logRequest(r, audit.CategoryAdmin, audit.EventUserStatusChanged, email,
		map[string]string{"status": status})
}

func (l *Logger) UserRoleChanged(r *http.Request, email, role string) {
	l.logRequest(r, audit.CategoryAdmin, audit.EventUserRoleChanged, email,
		map[string]string{"role": role})
}

// RequestDeleted logs removal of a donation request; the subject is its requester.
func (l *Logger) RequestDeleted(r *http.Request, requesterEmail, requestID string) {
	l.logRequest(r, audit.CategoryAccount, audit.EventRequestDeleted, requesterEmail,
		map[string]string{"request_id": requestID})
}

// AdminPromoted logs the startup promotion of the configured admin account.
// There is no request, so IP and user agent stay empty.
func (l *Logger) AdminPromoted(ctx context.Context, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventAdminPromoted,
		Subject:   email,
	})
}

// --- Payment events ---

// FundingRecorded logs a stored funding entry.
func (l *Logger) FundingRecorded(r *http.Request, email, sessionID string, amount int64) {
	l.logRequest(r, audit.CategoryPayment, audit.EventFundingRecorded, email,
		map[string]string{"session_id": sessionID, "amount": strconv.FormatInt(amount, 10)})
}
