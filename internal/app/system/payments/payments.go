// Package payments talks to the card payment gateway (Stripe Checkout).
package payments

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var (
	// ErrNotPaid is returned by VerifySession for a session that has not been paid.
	ErrNotPaid = errors.New("checkout session is not paid")
	// ErrUnknownSession is returned by VerifySession when the gateway has no such session.
	ErrUnknownSession = errors.New("unknown checkout session")
)

// CheckoutInput describes one donation. Amount is in whole currency units.
type CheckoutInput struct {
	Amount int64
	Name   string
	Email  string
}

// Checkout is a created session the client redirects to.
type Checkout struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Session is a paid checkout as reported by the gateway.
type Session struct {
	ID     string
	Amount int64 // whole currency units
	Name   string
	Email  string
}

// Gateway creates and verifies checkout sessions.
type Gateway interface {
	CreateCheckout(ctx context.Context, in CheckoutInput) (Checkout, error)
	VerifySession(ctx context.Context, sessionID string) (Session, error)
}

// StripeConfig configures StripeGateway.
type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
	Currency   string // ISO code, lower-case; "usd" when empty
}

// StripeGateway is a Gateway backed by Stripe Checkout.
type StripeGateway struct {
	sc       *client.API
	cfg      StripeConfig
	currency string
}

// NewStripe returns a gateway using cfg.SecretKey. It does not contact Stripe.
func NewStripe(cfg StripeConfig) *StripeGateway {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	cur := strings.ToLower(strings.TrimSpace(cfg.Currency))
	if cur == "" {
		cur = string(stripe.CurrencyUSD)
	}
	return &StripeGateway{sc: sc, cfg: cfg, currency: cur}
}

// minorUnits converts whole units to the smallest currency unit.
func minorUnits(amount int64) int64 { return amount * 100 }

func wholeUnits(minor int64) int64 { return minor / 100 }

// CreateCheckout opens a one-item payment session for in.Amount.
func (g *StripeGateway) CreateCheckout(ctx context.Context, in CheckoutInput) (Checkout, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("BloodConnect donation"),
				},
				UnitAmount: stripe.Int64(minorUnits(in.Amount)),
			},
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:    stripe.String(g.cfg.SuccessURL),
		CancelURL:     stripe.String(g.cfg.CancelURL),
		CustomerEmail: stripe.String(in.Email),
	}
	params.Context = ctx
	params.AddMetadata("name", in.Name)
	params.AddMetadata("email", in.Email)
	params.SetIdempotencyKey(uuid.NewString())

	s, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		return Checkout{}, err
	}
	return Checkout{ID: s.ID, URL: s.URL}, nil
}

// VerifySession fetches the session and returns it only if it is paid.
func (g *StripeGateway) VerifySession(ctx context.Context, sessionID string) (Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.sc.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.HTTPStatusCode == http.StatusNotFound {
			return Session{}, ErrUnknownSession
		}
		return Session{}, err
	}
	if s.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return Session{}, ErrNotPaid
	}
	return sessionFrom(s), nil
}

func sessionFrom(s *stripe.CheckoutSession) Session {
	out := Session{ID: s.ID, Amount: wholeUnits(s.AmountTotal), Email: s.CustomerEmail}
	if s.CustomerDetails != nil {
		if out.Email == "" {
			out.Email = s.CustomerDetails.Email
		}
		out.Name = s.CustomerDetails.Name
	}
	if n := s.Metadata["name"]; n != "" {
		out.Name = n
	}
	return out
}
