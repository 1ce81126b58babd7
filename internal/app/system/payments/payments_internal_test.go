package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v76"
)

func TestSessionFrom(t *testing.T) {
	s := &stripe.CheckoutSession{
		ID:          "cs_test_1",
		AmountTotal: 2500,
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Email: "giver@example.com",
			Name:  "Card Name",
		},
		Metadata: map[string]string{"name": "Chosen Name"},
	}

	got := sessionFrom(s)

	assert.Equal(t, "cs_test_1", got.ID)
	assert.EqualValues(t, 25, got.Amount)
	assert.Equal(t, "giver@example.com", got.Email)
	assert.Equal(t, "Chosen Name", got.Name)
}

func TestSessionFrom_PrefersCustomerEmail(t *testing.T) {
	s := &stripe.CheckoutSession{
		CustomerEmail:   "typed@example.com",
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{Email: "card@example.com", Name: "Card"},
	}
	got := sessionFrom(s)
	assert.Equal(t, "typed@example.com", got.Email)
	assert.Equal(t, "Card", got.Name)
}

func TestNewStripe_DefaultCurrency(t *testing.T) {
	g := NewStripe(StripeConfig{SecretKey: "sk_test_x"})
	assert.Equal(t, "usd", g.currency)

	g = NewStripe(StripeConfig{SecretKey: "sk_test_x", Currency: " BDT "})
	assert.Equal(t, "bdt", g.currency)
}

func TestUnits(t *testing.T) {
	assert.EqualValues(t, 1500, minorUnits(15))
	assert.EqualValues(t, 15, wholeUnits(1500))
}
