package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	for _, code := range []string{"USD", "EUR", "MXN"} {
		c, err := NewCurrency(code)
		require.NoError(t, err)
		assert.Equal(t, code, c.Code())
	}

	for _, code := range []string{"", "usd", "US", "USDX", "12A"} {
		_, err := NewCurrency(code)
		assert.Error(t, err, code)
	}
}

func TestMustCurrency_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCurrency("bad") })
}

func TestCurrencySymbol(t *testing.T) {
	assert.Equal(t, "$", USD.Symbol())
	assert.Equal(t, "€", EUR.Symbol())
	assert.Equal(t, "MXN ", MustCurrency("MXN").Symbol())
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		cur    Currency
		want   string
	}{
		{name: "zero", amount: 0, cur: USD, want: "$0.00"},
		{name: "small", amount: 12.5, cur: USD, want: "$12.50"},
		{name: "hundreds", amount: 999.999, cur: USD, want: "$1,000.00"},
		{name: "thousands", amount: 4000, cur: USD, want: "$4,000.00"},
		{name: "expected loss", amount: 1325.6712, cur: USD, want: "$1,325.67"},
		{name: "millions", amount: 1234567.891, cur: EUR, want: "€1,234,567.89"},
		{name: "negative", amount: -2500, cur: GBP, want: "-£2,500.00"},
		{name: "rounds to zero", amount: -0.001, cur: USD, want: "$0.00"},
		{name: "other currency", amount: 10, cur: MustCurrency("MXN"), want: "MXN 10.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromFloat(tt.amount, tt.cur).Display())
		})
	}
}

func TestStringAndEqual(t *testing.T) {
	a := New(decimal.RequireFromString("100"), USD)
	b := New(decimal.RequireFromString("100.00"), USD)

	assert.Equal(t, "100.0000 USD", a.String())
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(New(a.Amount(), EUR)))
	assert.Equal(t, USD, a.Currency())
}
