package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/cashflow-scheduler/money"
)

func TestToCents_AcceptsMultipleInputTypes(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  int64
	}{
		{"decimal", decimal.NewFromFloat(12.34), 1234},
		{"string", "12.34", 1234},
		{"float64", 12.34, 1234},
		{"int", 5, 500},
		{"int64", int64(5), 500},
		{"zero", "0", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := money.ToCents(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestToCents_HalfUpRounding(t *testing.T) {
	// decimal.Decimal's native Round is half-even; this module requires
	// half-up (half-away-from-zero) at the cent boundary.
	got, err := money.ToCents("0.005")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	got, err = money.ToCents("0.015")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
}

func TestToCents_RejectsUnparseable(t *testing.T) {
	_, err := money.ToCents("not-a-number")
	require.Error(t, err)
	var invalid *money.InvalidAmountError
	assert.ErrorAs(t, err, &invalid)
}

func TestToCents_RejectsAboveMax(t *testing.T) {
	_, err := money.ToCents(decimal.NewFromInt(money.MaxAmountCents/100 + 1))
	require.Error(t, err)
}

func TestCentsToString(t *testing.T) {
	assert.Equal(t, "12.34", money.CentsToString(1234))
	assert.Equal(t, "0.05", money.CentsToString(5))
	assert.Equal(t, "100.00", money.CentsToString(10000))
}
