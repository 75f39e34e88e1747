package common

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundToCents(t *testing.T) {
	tests := map[string]string{
		"10.005":  "10.01",
		"10.004":  "10",
		"-10.005": "-10.01",
		"0.1":     "0.1",
	}
	for in, want := range tests {
		got := RoundToCents(decimal.RequireFromString(in))
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s rounded to %s", in, got)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "150.00", FormatAmount(decimal.NewFromInt(150)))
	assert.Equal(t, "0.10", FormatAmount(decimal.RequireFromString("0.1")))
	assert.Equal(t, "-3.46", FormatAmount(decimal.RequireFromString("-3.456")))
}

func TestParseDateOrDatetime(t *testing.T) {
	got, err := ParseDateOrDatetime("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-31", got.Format(DateFormatYYYYMMDD))
	assert.Equal(t, 0, got.Hour())

	got, err = ParseDateOrDatetime("2025-01-31T10:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 1, 31, 10, 30, 0, 0, time.UTC)))

	_, err = ParseDateOrDatetime("31/01/2025")
	assert.ErrorIs(t, err, ErrInvalidFormatDate)
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(time.Date(2025, 1, 31, 23, 59, 59, 0, GetLocation()))

	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, GetLocation()), got)
}
