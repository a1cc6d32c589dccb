package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceMoney(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"45.00", 4500},
		{"45.50", 4550},
		{"0", 0},
		{"$19.99", 1999},
		{"19,99", 1999},
		{"500", 50000},   // no decimal, below 10000: major units
		{"9999", 999900}, // still below the threshold
		{"15000", 15000}, // no decimal, >= 10000: already minor units
		{"10000", 10000},
		{"1 250.00", 125000},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := CoerceMoney(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceMoney_Invalid(t *testing.T) {
	for _, raw := range []string{"abc", "-", "..", "1.2.3"} {
		_, err := CoerceMoney(raw)
		assert.ErrorIs(t, err, ErrInvalidPrice, "raw=%q", raw)
	}
}

func TestCoerceDateTime(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-01-15 10:30", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-1-5 09:05", time.Date(2024, 1, 5, 9, 5, 0, 0, time.UTC)},
		// day-first for the slash/dot layout
		{"15/01/2024 10:30", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"15.01.2024 10:30", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		// ambiguous 03/04 silently resolves day-first
		{"03/04/2024 08:00", time.Date(2024, 4, 3, 8, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := CoerceDateTime(tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestCoerceDateTime_Invalid(t *testing.T) {
	for _, raw := range []string{
		"99/01/2024 10:30", // first group above 31 becomes the year, day 2024 is invalid
		"31/02/2024 10:30", // February 31 must not normalize into March
		"2024-13-01 10:30",
		"15/01/2024",
		"not a date",
	} {
		_, err := CoerceDateTime(raw)
		assert.ErrorIs(t, err, ErrInvalidDateTime, "raw=%q", raw)
	}
}

func TestCoerce_Email(t *testing.T) {
	v, err := Coerce(KindEmail, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", v)

	for _, raw := range []string{"jane", "jane@", "@example.com", "jane@example", "a b@example.com"} {
		_, err := Coerce(KindEmail, raw)
		assert.ErrorIs(t, err, ErrInvalidEmail, "raw=%q", raw)
	}
}

func TestCoerce_Phone(t *testing.T) {
	for _, raw := range []string{"+1 (212) 664-7667", "555-1234", "123456"} {
		v, err := Coerce(KindPhone, raw)
		require.NoError(t, err, "raw=%q", raw)
		assert.Equal(t, raw, v)
	}

	for _, raw := range []string{"12345", "555-12ab", "++---"} {
		_, err := Coerce(KindPhone, raw)
		assert.ErrorIs(t, err, ErrInvalidPhone, "raw=%q", raw)
	}
}

func TestCoerce_Duration(t *testing.T) {
	v, err := Coerce(KindDuration, "45")
	require.NoError(t, err)
	assert.Equal(t, int64(45), v)

	for _, raw := range []string{"0", "-30", "45.5", "1h"} {
		_, err := Coerce(KindDuration, raw)
		assert.ErrorIs(t, err, ErrInvalidDuration, "raw=%q", raw)
	}
}

func TestCoerce_Text(t *testing.T) {
	v, err := Coerce(KindText, "Color & Cut")
	require.NoError(t, err)
	assert.Equal(t, "Color & Cut", v)
}
