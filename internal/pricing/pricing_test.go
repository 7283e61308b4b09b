package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, Nights(date(2024, 1, 1), date(2024, 1, 4)))
	assert.Equal(t, 1, Nights(date(2024, 2, 28), date(2024, 2, 29))) // leap year
	assert.Equal(t, 0, Nights(date(2024, 1, 4), date(2024, 1, 4)))
	assert.Equal(t, -3, Nights(date(2024, 1, 4), date(2024, 1, 1)))
}

func TestNightsIgnoresTimeOfDay(t *testing.T) {
	in := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	out := time.Date(2024, 1, 4, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 3, Nights(in, out))
}

func TestTotalCents(t *testing.T) {
	// 3 nights × $100.00 × 2 guests = $600.00
	got, err := TotalCents(date(2024, 1, 1), date(2024, 1, 4), 10000, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(60000), got)

	// single night, single guest
	got, err = TotalCents(date(2024, 6, 1), date(2024, 6, 2), 5500, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(5500), got)
}

func TestTotalCentsInvalidRange(t *testing.T) {
	got, err := TotalCents(date(2024, 1, 4), date(2024, 1, 1), 10000, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got)

	got, err = TotalCents(date(2024, 1, 4), date(2024, 1, 4), 10000, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got)
}

func TestTotalCentsOverflow(t *testing.T) {
	// 3653 nights × $500.00 × 24 guests = 4_383_600_000 cents, past the
	// 32-bit column range; must error instead of wrapping to a small number
	_, err := TotalCents(date(2024, 1, 1), date(2034, 1, 1), 50000, 24)
	assert.ErrorIs(t, err, ErrPriceOverflow)

	// largest product that still fits is fine
	got, err := TotalCents(date(2024, 1, 1), date(2024, 1, 2), 1<<31, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1<<31), got)
}

func TestSeedTotalCentsOmitsGuestMultiplier(t *testing.T) {
	got, err := SeedTotalCents(date(2024, 1, 1), date(2024, 1, 4), 10000)
	require.NoError(t, err)
	assert.Equal(t, uint32(30000), got)

	got, err = SeedTotalCents(date(2024, 1, 4), date(2024, 1, 1), 10000)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got)
}

func TestSeedTotalCentsOverflow(t *testing.T) {
	_, err := SeedTotalCents(date(2024, 1, 1), date(2324, 1, 1), 1<<31)
	assert.ErrorIs(t, err, ErrPriceOverflow)
}
