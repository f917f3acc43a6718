package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("2024-12-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2024-13-01", "2024-02-30", "20-12-2024", "2024-12-20T10:00:00Z"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestBetweenInclusive(t *testing.T) {
	got := Between(MustParse("2024-12-30"), MustParse("2025-01-02"))
	require.Len(t, got, 4)
	assert.Equal(t, "2024-12-30", Format(got[0]))
	assert.Equal(t, "2025-01-02", Format(got[3]))

	assert.Len(t, Between(MustParse("2024-01-01"), MustParse("2024-01-01")), 1)
	assert.Empty(t, Between(MustParse("2024-01-05"), MustParse("2024-01-01")))
}

func TestNights(t *testing.T) {
	assert.Equal(t, 3, Nights(MustParse("2024-07-30"), MustParse("2024-08-02")))
	assert.Equal(t, 0, Nights(MustParse("2024-07-30"), MustParse("2024-07-30")))
	assert.Equal(t, 0, Nights(MustParse("2024-08-02"), MustParse("2024-07-30")))
	// DST changes in the host zone must not matter
	assert.Equal(t, 1, Nights(MustParse("2024-03-30"), MustParse("2024-03-31")))
	assert.Equal(t, 366, Nights(MustParse("2024-01-01"), MustParse("2025-01-01")))
	assert.Equal(t, 3652058, Nights(MustParse("0001-01-01"), MustParse("9999-12-31")))
}

func TestToday(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("tzdata not available")
	}
	now := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-01", Format(Today(now, time.UTC)))
	assert.Equal(t, "2024-06-02", Format(Today(now, madrid)))
}

func TestSet(t *testing.T) {
	s := NewSet("2024-12-25", "2024-12-25", "not-a-date", "2024-01-01")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"2024-01-01", "2024-12-25"}, s.Sorted())

	s.Add(MustParse("2024-06-01"))
	assert.True(t, s.Has(MustParse("2024-06-01")))
	s.Remove(MustParse("2024-06-01"))
	assert.False(t, s.Has(MustParse("2024-06-01")))

	assert.Equal(t, []string{"2024-01-01", "2024-02-01"}, Normalize([]string{"2024-02-01", "2024-01-01", "2024-02-01"}))
}
