package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	loc := time.UTC

	t.Run("valid range", func(t *testing.T) {
		r, ok := Resolve("11/01/2023", "02/29/2024", loc)
		require.True(t, ok)
		assert.Equal(t, time.Date(2023, 11, 1, 0, 0, 0, 0, loc).Unix(), r.Gte)
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, loc).Unix(), r.Lte)
		assert.True(t, r.Valid())
	})

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{"empty start", "", "02/29/2024"},
		{"empty end", "11/01/2023", ""},
		{"bad month and day", "13/40/2023", "01/01/2024"},
		{"not a leap year", "11/01/2023", "02/29/2023"},
		{"wrong separator", "2023-11-01", "2024-02-29"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Resolve(tt.start, tt.end, loc)
			assert.False(t, ok)
		})
	}
}

func TestResolve_UsesLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}

	r, ok := Resolve("11/01/2023", "11/02/2023", ny)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 11, 1, 4, 0, 0, 0, time.UTC).Unix(), r.Gte)
}

func TestRange_ExtendToEndOfDay(t *testing.T) {
	r, ok := Resolve("02/29/2024", "02/29/2024", time.UTC)
	require.True(t, ok)

	extended := r.ExtendToEndOfDay(time.UTC)
	assert.Equal(t, r.Gte, extended.Gte)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC).Unix(), extended.Lte)
}

func TestRange_ExtendToEndOfDay_ClockChanges(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}

	tests := []struct {
		name string
		end  string
		want time.Time
	}{
		{"ordinary day", "01/31/2024", time.Date(2024, 1, 31, 23, 59, 59, 0, ny)},
		{"spring forward", "03/10/2024", time.Date(2024, 3, 10, 23, 59, 59, 0, ny)},
		{"fall back", "11/03/2024", time.Date(2024, 11, 3, 23, 59, 59, 0, ny)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := Resolve("01/01/2024", tt.end, ny)
			require.True(t, ok)

			extended := r.ExtendToEndOfDay(ny)

			got := time.Unix(extended.Lte, 0).In(ny)
			assert.Equal(t, tt.want.Unix(), extended.Lte, "got %s", got)
			assert.Equal(t, 23, got.Hour())
			assert.Equal(t, tt.want.Day(), got.Day())

			next, ok := Resolve(nextDay(tt.end, ny), nextDay(tt.end, ny), ny)
			require.True(t, ok)
			assert.Equal(t, next.Gte-1, extended.Lte, "end of day must abut the next day's start")
		})
	}
}

func nextDay(date string, loc *time.Location) string {
	d, _ := time.ParseInLocation(Layout, date, loc)
	return d.AddDate(0, 0, 1).Format(Layout)
}

func TestRange_Valid(t *testing.T) {
	assert.True(t, Range{Gte: 1, Lte: 1}.Valid())
	assert.False(t, Range{Gte: 2, Lte: 1}.Valid())
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("02/29/2024"))
	assert.False(t, IsValidDate("02/30/2024"))
	assert.False(t, IsValidDate(""))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "orders_11-01-2023_02-29-2024.csv", Filename("11/01/2023", "02/29/2024"))
	assert.Equal(t, "orders__.csv", Filename("", ""))
}
