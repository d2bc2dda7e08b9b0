package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConverter_LocalTime(t *testing.T) {
	c := NewConverter()

	tests := []struct {
		name    string
		instant time.Time
		zone    string
		want    string
	}{
		{"new york winter", time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC), "America/New_York", "09:00"},
		{"new york summer", time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC), "America/New_York", "10:00"},
		{"london summer", time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC), "Europe/London", "15:00"},
		{"kolkata half hour", time.Date(2026, 7, 15, 14, 0, 0, 0, time.UTC), "Asia/Kolkata", "19:30"},
		{"tokyo past midnight", time.Date(2026, 7, 15, 16, 0, 0, 0, time.UTC), "Asia/Tokyo", "01:00"},
		{"utc", time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC), "UTC", "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.LocalTime(tt.instant, tt.zone)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestConverter_LocalDate(t *testing.T) {
	c := NewConverter()
	instant := time.Date(2026, 10, 16, 16, 0, 0, 0, time.UTC)

	got, err := c.LocalDate(instant, "Asia/Tokyo")
	require.NoError(t, err)
	require.Equal(t, "Sat, Oct 17", got)

	got, err = c.LocalDate(instant, "America/Los_Angeles")
	require.NoError(t, err)
	require.Equal(t, "Fri, Oct 16", got)
}

func TestConverter_InvalidZone(t *testing.T) {
	c := NewConverter()
	for _, zone := range []string{"", "Local", "Mars/Olympus_Mons", "  "} {
		_, err := c.LocalTime(time.Now(), zone)
		require.ErrorIs(t, err, ErrInvalidTimeZone, "zone %q", zone)
		require.ErrorIs(t, c.Validate(zone), ErrInvalidTimeZone)
	}
}

func TestConverter_ZeroValueCaches(t *testing.T) {
	var c Converter
	loc, err := c.Load("Europe/Paris")
	require.NoError(t, err)

	again, err := c.Load("Europe/Paris")
	require.NoError(t, err)
	require.Same(t, loc, again)
}

func TestCatalog(t *testing.T) {
	c := NewConverter()
	zones := Catalog()
	require.Len(t, zones, 14)
	for _, z := range zones {
		require.NoError(t, c.Validate(z.ID))
	}
	require.Equal(t, "Tokyo (JST)", Label("Asia/Tokyo"))
	require.Equal(t, "Africa/Lagos", Label("Africa/Lagos"))
}
