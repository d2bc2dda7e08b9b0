package participant

import (
	"testing"

	"github.com/example/timesync/internal/timezone"
	"github.com/example/timesync/internal/workhours"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New(Input{Name: "  Ada Lovelace ", TimeZone: "Europe/London", WorkStart: "08:30", WorkEnd: "16:00"})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Equal(t, "Ada Lovelace", p.Name)
	require.Equal(t, "Europe/London", p.TimeZone)
	require.Equal(t, workhours.Window{Start: workhours.Clock{Hour: 8, Minute: 30}, End: workhours.Clock{Hour: 16}}, p.Work)
}

func TestNew_DefaultsAndUniqueIDs(t *testing.T) {
	a, err := New(Input{Name: "A", TimeZone: "Asia/Tokyo"})
	require.NoError(t, err)
	b, err := New(Input{Name: "A", TimeZone: "Asia/Tokyo"})
	require.NoError(t, err)

	require.Equal(t, workhours.DefaultWindow(), a.Work)
	require.NotEqual(t, a.ID, b.ID)
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		err  error
	}{
		{"empty name", Input{Name: "   ", TimeZone: "UTC"}, ErrEmptyName},
		{"missing zone", Input{Name: "A"}, timezone.ErrInvalidTimeZone},
		{"unknown zone", Input{Name: "A", TimeZone: "Atlantis/Capital"}, timezone.ErrInvalidTimeZone},
		{"local zone", Input{Name: "A", TimeZone: "Local"}, timezone.ErrInvalidTimeZone},
		{"bad start", Input{Name: "A", TimeZone: "UTC", WorkStart: "9am"}, workhours.ErrInvalidClock},
		{"bad end", Input{Name: "A", TimeZone: "UTC", WorkEnd: "25:00"}, workhours.ErrInvalidClock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.in)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNew_RejectsBadEmail(t *testing.T) {
	_, err := New(Input{Name: "A", TimeZone: "UTC", Email: "not-an-address"})
	require.Error(t, err)

	p, err := New(Input{Name: "A", TimeZone: "UTC", Email: "a@example.org"})
	require.NoError(t, err)
	require.Equal(t, "a@example.org", p.Email)
}

func TestNew_AllowsInvertedWindow(t *testing.T) {
	p, err := New(Input{Name: "Night", TimeZone: "UTC", WorkStart: "22:00", WorkEnd: "06:00"})
	require.NoError(t, err)
	require.False(t, p.Work.Contains(workhours.Clock{Hour: 23}))
}

func TestParse(t *testing.T) {
	p, err := Parse("Bob|America/Chicago|10:00|18:00|bob@example.org")
	require.NoError(t, err)
	require.Equal(t, "Bob", p.Name)
	require.Equal(t, "America/Chicago", p.TimeZone)
	require.Equal(t, "10:00 - 18:00", p.Work.String())
	require.Equal(t, "bob@example.org", p.Email)

	p, err = Parse("Eve|Asia/Bangkok")
	require.NoError(t, err)
	require.Equal(t, workhours.DefaultWindow(), p.Work)

	_, err = Parse("just-a-name")
	require.Error(t, err)

	_, err = Parse("Eve|Nowhere/Land")
	require.ErrorIs(t, err, timezone.ErrInvalidTimeZone)
}
