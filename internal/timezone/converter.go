// Package timezone projects absolute instants onto the wall clock and calendar
// of an IANA time zone.
package timezone

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // fallback when the host has no zoneinfo
)

var ErrInvalidTimeZone = errors.New("invalid time zone")

const (
	clockLayout = "15:04"
	dateLayout  = "Mon, Jan 2"
)

// Converter resolves zone identifiers once and keeps the *time.Location
// around for later conversions. The zero value is ready to use.
type Converter struct {
	mu    sync.RWMutex
	cache map[string]*time.Location
}

func NewConverter() *Converter {
	return &Converter{cache: map[string]*time.Location{}}
}

// Load returns the location for an IANA zone identifier. "Local" and the empty
// string are rejected: they name the process environment, not a zone.
func (c *Converter) Load(zone string) (*time.Location, error) {
	zone = strings.TrimSpace(zone)
	if zone == "" || zone == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, zone)
	}

	c.mu.RLock()
	loc, ok := c.cache[zone]
	c.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimeZone, zone)
	}

	c.mu.Lock()
	if c.cache == nil {
		c.cache = map[string]*time.Location{}
	}
	c.cache[zone] = loc
	c.mu.Unlock()
	return loc, nil
}

// Validate reports whether zone is a recognised IANA identifier.
func (c *Converter) Validate(zone string) error {
	_, err := c.Load(zone)
	return err
}

// In returns instant expressed in zone, honouring the zone's offset rules for
// that instant (DST included).
func (c *Converter) In(instant time.Time, zone string) (time.Time, error) {
	loc, err := c.Load(zone)
	if err != nil {
		return time.Time{}, err
	}
	return instant.In(loc), nil
}

// LocalTime returns the 24-hour "HH:MM" wall clock of instant in zone.
func (c *Converter) LocalTime(instant time.Time, zone string) (string, error) {
	t, err := c.In(instant, zone)
	if err != nil {
		return "", err
	}
	return t.Format(clockLayout), nil
}

// LocalDate returns a short calendar label such as "Fri, Oct 16".
func (c *Converter) LocalDate(instant time.Time, zone string) (string, error) {
	t, err := c.In(instant, zone)
	if err != nil {
		return "", err
	}
	return t.Format(dateLayout), nil
}

var std = NewConverter()

// Default is the process-wide converter.
func Default() *Converter { return std }
