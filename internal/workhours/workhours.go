// Package workhours models a participant's daily working window and decides
// whether a local wall-clock time falls inside it.
package workhours

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidClock = errors.New("invalid clock time")

// Clock is an hour:minute wall-clock time without a date or zone.
type Clock struct {
	Hour   int
	Minute int
}

var (
	DefaultStart = Clock{Hour: 9}
	DefaultEnd   = Clock{Hour: 17}
)

// Parse reads "H:MM" or "HH:MM" (24-hour). Seconds are not accepted.
func Parse(s string) (Clock, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(m) != 2 || len(h) == 0 || len(h) > 2 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	c := Clock{Hour: hour, Minute: minute}
	if !c.Valid() {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return c, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Clock {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Valid() bool {
	return c.Hour >= 0 && c.Hour < 24 && c.Minute >= 0 && c.Minute < 60
}

// Minutes is the number of minutes since midnight.
func (c Clock) Minutes() int { return c.Hour*60 + c.Minute }

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }

// Window is an inclusive [Start, End] range of local time. A window whose End
// is before its Start does not wrap past midnight; it contains nothing.
type Window struct {
	Start Clock
	End   Clock
}

func DefaultWindow() Window { return Window{Start: DefaultStart, End: DefaultEnd} }

func (w Window) Contains(t Clock) bool { return IsWorking(t, w.Start, w.End) }

func (w Window) String() string { return w.Start.String() + " - " + w.End.String() }

// IsWorking reports start <= t <= end, compared in minutes since midnight.
func IsWorking(t, start, end Clock) bool {
	m := t.Minutes()
	return m >= start.Minutes() && m <= end.Minutes()
}

// IsWorkingString is IsWorking over "HH:MM" strings. Malformed input is never working.
func IsWorkingString(t, start, end string) bool {
	tc, err := Parse(t)
	if err != nil {
		return false
	}
	sc, err := Parse(start)
	if err != nil {
		return false
	}
	ec, err := Parse(end)
	if err != nil {
		return false
	}
	return IsWorking(tc, sc, ec)
}
