// Package calendar turns a chosen slot into a one-hour meeting description
// and the invite link for the external calendar.
package calendar

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"github.com/example/timesync/internal/participant"
	"github.com/example/timesync/internal/scheduler"
	"github.com/samber/lo"
)

var ErrSlotOutOfRange = errors.New("slot hour out of range")

const (
	DefaultTitle  = "Team Meeting"
	DefaultDomain = "company.com"

	Duration = time.Hour
)

// Local is one participant's view of the meeting start.
type Local struct {
	Participant participant.Participant
	Time        string
	Date        string
	Available   bool
}

type Event struct {
	Title     string
	Body      string
	Attendees []string
	Start     time.Time
	End       time.Time
	Locals    []Local
}

// Builder describes meetings. Zero fields fall back to the defaults above and
// a UTC planner.
type Builder struct {
	Planner *scheduler.Planner
	Title   string
	Domain  string
}

func (b *Builder) title() string {
	if b.Title == "" {
		return DefaultTitle
	}
	return b.Title
}

func (b *Builder) domain() string {
	if b.Domain == "" {
		return DefaultDomain
	}
	return b.Domain
}

// Describe builds the event for slot on day. The body lists every participant,
// available or not, with their local time and date at the start instant.
// Attendees are the available participants only.
func (b *Builder) Describe(slot scheduler.TimeSlot, ps []participant.Participant, day time.Time) (Event, error) {
	if slot.Hour < 0 || slot.Hour >= scheduler.HoursPerDay {
		return Event{}, fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot.Hour)
	}
	zones := b.Planner.Converter()
	start := b.Planner.HourInstant(day, slot.Hour)

	ev := Event{
		Title: b.title(),
		Start: start,
		End:   start.Add(Duration),
	}
	for _, p := range ps {
		l := Local{Participant: p, Available: available(slot, p)}
		l.Time, _ = zones.LocalTime(start, p.TimeZone)
		l.Date, _ = zones.LocalDate(start, p.TimeZone)
		ev.Locals = append(ev.Locals, l)
		if l.Available {
			ev.Attendees = append(ev.Attendees, Identity(p, b.domain()))
		}
	}
	ev.Body = body(slot, ev.Locals)
	return ev, nil
}

// available joins on id; slots built without ids fall back to the display name.
func available(slot scheduler.TimeSlot, p participant.Participant) bool {
	if len(slot.IDs) > 0 {
		return slot.Has(p.ID)
	}
	return slices.Contains(slot.Participants, p.Name)
}

func body(slot scheduler.TimeSlot, locals []Local) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Meeting with: %s\n\n", strings.Join(slot.Participants, ", "))
	sb.WriteString("Local times:\n")
	lines := lo.Map(locals, func(l Local, _ int) string {
		return fmt.Sprintf("• %s: %s (%s)", l.Participant.Name, l.Time, l.Date)
	})
	sb.WriteString(strings.Join(lines, "\n"))
	return sb.String()
}

// Identity is the attendee address for p: its Email when set, otherwise
// DeriveIdentity. The derived form is a placeholder built from the display
// name; it is not looked up anywhere and two people can share it.
func Identity(p participant.Participant, domain string) string {
	if p.Email != "" {
		return p.Email
	}
	return DeriveIdentity(p.Name, domain)
}

// DeriveIdentity lower-cases name, drops all whitespace and appends @domain.
func DeriveIdentity(name, domain string) string {
	local := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToLower(name))
	return local + "@" + domain
}
