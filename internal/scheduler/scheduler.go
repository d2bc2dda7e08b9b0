// Package scheduler finds the whole-hour meeting times on a reference day
// that fall inside the most participants' working windows.
package scheduler

import (
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/example/timesync/internal/participant"
	"github.com/example/timesync/internal/timezone"
	"github.com/example/timesync/internal/workhours"
)

const (
	HoursPerDay = 24
	DefaultTopN = 3
)

// TimeSlot is one whole hour of the reference day and who can attend it.
// Participants holds display names in roster order; IDs is index-aligned with
// it and is what downstream code should join on, since names may repeat.
type TimeSlot struct {
	Hour         int
	Participants []string
	IDs          []string
}

// Label is the hour as "HH:00" in the reference zone.
func (s TimeSlot) Label() string { return fmt.Sprintf("%02d:00", s.Hour) }

func (s TimeSlot) Count() int { return len(s.Participants) }

// Has reports whether the participant with id is available in the slot.
func (s TimeSlot) Has(id string) bool { return slices.Contains(s.IDs, id) }

// Planner evaluates participants against the hours of a reference day.
// Reference is the zone the hour labels are expressed in; nil means UTC.
type Planner struct {
	Reference *time.Location
	Zones     *timezone.Converter
}

func New(reference *time.Location, zones *timezone.Converter) *Planner {
	return &Planner{Reference: reference, Zones: zones}
}

func (p *Planner) ref() *time.Location {
	if p == nil || p.Reference == nil {
		return time.UTC
	}
	return p.Reference
}

func (p *Planner) zones() *timezone.Converter {
	if p == nil || p.Zones == nil {
		return timezone.Default()
	}
	return p.Zones
}

// Converter is the zone converter the planner projects hours with.
func (p *Planner) Converter() *timezone.Converter { return p.zones() }

// Day returns midnight of the calendar day containing t in the reference zone.
func (p *Planner) Day(t time.Time) time.Time {
	t = t.In(p.ref())
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.ref())
}

// HourInstant is hour:00 of day's calendar date in the reference zone.
func (p *Planner) HourInstant(day time.Time, hour int) time.Time {
	d := day.In(p.ref())
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, p.ref())
}

// Available reports whether pt is inside their working window at instant.
// A participant whose zone cannot be resolved is never available; such
// participants are refused by participant.New before they get here.
func (p *Planner) Available(pt participant.Participant, instant time.Time) bool {
	local, err := p.zones().In(instant, pt.TimeZone)
	if err != nil {
		return false
	}
	at := workhours.Clock{Hour: local.Hour(), Minute: local.Minute()}
	return pt.Work.Contains(at)
}

func (p *Planner) slotAt(ps []participant.Participant, day time.Time, hour int) TimeSlot {
	at := p.HourInstant(day, hour)
	s := TimeSlot{Hour: hour}
	for _, pt := range ps {
		if p.Available(pt, at) {
			s.Participants = append(s.Participants, pt.Name)
			s.IDs = append(s.IDs, pt.ID)
		}
	}
	return s
}

// Slots yields all 24 hours of day, empty ones included. The sequence can be
// ranged over any number of times and yields the same slots each time.
func (p *Planner) Slots(ps []participant.Participant, day time.Time) iter.Seq[TimeSlot] {
	ps = slices.Clone(ps)
	return func(yield func(TimeSlot) bool) {
		for hour := 0; hour < HoursPerDay; hour++ {
			if !yield(p.slotAt(ps, day, hour)) {
				return
			}
		}
	}
}

// Threshold is the attendance a slot needs to be a candidate: two people, or
// everyone when there are fewer than two.
func Threshold(total int) int { return min(2, total) }

// Generate returns the candidate slots of day in hour order. Slots nobody can
// attend are always dropped, so an empty roster yields no slots.
func (p *Planner) Generate(ps []participant.Participant, day time.Time) []TimeSlot {
	threshold := Threshold(len(ps))
	var out []TimeSlot
	for s := range p.Slots(ps, day) {
		if s.Count() == 0 || s.Count() < threshold {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Rank returns the DefaultTopN slots with the most participants.
func Rank(slots []TimeSlot) []TimeSlot { return RankN(slots, DefaultTopN) }

// RankN orders slots by participant count, highest first, keeping the input
// (hour) order among equal counts, and returns at most n of them.
func RankN(slots []TimeSlot, n int) []TimeSlot {
	if n <= 0 || len(slots) == 0 {
		return nil
	}
	out := slices.Clone(slots)
	slices.SortStableFunc(out, func(a, b TimeSlot) int { return b.Count() - a.Count() })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Best is Rank(Generate(ps, day)).
func (p *Planner) Best(ps []participant.Participant, day time.Time) []TimeSlot {
	return Rank(p.Generate(ps, day))
}
