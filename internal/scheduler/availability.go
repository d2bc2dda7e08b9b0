package scheduler

import (
	"time"

	"github.com/example/timesync/internal/participant"
)

// Cell is one hour of a participant's availability strip.
type Cell struct {
	Hour    int
	Local   string // "HH:MM" in the participant's zone
	Working bool
}

// Strip is the 24-hour availability of one participant on the reference day.
type Strip struct {
	Participant participant.Participant
	Cells       []Cell
}

// Availability builds one strip per participant, in roster order.
func (p *Planner) Availability(ps []participant.Participant, day time.Time) []Strip {
	out := make([]Strip, 0, len(ps))
	for _, pt := range ps {
		st := Strip{Participant: pt, Cells: make([]Cell, 0, HoursPerDay)}
		for hour := 0; hour < HoursPerDay; hour++ {
			at := p.HourInstant(day, hour)
			local, err := p.zones().LocalTime(at, pt.TimeZone)
			if err != nil {
				local = "--:--"
			}
			st.Cells = append(st.Cells, Cell{Hour: hour, Local: local, Working: p.Available(pt, at)})
		}
		out = append(out, st)
	}
	return out
}

// Clock is a participant's current local time, as shown next to their name.
type Clock struct {
	Participant participant.Participant
	Time        string
	Date        string
}

// Clocks reports every participant's local time and date at now.
func (p *Planner) Clocks(ps []participant.Participant, now time.Time) []Clock {
	out := make([]Clock, 0, len(ps))
	for _, pt := range ps {
		c := Clock{Participant: pt}
		c.Time, _ = p.zones().LocalTime(now, pt.TimeZone)
		c.Date, _ = p.zones().LocalDate(now, pt.TimeZone)
		out = append(out, c)
	}
	return out
}
