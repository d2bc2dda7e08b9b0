package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/timesync/internal/config"
	"github.com/example/timesync/internal/participant"
	"github.com/example/timesync/internal/scheduler"
)

// meetingFlags are shared by the commands that plan over an ad-hoc roster.
type meetingFlags struct {
	participants []string
	date         string
}

func (f *meetingFlags) register(c *cobra.Command) {
	c.Flags().StringArrayVarP(&f.participants, "participant", "p", nil, `participant as "Name|Zone[|Start|End[|Email]]", repeatable`)
	c.Flags().StringVar(&f.date, "date", "", "reference day as YYYY-MM-DD (default today)")
	_ = c.MarkFlagRequired("participant")
}

// meeting is what a planning command works on once flags and env are read.
type meeting struct {
	cfg     config.Config
	planner *scheduler.Planner
	roster  participant.Roster
	day     time.Time
}

func (f *meetingFlags) load() (meeting, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return meeting{}, err
	}
	m := meeting{cfg: cfg, planner: scheduler.New(cfg.Reference, nil)}

	if len(f.participants) == 0 {
		return meeting{}, errors.New("at least one --participant is required")
	}
	roster := participant.NewRoster()
	for _, raw := range f.participants {
		p, err := participant.Parse(raw)
		if err != nil {
			return meeting{}, err
		}
		roster = roster.Add(p)
	}
	m.roster = roster

	m.day = m.planner.Day(time.Now())
	if f.date != "" {
		d, err := time.ParseInLocation(time.DateOnly, f.date, cfg.Reference)
		if err != nil {
			return meeting{}, fmt.Errorf("invalid --date %q (want YYYY-MM-DD)", f.date)
		}
		m.day = d
	}
	return m, nil
}
