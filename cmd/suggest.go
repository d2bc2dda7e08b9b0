package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/timesync/internal/calendar"
	"github.com/example/timesync/internal/scheduler"
)

func newSuggestCmd() *cobra.Command {
	var (
		flags meetingFlags
		urls  bool
		top   int
	)

	c := &cobra.Command{
		Use:   "suggest",
		Short: "Rank the hours of a day by how many participants are working",
		Example: `  timesync suggest -p "Alice|America/New_York" -p "Bob|Europe/London|08:00|16:00" --date 2026-01-15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.load()
			if err != nil {
				return err
			}
			if top <= 0 {
				top = m.cfg.TopN
			}

			ps := m.roster.List()
			slots := scheduler.RankN(m.planner.Generate(ps, m.day), top)
			out := cmd.OutOrStdout()
			if len(slots) == 0 {
				fmt.Fprintln(out, "No overlapping time slots found.")
				return nil
			}

			builder := &calendar.Builder{Planner: m.planner, Title: m.cfg.MeetingTitle, Domain: m.cfg.AttendeeDomain}
			ref := m.day.Location().String()

			table := newTable(cmd)
			header := []string{"#", "Time (" + ref + ")", "Available"}
			table.SetHeader(append(header, m.roster.Names()...))

			links := make([]string, 0, len(slots))
			for i, slot := range slots {
				ev, err := builder.Describe(slot, ps, m.day)
				if err != nil {
					return err
				}
				row := []string{
					fmt.Sprint(i + 1),
					slot.Label(),
					fmt.Sprintf("%d/%d", slot.Count(), len(ps)),
				}
				for _, l := range ev.Locals {
					mark := "-"
					if l.Available {
						mark = "ok"
					}
					row = append(row, fmt.Sprintf("%s %s (%s)", l.Time, mark, l.Date))
				}
				table.Append(row)
				links = append(links, calendar.URL(ev))
			}
			table.Render()

			if urls {
				fmt.Fprintln(out)
				for i, link := range links {
					fmt.Fprintf(out, "%d. %s\n", i+1, link)
				}
			}
			return nil
		},
	}

	flags.register(c)
	c.Flags().BoolVar(&urls, "urls", false, "print a calendar invite link per slot")
	c.Flags().IntVar(&top, "top", 0, "number of slots to show (default TOP_N)")
	return c
}
