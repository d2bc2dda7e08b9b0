package cmd

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/example/timesync/internal/scheduler"
)

var (
	workingCell = color.New(color.FgBlack, color.BgGreen)
	offCell     = color.New(color.FgDarkGray)
)

func newOverlapCmd() *cobra.Command {
	var (
		flags   meetingFlags
		noColor bool
	)

	c := &cobra.Command{
		Use:   "overlap",
		Short: "Show each participant's working hours across the reference day",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := flags.load()
			if err != nil {
				return err
			}
			if noColor {
				color.Enable = false
			}

			ps := m.roster.List()
			strips := m.planner.Availability(ps, m.day)
			width := 0
			for _, p := range ps {
				width = max(width, len(p.Name))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-*s  %s\n", width, m.day.Location().String(), hourRuler())
			for _, st := range strips {
				fmt.Fprintf(out, "%-*s  %s\n", width, st.Participant.Name, renderStrip(st))
			}

			counts := make([]int, scheduler.HoursPerDay)
			for _, slot := range m.planner.Generate(ps, m.day) {
				counts[slot.Hour] = slot.Count()
			}
			fmt.Fprintf(out, "%-*s  %s\n", width, "", renderCounts(counts))
			return nil
		},
	}

	flags.register(c)
	c.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI colours")
	return c
}

func hourRuler() string {
	var sb strings.Builder
	for h := 0; h < scheduler.HoursPerDay; h++ {
		fmt.Fprintf(&sb, "%02d ", h)
	}
	return strings.TrimRight(sb.String(), " ")
}

// renderStrip draws one three-column cell per hour: "##" while working.
func renderStrip(st scheduler.Strip) string {
	cells := make([]string, 0, len(st.Cells))
	for _, c := range st.Cells {
		if c.Working {
			cells = append(cells, workingCell.Render("##"))
		} else {
			cells = append(cells, offCell.Render(".."))
		}
	}
	return strings.Join(cells, " ")
}

// renderCounts lines up the per-hour overlap count below the strips; hours
// under the threshold stay blank.
func renderCounts(counts []int) string {
	cells := make([]string, len(counts))
	for h, n := range counts {
		if n == 0 {
			cells[h] = "  "
			continue
		}
		cells[h] = fmt.Sprintf("%2d", n)
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}
