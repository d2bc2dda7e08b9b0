package cmd

import (
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/example/timesync/internal/timezone"
)

func newZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the selectable time zones with their current local time",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			zones := timezone.Default()

			table := newTable(cmd)
			table.SetHeader([]string{"Zone", "Label", "Local", "Date"})
			for _, z := range timezone.Catalog() {
				local, err := zones.LocalTime(now, z.ID)
				if err != nil {
					return err
				}
				date, _ := zones.LocalDate(now, z.ID)
				table.Append([]string{z.ID, z.Label, local, date})
			}
			table.Render()
			return nil
		},
	}
}

// newTable is the borderless left-aligned layout shared by the CLI listings.
func newTable(cmd *cobra.Command) *tablewriter.Table {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
