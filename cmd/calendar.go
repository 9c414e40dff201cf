package cmd

import (
	"time"

	"github.com/lexibel/lexctl/client"
	"github.com/lexibel/lexctl/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// agendaCmd groups the calendar subcommands.
func agendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Manage the calendar",
	}

	cmd.AddCommand(
		agendaListCmd(),
		agendaAddCmd(),
	)

	return cmd
}

func agendaListCmd() *cobra.Command {
	var fromStr string
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show upcoming calendar entries",
		Run: func(cmd *cobra.Command, args []string) {
			from := time.Now()
			if fromStr != "" {
				parsed, err := time.Parse("2006-01-02", fromStr)
				if err != nil {
					cmd.PrintErrln("Error: Invalid --from date. Use the YYYY-MM-DD format.")
					return
				}
				from = parsed
			}
			if days < 1 {
				cmd.PrintErrln("Error: --days must be a positive number.")
				return
			}

			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			events, err := api.ListEvents(cmd.Context(), from, from.AddDate(0, 0, days))
			if err != nil {
				cmd.PrintErrln("Error: Unable to list calendar entries. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to fetch calendar entries from the API.")
				return
			}
			if len(events) == 0 {
				cmd.Println("No calendar entries found in the selected window.")
				return
			}

			table := newTable([]string{"Start", "Kind", "Title", "Location", "Case ID"})
			table.SetColMinWidth(2, 30)
			for _, ev := range events {
				table.Append([]string{
					ev.Start.Format("2006-01-02 15:04"),
					ev.Kind,
					ev.Title,
					ev.Location,
					ev.CaseID,
				})
			}
			table.Render()
		},
	}

	cmd.Flags().StringVarP(&fromStr, "from", "f", "", "Start of the window in YYYY-MM-DD format (defaults to today)")
	cmd.Flags().IntVarP(&days, "days", "d", 7, "Number of days to show")

	return cmd
}

func agendaAddCmd() *cobra.Command {
	var in client.CalendarEvent
	var startStr string
	var durationMinutes int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a calendar entry",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("title", in.Title); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			start, err := time.Parse("2006-01-02 15:04", startStr)
			if err != nil {
				cmd.PrintErrln("Error: Invalid --start value. Use the \"YYYY-MM-DD HH:MM\" format.")
				return
			}
			if durationMinutes < 1 {
				cmd.PrintErrln("Error: --duration must be a positive number of minutes.")
				return
			}
			in.Start = start
			in.End = start.Add(time.Duration(durationMinutes) * time.Minute)

			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			created, err := api.CreateEvent(cmd.Context(), in)
			if err != nil {
				cmd.PrintErrln("Error: Failed to add the calendar entry:", err)
				return
			}
			cmd.Printf("Calendar entry added with ID %s.\n", created.ID)
		},
	}

	cmd.Flags().StringVarP(&in.Title, "title", "t", "", "Entry title (required)")
	cmd.Flags().StringVarP(&in.Kind, "kind", "k", "meeting", "Entry kind [hearing, meeting, deadline]")
	cmd.Flags().StringVarP(&startStr, "start", "s", "", "Start time in \"YYYY-MM-DD HH:MM\" format (required)")
	cmd.Flags().IntVarP(&durationMinutes, "duration", "m", 60, "Duration in minutes")
	cmd.Flags().StringVarP(&in.Location, "location", "l", "", "Location")
	cmd.Flags().StringVarP(&in.CaseID, "case", "i", "", "Case to attach the entry to")

	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'title' flag as required")
	}
	if err := cmd.MarkFlagRequired("start"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'start' flag as required")
	}

	return cmd
}
