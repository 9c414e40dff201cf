package cmd

import (
	"time"

	"github.com/lexibel/lexctl/client"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// callCmd groups the call log subcommands.
func callCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Inspect the call log",
	}

	cmd.AddCommand(
		callListCmd(),
		callTranscriptCmd(),
	)

	return cmd
}

func callListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the most recent logged calls",
		Run: func(cmd *cobra.Command, args []string) {
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			calls, err := api.ListCalls(cmd.Context(), limit)
			if err != nil {
				cmd.PrintErrln("Error: Unable to list calls. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to fetch calls from the API.")
				return
			}
			if len(calls) == 0 {
				cmd.Println("No calls found.")
				return
			}

			table := newTable([]string{"Call ID", "Started", "Direction", "Caller", "Duration", "Case ID"})
			for _, call := range calls {
				table.Append([]string{
					call.ID,
					call.StartedAt.Format("2006-01-02 15:04"),
					call.Direction,
					call.Caller,
					(time.Duration(call.DurationMS) * time.Millisecond).Round(time.Second).String(),
					call.CaseID,
				})
			}
			table.Render()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of calls to show")

	return cmd
}

func callTranscriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcript [callID]",
		Short: "Show the transcript of a call",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			transcript, err := api.GetCallTranscript(cmd.Context(), args[0])
			if err != nil {
				if client.IsNotFound(err) {
					cmd.Println("No transcript available yet. Transcription may still be in progress.")
					return
				}
				cmd.PrintErrln("Error:", err)
				return
			}

			cmd.Printf("Transcript for call %s (%s):\n\n", transcript.CallID, transcript.Language)
			cmd.Println(transcript.Text)
		},
	}
}
