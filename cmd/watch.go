package cmd

import (
	"encoding/json"
	"time"

	"github.com/lexibel/lexctl/client"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// watchCmd follows the live event stream and prints events as they arrive.
func watchCmd() *cobra.Command {
	var rawFlag bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the live event stream",
		Long:  "Follow the tenant's live event stream and print events as they arrive. Reconnects automatically when the connection drops.",
		Run: func(cmd *cobra.Command, args []string) {
			api, cfg, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			opts := &client.StreamOptions{
				InitialBackoff: time.Duration(cfg.Stream.InitialBackoffSeconds) * time.Second,
				MaxBackoff:     time.Duration(cfg.Stream.MaxBackoffSeconds) * time.Second,
			}

			cmd.Println("Watching for events. Press Ctrl+C to stop.")
			err = api.WatchEvents(cmd.Context(), opts, func(ev client.StreamEvent) error {
				printStreamEvent(cmd, ev, rawFlag)
				return nil
			})
			if err != nil {
				cmd.PrintErrln("Error: Event stream ended:", err)
				log.Error().Err(err).Msg("Event stream ended.")
			}
		},
	}

	cmd.Flags().BoolVarP(&rawFlag, "raw", "r", false, "Print raw event payloads instead of a summary? [true, false]")

	return cmd
}

func printStreamEvent(cmd *cobra.Command, ev client.StreamEvent, raw bool) {
	stamp := time.Now().Format("15:04:05")
	if raw {
		cmd.Printf("[%s] %s %s\n", stamp, ev.Event, ev.Data)
		return
	}

	// Most events carry a case_id and a human-readable summary.
	var payload struct {
		CaseID  string `json:"case_id"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(ev.Data), &payload); err != nil || payload.Summary == "" {
		cmd.Printf("[%s] %s %s\n", stamp, ev.Event, ev.Data)
		return
	}
	if payload.CaseID != "" {
		cmd.Printf("[%s] %s (case %s): %s\n", stamp, ev.Event, payload.CaseID, payload.Summary)
	} else {
		cmd.Printf("[%s] %s: %s\n", stamp, ev.Event, payload.Summary)
	}
}
