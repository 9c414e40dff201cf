package cmd

import (
	"github.com/google/uuid"
	"github.com/lexibel/lexctl/client"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// connectCmd runs the mailbox connect wizard for a sync provider.
func connectCmd() *cobra.Command {
	var manualFlag bool

	cmd := &cobra.Command{
		Use:   "connect [provider]",
		Short: "Connect a Google or Microsoft mailbox for mail and calendar sync",
		Long: "Connect a mailbox for mail and calendar sync. Opens the provider's consent page " +
			"in a browser window and completes the connection when consent is granted.",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			provider := args[0]
			if !client.IsValidProvider(provider) {
				cmd.PrintErrln("Error: Unsupported provider. Supported providers: google, microsoft.")
				return
			}

			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			settings, err := api.GetConnectSettings(cmd.Context(), provider)
			if err != nil {
				cmd.PrintErrln("Error: Failed to fetch the connect settings:", err)
				return
			}

			state := uuid.NewString()
			consentURL, err := client.ConsentURL(provider, settings, state)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			var code string
			if manualFlag {
				cmd.Println("Open the following URL in your browser and grant consent:")
				cmd.Println(consentURL)
				redirectURL := promptForInput("Paste the full redirect URL here: ")
				code, err = client.ExtractAuthCode(redirectURL)
				if err != nil {
					cmd.PrintErrln("Error:", err)
					return
				}
			} else {
				cmd.Println("A browser window will open for you to grant consent.")
				code, err = client.AuthorizeInBrowser(cmd.Context(), consentURL, settings.RedirectURI)
				if err != nil {
					cmd.PrintErrln("Error: Consent flow failed:", err)
					log.Error().Err(err).Msg("Consent flow failed.")
					cmd.Println("Tip: use --manual to complete the flow without a controlled browser.")
					return
				}
			}

			if err := api.CompleteMailboxConnect(cmd.Context(), provider, code, state); err != nil {
				cmd.PrintErrln("Error: Failed to complete the connection:", err)
				return
			}
			cmd.Printf("Mailbox connected. %s mail and calendar will now sync.\n", provider)
		},
	}

	cmd.Flags().BoolVarP(&manualFlag, "manual", "m", false, "Complete the consent flow manually by pasting the redirect URL? [true, false]")

	return cmd
}
