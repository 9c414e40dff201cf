package cmd

import (
	"github.com/lexibel/lexctl/client"
	"github.com/lexibel/lexctl/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// billingCmd groups the invoicing and time tracking subcommands.
func billingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Manage invoices and billable time",
	}

	cmd.AddCommand(
		invoiceListCmd(),
		invoiceShowCmd(),
		logTimeCmd(),
	)

	return cmd
}

func invoiceListCmd() *cobra.Command {
	var caseID string

	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Show invoices",
		Run: func(cmd *cobra.Command, args []string) {
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			invoices, err := api.ListInvoices(cmd.Context(), caseID)
			if err != nil {
				cmd.PrintErrln("Error: Unable to list invoices. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to fetch invoices from the API.")
				return
			}
			if len(invoices) == 0 {
				cmd.Println("No invoices found.")
				return
			}

			table := newTable([]string{"Number", "Invoice ID", "Status", "Amount", "Issued", "Case ID"})
			for _, inv := range invoices {
				table.Append([]string{
					inv.Number,
					inv.ID,
					inv.Status,
					formatAmount(inv.AmountCents, inv.Currency),
					inv.IssuedAt.Format("2006-01-02"),
					inv.CaseID,
				})
			}
			table.Render()
		},
	}

	cmd.Flags().StringVarP(&caseID, "case", "i", "", "Restrict to invoices of one case")

	return cmd
}

func invoiceShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [invoiceID]",
		Short: "Show information about a specific invoice",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			inv, err := api.GetInvoice(cmd.Context(), args[0])
			if err != nil {
				if client.IsNotFound(err) {
					cmd.Println("No invoice found with the specified ID.")
					return
				}
				cmd.PrintErrln("Error:", err)
				return
			}

			cmd.Println("Invoice Information:")
			cmd.Printf("ID: %s\n", inv.ID)
			cmd.Printf("Number: %s\n", inv.Number)
			cmd.Printf("Status: %s\n", inv.Status)
			cmd.Printf("Amount: %s\n", formatAmount(inv.AmountCents, inv.Currency))
			cmd.Printf("Case: %s\n", inv.CaseID)
			cmd.Printf("Issued: %s\n", inv.IssuedAt.Format("2006-01-02"))
		},
	}
}

func logTimeCmd() *cobra.Command {
	var entry client.TimeEntry

	cmd := &cobra.Command{
		Use:   "log-time",
		Short: "Record billable time against a case",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateCaseID(entry.CaseID); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if entry.Minutes <= 0 {
				cmd.PrintErrln("Error: --minutes must be a positive number.")
				return
			}
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := api.RecordTimeEntry(cmd.Context(), entry); err != nil {
				cmd.PrintErrln("Error: Failed to record the time entry:", err)
				return
			}
			cmd.Printf("Recorded %d minutes against case %s.\n", entry.Minutes, entry.CaseID)
		},
	}

	cmd.Flags().StringVarP(&entry.CaseID, "case", "i", "", "Case to bill the time against (required)")
	cmd.Flags().IntVarP(&entry.Minutes, "minutes", "m", 0, "Number of minutes worked (required)")
	cmd.Flags().StringVarP(&entry.Description, "description", "d", "", "What the time was spent on")
	cmd.Flags().BoolVarP(&entry.Billable, "billable", "b", true, "Is the time billable? [true, false]")

	if err := cmd.MarkFlagRequired("case"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'case' flag as required")
	}
	if err := cmd.MarkFlagRequired("minutes"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'minutes' flag as required")
	}

	return cmd
}
