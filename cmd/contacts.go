package cmd

import (
	"github.com/lexibel/lexctl/client"
	"github.com/lexibel/lexctl/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// contactCmd groups the address book subcommands.
func contactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage the address book",
	}

	cmd.AddCommand(
		contactListCmd(),
		contactShowCmd(),
		contactAddCmd(),
	)

	return cmd
}

func contactListCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the contacts in the address book",
		Run: func(cmd *cobra.Command, args []string) {
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			contacts, err := api.ListContacts(cmd.Context(), query)
			if err != nil {
				cmd.PrintErrln("Error: Unable to list contacts. Please check the logs for details.")
				log.Error().Err(err).Msg("Failed to fetch contacts from the API.")
				return
			}
			if len(contacts) == 0 {
				cmd.Println("No contacts found.")
				return
			}

			table := newTable([]string{"ID", "Kind", "Name", "Email", "Company"})
			table.SetColMinWidth(2, 30)
			for _, contact := range contacts {
				table.Append([]string{contact.ID, contact.Kind, contact.Name, contact.Email, contact.Company})
			}
			table.Render()
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search term matched against names, emails, and companies")

	return cmd
}

func contactShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [contactID]",
		Short: "Show information about a specific contact",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			contact, err := api.GetContact(cmd.Context(), args[0])
			if err != nil {
				if client.IsNotFound(err) {
					cmd.Println("No contact found with the specified ID.")
					return
				}
				cmd.PrintErrln("Error:", err)
				return
			}

			cmd.Println("Contact Information:")
			cmd.Printf("ID: %s\n", contact.ID)
			cmd.Printf("Kind: %s\n", contact.Kind)
			cmd.Printf("Name: %s\n", contact.Name)
			cmd.Printf("Email: %s\n", contact.Email)
			cmd.Printf("Phone: %s\n", contact.Phone)
			cmd.Printf("Company: %s\n", contact.Company)
		},
	}
}

func contactAddCmd() *cobra.Command {
	var in client.Contact

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact to the address book",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("name", in.Name); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if in.Kind == "" {
				in.Kind = "person"
			}
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			created, err := api.CreateContact(cmd.Context(), in)
			if err != nil {
				cmd.PrintErrln("Error: Failed to add the contact:", err)
				return
			}
			cmd.Printf("Contact added with ID %s.\n", created.ID)
		},
	}

	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "Contact name (required)")
	cmd.Flags().StringVarP(&in.Kind, "kind", "k", "person", "Contact kind [person, organization]")
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&in.Phone, "phone", "p", "", "Phone number")
	cmd.Flags().StringVarP(&in.Company, "company", "o", "", "Company name")

	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'name' flag as required")
	}

	return cmd
}
