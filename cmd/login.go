package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/lexibel/lexctl/db"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd creates a new cobra.Command for logging into the LexiBel API.
func loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the LexiBel API",
		Long:  "Log in to the LexiBel API with your email and password and store the session tokens locally",
		Run: func(cmd *cobra.Command, args []string) {
			if email == "" {
				email = promptForInput("Email: ")
			}
			password := promptForPassword("Password: ")

			if email == "" || password == "" {
				cmd.PrintErrln("Error: Email and password cannot be empty.")
				return
			}

			api, cfg, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			pair, err := api.Login(cmd.Context(), email, password)
			if err != nil {
				cmd.PrintErrln("Error: Failed to log in. Please check your credentials and try again.")
				return
			}

			storer, err := newTokenStorer(cfg)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := storer.UpsertTokenRecord(&db.Token{
				AccessToken:  pair.AccessToken,
				RefreshToken: pair.RefreshToken,
			}); err != nil {
				cmd.PrintErrln("Error: Logged in but failed to store the session tokens.")
				return
			}
			cmd.Println("Login was successful.")
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address to log in with (prompted when omitted)")

	return cmd
}

// logoutCmd creates a new cobra.Command that clears the stored session.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the stored session tokens",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			session, err := newSession(cfg)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := session.Logout(); err != nil {
				cmd.PrintErrln("Error: Failed to clear the stored session tokens.")
				return
			}
			cmd.Println("Logged out.")
		},
	}
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println()
	return strings.TrimSpace(string(password))
}
