package cmd

import (
	"fmt"
	"os"

	"github.com/lexibel/lexctl/auth"
	"github.com/lexibel/lexctl/client"
	"github.com/lexibel/lexctl/config"
	"github.com/lexibel/lexctl/db"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// loadConfig resolves the configuration for a command, honoring the global
// --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// newTokenStorer selects the token storage backend from the configuration.
func newTokenStorer(cfg *config.Config) (auth.TokenStorer, error) {
	if cfg.Auth.Storage == config.TokenStorageKeyring {
		return auth.NewKeyringStorer(cfg.Auth.KeyringAccount)
	}
	return auth.NewRepoStorer(db.NewTokenRepository(db.GetDB())), nil
}

// newSession builds the auth service that backs every authenticated command.
func newSession(cfg *config.Config) (*auth.Service, error) {
	storer, err := newTokenStorer(cfg)
	if err != nil {
		return nil, err
	}
	refresher := client.NewRefresher(client.New(cfg.API.BaseURL, nil, client.WithTenant(cfg.API.Tenant)))
	return auth.NewService(storer, refresher), nil
}

// newAPIClient wires config, token storage, and the refresh coordinator into
// a ready-to-use API client.
func newAPIClient(cmd *cobra.Command) (*client.Client, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	session, err := newSession(cfg)
	if err != nil {
		return nil, nil, err
	}
	c := client.New(cfg.API.BaseURL, session,
		client.WithTenant(cfg.API.Tenant),
		client.WithTimeout(cfg.API.Timeout()),
		client.WithSessionExpiredHook(func() {
			cmd.PrintErrln("Your session has expired. Please run 'lexctl login' again.")
		}),
	)
	return c, cfg, nil
}

// newTable creates a table writer with the standard lexctl appearance.
func newTable(headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)
	return table
}

// formatAmount renders an integer cent amount as a currency string.
func formatAmount(cents int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100, currency)
}
