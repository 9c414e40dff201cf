package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lexibel/lexctl/client"
	"github.com/lexibel/lexctl/db"
	"github.com/lexibel/lexctl/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// caseCmd groups the case management subcommands.
func caseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "case",
		Short: "Manage cases",
	}

	cmd.AddCommand(
		caseListCmd(),
		caseShowCmd(),
		caseCreateCmd(),
		caseUpdateCmd(),
		caseCloseCmd(),
		caseSearchCmd(),
		caseRefreshCmd(),
		caseExportCmd(),
	)

	return cmd
}

// caseListCmd shows the cases visible to the session.
func caseListCmd() *cobra.Command {
	var status string
	var cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the list of cases",
		Run: func(cmd *cobra.Command, args []string) {
			listCases(cmd, status, cached)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status [open, closed]")
	cmd.Flags().BoolVarP(&cached, "cached", "C", false, "List from the local cache instead of the API? [true, false]")

	return cmd
}

func listCases(cmd *cobra.Command, status string, cached bool) {
	if cached {
		matters, err := db.GetCachedMatters()
		if err != nil {
			cmd.PrintErrln("Error: Unable to list cached cases. Please check the logs for details.")
			log.Error().Err(err).Msg("Failed to fetch matters from the local cache.")
			return
		}
		if len(matters) == 0 {
			cmd.Println("The local cache is empty. Use `lexctl case refresh` to fill it.")
			return
		}
		table := newTable([]string{"Reference", "Case ID", "Status", "Title"})
		table.SetColMinWidth(3, 50)
		for _, m := range matters {
			table.Append([]string{m.Reference, m.ID, m.Status, m.Title})
		}
		table.Render()
		return
	}

	api, _, err := newAPIClient(cmd)
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}
	cases, err := api.ListCases(cmd.Context(), status)
	if err != nil {
		cmd.PrintErrln("Error: Unable to list cases. Please check the logs for details.")
		log.Error().Err(err).Msg("Failed to fetch cases from the API.")
		return
	}
	if len(cases) == 0 {
		cmd.Println("No cases found.")
		return
	}

	table := newTable([]string{"Reference", "Case ID", "Status", "Client", "Title"})
	table.SetColMinWidth(4, 50)
	for _, cs := range cases {
		table.Append([]string{cs.Reference, cs.ID, cs.Status, cs.ClientName, cs.Title})
	}
	table.Render()
}

// caseShowCmd shows detailed information about one case.
func caseShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [caseID]",
		Short: "Show information about a specific case",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showCase(cmd, args[0])
		},
	}
}

func showCase(cmd *cobra.Command, caseID string) {
	if err := validation.ValidateCaseID(caseID); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	api, _, err := newAPIClient(cmd)
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}
	cs, err := api.GetCase(cmd.Context(), caseID)
	if err != nil {
		if client.IsNotFound(err) {
			cmd.Println("No case found with the specified ID.")
			return
		}
		cmd.PrintErrln("Error:", err)
		return
	}

	cmd.Println("Case Information:")
	cmd.Printf("ID: %s\n", cs.ID)
	cmd.Printf("Reference: %s\n", cs.Reference)
	cmd.Printf("Title: %s\n", cs.Title)
	cmd.Printf("Status: %s\n", cs.Status)
	cmd.Printf("Client: %s\n", cs.ClientName)
	cmd.Printf("Opened: %s\n", cs.OpenedAt.Format(time.RFC3339))
}

// caseCreateCmd opens a new case.
func caseCreateCmd() *cobra.Command {
	var in client.CaseInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new case",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("title", in.Title); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			created, err := api.CreateCase(cmd.Context(), in)
			if err != nil {
				cmd.PrintErrln("Error: Failed to create the case:", err)
				return
			}
			cmd.Printf("Case created with ID %s (reference %s).\n", created.ID, created.Reference)
		},
	}

	cmd.Flags().StringVarP(&in.Title, "title", "t", "", "Case title (required)")
	cmd.Flags().StringVarP(&in.ClientName, "client", "n", "", "Client name")
	cmd.Flags().StringVarP(&in.Reference, "reference", "r", "", "Case reference (assigned by the server when omitted)")

	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'title' flag as required")
	}

	return cmd
}

// caseUpdateCmd changes the writable fields of a case.
func caseUpdateCmd() *cobra.Command {
	var in client.CaseInput

	cmd := &cobra.Command{
		Use:   "update [caseID]",
		Short: "Update the title or client of a case",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if in.Title == "" && in.ClientName == "" {
				cmd.PrintErrln("Error: at least one of the flags --title or --client is required.")
				return
			}
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			updated, err := api.UpdateCase(cmd.Context(), args[0], in)
			if err != nil {
				if client.IsNotFound(err) {
					cmd.Println("No case found with the specified ID.")
					return
				}
				cmd.PrintErrln("Error: Failed to update the case:", err)
				return
			}
			cmd.Printf("Case %s updated.\n", updated.ID)
		},
	}

	cmd.Flags().StringVarP(&in.Title, "title", "t", "", "New case title")
	cmd.Flags().StringVarP(&in.ClientName, "client", "n", "", "New client name")

	return cmd
}

// caseCloseCmd marks a case closed.
func caseCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close [caseID]",
		Short: "Close a case",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := api.CloseCase(cmd.Context(), args[0]); err != nil {
				cmd.PrintErrln("Error: Failed to close the case:", err)
				return
			}
			cmd.Println("Case closed.")
		},
	}
}

// caseSearchCmd searches the local cache by ID or title.
func caseSearchCmd() *cobra.Command {
	var caseID string
	var searchTerm string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search cached cases by ID or title",
		Run: func(cmd *cobra.Command, args []string) {
			searchCases(cmd, caseID, searchTerm)
		},
	}

	cmd.Flags().StringVarP(&caseID, "id", "i", "", "ID of the case to search")
	cmd.Flags().StringVarP(&searchTerm, "term", "t", "", "Search term to search for;"+
		" search is case-insensitive and does partial matching of the term with the case title")

	return cmd
}

func searchCases(cmd *cobra.Command, caseID, searchTerm string) {
	if caseID == "" && searchTerm == "" {
		cmd.PrintErrln("Error: one of the flags --id or --term is required. Use `lexctl case search -h` for more information.")
		return
	}
	if caseID != "" && searchTerm != "" {
		cmd.PrintErrln("Error: only one of the flags --id or --term is required. Use `lexctl case search -h` for more information.")
		return
	}

	var matters []db.Matter
	var err error

	if caseID != "" {
		log.Info().Msgf("Searching for case with ID=%s", caseID)
		matter, err := db.GetMatterByID(caseID)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to fetch case with ID=%s", caseID)
			cmd.PrintErrln("Error:", err)
			return
		}
		if matter != nil {
			matters = append(matters, *matter)
		}
	}

	if searchTerm != "" {
		log.Info().Msgf("Searching for cases with term=%s in the title", searchTerm)
		matters, err = db.SearchMattersByTitle(searchTerm)
		if err != nil {
			log.Error().Err(err).Msgf("Failed to search cases with term=%s in the title", searchTerm)
			cmd.PrintErrln("Error:", err)
			return
		}
	}

	if len(matters) == 0 {
		cmd.Printf("No case(s) found matching the search criteria.\n")
		return
	}

	table := newTable([]string{"Reference", "Case ID", "Status", "Title"})
	table.SetColMinWidth(3, 50)
	for _, m := range matters {
		table.Append([]string{m.Reference, m.ID, m.Status, m.Title})
	}
	table.Render()
}

// caseRefreshCmd re-fills the local cache from the API.
func caseRefreshCmd() *cobra.Command {
	var numThreads int

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Update the local case cache with the latest data from the API",
		Run: func(cmd *cobra.Command, args []string) {
			refreshCaseCache(cmd, numThreads)
		},
	}

	cmd.Flags().IntVarP(&numThreads, "threads", "t", 5, "Number of threads to use for fetching case data")
	return cmd
}

func refreshCaseCache(cmd *cobra.Command, numThreads int) {
	log.Info().Msg("Refreshing the local case cache...")

	if err := validation.ValidateThreadCount(numThreads); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	api, _, err := newAPIClient(cmd)
	if err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}

	cases, err := api.ListCases(cmd.Context(), "")
	if err != nil {
		cmd.PrintErrln("Error: Failed to fetch the list of cases. Are you logged in?")
		log.Error().Err(err).Msg("Failed to fetch cases for the cache refresh.")
		return
	}
	if len(cases) == 0 {
		log.Info().Msg("No cases found for this account.")
		return
	}
	log.Info().Msgf("Found %d cases for this account.", len(cases))

	if err := db.EmptyMatterCache(); err != nil {
		log.Fatal().Err(err).Msg("Failed to empty the local case cache.")
		return
	}

	bar := progressbar.NewOptions(len(cases),
		progressbar.OptionSetDescription("Refreshing case cache..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionClearOnFinish(),
	)

	taskChan := make(chan client.Case, 10)
	var wg sync.WaitGroup

	for i := 0; i < numThreads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cs := range taskChan {
				detail, err := api.GetCase(cmd.Context(), cs.ID)
				if err != nil {
					log.Info().Msgf("Failed to fetch details for case %s: %v", cs.ID, err)
					_ = bar.Add(1)
					continue
				}
				raw, err := json.Marshal(detail)
				if err != nil {
					log.Info().Msgf("Failed to encode details for case %s: %v", cs.ID, err)
					_ = bar.Add(1)
					continue
				}
				if err := db.PutMatter(detail.ID, detail.Reference, detail.Title, detail.Status, string(raw)); err != nil {
					log.Info().Msgf("Failed to cache case %s: %v", detail.ID, err)
				}
				_ = bar.Add(1)
			}
		}()
	}

	go func() {
		for _, cs := range cases {
			taskChan <- cs
		}
		close(taskChan)
	}()

	wg.Wait()
	_ = bar.Finish()
	cmd.Printf("Refreshing completed successfully. There are %d cases in the local cache.\n", len(cases))
}

// caseExportCmd exports the cached cases to a file in JSON or CSV format.
func caseExportCmd() *cobra.Command {
	exportPath := ""
	exportFormat := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the cached cases to a file",
		Run: func(cmd *cobra.Command, args []string) {
			exportCases(cmd, exportPath, exportFormat)
		},
	}

	cmd.Flags().StringVarP(&exportPath, "dir", "d", "", "Directory to export the file (required)")
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Export format: json or csv (required)")

	_ = cmd.MarkFlagRequired("dir")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

func exportCases(cmd *cobra.Command, exportPath, exportFormat string) {
	log.Info().Msg("Exporting the cached cases...")

	if exportPath == "" {
		cmd.PrintErrln("Error: Export path is required.")
		return
	}
	if err := validation.ValidateExportFormat(exportFormat); err != nil {
		cmd.PrintErrln("Error:", err)
		return
	}
	if err := os.MkdirAll(exportPath, os.ModePerm); err != nil {
		log.Error().Err(err).Msg("Failed to create export directory.")
		cmd.PrintErrln("Error: Failed to create export directory.")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	fileName := fmt.Sprintf("lexctl_cases_%s.%s", timestamp, exportFormat)
	filePath := filepath.Join(exportPath, fileName)

	var err error
	if exportFormat == "json" {
		err = exportCasesToJSON(filePath)
	} else {
		err = exportCasesToCSV(filePath)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to export the cached cases.")
		cmd.PrintErrln("Error: Failed to export the cached cases.")
		return
	}

	cmd.Printf("Cases exported successfully to %s.\n", filePath)
}

// exportCasesToCSV writes the cached cases to a CSV file.
func exportCasesToCSV(path string) error {
	matters, err := db.GetCachedMatters()
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to create CSV file %s", path)
		return err
	}
	defer file.Close()

	if _, err := file.WriteString("ID,Reference,Status,Title\n"); err != nil {
		log.Error().Err(err).Msg("Failed to write CSV header to file")
		return err
	}
	for _, m := range matters {
		line := fmt.Sprintf("%s,%q,%s,%q\n", m.ID, m.Reference, m.Status, m.Title)
		if _, err := file.WriteString(line); err != nil {
			log.Error().Err(err).Msgf("Failed to write case %s to CSV file", m.ID)
			return err
		}
	}

	log.Info().Msgf("Cases exported to CSV file: %s", path)
	return nil
}

// exportCasesToJSON writes the cached cases to a JSON file.
func exportCasesToJSON(path string) error {
	matters, err := db.GetCachedMatters()
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Msgf("Failed to create JSON file %s", path)
		return err
	}
	defer file.Close()

	if err := json.NewEncoder(file).Encode(matters); err != nil {
		log.Error().Err(err).Msg("Failed to write cases to JSON file")
		return err
	}

	log.Info().Msgf("Cases exported to JSON file: %s", path)
	return nil
}
