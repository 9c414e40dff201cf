package cmd

import (
	"fmt"

	"github.com/lexibel/lexctl/client"
	"github.com/lexibel/lexctl/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// conflictCmd groups the conflict-of-interest subcommands.
func conflictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conflict",
		Short: "Run conflict-of-interest checks",
	}

	cmd.AddCommand(
		conflictCheckCmd(),
		conflictGraphCmd(),
	)

	return cmd
}

func conflictCheckCmd() *cobra.Command {
	var check client.ConflictCheck

	cmd := &cobra.Command{
		Use:   "check [partyName]",
		Short: "Check a candidate party for conflicts of interest",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			check.PartyName = args[0]
			if err := validation.ValidateNonEmptyString("party name", check.PartyName); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			result, err := api.CheckConflicts(cmd.Context(), check)
			if err != nil {
				cmd.PrintErrln("Error: Conflict check failed:", err)
				return
			}

			if !result.Conflicted {
				cmd.Printf("No conflicts found for %q.\n", check.PartyName)
				return
			}

			cmd.Printf("Found %d potential conflict(s) for %q:\n", len(result.Hits), check.PartyName)
			table := newTable([]string{"Case ID", "Case Title", "Role", "Score"})
			table.SetColMinWidth(1, 40)
			for _, hit := range result.Hits {
				table.Append([]string{
					hit.CaseID,
					hit.CaseTitle,
					hit.Role,
					fmt.Sprintf("%.2f", hit.Score),
				})
			}
			table.Render()
		},
	}

	cmd.Flags().StringSliceVarP(&check.Aliases, "alias", "a", nil, "Alternative spellings of the party name (repeatable)")
	cmd.Flags().StringVarP(&check.CaseID, "case", "i", "", "Case the candidate party would join")

	return cmd
}

func conflictGraphCmd() *cobra.Command {
	var dot bool

	cmd := &cobra.Command{
		Use:   "graph [caseID]",
		Short: "Show the relationship graph around a case",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			graph, err := api.GetConflictGraph(cmd.Context(), args[0])
			if err != nil {
				cmd.PrintErrln("Error: Failed to fetch the relationship graph:", err)
				log.Error().Err(err).Msg("Failed to fetch the relationship graph.")
				return
			}

			if dot {
				cmd.Print(graph.DOT())
				return
			}

			if len(graph.Edges) == 0 {
				cmd.Println("No relationships found around the specified case.")
				return
			}
			table := newTable([]string{"From", "Relation", "To"})
			labels := make(map[string]string, len(graph.Nodes))
			for _, node := range graph.Nodes {
				labels[node.ID] = node.Label
			}
			for _, edge := range graph.Edges {
				table.Append([]string{labels[edge.From], edge.Relation, labels[edge.To]})
			}
			table.Render()
		},
	}

	cmd.Flags().BoolVarP(&dot, "dot", "d", false, "Print the graph in Graphviz DOT format? [true, false]")

	return cmd
}
