package cmd

import (
	"os"

	"github.com/lexibel/lexctl/client"
	"github.com/lexibel/lexctl/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// draftCmd streams an AI-generated document draft to the terminal or a file.
func draftCmd() *cobra.Command {
	var req client.DraftRequest
	var outputPath string

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Generate a document draft with the AI drafting service",
		Long:  "Generate a document draft for a case from a template and stream the text as it is produced",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateCaseID(req.CaseID); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateNonEmptyString("template", req.TemplateSlug); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api, _, err := newAPIClient(cmd)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			out := os.Stdout
			if outputPath != "" {
				file, err := os.Create(outputPath)
				if err != nil {
					cmd.PrintErrln("Error: Failed to create the output file:", err)
					return
				}
				defer file.Close()
				out = file
			}

			err = api.StreamDraft(cmd.Context(), req, func(text string) error {
				_, werr := out.WriteString(text)
				return werr
			})
			if err != nil {
				cmd.PrintErrln("\nError: Draft generation failed:", err)
				log.Error().Err(err).Msg("Draft stream failed.")
				return
			}
			if outputPath != "" {
				cmd.Printf("Draft written to %s.\n", outputPath)
			} else {
				cmd.Println()
			}
		},
	}

	cmd.Flags().StringVarP(&req.CaseID, "case", "i", "", "Case to draft the document for (required)")
	cmd.Flags().StringVarP(&req.TemplateSlug, "template", "t", "", "Template to draft from, e.g. aanmaning (required)")
	cmd.Flags().StringVarP(&req.Instructions, "instructions", "n", "", "Free-form drafting instructions")
	cmd.Flags().StringVarP(&req.Language, "lang", "l", "", "Draft language [nl, fr, en]")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the draft to a file instead of the terminal")

	if err := cmd.MarkFlagRequired("case"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'case' flag as required")
	}
	if err := cmd.MarkFlagRequired("template"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'template' flag as required")
	}

	return cmd
}
