package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/lexibel/lexctl/client"
	"github.com/lexibel/lexctl/pkg/clierr"
	"github.com/lexibel/lexctl/pkg/operations"
	"github.com/lexibel/lexctl/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// fileCmd groups the document file operations.
func fileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Download and verify case documents",
	}

	cmd.AddCommand(
		downloadCmd(),
		hashCmd(),
	)

	return cmd
}

// downloadCmd creates a new cobra.Command for downloading the documents of a case.
func downloadCmd() *cobra.Command {
	var resumeFlag bool
	var flattenFlag bool
	var progressFlag bool
	var numThreads int
	var rateLimitKB int64

	cmd := &cobra.Command{
		Use:   "download [caseID] [downloadDir]",
		Short: "Download the documents of a case",
		Long:  "Download all documents attached to the specified case to the specified directory",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			err := executeDownload(cmd, args[0], args[1], resumeFlag, flattenFlag, progressFlag, numThreads, rateLimitKB)
			if err == nil {
				return
			}
			var cerr *clierr.Error
			if errors.As(err, &cerr) {
				switch cerr.Type {
				case clierr.Validation:
					cmd.PrintErrln("Error:", cerr.Message)
				case clierr.NotFound:
					cmd.PrintErrln("Error:", cerr.Message)
				default:
					cmd.PrintErrln("Error:", cerr.Message, "Please check the logs for details.")
					log.Error().Err(cerr).Msg("Document download failed.")
				}
				return
			}
			cmd.PrintErrln("Error:", err)
		},
	}

	cmd.Flags().BoolVarP(&resumeFlag, "resume", "r", true, "Resume partially downloaded files? [true, false]")
	cmd.Flags().BoolVarP(&flattenFlag, "flatten", "f", false, "Flatten the directory structure when downloading? [true, false]")
	cmd.Flags().BoolVarP(&progressFlag, "progress", "p", true, "Show per-file progress bars? [true, false]")
	cmd.Flags().IntVarP(&numThreads, "threads", "t", 5, "Number of worker threads to use for downloading [1-20]")
	cmd.Flags().Int64VarP(&rateLimitKB, "rate-limit", "k", 0, "Download rate limit in KB/s (0 means unlimited)")

	return cmd
}

// executeDownload handles the download logic for the documents of one case.
func executeDownload(cmd *cobra.Command, caseID, downloadDir string, resume, flatten, progress bool, numThreads int, rateLimitKB int64) error {
	if err := validation.ValidateCaseID(caseID); err != nil {
		return clierr.New(clierr.Validation, err.Error(), err)
	}
	if err := validation.ValidateThreadCount(numThreads); err != nil {
		return clierr.New(clierr.Validation, err.Error(), err)
	}
	if rateLimitKB < 0 {
		return clierr.New(clierr.Validation, "rate limit cannot be negative", nil)
	}

	api, _, err := newAPIClient(cmd)
	if err != nil {
		return clierr.New(clierr.Internal, "failed to build the API client", err)
	}

	docs, err := api.ListCaseDocuments(cmd.Context(), caseID)
	if err != nil {
		if client.IsNotFound(err) {
			return clierr.New(clierr.NotFound, fmt.Sprintf("no case found with ID %s", caseID), err)
		}
		return clierr.New(clierr.Download, "failed to list the case documents", err)
	}
	if len(docs) == 0 {
		cmd.Println("The case has no documents.")
		return nil
	}

	if _, err := os.Stat(downloadDir); os.IsNotExist(err) {
		log.Info().Msgf("Creating download path %s", downloadDir)
		if err := os.MkdirAll(downloadDir, os.ModePerm); err != nil {
			return clierr.New(clierr.Internal, fmt.Sprintf("failed to create download path %s", downloadDir), err)
		}
	}

	totalSize := operations.EstimateBundleSize(docs)
	cmd.Printf("Downloading %d document(s) (%s) for case %s to %q\n",
		len(docs), operations.HumanReadableSize(totalSize), caseID, downloadDir)
	cmd.Printf("Worker threads: %d, Resume: %v, Flatten: %v\n", numThreads, resume, flatten)

	if rateLimitKB > 0 {
		api.SetDownloadRateLimit(rateLimitKB * 1024)
		cmd.Printf("Rate limit: %d KB/s\n", rateLimitKB)
	}

	failures := api.DownloadCaseDocuments(cmd.Context(), docs, downloadDir, numThreads, client.DownloadOptions{
		Resume:   resume,
		Progress: progress,
		Flatten:  flatten,
	})
	if len(failures) > 0 {
		return clierr.New(clierr.Download,
			fmt.Sprintf("%d of %d document(s) failed to download", len(failures), len(docs)), failures[0])
	}

	cmd.Printf("\rDocuments downloaded successfully to: %q\n", downloadDir)
	return nil
}

// hashCmd generates hash values for downloaded documents in a directory.
func hashCmd() *cobra.Command {
	var saveToFileFlag bool
	var cleanFlag bool
	var algo string
	var recursiveFlag bool
	var numThreads int

	cmd := &cobra.Command{
		Use:   "hash [fileDir]",
		Short: "Generate hash values for downloaded documents in a directory",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			dir := args[0]
			if err := validation.ValidateHashAlgo(algo); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateThreadCount(numThreads); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			if cleanFlag {
				log.Info().Msgf("Cleaning old hash files from %s", dir)
				if err := operations.CleanHashes(dir, recursiveFlag); err != nil {
					cmd.PrintErrln("Error: Failed to clean old hash files:", err)
					return
				}
			}

			files, err := operations.FindFilesToHash(dir, recursiveFlag, operations.DefaultHashExclusions)
			if err != nil {
				cmd.PrintErrln("Error: Failed to scan the directory:", err)
				return
			}
			if len(files) == 0 {
				cmd.Println("No files found to hash.")
				return
			}

			results := operations.GenerateHashes(cmd.Context(), files, algo, numThreads)
			var hashFiles []string
			for result := range results {
				if result.Err != nil {
					log.Error().Err(result.Err).Msgf("Error generating hash for file %s", result.File)
					continue
				}
				if saveToFileFlag {
					hashFilePath := result.File + "." + algo
					if err := os.WriteFile(hashFilePath, []byte(result.Hash), 0o644); err != nil {
						log.Error().Err(err).Msgf("Error writing hash to file %s", hashFilePath)
						continue
					}
					hashFiles = append(hashFiles, hashFilePath)
				} else {
					cmd.Printf("%s hash for %q: %s\n", algo, result.File, result.Hash)
				}
			}

			if saveToFileFlag {
				cmd.Println("Generated hash files:")
				for _, file := range hashFiles {
					cmd.Println(file)
				}
			}
		},
	}

	cmd.Flags().StringVarP(&algo, "algo", "a", "sha256", "Hash algorithm to use [md5, sha1, sha256, sha512]")
	cmd.Flags().BoolVarP(&recursiveFlag, "recursive", "r", true, "Process files in subdirectories? [true, false]")
	cmd.Flags().BoolVarP(&saveToFileFlag, "save", "s", false, "Save hash to files? [true, false]")
	cmd.Flags().BoolVarP(&cleanFlag, "clean", "c", false, "Remove old hash files before generating new ones? [true, false]")
	cmd.Flags().IntVarP(&numThreads, "threads", "t", 4, "Number of worker threads to use for hashing [1-20]")

	return cmd
}
