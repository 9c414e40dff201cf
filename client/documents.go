package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexibel/lexctl/pkg/hasher"
	"github.com/lexibel/lexctl/pkg/pool"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// DownloadOptions control document downloads.
type DownloadOptions struct {
	Resume   bool
	Progress bool
	Flatten  bool
}

// SanitizePath sanitizes a string for use as a directory name: lowercase,
// spaces removed, colons replaced with hyphens.
func SanitizePath(name string) string {
	replacements := []struct {
		old string
		new string
	}{
		{"®", ""},
		{" ", ""},
		{":", "-"},
		{"(", ""},
		{")", ""},
		{"/", "-"},
	}
	name = strings.ToLower(name)
	for _, r := range replacements {
		name = strings.ReplaceAll(name, r.old, r.new)
	}
	return name
}

// ensureDirExists checks for a directory and creates it if needed.
func ensureDirExists(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("path %s exists but is not a directory", path)
		}
		return nil
	}
	if os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModePerm)
	}
	return err
}

// DownloadDocument fetches one case document to destDir, resuming partial
// files when requested and verifying the server-reported checksum.
func (c *Client) DownloadDocument(ctx context.Context, doc Document, destDir string, opts DownloadOptions) error {
	subDir := ""
	if !opts.Flatten {
		subDir = SanitizePath(doc.CaseID)
	}
	filePath := filepath.Join(destDir, subDir, doc.Name)
	if err := ensureDirExists(filepath.Dir(filePath)); err != nil {
		return fmt.Errorf("failed to prepare directory for %s: %w", filePath, err)
	}

	var file *os.File
	var startOffset int64
	var err error
	if opts.Resume {
		if info, statErr := os.Stat(filePath); statErr == nil {
			startOffset = info.Size()
			log.Info().Msgf("Resuming download for %s from offset %d", doc.Name, startOffset)
			file, err = os.OpenFile(filePath, os.O_APPEND|os.O_WRONLY, 0o644)
		} else {
			file, err = os.Create(filePath)
		}
	} else {
		file, err = os.Create(filePath)
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer file.Close()

	if doc.Size > 0 && startOffset >= doc.Size {
		log.Info().Msgf("File %s is already fully downloaded (%d bytes). Skipping.", doc.Name, doc.Size)
		return nil
	}

	contentPath := "/documents/" + url.PathEscape(doc.ID) + "/content"
	var headers http.Header
	if startOffset > 0 {
		headers = http.Header{"Range": {fmt.Sprintf("bytes=%d-", startOffset)}}
	}
	resp, err := c.streaming().execute(ctx, http.MethodGet, contentPath, nil, headers)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", doc.Name, err)
	}
	defer resp.Body.Close()

	// A server that ignored the Range header restarts the file.
	if startOffset > 0 && resp.StatusCode != http.StatusPartialContent {
		startOffset = 0
		if err := file.Truncate(0); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", filePath, err)
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return err
		}
	}

	reader := c.throttled(resp.Body)
	if opts.Progress {
		bar := progressbar.NewOptions64(
			doc.Size,
			progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", doc.Name)),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "#",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
		if err := bar.Set64(startOffset); err != nil {
			return fmt.Errorf("failed to set progress bar offset: %w", err)
		}
		reader = io.TeeReader(reader, bar)
	}
	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to save file %s: %w", filePath, err)
	}

	if doc.SHA256 != "" {
		sum, err := hasher.GenerateHash(filePath, "sha256")
		if err != nil {
			return fmt.Errorf("failed to hash %s: %w", filePath, err)
		}
		if !strings.EqualFold(sum, doc.SHA256) {
			return fmt.Errorf("checksum mismatch for %s: got %s, want %s", doc.Name, sum, doc.SHA256)
		}
	}
	return nil
}

// DownloadCaseDocuments fetches a set of documents concurrently using a
// bounded worker pool. It returns the errors of the downloads that failed.
func (c *Client) DownloadCaseDocuments(ctx context.Context, docs []Document, destDir string, workers int, opts DownloadOptions) []error {
	if workers < 1 {
		workers = 1
	}
	return pool.Run(ctx, docs, workers, func(ctx context.Context, doc Document) error {
		if err := c.DownloadDocument(ctx, doc, destDir, opts); err != nil {
			log.Error().Err(err).Msgf("Failed to download %s", doc.Name)
			return err
		}
		return nil
	})
}
