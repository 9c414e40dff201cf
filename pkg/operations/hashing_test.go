package operations_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/lexibel/lexctl/pkg/operations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCaseDir lays out a small downloaded-case directory: two documents, a
// file the exclusions should skip, and a stale hash file in a subfolder.
func seedCaseDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "conclusions.pdf"), []byte("pleading"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "timesheet.csv"), []byte("skip me"), 0600))

	exhibits := filepath.Join(dir, "exhibits")
	require.NoError(t, os.Mkdir(exhibits, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(exhibits, "exhibit-a.pdf"), []byte("exhibit"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(exhibits, "exhibit-a.pdf.md5"), []byte("stale"), 0600))

	return dir
}

func TestFindFilesToHash(t *testing.T) {
	dir := seedCaseDir(t)
	exclusions := []string{"*.csv", "*.md5"}

	t.Run("recursive walks subfolders", func(t *testing.T) {
		files, err := operations.FindFilesToHash(dir, true, exclusions)
		require.NoError(t, err)

		want := []string{
			filepath.Join(dir, "conclusions.pdf"),
			filepath.Join(dir, "exhibits", "exhibit-a.pdf"),
		}
		sort.Strings(files)
		sort.Strings(want)
		assert.Equal(t, want, files)
	})

	t.Run("non-recursive stays at the top level", func(t *testing.T) {
		files, err := operations.FindFilesToHash(dir, false, exclusions)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "conclusions.pdf")}, files)
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		_, err := operations.FindFilesToHash(filepath.Join(dir, "nope"), true, nil)
		assert.Error(t, err)
	})
}

func TestGenerateHashes_StreamsResultsAndCloses(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "transcript.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("lexctl-test"), 0600))

	results := operations.GenerateHashes(context.Background(), []string{filePath}, "md5", 1)

	result := <-results
	require.NoError(t, result.Err)
	assert.Equal(t, filePath, result.File)
	assert.Equal(t, "929b6ff16d147812c302136b0a102056", result.Hash)

	_, open := <-results
	assert.False(t, open, "channel must close after the last file")
}

func TestCleanHashes_RemovesOnlyHashFiles(t *testing.T) {
	dir := seedCaseDir(t)

	require.NoError(t, operations.CleanHashes(dir, true))

	_, err := os.Stat(filepath.Join(dir, "exhibits", "exhibit-a.pdf.md5"))
	assert.True(t, os.IsNotExist(err), "stale hash file must be deleted")
	_, err = os.Stat(filepath.Join(dir, "exhibits", "exhibit-a.pdf"))
	assert.NoError(t, err, "the document itself must survive")
}
