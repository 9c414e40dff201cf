package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lexibel/lexctl/pkg/clierr"
	"github.com/lexibel/lexctl/pkg/hasher"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteDownload_EmptyCaseID(t *testing.T) {
	err := executeDownload(&cobra.Command{}, "", t.TempDir(), true, false, false, 5, 0)
	require.Error(t, err)

	var cerr *clierr.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, clierr.Validation, cerr.Type)
	assert.Contains(t, cerr.Message, "case ID")
}

func TestExecuteDownload_InvalidThreadCount(t *testing.T) {
	err := executeDownload(&cobra.Command{}, "c-1", t.TempDir(), true, false, false, 0, 0)
	require.Error(t, err)

	var cerr *clierr.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, clierr.Validation, cerr.Type)
	assert.Contains(t, cerr.Message, "thread count")
}

func TestExecuteDownload_NegativeRateLimit(t *testing.T) {
	err := executeDownload(&cobra.Command{}, "c-1", t.TempDir(), true, false, false, 5, -1)
	require.Error(t, err)

	var cerr *clierr.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, clierr.Validation, cerr.Type)
	assert.Contains(t, cerr.Message, "rate limit")
}

func TestFileHashCmd_PrintsHashes(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "pleadings.pdf")
	require.NoError(t, os.WriteFile(filePath, []byte("document body"), 0o644))

	want, err := hasher.GenerateHash(filePath, "sha256")
	require.NoError(t, err)

	output, err := captureCombinedOutput(hashCmd(), dir)
	require.NoError(t, err)
	assert.Contains(t, output, want)
	assert.Contains(t, output, "pleadings.pdf")
}

func TestFileHashCmd_SavesToFiles(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "exhibit-a.pdf")
	require.NoError(t, os.WriteFile(filePath, []byte("exhibit contents"), 0o644))

	output, err := captureCombinedOutput(hashCmd(), dir, "--save", "--algo", "md5")
	require.NoError(t, err)
	assert.Contains(t, output, "Generated hash files:")

	want, err := hasher.GenerateHash(filePath, "md5")
	require.NoError(t, err)
	got, err := os.ReadFile(filePath + ".md5")
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestFileHashCmd_CleanRemovesOldHashFiles(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "exhibit-b.pdf")
	require.NoError(t, os.WriteFile(filePath, []byte("newer contents"), 0o644))
	staleHash := filePath + ".sha256"
	require.NoError(t, os.WriteFile(staleHash, []byte("stale"), 0o644))

	_, err := captureCombinedOutput(hashCmd(), dir, "--clean", "--save")
	require.NoError(t, err)

	want, err := hasher.GenerateHash(filePath, "sha256")
	require.NoError(t, err)
	got, err := os.ReadFile(staleHash)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestFileHashCmd_InvalidAlgo(t *testing.T) {
	output, err := captureCombinedOutput(hashCmd(), t.TempDir(), "--algo", "crc32")
	require.NoError(t, err)
	assert.Contains(t, output, "unsupported hash algorithm")
}

func TestFileHashCmd_EmptyDirectory(t *testing.T) {
	output, err := captureCombinedOutput(hashCmd(), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, output, "No files found to hash.")
}
