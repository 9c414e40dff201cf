package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "dupontv.aerts-2026", SanitizePath("Dupont v. Aerts: 2026"))
	assert.Equal(t, "a-b", SanitizePath("A/B"))
}

func TestDownloadDocument_VerifiesChecksum(t *testing.T) {
	content := []byte("dear sir or madam")
	sum := sha256.Sum256(content)
	doc := Document{
		ID:     "d1",
		CaseID: "c1",
		Name:   "letter.txt",
		Size:   int64(len(content)),
		SHA256: hex.EncodeToString(sum[:]),
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/d1/content", r.URL.Path)
		_, _ = w.Write(content)
	})

	destDir := t.TempDir()
	require.NoError(t, c.DownloadDocument(context.Background(), doc, destDir, DownloadOptions{}))

	saved, err := os.ReadFile(filepath.Join(destDir, "c1", "letter.txt"))
	require.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestDownloadDocument_ChecksumMismatch(t *testing.T) {
	doc := Document{ID: "d1", CaseID: "c1", Name: "letter.txt", SHA256: "deadbeef"}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("tampered content"))
	})

	err := c.DownloadDocument(context.Background(), doc, t.TempDir(), DownloadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestDownloadDocument_ResumeSendsRange(t *testing.T) {
	full := []byte("0123456789")
	doc := Document{ID: "d1", CaseID: "c1", Name: "doc.bin", Size: int64(len(full))}

	var gotRange string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRange = r.Header.Get("Range")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write(full[4:])
	})

	destDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(destDir, "c1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(destDir, "c1", "doc.bin"), full[:4], 0o644))

	require.NoError(t, c.DownloadDocument(context.Background(), doc, destDir, DownloadOptions{Resume: true}))

	assert.Equal(t, "bytes=4-", gotRange)
	saved, err := os.ReadFile(filepath.Join(destDir, "c1", "doc.bin"))
	require.NoError(t, err)
	assert.Equal(t, full, saved)
}

func TestDownloadDocument_ResumeRestartsWhenRangeIgnored(t *testing.T) {
	full := []byte("0123456789")
	doc := Document{ID: "d1", CaseID: "c1", Name: "doc.bin", Size: int64(len(full))}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// 200 instead of 206: the whole file comes back.
		_, _ = w.Write(full)
	})

	destDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(destDir, "c1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(destDir, "c1", "doc.bin"), full[:4], 0o644))

	require.NoError(t, c.DownloadDocument(context.Background(), doc, destDir, DownloadOptions{Resume: true}))

	saved, err := os.ReadFile(filepath.Join(destDir, "c1", "doc.bin"))
	require.NoError(t, err)
	assert.Equal(t, full, saved, "a restarted download must not append to the partial file")
}

func TestDownloadCaseDocuments_CollectsFailures(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/documents/bad/content" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"document not found"}`))
			return
		}
		_, _ = w.Write([]byte("ok"))
	})

	docs := []Document{
		{ID: "good", CaseID: "c1", Name: "a.txt"},
		{ID: "bad", CaseID: "c1", Name: "b.txt"},
	}
	errs := c.DownloadCaseDocuments(context.Background(), docs, t.TempDir(), 2, DownloadOptions{})

	require.Len(t, errs, 1)
	assert.True(t, IsNotFound(errs[0]))
}
