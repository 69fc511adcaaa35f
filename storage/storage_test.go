package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStoragePathLayout(t *testing.T) {
	fileID := uuid.New()

	path := generateStoragePath(fileID, "photo", "North Slope.jpg")

	parts := strings.Split(path, "/")
	require.Len(t, parts, 3)
	assert.Equal(t, "photo", parts[0])
	assert.Equal(t, fileID.String()[:2], parts[1])
	assert.True(t, strings.HasPrefix(parts[2], fileID.String()+"_"))
	assert.True(t, strings.HasSuffix(parts[2], ".jpg"))
	assert.NotContains(t, parts[2], " ")
}

func TestGenerateStoragePathDefaults(t *testing.T) {
	fileID := uuid.New()

	path := generateStoragePath(fileID, "", "../../etc/passwd")

	assert.True(t, strings.HasPrefix(path, "uncategorized/"))
	assert.NotContains(t, path, "..")

	// A filename that sanitizes away entirely still produces a usable name
	path = generateStoragePath(fileID, "report", "...")
	assert.Contains(t, path, "_document")
}

func TestSanitizeSegment(t *testing.T) {
	assert.Equal(t, "engineer_report_v2", sanitizeSegment("Engineer Report.v2"))
	assert.Equal(t, "correspondence", sanitizeSegment("  CORRESPONDENCE  "))
	assert.Equal(t, "a_b", sanitizeSegment(`a\b`))
	assert.Equal(t, "", sanitizeSegment("日本語"))
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", getContentType("engineer_report.PDF"))
	assert.Equal(t, "image/jpeg", getContentType("slope.jpeg"))
	assert.Equal(t, "image/png", getContentType("hail-marks.png"))
	assert.Equal(t, "application/octet-stream", getContentType("estimate.xactimate"))
}

func TestLocalStorageRoundtrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	fileID := uuid.New()
	content := []byte("creased shingles along the windward ridge")

	path, err := store.Upload(ctx, fileID, "report", "inspection notes.txt", bytes.NewReader(content))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "report/"))

	reader, err := store.Download(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, store.Delete(ctx, path))
	_, err = store.Download(ctx, path)
	assert.Error(t, err)
}

func TestLocalStorageRejectsEscapingPaths(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	_, err = store.Download(ctx, "../outside.txt")
	assert.ErrorIs(t, err, errStoragePathEscapes)

	err = store.Delete(ctx, "/etc/passwd")
	assert.ErrorIs(t, err, errStoragePathEscapes)
}

func TestNewStorageRejectsUnknownType(t *testing.T) {
	_, err := NewStorage(StorageConfig{Type: "ftp"})
	assert.Error(t, err)

	_, err = NewStorage(StorageConfig{Type: StorageTypeS3})
	assert.Error(t, err) // bucket required
}
