package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage stores claim documents (inspection photos, engineer reports,
// policies, correspondence). Uploads are keyed by document category so a
// claim's file set groups naturally when exported or browsed in a bucket.
type Storage interface {
	// Upload stores a document under its category and returns the storage path
	Upload(ctx context.Context, fileID uuid.UUID, category, filename string, data io.Reader) (string, error)

	// Download retrieves a document by storage path
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes a document by storage path
	Delete(ctx context.Context, storagePath string) error
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeLocal:
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("S3 bucket is required for S3 storage")
		}
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewStorageFromEnv builds the storage config from environment variables and
// defers to NewStorage. Local storage with a claim-documents root is the
// development default.
func NewStorageFromEnv() (Storage, error) {
	cfg := StorageConfig{
		Type: StorageType(os.Getenv("STORAGE_TYPE")),
	}
	if cfg.Type == "" {
		cfg.Type = StorageTypeLocal
	}

	switch cfg.Type {
	case StorageTypeLocal:
		cfg.LocalPath = os.Getenv("STORAGE_LOCAL_PATH")
		if cfg.LocalPath == "" {
			cfg.LocalPath = "./storage/claim-documents"
		}
	case StorageTypeS3:
		cfg.S3Bucket = os.Getenv("AWS_S3_BUCKET")
		cfg.S3Region = os.Getenv("AWS_REGION")
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		cfg.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
	}

	return NewStorage(cfg)
}

const uncategorized = "uncategorized"

// generateStoragePath lays a document out by category, then a two-character
// fileID shard to keep directory fan-out bounded:
//
//	<category>/<id[:2]>/<id>_<sanitized-name><ext>
func generateStoragePath(fileID uuid.UUID, category, filename string) string {
	cat := sanitizeSegment(category)
	if cat == "" {
		cat = uncategorized
	}

	ext := strings.ToLower(filepath.Ext(filename))
	base := sanitizeSegment(strings.TrimSuffix(filename, filepath.Ext(filename)))
	if base == "" {
		base = "document"
	}

	id := fileID.String()
	return fmt.Sprintf("%s/%s/%s_%s%s", cat, id[:2], id, base, ext)
}

// sanitizeSegment reduces a path segment to lowercase alphanumerics, dashes,
// and underscores. Separators and dots collapse to underscores so a filename
// can never introduce directory structure.
func sanitizeSegment(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '.', r == '/', r == '\\':
			b.WriteRune('_')
		}
	}
	return b.String()
}
