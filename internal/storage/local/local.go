// Package local implements the local filesystem media storage backend. A
// single-site church deployment runs on one node, so the local backend is
// the default and only built-in backend; the Storage interface keeps the
// door open for cloud backends without touching callers.
package local

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/churchsite/church-backend/internal/config"
	"github.com/churchsite/church-backend/internal/storage"
	"github.com/churchsite/church-backend/pkg/checksum"
)

func init() {
	storage.Register("local", func(cfg *config.Config) (storage.Storage, error) {
		return New(&cfg.Storage.Local, cfg.Server.BaseURL)
	})
}

// LocalStorage stores uploads under a single base directory on disk.
type LocalStorage struct {
	basePath      string
	serveDirectly bool
	baseURL       string
}

// New creates the backend, making the base directory if it is missing.
func New(cfg *config.LocalStorageConfig, serverBaseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(cfg.BasePath, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath:      cfg.BasePath,
		serveDirectly: cfg.ServeDirectly,
		baseURL:       serverBaseURL,
	}, nil
}

// diskPath maps a storage path (always slash-separated) onto the filesystem.
func (s *LocalStorage) diskPath(path string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(path))
}

// Upload writes the stream to disk, hashing it on the way through. A failed
// write removes the partial file so a retry starts clean.
func (s *LocalStorage) Upload(ctx context.Context, path string, reader io.Reader, size int64) (*storage.UploadResult, error) {
	fullPath := s.diskPath(path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	hasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(file, hasher), reader)
	if err != nil {
		_ = os.Remove(fullPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &storage.UploadResult{
		Path:     path,
		Size:     written,
		Checksum: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

// Download opens the stored file for reading. The caller closes it.
func (s *LocalStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(s.diskPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes the file. A missing file is treated as already deleted, and
// empty parent directories are pruned up to the base path.
func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	fullPath := s.diskPath(path)

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	for dir := filepath.Dir(fullPath); dir != s.basePath; dir = filepath.Dir(dir) {
		if err := os.Remove(dir); err != nil {
			break // non-empty, stop pruning
		}
	}
	return nil
}

// GetURL returns a URL for loading the file. With ServeDirectly enabled this
// is the /media/ route on the public server; otherwise a file:// URL. The ttl
// is ignored, local URLs do not expire.
func (s *LocalStorage) GetURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	exists, err := s.Exists(ctx, path)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("file not found: %s", path)
	}

	if s.serveDirectly {
		return fmt.Sprintf("%s/media/%s", s.baseURL, path), nil
	}
	return "file://" + s.diskPath(path), nil
}

// Exists reports whether a file is present at the path.
func (s *LocalStorage) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(s.diskPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}
	return true, nil
}

// GetMetadata stats the file and re-hashes its content, so a corrupted file
// on disk shows up as a checksum that no longer matches the upload record.
func (s *LocalStorage) GetMetadata(ctx context.Context, path string) (*storage.FileMetadata, error) {
	fullPath := s.diskPath(path)

	stat, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to get file metadata: %w", err)
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file for checksum: %w", err)
	}
	defer file.Close()

	sum, err := checksum.CalculateSHA256(file)
	if err != nil {
		return nil, err
	}

	return &storage.FileMetadata{
		Path:         path,
		Size:         stat.Size(),
		Checksum:     sum,
		LastModified: stat.ModTime(),
	}, nil
}
