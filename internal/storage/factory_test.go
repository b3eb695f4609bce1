package storage_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/churchsite/church-backend/internal/config"
	"github.com/churchsite/church-backend/internal/storage"
)

// stubBackend satisfies storage.Storage without touching disk.
type stubBackend struct{}

func (stubBackend) Upload(_ context.Context, _ string, _ io.Reader, _ int64) (*storage.UploadResult, error) {
	return &storage.UploadResult{}, nil
}
func (stubBackend) Download(_ context.Context, _ string) (io.ReadCloser, error) { return nil, nil }
func (stubBackend) Delete(_ context.Context, _ string) error                    { return nil }
func (stubBackend) GetURL(_ context.Context, _ string, _ time.Duration) (string, error) {
	return "", nil
}
func (stubBackend) Exists(_ context.Context, _ string) (bool, error) { return false, nil }
func (stubBackend) GetMetadata(_ context.Context, _ string) (*storage.FileMetadata, error) {
	return nil, nil
}

func TestNewStorage_UsesRegisteredFactory(t *testing.T) {
	storage.Register("stub", func(_ *config.Config) (storage.Storage, error) {
		return stubBackend{}, nil
	})

	cfg := &config.Config{}
	cfg.Storage.DefaultBackend = "stub"

	s, err := storage.NewStorage(cfg)
	if err != nil {
		t.Fatalf("NewStorage() error: %v", err)
	}
	if _, ok := s.(stubBackend); !ok {
		t.Errorf("NewStorage() = %T, want the registered stub", s)
	}
}

func TestNewStorage_UnknownBackend(t *testing.T) {
	for _, backend := range []string{"s3-compatible", ""} {
		cfg := &config.Config{}
		cfg.Storage.DefaultBackend = backend

		_, err := storage.NewStorage(cfg)
		if err == nil {
			t.Errorf("NewStorage(%q) succeeded for an unregistered backend", backend)
			continue
		}
		if backend != "" && !strings.Contains(err.Error(), backend) {
			t.Errorf("error %q does not name the unknown backend", err)
		}
	}
}
