package objectstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type localStore struct {
	log           *logger.Logger
	root          string
	publicBaseURL string
}

// NewLocalStore writes objects under cfg.LocalDir, creating it if needed.
func NewLocalStore(log *logger.Logger, cfg Config) (Store, error) {
	root, err := filepath.Abs(cfg.LocalDir)
	if err != nil {
		return nil, fmt.Errorf("resolve local storage dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create local storage dir: %w", err)
	}
	serviceLog := log.With("service", "LocalStore")
	serviceLog.Info("Object storage initialized", "mode", ModeLocal, "dir", root)
	return &localStore{log: serviceLog, root: root, publicBaseURL: cfg.PublicBaseURL}, nil
}

func (s *localStore) Mode() Mode { return ModeLocal }

func (s *localStore) path(key string) (string, error) {
	key = cleanKey(key)
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}
	full := filepath.Join(s.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("object key %q escapes storage root", key)
	}
	return full, nil
}

func (s *localStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp object: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close object: %w", err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("commit object: %w", err)
	}
	return nil
}

func (s *localStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("open object: %w", err)
	}
	return f, nil
}

func (s *localStore) PublicURL(key string) string {
	key = cleanKey(key)
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	return "file://" + filepath.ToSlash(filepath.Join(s.root, filepath.FromSlash(key)))
}
