package objectstore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type gcsStore struct {
	log           *logger.Logger
	client        *storage.Client
	mode          Mode
	bucket        string
	emulatorHost  string
	publicBaseURL string
}

func NewGCSStore(ctx context.Context, log *logger.Logger, cfg Config) (Store, error) {
	serviceLog := log.With("service", "GCSStore")

	client, err := newStorageClientForMode(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	publicBase := cfg.PublicBaseURL
	if publicBase == "" && cfg.Mode == ModeGCSEmulator {
		publicBase = strings.TrimRight(cfg.EmulatorHost, "/")
	}

	serviceLog.Info(
		"Object storage initialized",
		"mode", cfg.Mode,
		"bucket", cfg.Bucket,
		"emulator_host", cfg.EmulatorHost,
		"public_base_url", publicBase,
	)

	return &gcsStore{
		log:           serviceLog,
		client:        client,
		mode:          cfg.Mode,
		bucket:        cfg.Bucket,
		emulatorHost:  strings.TrimRight(cfg.EmulatorHost, "/"),
		publicBaseURL: publicBase,
	}, nil
}

func newStorageClientForMode(ctx context.Context, cfg Config) (*storage.Client, error) {
	switch cfg.Mode {
	case ModeGCS:
		opts := ClientOptionsFromEnv()
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
		return storage.NewClient(ctx, opts...)
	case ModeGCSEmulator:
		endpoint := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
		// the storage client only honours the emulator through this variable
		_ = os.Setenv("STORAGE_EMULATOR_HOST", endpoint)
		return storage.NewClient(ctx, option.WithoutAuthentication())
	default:
		return nil, &ConfigError{Code: ConfigErrorInvalidMode, Value: string(cfg.Mode)}
	}
}

func (s *gcsStore) Mode() Mode { return s.mode }

func (s *gcsStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	key = cleanKey(key)
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if contentType == "" {
		contentType = contentTypeForKey(key)
	}
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

type readCloserWithCancel struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *readCloserWithCancel) Close() error {
	err := r.ReadCloser.Close()
	if r.cancel != nil {
		r.cancel()
	}
	return err
}

func (s *gcsStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	// the reader outlives this call; cancel on Close instead of defer
	ctx2, cancel := context.WithTimeout(ctx, 2*time.Minute)
	r, err := s.client.Bucket(s.bucket).Object(cleanKey(key)).NewReader(ctx2)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open GCS reader: %w", err)
	}
	return &readCloserWithCancel{ReadCloser: r, cancel: cancel}, nil
}

func (s *gcsStore) PublicURL(key string) string {
	key = cleanKey(key)
	if s.mode == ModeGCSEmulator && s.publicBaseURL != "" {
		return fmt.Sprintf(
			"%s/storage/v1/b/%s/o/%s?alt=media",
			s.publicBaseURL,
			url.PathEscape(s.bucket),
			url.PathEscape(key),
		)
	}
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}
