package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

// Store persists exported report artifacts.
type Store interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	PublicURL(key string) string
	Mode() Mode
}

// New builds the Store selected by cfg.Mode.
func New(ctx context.Context, log *logger.Logger, cfg Config) (Store, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate object storage config: %w", err)
	}
	switch cfg.Mode {
	case ModeLocal:
		return NewLocalStore(log, cfg)
	case ModeGCS, ModeGCSEmulator:
		return NewGCSStore(ctx, log, cfg)
	default:
		return nil, &ConfigError{Code: ConfigErrorInvalidMode, Value: string(cfg.Mode)}
	}
}

func cleanKey(key string) string {
	return strings.TrimLeft(strings.TrimSpace(key), "/")
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".png"):
		return "image/png"
	case strings.HasSuffix(s, ".json"):
		return "application/json"
	case strings.HasSuffix(s, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(s, ".csv"):
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}
