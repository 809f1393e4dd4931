package app

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/maturity-backend/internal/clients/redis"
	"github.com/yungbote/maturity-backend/internal/data/db"
	"github.com/yungbote/maturity-backend/internal/observability"
	"github.com/yungbote/maturity-backend/internal/platform/envutil"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

const defaultJWTSecret = "defaultsecret"

type Config struct {
	Port        string
	ServiceName string
	Version     string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	DB    db.Config
	Redis redis.Config

	SubmitLockTTL time.Duration
	CORSOrigins   []string

	Otel observability.OtelConfig

	AdminEmail      string
	AdminPassword   string
	AdminFullName   string
	SeedCatalogPath string
}

// LoadEnvFiles loads .env when present. Real environment variables win.
func LoadEnvFiles(log *logger.Logger) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file loaded", "error", err)
	}
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "maturity-backend"),
		Version:     envutil.String("APP_VERSION", "1.0.0"),

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", defaultJWTSecret),
		AccessTokenTTL: time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second,

		DB: db.Config{
			Driver:          envutil.String("DB_DRIVER", db.DriverPostgres),
			DatabaseURL:     envutil.String("DATABASE_URL", ""),
			Host:            envutil.String("POSTGRES_HOST", "localhost"),
			Port:            envutil.String("POSTGRES_PORT", "5432"),
			User:            envutil.String("POSTGRES_USER", "postgres"),
			Password:        envutil.String("POSTGRES_PASSWORD", ""),
			Name:            envutil.String("POSTGRES_NAME", "maturity"),
			SSLMode:         envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:      envutil.String("SQLITE_PATH", "maturity.db"),
			MaxOpenConns:    envutil.Int("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    envutil.Int("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envutil.Duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", ""),
			Password: envutil.String("REDIS_PASSWORD", ""),
			DB:       envutil.Int("REDIS_DB", 0),
		},

		SubmitLockTTL: envutil.Duration("SUBMIT_LOCK_TTL", 30*time.Second),
		CORSOrigins:   envutil.List("CORS_ALLOWED_ORIGINS", nil),

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "maturity-backend"),
			Environment: envutil.String("OTEL_ENVIRONMENT", "development"),
			Version:     envutil.String("APP_VERSION", "1.0.0"),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLE_RATIO", 1),
		},

		AdminEmail:      envutil.String("ADMIN_EMAIL", ""),
		AdminPassword:   envutil.String("ADMIN_PASSWORD", ""),
		AdminFullName:   envutil.String("ADMIN_FULL_NAME", "Administrator"),
		SeedCatalogPath: envutil.String("SEED_CATALOG_PATH", ""),
	}
	if cfg.JWTSecretKey == defaultJWTSecret {
		log.Warn("JWT_SECRET_KEY not set; using the development default")
	}
	return cfg
}
