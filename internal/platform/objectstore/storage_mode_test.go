package objectstore

import (
	"errors"
	"testing"
)

func setStorageEnv(t *testing.T, mode, bucket, emulator string) {
	t.Helper()
	t.Setenv("OBJECT_STORAGE_MODE", mode)
	t.Setenv("REPORT_BUCKET_NAME", bucket)
	t.Setenv("STORAGE_EMULATOR_HOST", emulator)
	t.Setenv("REPORT_LOCAL_DIR", "")
	t.Setenv("OBJECT_STORAGE_PUBLIC_BASE_URL", "")
}

func TestResolveConfigFromEnvDefaultsToLocal(t *testing.T) {
	setStorageEnv(t, "", "", "")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Mode != ModeLocal {
		t.Fatalf("mode: want=%q got=%q", ModeLocal, cfg.Mode)
	}
	if cfg.LocalDir != "./data/reports" {
		t.Fatalf("local dir default: got %q", cfg.LocalDir)
	}
}

func TestResolveConfigFromEnvInfersGCSFromBucket(t *testing.T) {
	setStorageEnv(t, "", "reports", "")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Mode != ModeGCS {
		t.Fatalf("mode: want=%q got=%q", ModeGCS, cfg.Mode)
	}
}

func TestResolveConfigFromEnvInfersEmulator(t *testing.T) {
	setStorageEnv(t, "", "reports", "http://fake-gcs:4443")

	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		t.Fatalf("ResolveConfigFromEnv: %v", err)
	}
	if cfg.Mode != ModeGCSEmulator {
		t.Fatalf("mode: want=%q got=%q", ModeGCSEmulator, cfg.Mode)
	}
}

func TestResolveConfigFromEnvErrors(t *testing.T) {
	cases := []struct {
		name     string
		mode     string
		bucket   string
		emulator string
		code     ConfigErrorCode
	}{
		{"invalid mode", "s3", "b", "", ConfigErrorInvalidMode},
		{"gcs without bucket", "gcs", "", "", ConfigErrorMissingBucket},
		{"emulator without host", "gcs_emulator", "b", "", ConfigErrorMissingEmulatorHost},
		{"emulator bad host", "gcs_emulator", "b", "fake-gcs:4443", ConfigErrorInvalidEmulatorHost},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setStorageEnv(t, tc.mode, tc.bucket, tc.emulator)
			_, err := ResolveConfigFromEnv()
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Code != tc.code {
				t.Fatalf("code: want=%q got=%q", tc.code, cfgErr.Code)
			}
			if cfgErr.Error() == "" {
				t.Fatalf("empty error message")
			}
		})
	}
}

func TestValidateConfigRejectsRelativePublicBase(t *testing.T) {
	err := ValidateConfig(Config{Mode: ModeLocal, PublicBaseURL: "reports"})
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) || cfgErr.Code != ConfigErrorInvalidPublicBase {
		t.Fatalf("expected invalid public base error, got %v", err)
	}
}

func TestGCSPublicURL(t *testing.T) {
	s := &gcsStore{mode: ModeGCS, bucket: "reports"}
	if got := s.PublicURL("/a/b.png"); got != "https://storage.googleapis.com/reports/a/b.png" {
		t.Fatalf("gcs url: %q", got)
	}
	s = &gcsStore{mode: ModeGCSEmulator, bucket: "reports", publicBaseURL: "http://localhost:4443"}
	if got := s.PublicURL("a/b.png"); got != "http://localhost:4443/storage/v1/b/reports/o/a%2Fb.png?alt=media" {
		t.Fatalf("emulator url: %q", got)
	}
	s = &gcsStore{mode: ModeGCS, bucket: "reports", publicBaseURL: "https://cdn.example.com"}
	if got := s.PublicURL("x.json"); got != "https://cdn.example.com/reports/x.json" {
		t.Fatalf("public base url: %q", got)
	}
}
