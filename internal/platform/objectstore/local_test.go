package objectstore

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

func newTestLocalStore(t *testing.T) Store {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	s, err := New(context.Background(), log, Config{Mode: ModeLocal, LocalDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestLocalStoreRoundTrip(t *testing.T) {
	s := newTestLocalStore(t)
	ctx := context.Background()

	if err := s.Upload(ctx, "reports/a/report.json", strings.NewReader(`{"ok":true}`), ""); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	// overwrite in place
	if err := s.Upload(ctx, "reports/a/report.json", strings.NewReader(`{"ok":false}`), "application/json"); err != nil {
		t.Fatalf("Upload(overwrite): %v", err)
	}

	rc, err := s.Download(ctx, "/reports/a/report.json")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != `{"ok":false}` {
		t.Fatalf("body: %q", body)
	}
	if s.Mode() != ModeLocal {
		t.Fatalf("mode: %q", s.Mode())
	}
	if u := s.PublicURL("reports/a/report.json"); !strings.HasPrefix(u, "file://") || !strings.HasSuffix(u, "reports/a/report.json") {
		t.Fatalf("public url: %q", u)
	}
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	s := newTestLocalStore(t)
	ctx := context.Background()
	for _, key := range []string{"../outside.json", "a/../../outside.json", ""} {
		if err := s.Upload(ctx, key, strings.NewReader("x"), ""); err == nil {
			t.Fatalf("Upload(%q): expected error", key)
		}
	}
}

func TestContentTypeForKey(t *testing.T) {
	cases := map[string]string{
		"a.PNG":  "image/png",
		"b.json": "application/json",
		"c.bin":  "application/octet-stream",
		"d.pdf":  "application/pdf",
		"e.csv":  "text/csv",
	}
	for key, want := range cases {
		if got := contentTypeForKey(key); got != want {
			t.Fatalf("%s: got %q want %q", key, got, want)
		}
	}
}
