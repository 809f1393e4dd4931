package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/maturity-backend/internal/app"
	"github.com/yungbote/maturity-backend/internal/catalog"
)

// Seeds the built-in catalogs, any catalogs under SEED_CATALOG_PATH, and the
// bootstrap admin from ADMIN_EMAIL / ADMIN_PASSWORD. Safe to rerun.
func main() {
	ctx := context.Background()
	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init app: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.Close(closeCtx)
	}()

	if err := run(ctx, a); err != nil {
		a.Log.Error("Seed failed", "error", err)
		a.Close(ctx)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App) error {
	specs, err := catalog.Embedded()
	if err != nil {
		return fmt.Errorf("load built-in catalogs: %w", err)
	}

	if path := a.Cfg.SeedCatalogPath; path != "" {
		extra, err := catalog.LoadPath(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		specs = append(specs, extra...)
	}

	for _, spec := range specs {
		fw, created, err := a.Services.Framework.Seed(ctx, spec.Build())
		if err != nil {
			return fmt.Errorf("seed framework %q: %w", spec.Name, err)
		}
		domains, gates, questions := spec.Counts()
		a.Log.Info("Framework seeded",
			"framework_id", fw.ID,
			"name", fw.Name,
			"version", fw.Version,
			"created", created,
			"domains", domains,
			"gates", gates,
			"questions", questions,
		)
	}

	if a.Cfg.AdminEmail == "" || a.Cfg.AdminPassword == "" {
		a.Log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD not set; skipping admin bootstrap")
		return nil
	}
	admin, created, err := a.Services.Auth.EnsureAdmin(ctx, a.Cfg.AdminEmail, a.Cfg.AdminPassword, a.Cfg.AdminFullName)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	a.Log.Info("Admin ready", "user_id", admin.ID, "email", admin.Email, "created", created)
	return nil
}
