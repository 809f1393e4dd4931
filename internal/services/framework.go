package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yungbote/maturity-backend/internal/data/repos"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/platform/apierr"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type FrameworkService interface {
	List(ctx context.Context, skip, limit int) ([]*types.Framework, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Framework, error)
	Structure(ctx context.Context, id uuid.UUID) (*types.Framework, error)
	Seed(ctx context.Context, fw *types.Framework) (*types.Framework, bool, error)
}

type frameworkService struct {
	db            *gorm.DB
	log           *logger.Logger
	frameworkRepo repos.FrameworkRepo
}

func NewFrameworkService(db *gorm.DB, log *logger.Logger, frameworkRepo repos.FrameworkRepo) FrameworkService {
	serviceLog := log.With("service", "FrameworkService")
	return &frameworkService{db: db, log: serviceLog, frameworkRepo: frameworkRepo}
}

func (fs *frameworkService) List(ctx context.Context, skip, limit int) ([]*types.Framework, error) {
	skip, limit = page(skip, limit)
	frameworks, err := fs.frameworkRepo.List(ctx, nil, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list frameworks: %w", err)
	}
	return frameworks, nil
}

func (fs *frameworkService) Get(ctx context.Context, id uuid.UUID) (*types.Framework, error) {
	found, err := fs.frameworkRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch framework: %w", err)
	}
	if len(found) == 0 {
		return nil, apierr.NotFound("framework_not_found", "Framework not found")
	}
	return found[0], nil
}

// Structure returns the framework with its domains, gates and questions in
// display order.
func (fs *frameworkService) Structure(ctx context.Context, id uuid.UUID) (*types.Framework, error) {
	fw, err := fs.frameworkRepo.GetTree(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch framework structure: %w", err)
	}
	if fw == nil {
		return nil, apierr.NotFound("framework_not_found", "Framework not found")
	}
	return fw, nil
}

// Seed stores fw unless a framework with the same name and version exists.
// The bool reports whether fw was created.
func (fs *frameworkService) Seed(ctx context.Context, fw *types.Framework) (*types.Framework, bool, error) {
	if fw == nil {
		return nil, false, fmt.Errorf("framework required")
	}
	var (
		out     *types.Framework
		created bool
	)
	err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := fs.frameworkRepo.GetByNameVersion(ctx, tx, fw.Name, fw.Version)
		if err != nil {
			return fmt.Errorf("failed to look up framework: %w", err)
		}
		if existing != nil {
			out = existing
			return nil
		}
		if _, err := fs.frameworkRepo.Create(ctx, tx, []*types.Framework{fw}); err != nil {
			return fmt.Errorf("failed to create framework: %w", err)
		}
		out, created = fw, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if created {
		fs.log.Info("Seeded framework", "framework_id", out.ID, "name", out.Name, "version", out.Version)
	} else {
		fs.log.Debug("Framework already present", "framework_id", out.ID, "name", out.Name, "version", out.Version)
	}
	return out, created, nil
}
