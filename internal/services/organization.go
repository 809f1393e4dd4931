package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/maturity-backend/internal/data/repos"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/platform/apierr"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type OrganizationInput struct {
	Name     string
	Industry string
	Size     types.OrganizationSize
}

// OrganizationPatch carries the fields of a partial update; nil means keep.
type OrganizationPatch struct {
	Name     *string
	Industry *string
	Size     *types.OrganizationSize
}

type OrganizationService interface {
	List(ctx context.Context, skip, limit int) ([]*types.Organization, error)
	Create(ctx context.Context, in OrganizationInput) (*types.Organization, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Organization, error)
	Update(ctx context.Context, id uuid.UUID, patch OrganizationPatch) (*types.Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type organizationService struct {
	db       *gorm.DB
	log      *logger.Logger
	orgRepo  repos.OrganizationRepo
	userRepo repos.UserRepo
}

func NewOrganizationService(db *gorm.DB, log *logger.Logger, orgRepo repos.OrganizationRepo, userRepo repos.UserRepo) OrganizationService {
	serviceLog := log.With("service", "OrganizationService")
	return &organizationService{db: db, log: serviceLog, orgRepo: orgRepo, userRepo: userRepo}
}

func (ogs *organizationService) List(ctx context.Context, skip, limit int) ([]*types.Organization, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	skip, limit = page(skip, limit)
	orgs, err := ogs.orgRepo.List(ctx, nil, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

func (ogs *organizationService) Create(ctx context.Context, in OrganizationInput) (*types.Organization, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.BadRequest("invalid_name", "Organization name is required")
	}
	if in.Size != "" && !in.Size.Valid() {
		return nil, apierr.BadRequest("invalid_size", "Size must be small, medium, large or enterprise")
	}
	org := &types.Organization{
		ID:       uuid.New(),
		Name:     name,
		Industry: strings.TrimSpace(in.Industry),
		Size:     in.Size,
	}
	if _, err := ogs.orgRepo.Create(ctx, nil, []*types.Organization{org}); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}
	return org, nil
}

// Get is open to admins and to members of the organization.
func (ogs *organizationService) Get(ctx context.Context, id uuid.UUID) (*types.Organization, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	org, err := ogs.load(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if rd.IsAdmin() {
		return org, nil
	}
	users, err := ogs.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch caller: %w", err)
	}
	if len(users) == 0 || users[0].OrganizationID == nil || *users[0].OrganizationID != id {
		return nil, apierr.Forbidden("access_denied", "Access denied")
	}
	return org, nil
}

func (ogs *organizationService) Update(ctx context.Context, id uuid.UUID, patch OrganizationPatch) (*types.Organization, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	org, err := ogs.load(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apierr.BadRequest("invalid_name", "Organization name is required")
		}
		org.Name = name
	}
	if patch.Industry != nil {
		org.Industry = strings.TrimSpace(*patch.Industry)
	}
	if patch.Size != nil {
		if *patch.Size != "" && !patch.Size.Valid() {
			return nil, apierr.BadRequest("invalid_size", "Size must be small, medium, large or enterprise")
		}
		org.Size = *patch.Size
	}
	org.UpdatedAt = time.Now().UTC()
	if err := ogs.orgRepo.Update(ctx, nil, org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}

// Delete removes the organization and detaches its members.
func (ogs *organizationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	return ogs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ogs.load(ctx, tx, id); err != nil {
			return err
		}
		if err := ogs.userRepo.ClearOrganization(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to detach members: %w", err)
		}
		if err := ogs.orgRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return fmt.Errorf("failed to delete organization: %w", err)
		}
		return nil
	})
}

func (ogs *organizationService) load(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Organization, error) {
	orgs, err := ogs.orgRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch organization: %w", err)
	}
	if len(orgs) == 0 {
		return nil, apierr.NotFound("organization_not_found", "Organization not found")
	}
	return orgs[0], nil
}
