package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yungbote/maturity-backend/internal/data/repos"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/platform/apierr"
	"github.com/yungbote/maturity-backend/internal/platform/ctxutil"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

func requireCaller(ctx context.Context) (*ctxutil.RequestData, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthorized("not_authenticated", "Not authenticated")
	}
	return rd, nil
}

func requireAdmin(ctx context.Context) (*ctxutil.RequestData, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	if !rd.IsAdmin() {
		return nil, apierr.Forbidden("access_denied", "Not enough permissions")
	}
	return rd, nil
}

// page clamps skip/limit query values.
func page(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return skip, limit
}

// loadOwnedAssessment fetches an assessment the caller owns.
func loadOwnedAssessment(ctx context.Context, repo repos.AssessmentRepo, tx *gorm.DB, id uuid.UUID) (*types.Assessment, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	found, err := repo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assessment: %w", err)
	}
	if len(found) == 0 {
		return nil, apierr.NotFound("assessment_not_found", "Assessment not found")
	}
	if found[0].AssessorID != rd.UserID {
		return nil, apierr.Forbidden("access_denied", "Access denied")
	}
	return found[0], nil
}
