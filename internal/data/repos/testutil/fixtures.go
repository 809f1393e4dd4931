package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedUser stores an active assessor whose password is "password123".
func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	return SeedUserWithRole(tb, ctx, tx, email, types.RoleAssessor)
}

func SeedUserWithRole(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, role types.Role) *types.User {
	tb.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hash),
		FullName: "Test User",
		Role:     role,
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedOrganization(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Organization {
	tb.Helper()
	org := &types.Organization{
		ID:       uuid.New(),
		Name:     name,
		Industry: "software",
		Size:     "medium",
	}
	if err := tx.WithContext(ctx).Create(org).Error; err != nil {
		tb.Fatalf("seed organization: %v", err)
	}
	return org
}

// SeedFramework stores a framework whose domain i has len(shape[i]) gates
// with shape[i][g] questions each. Domain weights are all 1.
func SeedFramework(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, shape ...[]int) *types.Framework {
	tb.Helper()
	fw := &types.Framework{
		ID:      uuid.New(),
		Name:    name,
		Version: "1.0",
	}
	for di, gates := range shape {
		d := types.Domain{
			ID:          uuid.New(),
			FrameworkID: fw.ID,
			Name:        fmt.Sprintf("Domain %d", di+1),
			Weight:      1,
			Order:       di + 1,
		}
		for gi, n := range gates {
			g := types.Gate{
				ID:       uuid.New(),
				DomainID: d.ID,
				Name:     fmt.Sprintf("Gate %d.%d", di+1, gi+1),
				Order:    gi + 1,
			}
			for qi := 0; qi < n; qi++ {
				g.Questions = append(g.Questions, types.Question{
					ID:     uuid.New(),
					GateID: g.ID,
					Text:   fmt.Sprintf("Question %d.%d.%d", di+1, gi+1, qi+1),
					Order:  qi + 1,
				})
			}
			d.Gates = append(d.Gates, g)
		}
		fw.Domains = append(fw.Domains, d)
	}
	if err := tx.WithContext(ctx).Create(fw).Error; err != nil {
		tb.Fatalf("seed framework: %v", err)
	}
	return fw
}

func SeedAssessment(tb testing.TB, ctx context.Context, tx *gorm.DB, assessorID, frameworkID uuid.UUID) *types.Assessment {
	tb.Helper()
	now := time.Now().UTC()
	a := &types.Assessment{
		ID:          uuid.New(),
		TeamName:    "Platform",
		AssessorID:  assessorID,
		FrameworkID: frameworkID,
		Status:      types.AssessmentStatusDraft,
		StartedAt:   &now,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed assessment: %v", err)
	}
	return a
}

// Questions flattens a framework tree in catalog order.
func Questions(fw *types.Framework) []types.Question {
	var out []types.Question
	for _, d := range fw.Domains {
		for _, g := range d.Gates {
			out = append(out, g.Questions...)
		}
	}
	return out
}

func PtrUUID(id uuid.UUID) *uuid.UUID { return &id }
