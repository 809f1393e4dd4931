package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/maturity-backend/internal/data/repos/testutil"
	types "github.com/yungbote/maturity-backend/internal/domain"
)

func TestFrameworkRepoTreeIsOrdered(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewFrameworkRepo(db, testutil.Logger(t))

	// insert out of order; the tree must come back by display order
	fw := &types.Framework{
		Name:    "fw-" + uuid.NewString(),
		Version: "1",
		Domains: []types.Domain{
			{Name: "Second", Weight: 1, Order: 2, Gates: []types.Gate{
				{Name: "G2b", Order: 2, Questions: []types.Question{{Text: "q", Order: 1}}},
				{Name: "G2a", Order: 1, Questions: []types.Question{
					{Text: "q2", Order: 2},
					{Text: "q1", Order: 1},
				}},
			}},
			{Name: "First", Weight: 2, Order: 1},
		},
	}
	if _, err := repo.Create(ctx, tx, []*types.Framework{fw}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tree, err := repo.GetTree(ctx, tx, fw.ID)
	if err != nil {
		t.Fatalf("GetTree: %v", err)
	}
	if tree == nil || len(tree.Domains) != 2 {
		t.Fatalf("GetTree: unexpected tree %+v", tree)
	}
	if tree.Domains[0].Name != "First" || tree.Domains[1].Name != "Second" {
		t.Fatalf("domain order: %s, %s", tree.Domains[0].Name, tree.Domains[1].Name)
	}
	gates := tree.Domains[1].Gates
	if len(gates) != 2 || gates[0].Name != "G2a" {
		t.Fatalf("gate order: %+v", gates)
	}
	if gates[0].Questions[0].Text != "q1" || gates[0].Questions[1].Text != "q2" {
		t.Fatalf("question order: %+v", gates[0].Questions)
	}
	if len(tree.QuestionIDs()) != 3 {
		t.Fatalf("QuestionIDs: got %d", len(tree.QuestionIDs()))
	}

	missing, err := repo.GetTree(ctx, tx, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetTree(missing): %+v %v", missing, err)
	}

	found, err := repo.GetByNameVersion(ctx, tx, fw.Name, "1")
	if err != nil || found == nil || found.ID != fw.ID {
		t.Fatalf("GetByNameVersion: %+v %v", found, err)
	}
	none, err := repo.GetByNameVersion(ctx, tx, fw.Name, "2")
	if err != nil || none != nil {
		t.Fatalf("GetByNameVersion(other version): %+v %v", none, err)
	}

	domains, err := repo.GetDomainsByIDs(ctx, tx, []uuid.UUID{tree.Domains[0].ID})
	if err != nil || len(domains) != 1 || domains[0].Name != "First" {
		t.Fatalf("GetDomainsByIDs: %+v %v", domains, err)
	}
}
