package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/maturity-backend/internal/data/repos"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/observability"
	"github.com/yungbote/maturity-backend/internal/platform/apierr"
	"github.com/yungbote/maturity-backend/internal/platform/locks"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"github.com/yungbote/maturity-backend/internal/scoring"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

const defaultSubmitLockTTL = 30 * time.Second

type CreateAssessmentInput struct {
	TeamName       string
	FrameworkID    uuid.UUID
	OrganizationID *uuid.UUID
}

// UpdateAssessmentInput carries the mutable fields; nil means keep.
type UpdateAssessmentInput struct {
	TeamName *string
	Status   *types.AssessmentStatus
}

type AnswerInput struct {
	QuestionID uuid.UUID
	Score      int
	Notes      string
	Evidence   []string
}

type DomainScoreView struct {
	*types.DomainScore
	DomainName string `json:"domain_name"`
}

type AssessmentService interface {
	List(ctx context.Context, skip, limit int) ([]*types.Assessment, error)
	Create(ctx context.Context, in CreateAssessmentInput) (*types.Assessment, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Assessment, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateAssessmentInput) (*types.Assessment, error)
	Delete(ctx context.Context, id uuid.UUID) error

	SaveAnswers(ctx context.Context, id uuid.UUID, items []AnswerInput) ([]*types.Answer, error)
	ListAnswers(ctx context.Context, id uuid.UUID) ([]*types.Answer, error)
	ListDomainScores(ctx context.Context, id uuid.UUID) ([]DomainScoreView, error)
	Submit(ctx context.Context, id uuid.UUID) (*types.Assessment, error)
}

type assessmentService struct {
	db              *gorm.DB
	log             *logger.Logger
	assessmentRepo  repos.AssessmentRepo
	answerRepo      repos.AnswerRepo
	domainScoreRepo repos.DomainScoreRepo
	frameworkRepo   repos.FrameworkRepo
	orgRepo         repos.OrganizationRepo
	locker          locks.Locker
	submitLockTTL   time.Duration
}

func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	assessmentRepo repos.AssessmentRepo,
	answerRepo repos.AnswerRepo,
	domainScoreRepo repos.DomainScoreRepo,
	frameworkRepo repos.FrameworkRepo,
	orgRepo repos.OrganizationRepo,
	locker locks.Locker,
	submitLockTTL time.Duration,
) AssessmentService {
	serviceLog := log.With("service", "AssessmentService")
	if locker == nil {
		locker = locks.NewLocalLocker()
	}
	if submitLockTTL <= 0 {
		submitLockTTL = defaultSubmitLockTTL
	}
	return &assessmentService{
		db:              db,
		log:             serviceLog,
		assessmentRepo:  assessmentRepo,
		answerRepo:      answerRepo,
		domainScoreRepo: domainScoreRepo,
		frameworkRepo:   frameworkRepo,
		orgRepo:         orgRepo,
		locker:          locker,
		submitLockTTL:   submitLockTTL,
	}
}

func (s *assessmentService) List(ctx context.Context, skip, limit int) ([]*types.Assessment, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	skip, limit = page(skip, limit)
	out, err := s.assessmentRepo.ListByAssessorID(ctx, nil, rd.UserID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return out, nil
}

func (s *assessmentService) Create(ctx context.Context, in CreateAssessmentInput) (*types.Assessment, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	teamName := strings.TrimSpace(in.TeamName)
	if teamName == "" {
		return nil, apierr.BadRequest("invalid_team_name", "Team name is required")
	}
	frameworks, err := s.frameworkRepo.GetByIDs(ctx, nil, []uuid.UUID{in.FrameworkID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch framework: %w", err)
	}
	if len(frameworks) == 0 {
		return nil, apierr.NotFound("framework_not_found", "Framework not found")
	}
	if in.OrganizationID != nil {
		orgs, err := s.orgRepo.GetByIDs(ctx, nil, []uuid.UUID{*in.OrganizationID})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch organization: %w", err)
		}
		if len(orgs) == 0 {
			return nil, apierr.NotFound("organization_not_found", "Organization not found")
		}
	}

	now := time.Now().UTC()
	a := &types.Assessment{
		ID:             uuid.New(),
		TeamName:       teamName,
		AssessorID:     rd.UserID,
		OrganizationID: in.OrganizationID,
		FrameworkID:    in.FrameworkID,
		Status:         types.AssessmentStatusDraft,
		StartedAt:      &now,
	}
	if _, err := s.assessmentRepo.Create(ctx, nil, []*types.Assessment{a}); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	s.log.Info("Created assessment", "assessment_id", a.ID, "assessor_id", rd.UserID, "framework_id", a.FrameworkID)
	return a, nil
}

func (s *assessmentService) Get(ctx context.Context, id uuid.UUID) (*types.Assessment, error) {
	return s.loadOwned(ctx, nil, id)
}

func (s *assessmentService) Update(ctx context.Context, id uuid.UUID, in UpdateAssessmentInput) (*types.Assessment, error) {
	a, err := s.loadOwned(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	var name string
	if in.TeamName != nil {
		name = strings.TrimSpace(*in.TeamName)
		if name == "" {
			return nil, apierr.BadRequest("invalid_team_name", "Team name is required")
		}
	}
	if in.Status != nil {
		next := *in.Status
		if !next.Valid() {
			return nil, apierr.BadRequest("invalid_status", "Status must be draft, in_progress or completed")
		}
		if next == types.AssessmentStatusCompleted && a.Status != types.AssessmentStatusCompleted {
			return nil, apierr.BadRequest("invalid_status_transition", "Assessments are completed by submitting them")
		}
		if !a.Status.CanTransitionTo(next) {
			return nil, apierr.BadRequest("invalid_status_transition",
				fmt.Sprintf("Cannot move assessment from %s to %s", a.Status, next))
		}
	}

	var out *types.Assessment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.TeamName != nil {
			if err := s.assessmentRepo.Rename(ctx, tx, a.ID, name); err != nil {
				return fmt.Errorf("failed to rename assessment: %w", err)
			}
		}
		if in.Status != nil && *in.Status != a.Status {
			moved, err := s.assessmentRepo.UpdateStatus(ctx, tx, a.ID, a.Status, *in.Status)
			if err != nil {
				return fmt.Errorf("failed to update assessment status: %w", err)
			}
			if !moved {
				return apierr.Conflict("assessment_status_changed", "Assessment status changed while updating, reload and retry")
			}
		}
		rows, err := s.assessmentRepo.GetByIDs(ctx, tx, []uuid.UUID{a.ID})
		if err != nil {
			return fmt.Errorf("failed to reload assessment: %w", err)
		}
		if len(rows) == 0 {
			return apierr.NotFound("assessment_not_found", "Assessment not found")
		}
		out = rows[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the assessment with its answers and domain scores.
func (s *assessmentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadOwned(ctx, tx, id); err != nil {
			return err
		}
		ids := []uuid.UUID{id}
		if err := s.domainScoreRepo.FullDeleteByAssessmentIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("failed to delete domain scores: %w", err)
		}
		if err := s.answerRepo.FullDeleteByAssessmentIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("failed to delete answers: %w", err)
		}
		if err := s.assessmentRepo.FullDeleteByIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("failed to delete assessment: %w", err)
		}
		return nil
	})
}

// SaveAnswers upserts a batch of answers. A later item for the same question
// overrides an earlier one. A draft assessment moves to in_progress.
func (s *assessmentService) SaveAnswers(ctx context.Context, id uuid.UUID, items []AnswerInput) ([]*types.Answer, error) {
	a, err := s.loadOwned(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []*types.Answer{}, nil
	}
	for _, it := range items {
		if it.Score < 0 || it.Score > scoring.MaxScore {
			return nil, apierr.BadRequest("invalid_score",
				fmt.Sprintf("Score must be between 0 and %d", scoring.MaxScore))
		}
	}

	fw, err := s.frameworkRepo.GetTree(ctx, nil, a.FrameworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch framework: %w", err)
	}
	if fw == nil {
		return nil, apierr.NotFound("framework_not_found", "Framework not found")
	}
	known := fw.QuestionSet()

	order := make([]uuid.UUID, 0, len(items))
	byQuestion := make(map[uuid.UUID]*types.Answer, len(items))
	for _, it := range items {
		if _, ok := known[it.QuestionID]; !ok {
			return nil, apierr.BadRequest("question_not_in_framework",
				fmt.Sprintf("Question %s does not belong to the assessment framework", it.QuestionID))
		}
		if _, seen := byQuestion[it.QuestionID]; !seen {
			order = append(order, it.QuestionID)
		}
		evidence := it.Evidence
		if evidence == nil {
			evidence = []string{}
		}
		byQuestion[it.QuestionID] = &types.Answer{
			AssessmentID: a.ID,
			QuestionID:   it.QuestionID,
			Score:        it.Score,
			Notes:        it.Notes,
			Evidence:     evidence,
		}
	}
	rows := make([]*types.Answer, 0, len(order))
	for _, qid := range order {
		rows = append(rows, byQuestion[qid])
	}

	var saved []*types.Answer
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.answerRepo.Upsert(ctx, tx, rows); err != nil {
			return fmt.Errorf("failed to upsert answers: %w", err)
		}
		if _, err := s.assessmentRepo.UpdateStatus(ctx, tx, a.ID, types.AssessmentStatusDraft, types.AssessmentStatusInProgress); err != nil {
			return fmt.Errorf("failed to mark assessment in progress: %w", err)
		}
		stored, err := s.answerRepo.GetByAssessmentAndQuestionIDs(ctx, tx, a.ID, order)
		if err != nil {
			return fmt.Errorf("failed to reload answers: %w", err)
		}
		saved = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	pos := make(map[uuid.UUID]int, len(order))
	for i, qid := range order {
		pos[qid] = i
	}
	sort.SliceStable(saved, func(i, j int) bool { return pos[saved[i].QuestionID] < pos[saved[j].QuestionID] })
	return saved, nil
}

// ListAnswers returns the stored answers in catalog order; answers whose
// question is no longer in the framework come last.
func (s *assessmentService) ListAnswers(ctx context.Context, id uuid.UUID) ([]*types.Answer, error) {
	a, err := s.loadOwned(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.GetByAssessmentIDs(ctx, nil, []uuid.UUID{a.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch answers: %w", err)
	}
	fw, err := s.frameworkRepo.GetTree(ctx, nil, a.FrameworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch framework: %w", err)
	}
	pos := map[uuid.UUID]int{}
	if fw != nil {
		for i, qid := range fw.QuestionIDs() {
			pos[qid] = i
		}
	}
	rank := func(qid uuid.UUID) int {
		if p, ok := pos[qid]; ok {
			return p
		}
		return len(pos)
	}
	sort.SliceStable(answers, func(i, j int) bool { return rank(answers[i].QuestionID) < rank(answers[j].QuestionID) })
	return answers, nil
}

func (s *assessmentService) ListDomainScores(ctx context.Context, id uuid.UUID) ([]DomainScoreView, error) {
	a, err := s.loadOwned(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	scores, err := s.domainScoreRepo.GetByAssessmentIDs(ctx, nil, []uuid.UUID{a.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch domain scores: %w", err)
	}
	domainIDs := make([]uuid.UUID, 0, len(scores))
	for _, ds := range scores {
		domainIDs = append(domainIDs, ds.DomainID)
	}
	domains, err := s.frameworkRepo.GetDomainsByIDs(ctx, nil, domainIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch domains: %w", err)
	}
	byID := make(map[uuid.UUID]*types.Domain, len(domains))
	for _, d := range domains {
		byID[d.ID] = d
	}

	out := make([]DomainScoreView, 0, len(scores))
	for _, ds := range scores {
		view := DomainScoreView{DomainScore: ds, DomainName: "Unknown Domain"}
		if d, ok := byID[ds.DomainID]; ok {
			view.DomainName = d.Name
		}
		out = append(out, view)
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, iok := byID[out[i].DomainID]
		dj, jok := byID[out[j].DomainID]
		if iok != jok {
			return iok
		}
		if !iok {
			return false
		}
		return di.Order < dj.Order
	})
	return out, nil
}

// Submit scores the assessment and completes it. Resubmitting a completed
// assessment recomputes everything from the current answers.
func (s *assessmentService) Submit(ctx context.Context, id uuid.UUID) (*types.Assessment, error) {
	ctx, span := observability.Tracer().Start(ctx, "assessment.submit")
	defer span.End()
	span.SetAttributes(attribute.String("assessment.id", id.String()))

	out, err := s.submit(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Float64("assessment.overall_score", *out.OverallScore),
		attribute.Int("assessment.maturity_level", *out.MaturityLevel),
	)
	return out, nil
}

func (s *assessmentService) submit(ctx context.Context, id uuid.UUID) (*types.Assessment, error) {
	a, err := s.loadOwned(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	n, err := s.answerRepo.CountByAssessmentID(ctx, nil, a.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count answers: %w", err)
	}
	if n == 0 {
		return nil, apierr.BadRequest("no_answers", "Assessment must have at least one gate response")
	}

	release, err := s.locker.Acquire(ctx, "assessment:submit:"+id.String(), s.submitLockTTL)
	if err != nil {
		if errors.Is(err, locks.ErrLocked) {
			return nil, apierr.Conflict("submit_in_progress", "Assessment is already being submitted")
		}
		return nil, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	defer release()

	fw, err := s.frameworkRepo.GetTree(ctx, nil, a.FrameworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch framework: %w", err)
	}
	if fw == nil {
		return nil, apierr.NotFound("framework_not_found", "Framework not found")
	}
	known := fw.QuestionSet()

	var out *types.Assessment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all, err := s.answerRepo.GetByAssessmentIDs(ctx, tx, []uuid.UUID{a.ID})
		if err != nil {
			return fmt.Errorf("failed to fetch answers: %w", err)
		}
		answers := make([]*types.Answer, 0, len(all))
		for _, ans := range all {
			if _, ok := known[ans.QuestionID]; ok {
				answers = append(answers, ans)
			}
		}
		if len(answers) == 0 {
			return apierr.BadRequest("no_answers", "Assessment must have at least one gate response")
		}

		results := scoring.ComputeDomainScores(fw, answers)
		overall := scoring.ComputeOverallScore(results)
		level := int(scoring.MaturityLevel(overall))

		now := time.Now().UTC()
		rows := make([]*types.DomainScore, 0, len(fw.Domains))
		for _, d := range fw.Domains {
			r := results[d.ID]
			rows = append(rows, &types.DomainScore{
				AssessmentID:  a.ID,
				DomainID:      d.ID,
				Score:         r.Score,
				MaturityLevel: int(r.MaturityLevel),
				Strengths:     r.Strengths,
				Gaps:          r.Gaps,
				CreatedAt:     now,
			})
		}
		if err := s.domainScoreRepo.Replace(ctx, tx, a.ID, rows); err != nil {
			return fmt.Errorf("failed to store domain scores: %w", err)
		}
		if err := s.assessmentRepo.Complete(ctx, tx, a.ID, overall, level, now); err != nil {
			return fmt.Errorf("failed to complete assessment: %w", err)
		}

		fresh, err := s.assessmentRepo.GetByIDs(ctx, tx, []uuid.UUID{a.ID})
		if err != nil {
			return fmt.Errorf("failed to reload assessment: %w", err)
		}
		if len(fresh) == 0 {
			return apierr.NotFound("assessment_not_found", "Assessment not found")
		}
		out = fresh[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Submitted assessment",
		"assessment_id", out.ID,
		"assessor_id", out.AssessorID,
		"overall_score", *out.OverallScore,
		"maturity_level", *out.MaturityLevel,
	)
	return out, nil
}

func (s *assessmentService) loadOwned(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Assessment, error) {
	return loadOwnedAssessment(ctx, s.assessmentRepo, tx, id)
}
