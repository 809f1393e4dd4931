package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"github.com/yungbote/maturity-backend/internal/data/repos"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/observability"
	"github.com/yungbote/maturity-backend/internal/platform/apierr"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"github.com/yungbote/maturity-backend/internal/platform/objectstore"
	"github.com/yungbote/maturity-backend/internal/scoring"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"
)

const exportKeyTimeLayout = "20060102T150405Z"

type ReportExport struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
	ReportKey    string    `json:"report_key"`
	ReportURL    string    `json:"report_url"`
	ChartKey     string    `json:"chart_key"`
	ChartURL     string    `json:"chart_url"`
	StorageMode  string    `json:"storage_mode"`
	ExportedAt   time.Time `json:"exported_at"`
}

type ReportService interface {
	Generate(ctx context.Context, id uuid.UUID) (*scoring.Report, error)
	RenderChart(ctx context.Context, id uuid.UUID) ([]byte, error)
	Export(ctx context.Context, id uuid.UUID) (*ReportExport, error)
}

type reportService struct {
	log             *logger.Logger
	assessmentRepo  repos.AssessmentRepo
	answerRepo      repos.AnswerRepo
	domainScoreRepo repos.DomainScoreRepo
	frameworkRepo   repos.FrameworkRepo
	store           objectstore.Store
	chartFont       *truetype.Font
}

func NewReportService(
	log *logger.Logger,
	assessmentRepo repos.AssessmentRepo,
	answerRepo repos.AnswerRepo,
	domainScoreRepo repos.DomainScoreRepo,
	frameworkRepo repos.FrameworkRepo,
	store objectstore.Store,
) (ReportService, error) {
	serviceLog := log.With("service", "ReportService")
	parsedFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart font: %w", err)
	}
	return &reportService{
		log:             serviceLog,
		assessmentRepo:  assessmentRepo,
		answerRepo:      answerRepo,
		domainScoreRepo: domainScoreRepo,
		frameworkRepo:   frameworkRepo,
		store:           store,
		chartFont:       parsedFont,
	}, nil
}

func (rs *reportService) Generate(ctx context.Context, id uuid.UUID) (*scoring.Report, error) {
	ctx, span := observability.Tracer().Start(ctx, "assessment.report")
	defer span.End()
	span.SetAttributes(attribute.String("assessment.id", id.String()))

	report, err := rs.generate(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("report.domains", len(report.DomainBreakdown)))
	return report, nil
}

func (rs *reportService) generate(ctx context.Context, id uuid.UUID) (*scoring.Report, error) {
	a, err := loadOwnedAssessment(ctx, rs.assessmentRepo, nil, id)
	if err != nil {
		return nil, err
	}
	if a.Status != types.AssessmentStatusCompleted {
		return nil, apierr.BadRequest("assessment_not_completed", "Assessment must be completed to generate report")
	}

	var (
		fw      *types.Framework
		answers []*types.Answer
		scores  []*types.DomainScore
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tree, err := rs.frameworkRepo.GetTree(gctx, nil, a.FrameworkID)
		if err != nil {
			return fmt.Errorf("failed to fetch framework: %w", err)
		}
		fw = tree
		return nil
	})
	g.Go(func() error {
		rows, err := rs.answerRepo.GetByAssessmentIDs(gctx, nil, []uuid.UUID{a.ID})
		if err != nil {
			return fmt.Errorf("failed to fetch answers: %w", err)
		}
		answers = rows
		return nil
	})
	g.Go(func() error {
		rows, err := rs.domainScoreRepo.GetByAssessmentIDs(gctx, nil, []uuid.UUID{a.ID})
		if err != nil {
			return fmt.Errorf("failed to fetch domain scores: %w", err)
		}
		scores = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scoring.GenerateReport(fw, a, answers, scores), nil
}

func (rs *reportService) RenderChart(ctx context.Context, id uuid.UUID) ([]byte, error) {
	report, err := rs.Generate(ctx, id)
	if err != nil {
		return nil, err
	}
	buf, err := renderDomainChart(rs.chartFont, report)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export writes the report JSON and its chart to object storage under a
// timestamped prefix.
func (rs *reportService) Export(ctx context.Context, id uuid.UUID) (*ReportExport, error) {
	if rs.store == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "export_unavailable", fmt.Errorf("report export storage is not configured"))
	}
	report, err := rs.Generate(ctx, id)
	if err != nil {
		return nil, err
	}
	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	chart, err := renderDomainChart(rs.chartFont, report)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	prefix := fmt.Sprintf("reports/%s/%s", id, now.Format(exportKeyTimeLayout))
	out := &ReportExport{
		AssessmentID: id,
		ReportKey:    prefix + "/report.json",
		ChartKey:     prefix + "/chart.png",
		StorageMode:  string(rs.store.Mode()),
		ExportedAt:   now,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := rs.store.Upload(gctx, out.ReportKey, bytes.NewReader(reportJSON), "application/json"); err != nil {
			return fmt.Errorf("failed to upload report: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := rs.store.Upload(gctx, out.ChartKey, bytes.NewReader(chart.Bytes()), "image/png"); err != nil {
			return fmt.Errorf("failed to upload chart: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.ReportURL = rs.store.PublicURL(out.ReportKey)
	out.ChartURL = rs.store.PublicURL(out.ChartKey)
	rs.log.Info("Exported report", "assessment_id", id, "report_key", out.ReportKey, "mode", out.StorageMode)
	return out, nil
}
