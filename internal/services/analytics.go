package services

import (
	"context"
	"fmt"
	"math"

	"github.com/yungbote/maturity-backend/internal/data/repos"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

type AnalyticsService interface {
	Summary(ctx context.Context) (*repos.AssessmentSummary, error)
}

type analyticsService struct {
	log            *logger.Logger
	assessmentRepo repos.AssessmentRepo
}

func NewAnalyticsService(log *logger.Logger, assessmentRepo repos.AssessmentRepo) AnalyticsService {
	serviceLog := log.With("service", "AnalyticsService")
	return &analyticsService{log: serviceLog, assessmentRepo: assessmentRepo}
}

// Summary reports the caller's assessment counts. Averages cover completed
// assessments and are rounded to two decimals.
func (as *analyticsService) Summary(ctx context.Context) (*repos.AssessmentSummary, error) {
	rd, err := requireCaller(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := as.assessmentRepo.SummaryByAssessorID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize assessments: %w", err)
	}
	summary.AverageScore = math.Round(summary.AverageScore*100) / 100
	summary.AverageMaturityLevel = math.Round(summary.AverageMaturityLevel*100) / 100
	return summary, nil
}
