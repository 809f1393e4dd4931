package domain

import (
	"github.com/yungbote/maturity-backend/internal/domain/assessment"
	"github.com/yungbote/maturity-backend/internal/domain/catalog"
	"github.com/yungbote/maturity-backend/internal/domain/organization"
	"github.com/yungbote/maturity-backend/internal/domain/user"
)

const (
	RoleAdmin    = user.RoleAdmin
	RoleAssessor = user.RoleAssessor

	AssessmentStatusDraft      = assessment.StatusDraft
	AssessmentStatusInProgress = assessment.StatusInProgress
	AssessmentStatusCompleted  = assessment.StatusCompleted
)

type (
	User             = user.User
	Role             = user.Role
	Organization     = organization.Organization
	OrganizationSize = organization.Size

	Framework = catalog.Framework
	Domain    = catalog.Domain
	Gate      = catalog.Gate
	Question  = catalog.Question

	Assessment       = assessment.Assessment
	AssessmentStatus = assessment.Status
	Answer           = assessment.Answer
	DomainScore      = assessment.DomainScore
)
