package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	types "github.com/yungbote/maturity-backend/internal/domain"
	"github.com/yungbote/maturity-backend/internal/http/response"
	"github.com/yungbote/maturity-backend/internal/platform/logger"
	"github.com/yungbote/maturity-backend/internal/services"
)

type AssessmentHandler struct {
	log               *logger.Logger
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(log *logger.Logger, assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		log:               log.With("handler", "AssessmentHandler"),
		assessmentService: assessmentService,
	}
}

type createAssessmentRequest struct {
	TeamName       string     `json:"team_name" binding:"required,max=255"`
	FrameworkID    uuid.UUID  `json:"framework_id" binding:"required"`
	OrganizationID *uuid.UUID `json:"organization_id"`
}

type updateAssessmentRequest struct {
	TeamName *string `json:"team_name" binding:"omitempty,min=1,max=255"`
	Status   *string `json:"status"`
}

type answerRequest struct {
	QuestionID uuid.UUID `json:"question_id" binding:"required"`
	Score      *int      `json:"score" binding:"required"`
	Notes      string    `json:"notes" binding:"max=4096"`
	Evidence   []string  `json:"evidence" binding:"omitempty,evidence"`
}

type saveAnswersRequest struct {
	Responses []answerRequest `json:"responses" binding:"required,dive"`
}

// GET /api/assessments
func (h *AssessmentHandler) List(c *gin.Context) {
	skip, limit, ok := pageParams(c)
	if !ok {
		return
	}
	out, err := h.assessmentService.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.RespondServiceError(c, err, "list_assessments_failed")
		return
	}
	response.RespondOK(c, out)
}

// POST /api/assessments
func (h *AssessmentHandler) Create(c *gin.Context) {
	var req createAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	a, err := h.assessmentService.Create(c.Request.Context(), services.CreateAssessmentInput{
		TeamName:       req.TeamName,
		FrameworkID:    req.FrameworkID,
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		response.RespondServiceError(c, err, "create_assessment_failed")
		return
	}
	response.RespondCreated(c, a)
}

// GET /api/assessments/:id
func (h *AssessmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "invalid_assessment_id")
	if !ok {
		return
	}
	a, err := h.assessmentService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err, "get_assessment_failed")
		return
	}
	response.RespondOK(c, a)
}

// PUT /api/assessments/:id
func (h *AssessmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "invalid_assessment_id")
	if !ok {
		return
	}
	var req updateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	in := services.UpdateAssessmentInput{TeamName: req.TeamName}
	if req.Status != nil {
		st := types.AssessmentStatus(*req.Status)
		in.Status = &st
	}
	a, err := h.assessmentService.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondServiceError(c, err, "update_assessment_failed")
		return
	}
	response.RespondOK(c, a)
}

// DELETE /api/assessments/:id
func (h *AssessmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "invalid_assessment_id")
	if !ok {
		return
	}
	if err := h.assessmentService.Delete(c.Request.Context(), id); err != nil {
		response.RespondServiceError(c, err, "delete_assessment_failed")
		return
	}
	response.RespondNoContent(c)
}

// POST /api/assessments/:id/responses
func (h *AssessmentHandler) SaveAnswers(c *gin.Context) {
	id, ok := pathID(c, "invalid_assessment_id")
	if !ok {
		return
	}
	var req saveAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	items := make([]services.AnswerInput, 0, len(req.Responses))
	for _, r := range req.Responses {
		items = append(items, services.AnswerInput{
			QuestionID: r.QuestionID,
			Score:      *r.Score,
			Notes:      r.Notes,
			Evidence:   r.Evidence,
		})
	}
	saved, err := h.assessmentService.SaveAnswers(c.Request.Context(), id, items)
	if err != nil {
		response.RespondServiceError(c, err, "save_responses_failed")
		return
	}
	response.RespondOK(c, saved)
}

// GET /api/assessments/:id/responses
func (h *AssessmentHandler) ListAnswers(c *gin.Context) {
	id, ok := pathID(c, "invalid_assessment_id")
	if !ok {
		return
	}
	answers, err := h.assessmentService.ListAnswers(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err, "list_responses_failed")
		return
	}
	response.RespondOK(c, answers)
}

// POST /api/assessments/:id/submit
func (h *AssessmentHandler) Submit(c *gin.Context) {
	id, ok := pathID(c, "invalid_assessment_id")
	if !ok {
		return
	}
	a, err := h.assessmentService.Submit(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err, "submit_assessment_failed")
		return
	}
	h.log.Debug("Assessment submitted via API", "assessment_id", a.ID)
	response.RespondOK(c, a)
}

// GET /api/assessments/:id/domain-scores
func (h *AssessmentHandler) DomainScores(c *gin.Context) {
	id, ok := pathID(c, "invalid_assessment_id")
	if !ok {
		return
	}
	scores, err := h.assessmentService.ListDomainScores(c.Request.Context(), id)
	if err != nil {
		response.RespondServiceError(c, err, "list_domain_scores_failed")
		return
	}
	response.RespondOK(c, scores)
}
