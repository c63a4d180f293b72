package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
	"github.com/yourusername/survey-api/internal/handler/dto"
	"github.com/yourusername/survey-api/internal/handler/helper"
	"github.com/yourusername/survey-api/internal/service"
)

// QuestionnaireHandler serves questionnaire management and reporting
type QuestionnaireHandler struct {
	questionnaireService *service.QuestionnaireService
	attemptService       *service.AttemptService
}

// NewQuestionnaireHandler creates the handler
func NewQuestionnaireHandler(questionnaireService *service.QuestionnaireService, attemptService *service.AttemptService) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		questionnaireService: questionnaireService,
		attemptService:       attemptService,
	}
}

// CreateQuestionnaire handles POST /api/questionnaires
func (h *QuestionnaireHandler) CreateQuestionnaire(c *gin.Context) {
	var body dto.CreateQuestionnaireRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		handleBindError(c, err)
		return
	}
	req, err := body.ToCreateRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.questionnaireService.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, "QuestionnaireHandler", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// EditQuestionnaire handles PUT /api/questionnaires/:id
func (h *QuestionnaireHandler) EditQuestionnaire(c *gin.Context) {
	id := c.MustGet("questionnaireID").(uint)

	var body dto.EditQuestionnaireRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		handleBindError(c, err)
		return
	}
	req, err := body.ToEditRequest(id)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, dto.ErrQuestionnaireIDMismatch) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	view, err := h.questionnaireService.Edit(c.Request.Context(), req)
	if err != nil {
		handleError(c, "QuestionnaireHandler", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetQuestionnaire handles GET /api/questionnaires/:id
func (h *QuestionnaireHandler) GetQuestionnaire(c *gin.Context) {
	id := c.MustGet("questionnaireID").(uint)

	view, err := h.questionnaireService.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, "QuestionnaireHandler", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListQuestionnaires handles GET /api/questionnaires?status=&type=&search=&page=&page_size=
func (h *QuestionnaireHandler) ListQuestionnaires(c *gin.Context) {
	page, pageSize := helper.PageParams(c)
	filters := repository.QuestionnaireFilters{
		Status: entity.QuestionnaireStatus(c.Query("status")),
		Type:   entity.QuestionnaireType(c.Query("type")),
		Search: c.Query("search"),
	}

	items, total, err := h.questionnaireService.List(c.Request.Context(), filters, page, pageSize)
	if err != nil {
		handleError(c, "QuestionnaireHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuestionnaireListResponse(items, total, page, pageSize))
}

// DeleteQuestionnaire handles DELETE /api/questionnaires/:id
func (h *QuestionnaireHandler) DeleteQuestionnaire(c *gin.Context) {
	id := c.MustGet("questionnaireID").(uint)

	if err := h.questionnaireService.Delete(c.Request.Context(), id); err != nil {
		handleError(c, "QuestionnaireHandler", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetResponses handles GET /api/questionnaires/:id/responses
func (h *QuestionnaireHandler) GetResponses(c *gin.Context) {
	id := c.MustGet("questionnaireID").(uint)

	res, err := h.attemptService.Responses(c.Request.Context(), id)
	if err != nil {
		handleError(c, "QuestionnaireHandler", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ExportResponses handles GET /api/questionnaires/:id/responses/export?format=csv|xlsx
func (h *QuestionnaireHandler) ExportResponses(c *gin.Context) {
	id := c.MustGet("questionnaireID").(uint)
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
		return
	}

	q, err := h.questionnaireService.Load(c.Request.Context(), id)
	if err != nil {
		handleError(c, "QuestionnaireHandler", err)
		return
	}
	res, err := h.attemptService.Responses(c.Request.Context(), id)
	if err != nil {
		handleError(c, "QuestionnaireHandler", err)
		return
	}

	rows := service.ExportRows(q, res)
	filename := fmt.Sprintf("questionnaire_%d_responses_%s", id, time.Now().Format("2006-01-02"))
	if format == "xlsx" {
		exportXLSX(c, rows, filename)
		return
	}
	exportCSV(c, rows, filename)
}
