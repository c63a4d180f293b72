package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/survey-api/internal/handler/dto"
	"github.com/yourusername/survey-api/internal/middleware"
	"github.com/yourusername/survey-api/internal/service"
)

// AttemptHandler accepts questionnaire submissions
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler creates the handler
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// SubmitAttempt handles POST /api/windows/:id/attempts for the authenticated person
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	windowID := c.MustGet("windowID").(uint)
	personID, ok := middleware.CurrentPersonID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body dto.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		handleBindError(c, err)
		return
	}

	attempt, err := h.attemptService.Submit(c.Request.Context(), windowID, personID, body.ToAnswers())
	if err != nil {
		handleError(c, "AttemptHandler", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAttemptResponse(attempt))
}
