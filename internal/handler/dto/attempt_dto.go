package dto

import (
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/service"
)

// AnswerPayload answers one question order with an option or free text
type AnswerPayload struct {
	QnOrderID    uint    `json:"qnOrderId" binding:"required"`
	OptionID     *uint   `json:"optionId"`
	TextResponse *string `json:"textResponse" binding:"omitempty,max=5000"`
}

// SubmitAttemptRequest is the body of POST /api/windows/:id/attempts
type SubmitAttemptRequest struct {
	Answers []AnswerPayload `json:"answers" binding:"required,min=1,dive"`
}

// ToAnswers converts the payload for the attempt service
func (r *SubmitAttemptRequest) ToAnswers() []service.AnswerInput {
	out := make([]service.AnswerInput, 0, len(r.Answers))
	for _, a := range r.Answers {
		out = append(out, service.AnswerInput{QuestionOrderID: a.QnOrderID, OptionID: a.OptionID, TextResponse: a.TextResponse})
	}
	return out
}

// AttemptResponse acknowledges a stored attempt
type AttemptResponse struct {
	AttemptID   uint      `json:"attemptId"`
	WindowID    uint      `json:"windowId"`
	SubmittedAt time.Time `json:"submittedAt"`
	AnswerCount int       `json:"answerCount"`
}

// NewAttemptResponse builds the acknowledgement
func NewAttemptResponse(a *entity.Attempt) *AttemptResponse {
	return &AttemptResponse{
		AttemptID:   a.ID,
		WindowID:    a.WindowID,
		SubmittedAt: a.SubmittedAt,
		AnswerCount: len(a.Answers),
	}
}
