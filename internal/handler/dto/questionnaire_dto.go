package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/service"
	"github.com/yourusername/survey-api/internal/service/questionnaire"
)

// QuestionPayload is one question of a window or of the shared questions.
// On edit, a present qnOrderId keeps that existing order (only "order" is read); an absent one creates a question.
type QuestionPayload struct {
	QnOrderID    *uint               `json:"qnOrderId"`
	Order        int                 `json:"order" binding:"min=0"`
	QuestionType entity.QuestionType `json:"questionType" binding:"required_without=QnOrderID"`
	QuestionText string              `json:"questionText" binding:"required_without=QnOrderID,max=1000"`
	Options      []string            `json:"options" binding:"omitempty,max=20,dive,max=255"`
}

// WindowPayload is one question window
type WindowPayload struct {
	WindowID  uint              `json:"windowId"`
	StartAt   time.Time         `json:"startAt" binding:"required"`
	EndAt     time.Time         `json:"endAt" binding:"required"`
	Questions []QuestionPayload `json:"questions" binding:"dive"`
}

// SharedQuestionsPayload holds the questions asked in both windows of a PRE POST questionnaire
type SharedQuestionsPayload struct {
	Questions []QuestionPayload `json:"questions" binding:"dive"`
}

// CreateQuestionnaireRequest is the body of POST /api/questionnaires
type CreateQuestionnaireRequest struct {
	Title           string                     `json:"title" binding:"required,max=255"`
	Type            entity.QuestionnaireType   `json:"type" binding:"required"`
	Status          entity.QuestionnaireStatus `json:"status"`
	QuestionWindows []WindowPayload            `json:"questionWindows" binding:"required,min=1,max=2,dive"`
	SharedQuestions *SharedQuestionsPayload    `json:"sharedQuestions"`
	Programmes      []uint                     `json:"programmes"`
	Classes         []uint                     `json:"classes"`
}

// EditQuestionnaireRequest is the body of PUT /api/questionnaires/:id
type EditQuestionnaireRequest struct {
	QuestionnaireID uint `json:"questionnaireId"`
	CreateQuestionnaireRequest
}

// ErrQuestionnaireIDMismatch is returned when the body names another questionnaire than the URL
var ErrQuestionnaireIDMismatch = errors.New("questionnaireId does not match the URL")

func (p QuestionPayload) spec() questionnaire.QuestionSpec {
	return questionnaire.QuestionSpec{
		Position: p.Order,
		Type:     p.QuestionType,
		Text:     p.QuestionText,
		Options:  p.Options,
	}
}

func (p QuestionPayload) edit() questionnaire.QuestionEdit {
	if p.QnOrderID != nil {
		return questionnaire.KeepOrder{OrderID: *p.QnOrderID, Position: p.Order}
	}
	return questionnaire.CreateOrder{Question: p.spec()}
}

func specs(questions []QuestionPayload) ([]questionnaire.QuestionSpec, error) {
	out := make([]questionnaire.QuestionSpec, 0, len(questions))
	for i, q := range questions {
		if q.QnOrderID != nil {
			return nil, fmt.Errorf("question %d: qnOrderId is only accepted when editing", i)
		}
		out = append(out, q.spec())
	}
	return out, nil
}

func edits(questions []QuestionPayload) []questionnaire.QuestionEdit {
	out := make([]questionnaire.QuestionEdit, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.edit())
	}
	return out
}

// ToCreateRequest converts the payload for the questionnaire service
func (r *CreateQuestionnaireRequest) ToCreateRequest() (questionnaire.CreateRequest, error) {
	req := questionnaire.CreateRequest{
		Title:        r.Title,
		Type:         r.Type,
		Status:       r.Status,
		ProgrammeIDs: r.Programmes,
		ClassIDs:     r.Classes,
	}
	for i, w := range r.QuestionWindows {
		questions, err := specs(w.Questions)
		if err != nil {
			return req, fmt.Errorf("window %d: %w", i, err)
		}
		req.Windows = append(req.Windows, questionnaire.WindowSpec{OpenAt: w.StartAt, CloseAt: w.EndAt, Questions: questions})
	}
	if r.SharedQuestions != nil {
		shared, err := specs(r.SharedQuestions.Questions)
		if err != nil {
			return req, fmt.Errorf("shared questions: %w", err)
		}
		req.SharedQuestions = shared
	}
	return req, nil
}

// ToEditRequest converts the payload for the questionnaire service.
// A missing questionnaireId defaults to pathID.
func (r *EditQuestionnaireRequest) ToEditRequest(pathID uint) (questionnaire.EditRequest, error) {
	id := r.QuestionnaireID
	if id == 0 {
		id = pathID
	}
	if id != pathID {
		return questionnaire.EditRequest{}, ErrQuestionnaireIDMismatch
	}

	req := questionnaire.EditRequest{
		QuestionnaireID: id,
		Title:           r.Title,
		Type:            r.Type,
		Status:          r.Status,
		ProgrammeIDs:    r.Programmes,
		ClassIDs:        r.Classes,
	}
	for _, w := range r.QuestionWindows {
		req.Windows = append(req.Windows, questionnaire.WindowEdit{
			WindowID:  w.WindowID,
			OpenAt:    w.StartAt,
			CloseAt:   w.EndAt,
			Questions: edits(w.Questions),
		})
	}
	if r.SharedQuestions != nil {
		req.SharedQuestions = edits(r.SharedQuestions.Questions)
	}
	return req, nil
}

// PaginatedResponse wraps one page of a listing
type PaginatedResponse struct {
	Items   interface{} `json:"items"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
}

// NewQuestionnaireListResponse builds a page of questionnaire summaries
func NewQuestionnaireListResponse(items []service.QuestionnaireSummary, total int64, page, perPage int) *PaginatedResponse {
	if items == nil {
		items = []service.QuestionnaireSummary{}
	}
	return &PaginatedResponse{Items: items, Total: total, Page: page, PerPage: perPage}
}
