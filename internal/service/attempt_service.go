package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
	"github.com/yourusername/survey-api/internal/service/questionnaire"
)

// AnswerInput is one submitted answer
type AnswerInput struct {
	QuestionOrderID uint
	OptionID        *uint
	TextResponse    *string
}

// AttemptService records attempts and aggregates them for reporting
type AttemptService struct {
	tx  repository.Transactor
	now func() time.Time
}

// NewAttemptService creates the attempt service
func NewAttemptService(tx repository.Transactor) *AttemptService {
	return &AttemptService{tx: tx, now: time.Now}
}

// Submit stores one attempt of respondentID against windowID.
// The window must be open, its questionnaire published, and every answer must match a question of the window.
func (s *AttemptService) Submit(ctx context.Context, windowID, respondentID uint, answers []AnswerInput) (*entity.Attempt, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("%w: at least one answer is required", apperrors.ErrValidation)
	}

	var attempt *entity.Attempt
	err := s.tx.InTx(ctx, func(store repository.Store) error {
		window, err := store.Questionnaires().GetWindow(windowID)
		if err != nil {
			return err
		}
		q, err := store.Questionnaires().GetByID(window.QuestionnaireID)
		if err != nil {
			return err
		}
		if !q.IsPublished() {
			return fmt.Errorf("%w: questionnaire %d is not published", apperrors.ErrForbidden, q.ID)
		}
		now := s.now()
		if !window.IsOpenAt(now) {
			return fmt.Errorf("%w: window %d is not open", apperrors.ErrForbidden, window.ID)
		}

		orders := windowOrders(window)
		attempt = &entity.Attempt{WindowID: window.ID, RespondentID: respondentID, SubmittedAt: now}
		seen := make(map[uint]bool, len(answers))
		for _, in := range answers {
			order, ok := orders[in.QuestionOrderID]
			if !ok {
				return fmt.Errorf("%w: question %d is not part of window %d", apperrors.ErrValidation, in.QuestionOrderID, window.ID)
			}
			if seen[in.QuestionOrderID] {
				return fmt.Errorf("%w: question %d answered twice", apperrors.ErrValidation, in.QuestionOrderID)
			}
			seen[in.QuestionOrderID] = true

			answer, err := buildAnswer(order, in)
			if err != nil {
				return err
			}
			attempt.Answers = append(attempt.Answers, answer)
		}
		return store.Attempts().Create(attempt)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[AttemptService] person ID=%d submitted attempt ID=%d for window ID=%d (%d answers)", respondentID, attempt.ID, windowID, len(attempt.Answers))
	return attempt, nil
}

// windowOrders indexes the active main and shared orders of w
func windowOrders(w *entity.QuestionnaireWindow) map[uint]entity.QuestionOrder {
	orders := make(map[uint]entity.QuestionOrder)
	for _, set := range []*entity.QuestionSet{w.MainSet, w.SharedSet} {
		if set == nil {
			continue
		}
		for _, o := range set.ActiveOrders() {
			orders[o.ID] = o
		}
	}
	return orders
}

func buildAnswer(order entity.QuestionOrder, in AnswerInput) (entity.Answer, error) {
	answer := entity.Answer{QuestionOrderID: order.ID, OptionID: in.OptionID}
	if in.TextResponse != nil {
		if text := strings.TrimSpace(*in.TextResponse); text != "" {
			answer.TextResponse = &text
		}
	}
	if err := answer.Validate(); err != nil {
		return answer, fmt.Errorf("%w: question %d: %v", apperrors.ErrValidation, order.ID, err)
	}

	question := order.Question
	if question == nil {
		return answer, fmt.Errorf("question of order %d not loaded", order.ID)
	}
	if question.Type.IsChoice() {
		if answer.OptionID == nil {
			return answer, fmt.Errorf("%w: question %d expects an option", apperrors.ErrValidation, order.ID)
		}
		if !question.HasOption(*answer.OptionID) {
			return answer, fmt.Errorf("%w: option %d does not belong to question %d", apperrors.ErrValidation, *answer.OptionID, order.ID)
		}
	} else if answer.OptionID != nil {
		return answer, fmt.Errorf("%w: question %d expects a text response", apperrors.ErrValidation, order.ID)
	}
	return answer, nil
}

// Responses aggregates every attempt of the questionnaire
func (s *AttemptService) Responses(ctx context.Context, questionnaireID uint) (*questionnaire.Responses, error) {
	reader := s.tx.Reader(ctx)
	q, err := reader.Questionnaires().GetWithRelations(questionnaireID)
	if err != nil {
		return nil, err
	}
	res, err := questionnaire.NewAggregator(reader).Aggregate(q)
	if err != nil {
		if questionnaire.IsKind(err, questionnaire.KindShape) {
			log.Printf("[AttemptService] questionnaire ID=%d failed validation on read: %v", questionnaireID, err)
		}
		return nil, err
	}
	return res, nil
}
