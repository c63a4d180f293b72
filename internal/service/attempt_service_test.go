package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/survey-api/internal/domain/entity"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
	"github.com/yourusername/survey-api/internal/service/questionnaire"
)

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint    { return &v }

type attemptFixture struct {
	questionnaires *QuestionnaireService
	attempts       *AttemptService
	view           *QuestionnaireView
}

func newAttemptFixture(t *testing.T, req func() questionnaire.CreateRequest) *attemptFixture {
	t.Helper()
	store := newTestStore(t)
	qs := NewQuestionnaireService(store, nil, 0)
	view, err := qs.Create(context.Background(), req())
	require.NoError(t, err)

	as := NewAttemptService(store)
	as.now = func() time.Time { return openAt.Add(30 * time.Minute) }
	return &attemptFixture{questionnaires: qs, attempts: as, view: view}
}

func TestAttemptService_Submit(t *testing.T) {
	f := newAttemptFixture(t, createRequest)
	w := f.view.QuestionWindows[0]
	mcq := w.Questions[1]

	attempt, err := f.attempts.Submit(context.Background(), w.WindowID, 42, []AnswerInput{
		{QuestionOrderID: w.Questions[0].QnOrderID, TextResponse: strPtr("  Fine  ")},
		{QuestionOrderID: mcq.QnOrderID, OptionID: uintPtr(mcq.Options[1].OptionID)},
	})

	require.NoError(t, err)
	assert.NotZero(t, attempt.ID)
	assert.Equal(t, uint(42), attempt.RespondentID)
	require.Len(t, attempt.Answers, 2)
	assert.Equal(t, "Fine", *attempt.Answers[0].TextResponse)
}

func TestAttemptService_Submit_Rejects(t *testing.T) {
	f := newAttemptFixture(t, createRequest)
	w := f.view.QuestionWindows[0]
	text, mcq := w.Questions[0], w.Questions[1]

	tests := []struct {
		name    string
		answers []AnswerInput
	}{
		{"no answers", nil},
		{"unknown order", []AnswerInput{{QuestionOrderID: 9999, TextResponse: strPtr("x")}}},
		{"answered twice", []AnswerInput{
			{QuestionOrderID: text.QnOrderID, TextResponse: strPtr("a")},
			{QuestionOrderID: text.QnOrderID, TextResponse: strPtr("b")},
		}},
		{"empty answer", []AnswerInput{{QuestionOrderID: text.QnOrderID}}},
		{"both option and text", []AnswerInput{{QuestionOrderID: mcq.QnOrderID, OptionID: uintPtr(mcq.Options[0].OptionID), TextResponse: strPtr("x")}}},
		{"text for a choice question", []AnswerInput{{QuestionOrderID: mcq.QnOrderID, TextResponse: strPtr("Maths")}}},
		{"option of another question", []AnswerInput{{QuestionOrderID: mcq.QnOrderID, OptionID: uintPtr(9999)}}},
		{"option for a text question", []AnswerInput{{QuestionOrderID: text.QnOrderID, OptionID: uintPtr(mcq.Options[0].OptionID)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.attempts.Submit(context.Background(), w.WindowID, 42, tt.answers)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestAttemptService_Submit_WindowClosed(t *testing.T) {
	f := newAttemptFixture(t, createRequest)
	w := f.view.QuestionWindows[0]
	f.attempts.now = func() time.Time { return closeAt.Add(time.Second) }

	_, err := f.attempts.Submit(context.Background(), w.WindowID, 42, []AnswerInput{
		{QuestionOrderID: w.Questions[0].QnOrderID, TextResponse: strPtr("late")},
	})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAttemptService_Submit_Unpublished(t *testing.T) {
	f := newAttemptFixture(t, func() questionnaire.CreateRequest {
		req := createRequest()
		req.Status = entity.QuestionnaireStatusDraft
		return req
	})
	w := f.view.QuestionWindows[0]

	_, err := f.attempts.Submit(context.Background(), w.WindowID, 42, []AnswerInput{
		{QuestionOrderID: w.Questions[0].QnOrderID, TextResponse: strPtr("hi")},
	})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAttemptService_Submit_UnknownWindow(t *testing.T) {
	f := newAttemptFixture(t, createRequest)
	_, err := f.attempts.Submit(context.Background(), 9999, 42, []AnswerInput{
		{QuestionOrderID: 1, TextResponse: strPtr("hi")},
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAttemptService_ResponsesAndExport_PrePost(t *testing.T) {
	f := newAttemptFixture(t, prePostCreateRequest)
	ctx := context.Background()
	before, after := f.view.QuestionWindows[0], f.view.QuestionWindows[1]
	shared := f.view.SharedQuestions.Questions[0]

	_, err := f.attempts.Submit(ctx, before.WindowID, 7, []AnswerInput{
		{QuestionOrderID: before.Questions[0].QnOrderID, TextResponse: strPtr("nervous")},
		{QuestionOrderID: shared.QnOrderID, OptionID: uintPtr(shared.Options[1].OptionID)},
	})
	require.NoError(t, err)

	f.attempts.now = func() time.Time { return closeAt.Add(time.Minute) }
	_, err = f.attempts.Submit(ctx, after.WindowID, 7, []AnswerInput{
		{QuestionOrderID: shared.QnOrderID, OptionID: uintPtr(shared.Options[4].OptionID)},
	})
	require.NoError(t, err)

	res, err := f.attempts.Responses(ctx, f.view.QuestionnaireID)
	require.NoError(t, err)
	require.Len(t, res.PrePost, 1)
	r := res.PrePost[0]
	assert.True(t, r.HasBefore())
	assert.True(t, r.HasAfter())
	assert.Len(t, r.AnswersBefore, 1)
	assert.Len(t, r.SharedAnswersBefore, 1)
	assert.Empty(t, r.AnswersAfter)
	assert.Len(t, r.SharedAnswersAfter, 1)

	q, err := f.questionnaires.Load(ctx, f.view.QuestionnaireID)
	require.NoError(t, err)
	rows := ExportRows(q, res)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"7", "before", "main"}, rows[0][:3])
	assert.Equal(t, "Before?", rows[0][5])
	assert.Equal(t, "nervous", rows[0][6])
	assert.Equal(t, []string{"7", "before", "shared"}, rows[1][:3])
	assert.Equal(t, "2", rows[1][6])
	assert.Equal(t, []string{"7", "after", "shared"}, rows[2][:3])
	assert.Equal(t, "Confidence", rows[2][5])
	assert.Equal(t, "5", rows[2][6])
	for _, row := range rows {
		assert.Len(t, row, len(ExportHeader))
	}
}

func TestAttemptService_Responses_OneTime(t *testing.T) {
	f := newAttemptFixture(t, createRequest)
	ctx := context.Background()
	w := f.view.QuestionWindows[0]

	for _, respondent := range []uint{9, 3, 9} {
		_, err := f.attempts.Submit(ctx, w.WindowID, respondent, []AnswerInput{
			{QuestionOrderID: w.Questions[0].QnOrderID, TextResponse: strPtr("ok")},
		})
		require.NoError(t, err)
	}

	res, err := f.attempts.Responses(ctx, f.view.QuestionnaireID)

	require.NoError(t, err)
	assert.Equal(t, entity.QuestionnaireTypeOneTime, res.Type)
	require.Len(t, res.OneTime, 2)
	assert.Equal(t, uint(3), res.OneTime[0].RespondentID)
	assert.Len(t, res.OneTime[1].Attempts, 2)

	q, err := f.questionnaires.Load(ctx, f.view.QuestionnaireID)
	require.NoError(t, err)
	rows := ExportRows(q, res)
	require.Len(t, rows, 3)
	assert.Equal(t, "single", rows[0][1])
	assert.Equal(t, "How was your day?", rows[0][5])
}

func TestAttemptService_Responses_NotFound(t *testing.T) {
	f := newAttemptFixture(t, createRequest)
	_, err := f.attempts.Responses(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
