package questionnaire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/repository/postgres"
)

func textAnswer(orderID uint, text string) entity.Answer {
	return entity.Answer{QuestionOrderID: orderID, TextResponse: &text}
}

func submit(t *testing.T, store *postgres.Store, windowID, respondentID uint, at time.Time, answers ...entity.Answer) *entity.Attempt {
	t.Helper()
	attempt := &entity.Attempt{WindowID: windowID, RespondentID: respondentID, SubmittedAt: at, Answers: answers}
	require.NoError(t, store.Attempts().Create(attempt))
	return attempt
}

func TestAggregator_OneTime(t *testing.T) {
	store := newTestStore(t)
	q := mustCreate(t, store, oneTimeRequest())
	w := q.ActiveWindows()[0]
	orderID := w.MainSet.ActiveOrders()[0].ID

	submit(t, store, w.ID, 2, day0.Add(time.Hour), textAnswer(orderID, "fine"))
	submit(t, store, w.ID, 1, day0.Add(2*time.Hour), textAnswer(orderID, "great"))
	submit(t, store, w.ID, 2, day0.Add(3*time.Hour), textAnswer(orderID, "better"))

	res, err := NewAggregator(store).Aggregate(q)
	require.NoError(t, err)

	assert.Equal(t, entity.QuestionnaireTypeOneTime, res.Type)
	assert.Nil(t, res.PrePost)
	require.Len(t, res.OneTime, 2)
	assert.EqualValues(t, 1, res.OneTime[0].RespondentID)
	assert.Len(t, res.OneTime[0].Attempts, 1)

	second := res.OneTime[1]
	assert.EqualValues(t, 2, second.RespondentID)
	require.Len(t, second.Attempts, 2)
	assert.Equal(t, "fine", *second.Attempts[0].Answers[0].TextResponse)
	assert.Equal(t, "better", *second.Attempts[1].Answers[0].TextResponse)
}

func TestAggregator_PrePost(t *testing.T) {
	store := newTestStore(t)
	q := mustCreate(t, store, prePostRequest())
	windows := q.ActiveWindows()
	before, after := windows[0], windows[1]
	beforeMain := before.MainSet.ActiveOrders()[0].ID
	afterMain := after.MainSet.ActiveOrders()[0].ID
	shared := before.SharedSet.ActiveOrders()[0].ID

	// respondent 1 completes both halves
	submit(t, store, before.ID, 1, day0, textAnswer(beforeMain, "nervous"), textAnswer(shared, "Ana"))
	submit(t, store, after.ID, 1, day7, textAnswer(afterMain, "confident"), textAnswer(shared, "Ana"))
	// respondent 2 only the first, twice
	submit(t, store, before.ID, 2, day0, textAnswer(beforeMain, "tired"))
	submit(t, store, before.ID, 2, day0.Add(time.Minute), textAnswer(beforeMain, "awake"), textAnswer(shared, "Ben"))

	now := day7.Add(24 * time.Hour)
	agg := NewAggregator(store)
	agg.now = func() time.Time { return now }

	res, err := agg.Aggregate(q)
	require.NoError(t, err)
	assert.Nil(t, res.OneTime)
	require.Len(t, res.PrePost, 2)

	first := res.PrePost[0]
	assert.EqualValues(t, 1, first.RespondentID)
	assert.True(t, first.HasBefore())
	assert.True(t, first.HasAfter())
	require.Len(t, first.AnswersBefore, 1)
	assert.Equal(t, "nervous", *first.AnswersBefore[0].TextResponse)
	require.Len(t, first.AnswersAfter, 1)
	assert.Equal(t, "confident", *first.AnswersAfter[0].TextResponse)
	assert.Len(t, first.SharedAnswersBefore, 1)
	assert.Len(t, first.SharedAnswersAfter, 1)

	second := res.PrePost[1]
	assert.EqualValues(t, 2, second.RespondentID)
	assert.True(t, second.HasBefore())
	assert.False(t, second.HasAfter())
	assert.True(t, second.SubmittedAfter.Equal(NotSubmittedAt(now)))
	require.Len(t, second.AnswersBefore, 1)
	assert.Equal(t, "awake", *second.AnswersBefore[0].TextResponse, "latest attempt wins")
	assert.Len(t, second.SharedAnswersBefore, 1)
	assert.Empty(t, second.AnswersAfter)
	assert.Empty(t, second.SharedAnswersAfter)
}

func TestAggregator_PrePostKeepsAnswersToRemovedQuestions(t *testing.T) {
	store := newTestStore(t)
	q := mustCreate(t, store, prePostRequest())
	before := q.ActiveWindows()[0]
	shared := before.SharedSet.ActiveOrders()[0].ID
	submit(t, store, before.ID, 1, day0, textAnswer(shared, "Ana"))

	// remove the shared question after it was answered
	req := editRequestFor(q)
	req.SharedQuestions = []QuestionEdit{CreateOrder{Question: shortAnswer(0, "What is your age?")}}
	result := mustEdit(t, store, q, req)

	res, err := NewAggregator(store).Aggregate(result.Questionnaire)
	require.NoError(t, err)
	require.Len(t, res.PrePost, 1)
	assert.Len(t, res.PrePost[0].SharedAnswersBefore, 1)
}

func TestAggregator_RejectsInvalid(t *testing.T) {
	store := newTestStore(t)
	q := mustCreate(t, store, oneTimeRequest())

	_, err := NewAggregator(store).PrePost(q)
	assert.True(t, IsKind(err, KindShape))

	_, err = NewAggregator(store).Aggregate(&entity.Questionnaire{})
	assert.True(t, IsKind(err, KindIdentity))
}
