package questionnaire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/repository/postgres"
	"github.com/yourusername/survey-api/internal/testutil"
)

var (
	day0 = time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC)
	day7 = day0.Add(7 * 24 * time.Hour)
)

func newTestStore(t *testing.T) *postgres.Store {
	t.Helper()
	return postgres.NewStore(testutil.NewSQLite(t))
}

func shortAnswer(position int, text string) QuestionSpec {
	return QuestionSpec{Position: position, Type: entity.QuestionTypeShortAnswer, Text: text}
}

func seedProgrammes(t *testing.T, store *postgres.Store, names ...string) []uint {
	t.Helper()
	ids := make([]uint, 0, len(names))
	for _, n := range names {
		p := &entity.Programme{Name: n}
		require.NoError(t, store.Programmes().Create(p))
		ids = append(ids, p.ID)
	}
	return ids
}

func seedClasses(t *testing.T, store *postgres.Store, names ...string) []uint {
	t.Helper()
	ids := make([]uint, 0, len(names))
	for _, n := range names {
		c := &entity.Class{Name: n}
		require.NoError(t, store.Classes().Create(c))
		ids = append(ids, c.ID)
	}
	return ids
}

// oneTimeRequest is Scenario A: one window, one SHORT_ANSWER question at position 0.
func oneTimeRequest() CreateRequest {
	return CreateRequest{
		Title:  "Daily check-in",
		Type:   entity.QuestionnaireTypeOneTime,
		Status: entity.QuestionnaireStatusDraft,
		Windows: []WindowSpec{{
			OpenAt:    day0,
			CloseAt:   day7,
			Questions: []QuestionSpec{shortAnswer(0, "How was your day?")},
		}},
	}
}

// prePostRequest is Scenario B.
func prePostRequest() CreateRequest {
	return CreateRequest{
		Title:  "Workshop feedback",
		Type:   entity.QuestionnaireTypePrePost,
		Status: entity.QuestionnaireStatusPublished,
		Windows: []WindowSpec{
			{OpenAt: day0, CloseAt: day0.Add(time.Hour), Questions: []QuestionSpec{shortAnswer(0, "How do you feel before?")}},
			{OpenAt: day7, CloseAt: day7.Add(time.Hour), Questions: []QuestionSpec{shortAnswer(0, "How do you feel after?")}},
		},
		SharedQuestions: []QuestionSpec{shortAnswer(0, "What is your name?")},
	}
}

func mustCreate(t *testing.T, store *postgres.Store, req CreateRequest) *entity.Questionnaire {
	t.Helper()
	c, err := NewCreator(store, req)
	require.NoError(t, err)
	q, err := c.Create()
	require.NoError(t, err)
	return q
}

// keepAll returns edits that keep every active order of set in place.
func keepAll(set *entity.QuestionSet) []QuestionEdit {
	var edits []QuestionEdit
	for _, o := range set.ActiveOrders() {
		edits = append(edits, KeepOrder{OrderID: o.ID, Position: o.Position})
	}
	return edits
}

// editRequestFor mirrors q's current state; tests then tweak the parts they exercise.
func editRequestFor(q *entity.Questionnaire) EditRequest {
	req := EditRequest{
		QuestionnaireID: q.ID,
		Title:           q.Title,
		Type:            q.Type,
		Status:          q.Status,
	}
	windows := q.ActiveWindows()
	for _, w := range windows {
		req.Windows = append(req.Windows, WindowEdit{
			WindowID:  w.ID,
			OpenAt:    w.OpenAt,
			CloseAt:   w.CloseAt,
			Questions: keepAll(w.MainSet),
		})
	}
	if q.Type == entity.QuestionnaireTypePrePost {
		req.SharedQuestions = keepAll(windows[0].SharedSet)
	}
	for _, l := range q.Programmes {
		req.ProgrammeIDs = append(req.ProgrammeIDs, l.ProgrammeID)
	}
	for _, l := range q.Classes {
		req.ClassIDs = append(req.ClassIDs, l.ClassID)
	}
	return req
}

func countRows(t *testing.T, store *postgres.Store, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, store.DB().Unscoped().Model(model).Count(&n).Error)
	return n
}
