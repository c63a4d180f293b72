package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/repository/postgres"
)

func TestCreateQuestionOrder_OptionsByType(t *testing.T) {
	store := newTestStore(t)
	set := &entity.QuestionSet{}
	require.NoError(t, store.QuestionSets().CreateSet(set))

	tests := []struct {
		spec    QuestionSpec
		options []string
	}{
		{QuestionSpec{Position: 0, Type: entity.QuestionTypeShortAnswer, Text: "Name?"}, nil},
		{QuestionSpec{Position: 1, Type: entity.QuestionTypeLongAnswer, Text: "Tell us more", Options: []string{"ignored"}}, nil},
		{QuestionSpec{Position: 2, Type: entity.QuestionTypeMultipleChoice, Text: "Colour?", Options: []string{" Red ", "Blue"}}, []string{"Red", "Blue"}},
		{QuestionSpec{Position: 3, Type: entity.QuestionTypeMood, Text: "Mood?"}, entity.MoodOptions},
		{QuestionSpec{Position: 4, Type: entity.QuestionTypeScale, Text: "Rate it"}, entity.ScaleOptions},
	}
	for _, tt := range tests {
		t.Run(string(tt.spec.Type), func(t *testing.T) {
			order, err := CreateQuestionOrder(store, set.ID, tt.spec)
			require.NoError(t, err)
			assert.NotZero(t, order.ID)
			assert.Equal(t, tt.spec.Position, order.Position)

			var texts []string
			for _, o := range order.Question.Options {
				assert.NotZero(t, o.ID)
				texts = append(texts, o.Text)
			}
			assert.Equal(t, tt.options, texts)
		})
	}

	loaded, err := store.QuestionSets().GetWithOrders(set.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.ActiveOrders(), len(tests))
}

func TestCreateQuestionOrder_Rejects(t *testing.T) {
	store := newTestStore(t)

	// MCQ with no options
	_, err := CreateQuestionOrder(store, 1, QuestionSpec{Type: entity.QuestionTypeMultipleChoice, Text: "Pick", Options: []string{}})
	assert.True(t, IsKind(err, KindShape))

	_, err = CreateQuestionOrder(store, 1, QuestionSpec{Type: "RANKING", Text: "Rank"})
	assert.True(t, IsKind(err, KindUnknownType))

	_, err = CreateQuestionOrder(store, 1, QuestionSpec{Position: -1, Type: entity.QuestionTypeShortAnswer, Text: "x"})
	assert.True(t, IsKind(err, KindShape))

	_, err = CreateQuestionOrder(store, 1, QuestionSpec{Type: entity.QuestionTypeShortAnswer, Text: "   "})
	assert.True(t, IsKind(err, KindShape))

	assert.Zero(t, countRows(t, store, &entity.Question{}))
}

func TestCreateQuestionSet_Empty(t *testing.T) {
	store := newTestStore(t)
	_, err := CreateQuestionSet(store, nil)
	assert.True(t, IsKind(err, KindShape))
	assert.Zero(t, countRows(t, store, &entity.QuestionSet{}))
}

func createSet(t *testing.T, store *postgres.Store, specs ...QuestionSpec) *entity.QuestionSet {
	t.Helper()
	set, err := CreateQuestionSet(store, specs)
	require.NoError(t, err)
	loaded, err := store.QuestionSets().GetWithOrders(set.ID)
	require.NoError(t, err)
	return loaded
}

func applyEdit(t *testing.T, store *postgres.Store, set *entity.QuestionSet, edits []QuestionEdit) (*SetEditResult, *entity.QuestionSet) {
	t.Helper()
	editor, err := NewQuestionSetEditor(store, set, edits)
	require.NoError(t, err)
	result, err := editor.Apply()
	require.NoError(t, err)
	reloaded, err := store.QuestionSets().GetWithOrders(set.ID)
	require.NoError(t, err)
	return result, reloaded
}

func TestQuestionSetEditor_MoveAndCreate(t *testing.T) {
	store := newTestStore(t)
	set := createSet(t, store, shortAnswer(0, "How was your day?"))
	original := set.ActiveOrders()[0]

	result, reloaded := applyEdit(t, store, set, []QuestionEdit{
		KeepOrder{OrderID: original.ID, Position: 5},
		CreateOrder{Question: shortAnswer(1, "Anything else?")},
	})

	assert.Equal(t, []uint{original.ID}, result.Updated)
	assert.Len(t, result.Created, 1)
	assert.Empty(t, result.Deleted)
	assert.Empty(t, result.Kept)

	active := reloaded.ActiveOrders()
	require.Len(t, active, 2)
	positions := map[uint]int{}
	for _, o := range active {
		positions[o.ID] = o.Position
	}
	assert.Equal(t, 5, positions[original.ID])
	assert.Equal(t, 1, positions[result.Created[0].ID])
}

func TestQuestionSetEditor_EmptyEditDeletesEverything(t *testing.T) {
	store := newTestStore(t)
	set := createSet(t, store, shortAnswer(0, "How was your day?"))
	original := set.ActiveOrders()[0]

	result, reloaded := applyEdit(t, store, set, nil)

	assert.Equal(t, []uint{original.ID}, result.Deleted)
	assert.Empty(t, reloaded.ActiveOrders())
	// the row is soft-deleted, not removed
	assert.EqualValues(t, 1, countRows(t, store, &entity.QuestionOrder{}))
}

func TestQuestionSetEditor_AccountsForEveryOriginalOrder(t *testing.T) {
	store := newTestStore(t)
	set := createSet(t, store,
		shortAnswer(0, "a"), shortAnswer(1, "b"), shortAnswer(2, "c"), shortAnswer(3, "d"))
	orders := set.ActiveOrders()

	result, reloaded := applyEdit(t, store, set, []QuestionEdit{
		KeepOrder{OrderID: orders[0].ID, Position: 0},
		KeepOrder{OrderID: orders[2].ID, Position: 1},
		CreateOrder{Question: shortAnswer(2, "e")},
	})

	assert.Equal(t, []uint{orders[0].ID}, result.Kept)
	assert.Equal(t, []uint{orders[2].ID}, result.Updated)
	assert.Equal(t, []uint{orders[1].ID, orders[3].ID}, result.Deleted)
	accounted := len(result.Created) + len(result.Updated) + len(result.Kept) + len(result.Deleted)
	assert.GreaterOrEqual(t, accounted, len(orders))
	assert.Len(t, reloaded.ActiveOrders(), 3)
}

func TestQuestionSetEditor_ReapplyingKeepsIsNoop(t *testing.T) {
	store := newTestStore(t)
	set := createSet(t, store, shortAnswer(0, "a"), shortAnswer(1, "b"))
	orders := set.ActiveOrders()
	edits := []QuestionEdit{
		KeepOrder{OrderID: orders[0].ID, Position: 3},
		KeepOrder{OrderID: orders[1].ID, Position: 1},
	}

	_, once := applyEdit(t, store, set, edits)
	second, twice := applyEdit(t, store, once, edits)

	assert.Empty(t, second.Created)
	assert.Empty(t, second.Updated)
	assert.Empty(t, second.Deleted)
	assert.ElementsMatch(t, []uint{orders[0].ID, orders[1].ID}, second.Kept)

	ids := func(s *entity.QuestionSet) map[uint]int {
		m := map[uint]int{}
		for _, o := range s.ActiveOrders() {
			m[o.ID] = o.Position
		}
		return m
	}
	assert.Equal(t, ids(once), ids(twice))
}

func TestNewQuestionSetEditor_Rejects(t *testing.T) {
	store := newTestStore(t)
	set := createSet(t, store, shortAnswer(0, "a"))
	other := createSet(t, store, shortAnswer(0, "b"))
	orderID := set.ActiveOrders()[0].ID

	tests := []struct {
		name  string
		set   *entity.QuestionSet
		edits []QuestionEdit
		kind  Kind
	}{
		{"unsaved set", &entity.QuestionSet{}, nil, KindIdentity},
		{"order from another set", set, []QuestionEdit{KeepOrder{OrderID: other.ActiveOrders()[0].ID}}, KindIdentity},
		{"duplicate keep", set, []QuestionEdit{KeepOrder{OrderID: orderID}, KeepOrder{OrderID: orderID}}, KindIdentity},
		{"negative position", set, []QuestionEdit{KeepOrder{OrderID: orderID, Position: -2}}, KindShape},
		{"mcq without options", set, []QuestionEdit{CreateOrder{Question: QuestionSpec{Type: entity.QuestionTypeMultipleChoice, Text: "?"}}}, KindShape},
		{"unknown type", set, []QuestionEdit{CreateOrder{Question: QuestionSpec{Type: "SLIDER", Text: "?"}}}, KindUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			editor, err := NewQuestionSetEditor(store, tt.set, tt.edits)
			assert.Nil(t, editor)
			assert.True(t, IsKind(err, tt.kind), "got %v", err)
		})
	}
}
