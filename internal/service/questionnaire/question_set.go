package questionnaire

import (
	"sort"
	"strings"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
)

// validateQuestionSpec checks a spec without touching storage.
func validateQuestionSpec(spec QuestionSpec) error {
	if spec.Position < 0 {
		return shapeErrorf("question position must not be negative, got %d", spec.Position)
	}
	if strings.TrimSpace(spec.Text) == "" {
		return shapeErrorf("question at position %d has no text", spec.Position)
	}
	if !spec.Type.IsValid() {
		return &Error{Kind: KindUnknownType, Msg: "unknown question type " + string(spec.Type)}
	}
	if spec.Type == entity.QuestionTypeMultipleChoice {
		if len(spec.Options) == 0 {
			return shapeErrorf("multiple choice question at position %d must have at least one option", spec.Position)
		}
		for _, o := range spec.Options {
			if strings.TrimSpace(o) == "" {
				return shapeErrorf("multiple choice question at position %d has an empty option", spec.Position)
			}
		}
	}
	return nil
}

func validateQuestionSpecs(specs []QuestionSpec) error {
	for _, s := range specs {
		if err := validateQuestionSpec(s); err != nil {
			return err
		}
	}
	return nil
}

// optionTexts returns the options a question of spec.Type carries.
func optionTexts(spec QuestionSpec) []string {
	switch spec.Type {
	case entity.QuestionTypeMultipleChoice:
		texts := make([]string, len(spec.Options))
		for i, o := range spec.Options {
			texts[i] = strings.TrimSpace(o)
		}
		return texts
	case entity.QuestionTypeMood:
		return entity.MoodOptions
	case entity.QuestionTypeScale:
		return entity.ScaleOptions
	}
	return nil
}

// CreateQuestionOrder creates the question described by spec and places it in the set.
// MOOD and SCALE questions always receive their fixed option vocabularies; free-text questions receive none.
func CreateQuestionOrder(store repository.Store, setID uint, spec QuestionSpec) (*entity.QuestionOrder, error) {
	if err := validateQuestionSpec(spec); err != nil {
		return nil, err
	}

	question := &entity.Question{
		Text: strings.TrimSpace(spec.Text),
		Type: spec.Type,
	}
	for _, text := range optionTexts(spec) {
		question.Options = append(question.Options, entity.Option{Text: text})
	}
	if err := store.QuestionSets().CreateQuestion(question); err != nil {
		return nil, err
	}

	order := &entity.QuestionOrder{
		Position:      spec.Position,
		QuestionID:    question.ID,
		QuestionSetID: setID,
	}
	if err := store.QuestionSets().CreateOrder(order); err != nil {
		return nil, err
	}
	order.Question = question
	return order, nil
}

// CreateQuestionSet persists a new set holding one order per spec.
func CreateQuestionSet(store repository.Store, specs []QuestionSpec) (*entity.QuestionSet, error) {
	if len(specs) == 0 {
		return nil, shapeErrorf("a question set needs at least one question")
	}
	if err := validateQuestionSpecs(specs); err != nil {
		return nil, err
	}

	set := &entity.QuestionSet{}
	if err := store.QuestionSets().CreateSet(set); err != nil {
		return nil, err
	}
	for _, spec := range specs {
		order, err := CreateQuestionOrder(store, set.ID, spec)
		if err != nil {
			return nil, err
		}
		set.Orders = append(set.Orders, *order)
	}
	return set, nil
}

// SetEditPlan is the computed diff between a set's active orders and an edit list.
type SetEditPlan struct {
	Create []QuestionSpec
	Update []KeepOrder // kept orders whose position changes
	Keep   []uint      // kept orders left untouched
	Delete []uint      // active orders not mentioned by the edit
}

// SetEditResult reports what Apply did.
type SetEditResult struct {
	SetID   uint
	Created []entity.QuestionOrder
	Updated []uint
	Kept    []uint
	Deleted []uint
}

// QuestionSetEditor reconciles the orders of one QuestionSet with an edit list.
type QuestionSetEditor struct {
	store          repository.Store
	set            *entity.QuestionSet
	plan           SetEditPlan
	originalActive int
}

// NewQuestionSetEditor plans the edit of set. The set must be loaded with its active orders.
// An empty edit list soft-deletes every active order; sets may be empty transiently during edits.
// Every KeepOrder must name a distinct active order of this set.
func NewQuestionSetEditor(store repository.Store, set *entity.QuestionSet, edits []QuestionEdit) (*QuestionSetEditor, error) {
	if set == nil || !set.IsPersisted() {
		return nil, identityErrorf("question set has not been persisted")
	}

	active := set.ActiveOrders()
	byID := make(map[uint]entity.QuestionOrder, len(active))
	for _, o := range active {
		byID[o.ID] = o
	}

	var plan SetEditPlan
	seen := make(map[uint]bool, len(edits))
	for _, edit := range edits {
		switch e := edit.(type) {
		case KeepOrder:
			order, ok := byID[e.OrderID]
			if !ok {
				return nil, identityErrorf("question order %d is not an active order of question set %d", e.OrderID, set.ID)
			}
			if seen[e.OrderID] {
				return nil, identityErrorf("question order %d appears more than once in the edit", e.OrderID)
			}
			if e.Position < 0 {
				return nil, shapeErrorf("question position must not be negative, got %d", e.Position)
			}
			seen[e.OrderID] = true
			if order.Position != e.Position {
				plan.Update = append(plan.Update, e)
			} else {
				plan.Keep = append(plan.Keep, e.OrderID)
			}
		case CreateOrder:
			if err := validateQuestionSpec(e.Question); err != nil {
				return nil, err
			}
			plan.Create = append(plan.Create, e.Question)
		default:
			return nil, shapeErrorf("unsupported question edit %T", edit)
		}
	}

	for _, o := range active {
		if !seen[o.ID] {
			plan.Delete = append(plan.Delete, o.ID)
		}
	}
	sort.Slice(plan.Delete, func(i, j int) bool { return plan.Delete[i] < plan.Delete[j] })

	return &QuestionSetEditor{
		store:          store,
		set:            set,
		plan:           plan,
		originalActive: len(active),
	}, nil
}

// Plan returns the diff computed by NewQuestionSetEditor.
func (e *QuestionSetEditor) Plan() SetEditPlan {
	return e.plan
}

// Apply executes the plan: creations, then position updates, then soft-deletions.
func (e *QuestionSetEditor) Apply() (*SetEditResult, error) {
	result := &SetEditResult{SetID: e.set.ID, Kept: e.plan.Keep}

	for _, spec := range e.plan.Create {
		order, err := CreateQuestionOrder(e.store, e.set.ID, spec)
		if err != nil {
			return nil, err
		}
		result.Created = append(result.Created, *order)
	}

	for _, u := range e.plan.Update {
		if err := e.store.QuestionSets().UpdateOrderPosition(u.OrderID, u.Position); err != nil {
			return nil, err
		}
		result.Updated = append(result.Updated, u.OrderID)
	}

	if err := e.store.QuestionSets().SoftDeleteOrders(e.plan.Delete); err != nil {
		return nil, err
	}
	result.Deleted = e.plan.Delete

	touched := len(result.Created) + len(result.Updated) + len(result.Kept) + len(result.Deleted)
	if touched < e.originalActive {
		return nil, invariantErrorf("question set %d: %d orders accounted for, %d were active", e.set.ID, touched, e.originalActive)
	}

	reloaded, err := e.store.QuestionSets().GetWithOrders(e.set.ID)
	if err != nil {
		return nil, err
	}
	want := len(result.Created) + len(result.Updated) + len(result.Kept)
	if got := len(reloaded.ActiveOrders()); got != want {
		return nil, invariantErrorf("question set %d has %d active orders after edit, expected %d", e.set.ID, got, want)
	}
	return result, nil
}
