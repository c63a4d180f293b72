package questionnaire

import (
	"strings"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
)

// Editor applies a validated EditRequest to a persisted questionnaire.
type Editor interface {
	Edit() (*EditResult, error)
}

// EditResult reports the reloaded questionnaire and what each reconciler did.
type EditResult struct {
	Questionnaire *entity.Questionnaire
	Windows       []*SetEditResult // main sets, in window order
	Shared        *SetEditResult   // nil for ONE TIME
	Associations  *AssociationResult
}

// NewEditor validates req against q, which must be loaded with its relations,
// and plans every set edit. Nothing is written until Edit is called.
func NewEditor(store repository.Store, q *entity.Questionnaire, req EditRequest) (Editor, error) {
	if err := ValidateOrReject(q); err != nil {
		return nil, err
	}
	if req.QuestionnaireID != q.ID {
		return nil, identityErrorf("edit targets questionnaire %d but questionnaire %d was loaded", req.QuestionnaireID, q.ID)
	}
	if req.Type != q.Type {
		return nil, shapeErrorf("questionnaire type cannot change from %q to %q", q.Type, req.Type)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, shapeErrorf("questionnaire title is required")
	}
	if req.Status == "" {
		req.Status = q.Status
	}
	if !req.Status.IsValid() {
		return nil, shapeErrorf("unknown questionnaire status %q", req.Status)
	}

	windows := q.ActiveWindows()
	if len(req.Windows) != len(windows) {
		return nil, shapeErrorf("questionnaire %d has %d window(s), edit names %d", q.ID, len(windows), len(req.Windows))
	}

	byID := make(map[uint]entity.QuestionnaireWindow, len(windows))
	for _, w := range windows {
		byID[w.ID] = w
	}

	e := editor{store: store, q: q, req: req}
	seen := make(map[uint]bool, len(req.Windows))
	for _, we := range req.Windows {
		w, ok := byID[we.WindowID]
		if !ok {
			return nil, identityErrorf("window %d does not belong to questionnaire %d", we.WindowID, q.ID)
		}
		if seen[we.WindowID] {
			return nil, identityErrorf("window %d appears more than once in the edit", we.WindowID)
		}
		seen[we.WindowID] = true

		if w.MainSet == nil {
			return nil, identityErrorf("window %d has no main question set loaded", w.ID)
		}
		setEditor, err := NewQuestionSetEditor(store, w.MainSet, we.Questions)
		if err != nil {
			return nil, err
		}
		e.windows = append(e.windows, windowPlan{edit: we, set: setEditor})
	}

	assoc, err := NewAssociationEditor(store, q.ID, AssociationTarget{ProgrammeIDs: req.ProgrammeIDs, ClassIDs: req.ClassIDs})
	if err != nil {
		return nil, err
	}
	e.assoc = assoc

	if q.Type == entity.QuestionnaireTypePrePost {
		shared, err := NewQuestionSetEditor(store, windows[0].SharedSet, req.SharedQuestions)
		if err != nil {
			return nil, err
		}
		e.shared = shared
		return &prePostEditor{e}, nil
	}

	if len(req.SharedQuestions) > 0 {
		return nil, shapeErrorf("%q questionnaires have no shared questions", q.Type)
	}
	return &oneTimeEditor{e}, nil
}

type windowPlan struct {
	edit WindowEdit
	set  *QuestionSetEditor
}

type editor struct {
	store   repository.Store
	q       *entity.Questionnaire
	req     EditRequest
	windows []windowPlan
	shared  *QuestionSetEditor
	assoc   *AssociationEditor
}

func (e *editor) apply() (*EditResult, error) {
	originalWindows := make(map[uint]bool)
	for _, w := range e.q.ActiveWindows() {
		originalWindows[w.ID] = true
	}

	e.q.Title = strings.TrimSpace(e.req.Title)
	e.q.Status = e.req.Status
	if err := e.store.Questionnaires().Update(e.q); err != nil {
		return nil, err
	}

	result := &EditResult{}
	var err error
	if result.Associations, err = e.assoc.Apply(); err != nil {
		return nil, err
	}

	for _, wp := range e.windows {
		if err := e.store.Questionnaires().UpdateWindowTimes(wp.edit.WindowID, wp.edit.OpenAt, wp.edit.CloseAt); err != nil {
			return nil, err
		}
		setResult, err := wp.set.Apply()
		if err != nil {
			return nil, err
		}
		result.Windows = append(result.Windows, setResult)
	}

	if e.shared != nil {
		if result.Shared, err = e.shared.Apply(); err != nil {
			return nil, err
		}
	}

	reloaded, err := e.store.Questionnaires().GetWithRelations(e.q.ID)
	if err != nil {
		return nil, err
	}
	windows := reloaded.ActiveWindows()
	if len(windows) != len(originalWindows) {
		return nil, invariantErrorf("questionnaire %d has %d windows after edit, had %d", e.q.ID, len(windows), len(originalWindows))
	}
	for _, w := range windows {
		if !originalWindows[w.ID] {
			return nil, invariantErrorf("questionnaire %d gained window %d during edit", e.q.ID, w.ID)
		}
	}
	if err := ValidateOrReject(reloaded); err != nil {
		return nil, invariantErrorf("questionnaire %d invalid after edit: %v", e.q.ID, err)
	}
	if err := VerifyAssociations(e.store, e.q.ID, e.assoc.target); err != nil {
		return nil, err
	}

	result.Questionnaire = reloaded
	return result, nil
}

type oneTimeEditor struct {
	editor
}

func (e *oneTimeEditor) Edit() (*EditResult, error) {
	return e.apply()
}

// prePostEditor reconciles the shared set exactly once, after both main sets.
type prePostEditor struct {
	editor
}

func (e *prePostEditor) Edit() (*EditResult, error) {
	return e.apply()
}
