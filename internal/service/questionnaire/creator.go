package questionnaire

import (
	"strings"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
)

// Creator persists a new questionnaire from a validated CreateRequest.
type Creator interface {
	Create() (*entity.Questionnaire, error)
}

// NewCreator validates req and returns the creator for its type.
// Nothing is written until Create is called.
func NewCreator(store repository.Store, req CreateRequest) (Creator, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, shapeErrorf("questionnaire title is required")
	}
	if req.Status == "" {
		req.Status = entity.QuestionnaireStatusDraft
	}
	if !req.Status.IsValid() {
		return nil, shapeErrorf("unknown questionnaire status %q", req.Status)
	}

	switch req.Type {
	case entity.QuestionnaireTypeOneTime:
		if len(req.SharedQuestions) > 0 {
			return nil, shapeErrorf("%q questionnaires have no shared questions", req.Type)
		}
	case entity.QuestionnaireTypePrePost:
		if len(req.SharedQuestions) == 0 {
			return nil, shapeErrorf("%q questionnaires need at least one shared question", req.Type)
		}
		if err := validateQuestionSpecs(req.SharedQuestions); err != nil {
			return nil, err
		}
	default:
		return nil, shapeErrorf("unknown questionnaire type %q", req.Type)
	}

	if want := req.Type.WindowCount(); len(req.Windows) != want {
		return nil, shapeErrorf("%q questionnaires need exactly %d window(s), got %d", req.Type, want, len(req.Windows))
	}
	for i, w := range req.Windows {
		if len(w.Questions) == 0 {
			return nil, shapeErrorf("window %d has no questions", i)
		}
		if err := validateQuestionSpecs(w.Questions); err != nil {
			return nil, err
		}
	}

	target, err := resolveTargets(store, AssociationTarget{ProgrammeIDs: req.ProgrammeIDs, ClassIDs: req.ClassIDs})
	if err != nil {
		return nil, err
	}

	base := creator{store: store, req: req, target: target}
	if req.Type == entity.QuestionnaireTypePrePost {
		return &prePostCreator{base}, nil
	}
	return &oneTimeCreator{base}, nil
}

type creator struct {
	store  repository.Store
	req    CreateRequest
	target AssociationTarget
}

// insertRow persists the bare questionnaire row.
func (c *creator) insertRow() (*entity.Questionnaire, error) {
	q := &entity.Questionnaire{
		Title:  strings.TrimSpace(c.req.Title),
		Type:   c.req.Type,
		Status: c.req.Status,
	}
	if err := c.store.Questionnaires().Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (c *creator) createWindow(q *entity.Questionnaire, spec WindowSpec, shared *entity.QuestionSet) (*entity.QuestionnaireWindow, error) {
	main, err := CreateQuestionSet(c.store, spec.Questions)
	if err != nil {
		return nil, err
	}
	w := &entity.QuestionnaireWindow{
		QuestionnaireID: q.ID,
		OpenAt:          spec.OpenAt,
		CloseAt:         spec.CloseAt,
		MainSetID:       main.ID,
	}
	if shared != nil {
		id := shared.ID
		w.SharedSetID = &id
	}
	if err := c.store.Questionnaires().CreateWindow(w); err != nil {
		return nil, err
	}
	w.MainSet = main
	w.SharedSet = shared
	return w, nil
}

// finish links associations, saves the row and reloads it.
// A reloaded questionnaire that fails validation is reported as an invariant error.
func (c *creator) finish(q *entity.Questionnaire, windows []entity.QuestionnaireWindow) (*entity.Questionnaire, error) {
	assoc := &AssociationEditor{store: c.store, questionnaireID: q.ID, target: c.target}
	if _, err := assoc.Apply(); err != nil {
		return nil, err
	}

	q.Windows = windows
	if err := c.store.Questionnaires().Update(q); err != nil {
		return nil, err
	}

	reloaded, err := c.store.Questionnaires().GetWithRelations(q.ID)
	if err != nil {
		return nil, err
	}
	if err := ValidateOrReject(reloaded); err != nil {
		return nil, invariantErrorf("questionnaire %d invalid after creation: %v", q.ID, err)
	}
	if err := VerifyAssociations(c.store, q.ID, c.target); err != nil {
		return nil, err
	}
	return reloaded, nil
}

type oneTimeCreator struct {
	creator
}

func (c *oneTimeCreator) Create() (*entity.Questionnaire, error) {
	q, err := c.insertRow()
	if err != nil {
		return nil, err
	}
	w, err := c.createWindow(q, c.req.Windows[0], nil)
	if err != nil {
		return nil, err
	}
	return c.finish(q, []entity.QuestionnaireWindow{*w})
}

type prePostCreator struct {
	creator
}

// Create builds the shared set once and references it from both windows.
func (c *prePostCreator) Create() (*entity.Questionnaire, error) {
	q, err := c.insertRow()
	if err != nil {
		return nil, err
	}
	shared, err := CreateQuestionSet(c.store, c.req.SharedQuestions)
	if err != nil {
		return nil, err
	}
	windows := make([]entity.QuestionnaireWindow, 0, 2)
	for _, spec := range c.req.Windows {
		w, err := c.createWindow(q, spec, shared)
		if err != nil {
			return nil, err
		}
		windows = append(windows, *w)
	}
	return c.finish(q, windows)
}
