package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
	"github.com/yourusername/survey-api/internal/service/questionnaire"
)

// QuestionnaireService creates, edits and serves questionnaires.
// Every write runs inside one transaction whose Store is handed to the core.
type QuestionnaireService struct {
	tx      repository.Transactor
	cache   repository.CacheRepository
	viewTTL time.Duration
}

// NewQuestionnaireService creates the service; cache may be nil to disable view caching
func NewQuestionnaireService(tx repository.Transactor, cache repository.CacheRepository, viewTTL time.Duration) *QuestionnaireService {
	return &QuestionnaireService{tx: tx, cache: cache, viewTTL: viewTTL}
}

func viewCacheKey(id uint) string {
	return fmt.Sprintf("questionnaire:%d:view", id)
}

// logInvariant records the detailed message of an invariant violation before it is hidden from clients
func logInvariant(op string, err error) {
	if questionnaire.IsKind(err, questionnaire.KindInvariant) {
		log.Printf("[QuestionnaireService] %s: invariant violated: %v", op, err)
	}
}

// Create persists a new questionnaire
func (s *QuestionnaireService) Create(ctx context.Context, req questionnaire.CreateRequest) (*QuestionnaireView, error) {
	var created *entity.Questionnaire
	err := s.tx.InTx(ctx, func(store repository.Store) error {
		creator, err := questionnaire.NewCreator(store, req)
		if err != nil {
			return err
		}
		created, err = creator.Create()
		return err
	})
	if err != nil {
		logInvariant("Create", err)
		return nil, err
	}

	log.Printf("[QuestionnaireService] created questionnaire ID=%d type=%q windows=%d", created.ID, created.Type, len(created.ActiveWindows()))
	view := NewQuestionnaireView(created)
	s.storeView(view)
	return view, nil
}

// Edit reconciles an existing questionnaire with req
func (s *QuestionnaireService) Edit(ctx context.Context, req questionnaire.EditRequest) (*QuestionnaireView, error) {
	var result *questionnaire.EditResult
	err := s.tx.InTx(ctx, func(store repository.Store) error {
		q, err := store.Questionnaires().GetWithRelations(req.QuestionnaireID)
		if err != nil {
			return err
		}
		editor, err := questionnaire.NewEditor(store, q, req)
		if err != nil {
			return err
		}
		result, err = editor.Edit()
		return err
	})
	if err != nil {
		logInvariant("Edit", err)
		return nil, err
	}

	for _, w := range result.Windows {
		log.Printf("[QuestionnaireService] questionnaire ID=%d set ID=%d: created=%d updated=%d kept=%d deleted=%d",
			req.QuestionnaireID, w.SetID, len(w.Created), len(w.Updated), len(w.Kept), len(w.Deleted))
	}
	s.invalidate(req.QuestionnaireID)
	view := NewQuestionnaireView(result.Questionnaire)
	s.storeView(view)
	return view, nil
}

// Get returns the full view, served from cache when possible
func (s *QuestionnaireService) Get(ctx context.Context, id uint) (*QuestionnaireView, error) {
	if s.cache != nil {
		var cached QuestionnaireView
		err := s.cache.GetJSON(viewCacheKey(id), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuestionnaireService] cache read failed for questionnaire ID=%d: %v", id, err)
		}
	}

	q, err := s.tx.Reader(ctx).Questionnaires().GetWithRelations(id)
	if err != nil {
		return nil, err
	}
	view := NewQuestionnaireView(q)
	s.storeView(view)
	return view, nil
}

// List returns a page of questionnaires; page is 1-based
func (s *QuestionnaireService) List(ctx context.Context, filters repository.QuestionnaireFilters, page, pageSize int) ([]QuestionnaireSummary, int64, error) {
	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, filters.Status)
	}
	if filters.Type != "" && !filters.Type.IsValid() {
		return nil, 0, fmt.Errorf("%w: unknown type %q", apperrors.ErrValidation, filters.Type)
	}
	page, pageSize = normalizePage(page, pageSize)

	rows, total, err := s.tx.Reader(ctx).Questionnaires().List(filters, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	out := make([]QuestionnaireSummary, 0, len(rows))
	for i := range rows {
		out = append(out, newSummary(&rows[i]))
	}
	return out, total, nil
}

// Delete soft-deletes the questionnaire and everything it owns: links, windows, sets with their orders, then the row
func (s *QuestionnaireService) Delete(ctx context.Context, id uint) error {
	err := s.tx.InTx(ctx, func(store repository.Store) error {
		q, err := store.Questionnaires().GetWithRelations(id)
		if err != nil {
			return err
		}

		links, err := questionnaire.NewAssociationEditor(store, q.ID, questionnaire.AssociationTarget{})
		if err != nil {
			return err
		}
		if _, err := links.Apply(); err != nil {
			return err
		}

		var windowIDs, setIDs []uint
		seen := map[uint]bool{}
		addSet := func(id uint) {
			if id != 0 && !seen[id] {
				seen[id] = true
				setIDs = append(setIDs, id)
			}
		}
		for _, w := range q.ActiveWindows() {
			windowIDs = append(windowIDs, w.ID)
			addSet(w.MainSetID)
			if w.SharedSetID != nil {
				addSet(*w.SharedSetID)
			}
		}
		if err := store.Questionnaires().SoftDeleteWindows(windowIDs); err != nil {
			return err
		}
		if err := store.QuestionSets().SoftDeleteSets(setIDs); err != nil {
			return err
		}
		return store.Questionnaires().SoftDelete(q.ID)
	})
	if err != nil {
		return err
	}

	log.Printf("[QuestionnaireService] deleted questionnaire ID=%d", id)
	s.invalidate(id)
	return nil
}

// Load returns the questionnaire entity with its relations, bypassing the view cache
func (s *QuestionnaireService) Load(ctx context.Context, id uint) (*entity.Questionnaire, error) {
	return s.tx.Reader(ctx).Questionnaires().GetWithRelations(id)
}

func (s *QuestionnaireService) storeView(view *QuestionnaireView) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(viewCacheKey(view.QuestionnaireID), view, s.viewTTL); err != nil {
		log.Printf("[QuestionnaireService] failed to cache questionnaire ID=%d: %v", view.QuestionnaireID, err)
	}
}

func (s *QuestionnaireService) invalidate(id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(viewCacheKey(id)); err != nil {
		log.Printf("[QuestionnaireService] failed to invalidate cache for questionnaire ID=%d: %v", id, err)
	}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
