package postgres

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// QuestionnaireRepo implements repository.QuestionnaireRepository
type QuestionnaireRepo struct {
	db *gorm.DB
}

// NewQuestionnaireRepo creates a questionnaire repository
func NewQuestionnaireRepo(db *gorm.DB) *QuestionnaireRepo {
	return &QuestionnaireRepo{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position, id")
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// withSetPreloads preloads a question set relation under prefix (e.g. "Windows.MainSet")
func withSetPreloads(db *gorm.DB, prefix string) *gorm.DB {
	return db.
		Preload(prefix).
		Preload(prefix+".Orders", byPosition).
		Preload(prefix+".Orders.Question").
		Preload(prefix+".Orders.Question.Options", byID)
}

// Create inserts the bare questionnaire row
func (r *QuestionnaireRepo) Create(q *entity.Questionnaire) error {
	return mapError(r.db.Omit(clause.Associations).Create(q).Error)
}

// Update saves title, type and status
func (r *QuestionnaireRepo) Update(q *entity.Questionnaire) error {
	if !q.IsPersisted() {
		return apperrors.ErrNotFound
	}
	result := r.db.Model(&entity.Questionnaire{}).
		Where("id = ?", q.ID).
		Updates(map[string]interface{}{
			"title":      q.Title,
			"type":       q.Type,
			"status":     q.Status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return mapError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetByID returns the bare questionnaire row
func (r *QuestionnaireRepo) GetByID(id uint) (*entity.Questionnaire, error) {
	var q entity.Questionnaire
	if err := r.db.First(&q, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &q, nil
}

// GetWithRelations loads the full aggregate
func (r *QuestionnaireRepo) GetWithRelations(id uint) (*entity.Questionnaire, error) {
	var q entity.Questionnaire
	query := r.db.Preload("Windows", func(db *gorm.DB) *gorm.DB {
		return db.Order("open_at, id")
	})
	query = withSetPreloads(query, "Windows.MainSet")
	query = withSetPreloads(query, "Windows.SharedSet")
	err := query.
		Preload("Programmes", byID).
		Preload("Classes", byID).
		First(&q, id).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &q, nil
}

// List returns questionnaires matching filters, newest first, with the total count
func (r *QuestionnaireRepo) List(filters repository.QuestionnaireFilters, limit, offset int) ([]entity.Questionnaire, int64, error) {
	var questionnaires []entity.Questionnaire
	var total int64

	query := r.db.Model(&entity.Questionnaire{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filters.Search)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("id DESC").Limit(limit).Offset(offset).Find(&questionnaires).Error; err != nil {
		return nil, 0, err
	}
	return questionnaires, total, nil
}

// SoftDelete marks the questionnaire row deleted
func (r *QuestionnaireRepo) SoftDelete(id uint) error {
	result := r.db.Delete(&entity.Questionnaire{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CreateWindow inserts a window; the referenced sets must already exist
func (r *QuestionnaireRepo) CreateWindow(w *entity.QuestionnaireWindow) error {
	return mapError(r.db.Omit(clause.Associations).Create(w).Error)
}

// UpdateWindowTimes sets open_at and close_at
func (r *QuestionnaireRepo) UpdateWindowTimes(windowID uint, openAt, closeAt time.Time) error {
	result := r.db.Model(&entity.QuestionnaireWindow{}).
		Where("id = ?", windowID).
		Updates(map[string]interface{}{"open_at": openAt, "close_at": closeAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetWindow loads a window with its sets
func (r *QuestionnaireRepo) GetWindow(windowID uint) (*entity.QuestionnaireWindow, error) {
	var w entity.QuestionnaireWindow
	query := withSetPreloads(r.db, "MainSet")
	query = withSetPreloads(query, "SharedSet")
	if err := query.First(&w, windowID).Error; err != nil {
		return nil, mapError(err)
	}
	return &w, nil
}

// SoftDeleteWindows marks windows deleted
func (r *QuestionnaireRepo) SoftDeleteWindows(windowIDs []uint) error {
	return softDeleteByIDs(r.db, &entity.QuestionnaireWindow{}, windowIDs)
}
