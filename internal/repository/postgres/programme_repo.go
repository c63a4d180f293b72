package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/survey-api/internal/domain/entity"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// ProgrammeRepo implements repository.ProgrammeRepository
type ProgrammeRepo struct {
	db *gorm.DB
}

// NewProgrammeRepo creates a programme repository
func NewProgrammeRepo(db *gorm.DB) *ProgrammeRepo {
	return &ProgrammeRepo{db: db}
}

// Create inserts a programme; an active programme with the same name is a conflict
func (r *ProgrammeRepo) Create(p *entity.Programme) error {
	var count int64
	if err := r.db.Model(&entity.Programme{}).Where("LOWER(name) = LOWER(?)", p.Name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrConflict
	}
	return mapError(r.db.Create(p).Error)
}

// GetByID returns an active programme
func (r *ProgrammeRepo) GetByID(id uint) (*entity.Programme, error) {
	var p entity.Programme
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// List returns active programmes by name
func (r *ProgrammeRepo) List(limit, offset int) ([]entity.Programme, int64, error) {
	var programmes []entity.Programme
	var total int64
	query := r.db.Model(&entity.Programme{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("name, id").Limit(limit).Offset(offset).Find(&programmes).Error
	return programmes, total, err
}

// SoftDelete marks the programme deleted
func (r *ProgrammeRepo) SoftDelete(id uint) error {
	result := r.db.Delete(&entity.Programme{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteQuestionnaireLinks marks the programme's questionnaire links deleted
func (r *ProgrammeRepo) SoftDeleteQuestionnaireLinks(programmeID uint) (int64, error) {
	result := r.db.Where("programme_id = ?", programmeID).Delete(&entity.ProgrammeQuestionnaire{})
	return result.RowsAffected, result.Error
}
