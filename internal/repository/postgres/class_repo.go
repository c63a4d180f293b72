package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/survey-api/internal/domain/entity"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// ClassRepo implements repository.ClassRepository
type ClassRepo struct {
	db *gorm.DB
}

// NewClassRepo creates a class repository
func NewClassRepo(db *gorm.DB) *ClassRepo {
	return &ClassRepo{db: db}
}

// Create inserts a class
func (r *ClassRepo) Create(c *entity.Class) error {
	return mapError(r.db.Create(c).Error)
}

// GetByID returns an active class
func (r *ClassRepo) GetByID(id uint) (*entity.Class, error) {
	var c entity.Class
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &c, nil
}

// List returns active classes, optionally restricted to one programme
func (r *ClassRepo) List(programmeID *uint, limit, offset int) ([]entity.Class, int64, error) {
	var classes []entity.Class
	var total int64
	query := r.db.Model(&entity.Class{})
	if programmeID != nil {
		query = query.Where("programme_id = ?", *programmeID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("name, id").Limit(limit).Offset(offset).Find(&classes).Error
	return classes, total, err
}

// SoftDelete marks the class deleted
func (r *ClassRepo) SoftDelete(id uint) error {
	result := r.db.Delete(&entity.Class{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteQuestionnaireLinks marks the class's questionnaire links deleted
func (r *ClassRepo) SoftDeleteQuestionnaireLinks(classID uint) (int64, error) {
	result := r.db.Where("class_id = ?", classID).Delete(&entity.ClassQuestionnaire{})
	return result.RowsAffected, result.Error
}

// SoftDeleteEnrolments marks the class's enrolments deleted
func (r *ClassRepo) SoftDeleteEnrolments(classID uint) (int64, error) {
	result := r.db.Where("class_id = ?", classID).Delete(&entity.ClassPerson{})
	return result.RowsAffected, result.Error
}

// Enrol inserts an enrolment
func (r *ClassRepo) Enrol(link *entity.ClassPerson) error {
	return mapError(r.db.Create(link).Error)
}

// Enrolment returns the most recent link between class and person, deleted or not
func (r *ClassRepo) Enrolment(classID, personID uint) (*entity.ClassPerson, error) {
	var link entity.ClassPerson
	err := r.db.Unscoped().
		Where("class_id = ? AND person_id = ?", classID, personID).
		Order("id DESC").
		First(&link).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &link, nil
}

func (r *ClassRepo) RestoreEnrolment(linkID uint) error {
	return restoreByIDs(r.db, &entity.ClassPerson{}, []uint{linkID})
}

func (r *ClassRepo) SoftDeleteEnrolment(linkID uint) error {
	return softDeleteByIDs(r.db, &entity.ClassPerson{}, []uint{linkID})
}

// ListMembers returns the active people enrolled in the class
func (r *ClassRepo) ListMembers(classID uint) ([]entity.Person, error) {
	var people []entity.Person
	err := r.db.
		Joins("JOIN class_people ON class_people.person_id = people.id AND class_people.deleted_at IS NULL").
		Where("class_people.class_id = ?", classID).
		Order("people.name, people.id").
		Find(&people).Error
	return people, err
}
