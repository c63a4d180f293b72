package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

// AssociationRepo implements repository.AssociationRepository
type AssociationRepo struct {
	db *gorm.DB
}

// NewAssociationRepo creates an association repository
func NewAssociationRepo(db *gorm.DB) *AssociationRepo {
	return &AssociationRepo{db: db}
}

// ExistingProgrammeIDs filters ids down to active programmes
func (r *AssociationRepo) ExistingProgrammeIDs(ids []uint) ([]uint, error) {
	return r.existingIDs(&entity.Programme{}, ids)
}

// ExistingClassIDs filters ids down to active classes
func (r *AssociationRepo) ExistingClassIDs(ids []uint) ([]uint, error) {
	return r.existingIDs(&entity.Class{}, ids)
}

func (r *AssociationRepo) existingIDs(model interface{}, ids []uint) ([]uint, error) {
	found := []uint{}
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}

// ProgrammeLinks returns every programme link of the questionnaire
func (r *AssociationRepo) ProgrammeLinks(questionnaireID uint) ([]entity.ProgrammeQuestionnaire, error) {
	var links []entity.ProgrammeQuestionnaire
	err := r.db.Unscoped().
		Where("questionnaire_id = ?", questionnaireID).
		Order("id").
		Find(&links).Error
	return links, err
}

// ClassLinks returns every class link of the questionnaire
func (r *AssociationRepo) ClassLinks(questionnaireID uint) ([]entity.ClassQuestionnaire, error) {
	var links []entity.ClassQuestionnaire
	err := r.db.Unscoped().
		Where("questionnaire_id = ?", questionnaireID).
		Order("id").
		Find(&links).Error
	return links, err
}

// CreateProgrammeLinks inserts links in one batch
func (r *AssociationRepo) CreateProgrammeLinks(links []entity.ProgrammeQuestionnaire) error {
	if len(links) == 0 {
		return nil
	}
	return mapError(r.db.Create(&links).Error)
}

// CreateClassLinks inserts links in one batch
func (r *AssociationRepo) CreateClassLinks(links []entity.ClassQuestionnaire) error {
	if len(links) == 0 {
		return nil
	}
	return mapError(r.db.Create(&links).Error)
}

func (r *AssociationRepo) RestoreProgrammeLinks(linkIDs []uint) error {
	return restoreByIDs(r.db, &entity.ProgrammeQuestionnaire{}, linkIDs)
}

func (r *AssociationRepo) RestoreClassLinks(linkIDs []uint) error {
	return restoreByIDs(r.db, &entity.ClassQuestionnaire{}, linkIDs)
}

func (r *AssociationRepo) SoftDeleteProgrammeLinks(linkIDs []uint) error {
	return softDeleteByIDs(r.db, &entity.ProgrammeQuestionnaire{}, linkIDs)
}

func (r *AssociationRepo) SoftDeleteClassLinks(linkIDs []uint) error {
	return softDeleteByIDs(r.db, &entity.ClassQuestionnaire{}, linkIDs)
}
