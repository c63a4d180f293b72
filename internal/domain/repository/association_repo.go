package repository

import (
	"github.com/yourusername/survey-api/internal/domain/entity"
)

// AssociationRepository persists the programme and class links of questionnaires.
type AssociationRepository interface {
	// ExistingProgrammeIDs returns the subset of ids that name active programmes.
	ExistingProgrammeIDs(ids []uint) ([]uint, error)
	// ExistingClassIDs returns the subset of ids that name active classes.
	ExistingClassIDs(ids []uint) ([]uint, error)

	// ProgrammeLinks returns all links of the questionnaire, soft-deleted ones included.
	ProgrammeLinks(questionnaireID uint) ([]entity.ProgrammeQuestionnaire, error)
	// ClassLinks returns all links of the questionnaire, soft-deleted ones included.
	ClassLinks(questionnaireID uint) ([]entity.ClassQuestionnaire, error)

	CreateProgrammeLinks(links []entity.ProgrammeQuestionnaire) error
	CreateClassLinks(links []entity.ClassQuestionnaire) error
	RestoreProgrammeLinks(linkIDs []uint) error
	RestoreClassLinks(linkIDs []uint) error
	SoftDeleteProgrammeLinks(linkIDs []uint) error
	SoftDeleteClassLinks(linkIDs []uint) error
}
