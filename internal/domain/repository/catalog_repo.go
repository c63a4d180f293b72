package repository

import (
	"github.com/yourusername/survey-api/internal/domain/entity"
)

// ProgrammeRepository persists programmes.
type ProgrammeRepository interface {
	Create(p *entity.Programme) error
	GetByID(id uint) (*entity.Programme, error)
	List(limit, offset int) ([]entity.Programme, int64, error)
	SoftDelete(id uint) error
	// SoftDeleteQuestionnaireLinks soft-deletes every active questionnaire link of the programme.
	SoftDeleteQuestionnaireLinks(programmeID uint) (int64, error)
}

// ClassRepository persists classes and enrolments.
type ClassRepository interface {
	Create(c *entity.Class) error
	GetByID(id uint) (*entity.Class, error)
	List(programmeID *uint, limit, offset int) ([]entity.Class, int64, error)
	SoftDelete(id uint) error
	SoftDeleteQuestionnaireLinks(classID uint) (int64, error)
	SoftDeleteEnrolments(classID uint) (int64, error)

	Enrol(link *entity.ClassPerson) error
	// Enrolment returns the link of person to class, soft-deleted ones included.
	Enrolment(classID, personID uint) (*entity.ClassPerson, error)
	RestoreEnrolment(linkID uint) error
	SoftDeleteEnrolment(linkID uint) error
	ListMembers(classID uint) ([]entity.Person, error)
}

// PersonRepository persists people.
type PersonRepository interface {
	Create(p *entity.Person) error
	GetByID(id uint) (*entity.Person, error)
	GetByEmail(email string) (*entity.Person, error)
}
