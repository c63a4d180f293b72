package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// CatalogService manages programmes, classes, people and enrolments
type CatalogService struct {
	tx repository.Transactor
}

// NewCatalogService creates the catalogue service
func NewCatalogService(tx repository.Transactor) *CatalogService {
	return &CatalogService{tx: tx}
}

// CreateProgramme adds a programme; names are unique among active programmes
func (s *CatalogService) CreateProgramme(ctx context.Context, name, description string) (*entity.Programme, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: programme name is required", apperrors.ErrValidation)
	}
	p := &entity.Programme{Name: name, Description: strings.TrimSpace(description)}
	err := s.tx.InTx(ctx, func(store repository.Store) error {
		return store.Programmes().Create(p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) GetProgramme(ctx context.Context, id uint) (*entity.Programme, error) {
	return s.tx.Reader(ctx).Programmes().GetByID(id)
}

func (s *CatalogService) ListProgrammes(ctx context.Context, page, pageSize int) ([]entity.Programme, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.tx.Reader(ctx).Programmes().List(pageSize, (page-1)*pageSize)
}

// DeleteProgramme soft-deletes the programme's questionnaire links, then the programme
func (s *CatalogService) DeleteProgramme(ctx context.Context, id uint) error {
	var unlinked int64
	err := s.tx.InTx(ctx, func(store repository.Store) error {
		if _, err := store.Programmes().GetByID(id); err != nil {
			return err
		}
		var err error
		if unlinked, err = store.Programmes().SoftDeleteQuestionnaireLinks(id); err != nil {
			return err
		}
		return store.Programmes().SoftDelete(id)
	})
	if err != nil {
		return err
	}
	log.Printf("[CatalogService] deleted programme ID=%d (%d questionnaire links)", id, unlinked)
	return nil
}

// CreateClass adds a class, optionally inside a programme
func (s *CatalogService) CreateClass(ctx context.Context, name string, programmeID *uint) (*entity.Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: class name is required", apperrors.ErrValidation)
	}
	c := &entity.Class{Name: name, ProgrammeID: programmeID}
	err := s.tx.InTx(ctx, func(store repository.Store) error {
		if programmeID != nil {
			if _, err := store.Programmes().GetByID(*programmeID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("%w: programme %d does not exist", apperrors.ErrValidation, *programmeID)
				}
				return err
			}
		}
		return store.Classes().Create(c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) GetClass(ctx context.Context, id uint) (*entity.Class, error) {
	return s.tx.Reader(ctx).Classes().GetByID(id)
}

func (s *CatalogService) ListClasses(ctx context.Context, programmeID *uint, page, pageSize int) ([]entity.Class, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	return s.tx.Reader(ctx).Classes().List(programmeID, pageSize, (page-1)*pageSize)
}

// DeleteClass soft-deletes the class's questionnaire links, then its enrolments, then the class
func (s *CatalogService) DeleteClass(ctx context.Context, id uint) error {
	var unlinked, unenrolled int64
	err := s.tx.InTx(ctx, func(store repository.Store) error {
		if _, err := store.Classes().GetByID(id); err != nil {
			return err
		}
		var err error
		if unlinked, err = store.Classes().SoftDeleteQuestionnaireLinks(id); err != nil {
			return err
		}
		if unenrolled, err = store.Classes().SoftDeleteEnrolments(id); err != nil {
			return err
		}
		return store.Classes().SoftDelete(id)
	})
	if err != nil {
		return err
	}
	log.Printf("[CatalogService] deleted class ID=%d (%d questionnaire links, %d enrolments)", id, unlinked, unenrolled)
	return nil
}

// Enrol adds the person to the class. A previous, soft-deleted enrolment is restored rather than duplicated.
func (s *CatalogService) Enrol(ctx context.Context, classID, personID uint) (*entity.ClassPerson, error) {
	var link *entity.ClassPerson
	err := s.tx.InTx(ctx, func(store repository.Store) error {
		if _, err := store.Classes().GetByID(classID); err != nil {
			return err
		}
		if _, err := store.People().GetByID(personID); err != nil {
			return err
		}

		existing, err := store.Classes().Enrolment(classID, personID)
		switch {
		case err == nil && existing.IsActive():
			link = existing
			return nil
		case err == nil:
			if err := store.Classes().RestoreEnrolment(existing.ID); err != nil {
				return err
			}
			existing.DeletedAt.Valid = false
			link = existing
			return nil
		case !errors.Is(err, apperrors.ErrNotFound):
			return err
		}

		link = &entity.ClassPerson{ClassID: classID, PersonID: personID}
		return store.Classes().Enrol(link)
	})
	if err != nil {
		return nil, err
	}
	return link, nil
}

// Unenrol removes the person from the class
func (s *CatalogService) Unenrol(ctx context.Context, classID, personID uint) error {
	return s.tx.InTx(ctx, func(store repository.Store) error {
		existing, err := store.Classes().Enrolment(classID, personID)
		if err != nil {
			return err
		}
		if !existing.IsActive() {
			return apperrors.ErrNotFound
		}
		return store.Classes().SoftDeleteEnrolment(existing.ID)
	})
}

func (s *CatalogService) ListMembers(ctx context.Context, classID uint) ([]entity.Person, error) {
	store := s.tx.Reader(ctx)
	if _, err := store.Classes().GetByID(classID); err != nil {
		return nil, err
	}
	return store.Classes().ListMembers(classID)
}

// CreatePerson registers a person; the password is stored as a bcrypt hash
func (s *CatalogService) CreatePerson(ctx context.Context, name, email string, role entity.Role, password string) (*entity.Person, error) {
	name, email = strings.TrimSpace(name), normalizeEmail(email)
	switch {
	case name == "" || email == "":
		return nil, fmt.Errorf("%w: name and email are required", apperrors.ErrValidation)
	case !role.IsValid():
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	case len(password) < 8:
		return nil, fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	p := &entity.Person{Name: name, Email: email, Role: role}
	p.SetPassword(password)
	err := s.tx.InTx(ctx, func(store repository.Store) error {
		return store.People().Create(p)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[CatalogService] created person ID=%d role=%s", p.ID, p.Role)
	return p, nil
}

func (s *CatalogService) GetPerson(ctx context.Context, id uint) (*entity.Person, error) {
	return s.tx.Reader(ctx).People().GetByID(id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
