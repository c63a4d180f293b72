package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/yourusername/survey-api/internal/domain/repository"
)

// Store implements repository.Store and repository.Transactor on top of a *gorm.DB.
// The *gorm.DB may be the pool or an open transaction.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store bound to db
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// InTx runs fn inside a gorm transaction; every repository fn obtains from the
// supplied Store writes through that transaction.
func (s *Store) InTx(ctx context.Context, fn func(store repository.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Reader returns a store bound to ctx on the underlying connection.
func (s *Store) Reader(ctx context.Context) repository.Store {
	return NewStore(s.db.WithContext(ctx))
}

func (s *Store) Questionnaires() repository.QuestionnaireRepository {
	return NewQuestionnaireRepo(s.db)
}

func (s *Store) QuestionSets() repository.QuestionSetRepository {
	return NewQuestionSetRepo(s.db)
}

func (s *Store) Associations() repository.AssociationRepository {
	return NewAssociationRepo(s.db)
}

func (s *Store) Attempts() repository.AttemptRepository {
	return NewAttemptRepo(s.db)
}

func (s *Store) Programmes() repository.ProgrammeRepository {
	return NewProgrammeRepo(s.db)
}

func (s *Store) Classes() repository.ClassRepository {
	return NewClassRepo(s.db)
}

func (s *Store) People() repository.PersonRepository {
	return NewPersonRepo(s.db)
}

// DB exposes the underlying handle for migrations and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}
