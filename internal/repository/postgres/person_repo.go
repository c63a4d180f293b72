package postgres

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

// PersonRepo implements repository.PersonRepository
type PersonRepo struct {
	db *gorm.DB
}

// NewPersonRepo creates a person repository
func NewPersonRepo(db *gorm.DB) *PersonRepo {
	return &PersonRepo{db: db}
}

// Create inserts a person; the password is hashed by Person.BeforeSave
func (r *PersonRepo) Create(p *entity.Person) error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return mapError(r.db.Create(p).Error)
}

// GetByID returns an active person
func (r *PersonRepo) GetByID(id uint) (*entity.Person, error) {
	var p entity.Person
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// GetByEmail returns an active person by case-insensitive email
func (r *PersonRepo) GetByEmail(email string) (*entity.Person, error) {
	var p entity.Person
	err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&p).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}
