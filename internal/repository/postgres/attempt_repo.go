package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

// AttemptRepo implements repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo creates an attempt repository
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create inserts the attempt and its answers
func (r *AttemptRepo) Create(attempt *entity.Attempt) error {
	return mapError(r.db.Create(attempt).Error)
}

// ListByWindows returns attempts of the windows with answers, oldest first
func (r *AttemptRepo) ListByWindows(windowIDs []uint) ([]entity.Attempt, error) {
	attempts := []entity.Attempt{}
	if len(windowIDs) == 0 {
		return attempts, nil
	}
	err := r.db.
		Preload("Answers", byID).
		Where("window_id IN ?", windowIDs).
		Order("submitted_at, id").
		Find(&attempts).Error
	return attempts, err
}
