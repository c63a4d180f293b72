package repository

import (
	"github.com/yourusername/survey-api/internal/domain/entity"
)

// AttemptRepository persists attempts and their answers.
type AttemptRepository interface {
	// Create inserts the attempt together with its answers.
	Create(attempt *entity.Attempt) error
	// ListByWindows returns active attempts of the windows with their answers, oldest first.
	ListByWindows(windowIDs []uint) ([]entity.Attempt, error)
}
