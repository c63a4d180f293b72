package repository

import (
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

// QuestionnaireFilters filters questionnaire listings
type QuestionnaireFilters struct {
	Status entity.QuestionnaireStatus
	Type   entity.QuestionnaireType
	Search string // matched against title
}

// QuestionnaireRepository persists questionnaires and their windows.
type QuestionnaireRepository interface {
	// Create inserts the bare questionnaire row; associations are ignored.
	Create(q *entity.Questionnaire) error
	// Update saves the questionnaire's own columns; associations are ignored.
	Update(q *entity.Questionnaire) error
	GetByID(id uint) (*entity.Questionnaire, error)
	// GetWithRelations loads active windows with their main and shared sets, the sets' active orders
	// with questions and options, and active programme/class links.
	GetWithRelations(id uint) (*entity.Questionnaire, error)
	List(filters QuestionnaireFilters, limit, offset int) ([]entity.Questionnaire, int64, error)
	SoftDelete(id uint) error

	CreateWindow(w *entity.QuestionnaireWindow) error
	UpdateWindowTimes(windowID uint, openAt, closeAt time.Time) error
	// GetWindow loads a window with the same relation depth as GetWithRelations.
	GetWindow(windowID uint) (*entity.QuestionnaireWindow, error)
	SoftDeleteWindows(windowIDs []uint) error
}
