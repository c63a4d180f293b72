package questionnaire

import (
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

// QuestionSpec describes a question to create at a position.
type QuestionSpec struct {
	Position int
	Type     entity.QuestionType
	Text     string
	Options  []string // only read for MULTIPLE_CHOICE
}

// QuestionEdit is one entry of a question-set edit: either KeepOrder or CreateOrder.
// The variant is decided when the request payload is parsed.
type QuestionEdit interface {
	isQuestionEdit()
}

// KeepOrder retains an existing question order, moving it when Position differs.
type KeepOrder struct {
	OrderID  uint
	Position int
}

// CreateOrder adds a new question and order to the set.
type CreateOrder struct {
	Question QuestionSpec
}

func (KeepOrder) isQuestionEdit()   {}
func (CreateOrder) isQuestionEdit() {}

// WindowSpec describes a window to create.
type WindowSpec struct {
	OpenAt    time.Time
	CloseAt   time.Time
	Questions []QuestionSpec
}

// CreateRequest is the full payload for creating a questionnaire.
type CreateRequest struct {
	Title           string
	Type            entity.QuestionnaireType
	Status          entity.QuestionnaireStatus
	Windows         []WindowSpec
	SharedQuestions []QuestionSpec
	ProgrammeIDs    []uint
	ClassIDs        []uint
}

// WindowEdit describes the target state of an existing window.
type WindowEdit struct {
	WindowID  uint
	OpenAt    time.Time
	CloseAt   time.Time
	Questions []QuestionEdit
}

// EditRequest is the full payload for editing a questionnaire.
type EditRequest struct {
	QuestionnaireID uint
	Title           string
	Type            entity.QuestionnaireType
	Status          entity.QuestionnaireStatus
	Windows         []WindowEdit
	SharedQuestions []QuestionEdit
	ProgrammeIDs    []uint
	ClassIDs        []uint
}

// AssociationTarget is the desired set of programme and class links.
type AssociationTarget struct {
	ProgrammeIDs []uint
	ClassIDs     []uint
}
