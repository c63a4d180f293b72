package entity

import (
	"sort"
	"time"
)

// QuestionnaireType constrains how many windows a questionnaire owns.
type QuestionnaireType string

const (
	QuestionnaireTypeOneTime QuestionnaireType = "ONE TIME"
	QuestionnaireTypePrePost QuestionnaireType = "PRE POST"
)

// IsValid reports whether t is a known questionnaire type.
func (t QuestionnaireType) IsValid() bool {
	return t == QuestionnaireTypeOneTime || t == QuestionnaireTypePrePost
}

// WindowCount returns the number of active windows a questionnaire of type t must own.
func (t QuestionnaireType) WindowCount() int {
	switch t {
	case QuestionnaireTypeOneTime:
		return 1
	case QuestionnaireTypePrePost:
		return 2
	}
	return 0
}

// QuestionnaireStatus is the publication state of a questionnaire.
type QuestionnaireStatus string

const (
	QuestionnaireStatusDraft     QuestionnaireStatus = "DRAFT"
	QuestionnaireStatusPublished QuestionnaireStatus = "PUBLISHED"
)

// IsValid reports whether s is a known status.
func (s QuestionnaireStatus) IsValid() bool {
	return s == QuestionnaireStatusDraft || s == QuestionnaireStatusPublished
}

// Questionnaire is the top-level survey aggregate.
type Questionnaire struct {
	Base
	Title      string                   `gorm:"size:255;not null" json:"title"`
	Type       QuestionnaireType        `gorm:"size:16;not null;index" json:"type"`
	Status     QuestionnaireStatus      `gorm:"size:16;not null;default:'DRAFT';index" json:"status"`
	Windows    []QuestionnaireWindow    `gorm:"foreignKey:QuestionnaireID" json:"windows,omitempty"`
	Programmes []ProgrammeQuestionnaire `gorm:"foreignKey:QuestionnaireID" json:"programmes,omitempty"`
	Classes    []ClassQuestionnaire     `gorm:"foreignKey:QuestionnaireID" json:"classes,omitempty"`
}

// TableName returns the GORM table name
func (Questionnaire) TableName() string {
	return "questionnaires"
}

// IsPublished reports whether respondents may submit attempts.
func (q *Questionnaire) IsPublished() bool {
	return q.Status == QuestionnaireStatusPublished
}

// ActiveWindows returns the loaded, non-deleted windows ordered by open time, then id.
// For PRE POST questionnaires the first element is the "before" window.
func (q *Questionnaire) ActiveWindows() []QuestionnaireWindow {
	windows := make([]QuestionnaireWindow, 0, len(q.Windows))
	for _, w := range q.Windows {
		if w.IsActive() {
			windows = append(windows, w)
		}
	}
	sort.SliceStable(windows, func(i, j int) bool {
		if windows[i].OpenAt.Equal(windows[j].OpenAt) {
			return windows[i].ID < windows[j].ID
		}
		return windows[i].OpenAt.Before(windows[j].OpenAt)
	})
	return windows
}

// QuestionnaireWindow is one time-bounded administration of a questionnaire.
// OpenAt <= CloseAt is not validated.
type QuestionnaireWindow struct {
	Base
	QuestionnaireID uint         `gorm:"not null;index" json:"questionnaire_id"`
	OpenAt          time.Time    `gorm:"not null" json:"open_at"`
	CloseAt         time.Time    `gorm:"not null" json:"close_at"`
	MainSetID       uint         `gorm:"not null;index" json:"main_set_id"`
	MainSet         *QuestionSet `gorm:"foreignKey:MainSetID" json:"main_set,omitempty"`
	SharedSetID     *uint        `gorm:"index" json:"shared_set_id,omitempty"`
	SharedSet       *QuestionSet `gorm:"foreignKey:SharedSetID" json:"shared_set,omitempty"`
}

// TableName returns the GORM table name
func (QuestionnaireWindow) TableName() string {
	return "questionnaire_windows"
}

// IsOpenAt reports whether t falls inside [OpenAt, CloseAt].
func (w *QuestionnaireWindow) IsOpenAt(t time.Time) bool {
	return !t.Before(w.OpenAt) && !t.After(w.CloseAt)
}
