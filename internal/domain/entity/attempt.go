package entity

import (
	"errors"
	"strings"
	"time"
)

// Attempt is one respondent's submission against one window.
type Attempt struct {
	Base
	WindowID     uint      `gorm:"not null;index" json:"window_id"`
	RespondentID uint      `gorm:"not null;index" json:"respondent_id"`
	SubmittedAt  time.Time `gorm:"not null" json:"submitted_at"`
	Answers      []Answer  `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
}

// TableName returns the GORM table name
func (Attempt) TableName() string {
	return "attempts"
}

// Answer responds to one QuestionOrder with either an option or free text.
type Answer struct {
	Base
	AttemptID       uint    `gorm:"not null;index" json:"attempt_id"`
	QuestionOrderID uint    `gorm:"not null;index" json:"question_order_id"`
	OptionID        *uint   `gorm:"index" json:"option_id,omitempty"`
	TextResponse    *string `gorm:"type:text" json:"text_response,omitempty"`
}

// TableName returns the GORM table name
func (Answer) TableName() string {
	return "answers"
}

var (
	ErrAnswerEmpty     = errors.New("answer must carry an option or a text response")
	ErrAnswerAmbiguous = errors.New("answer cannot carry both an option and a text response")
)

// Validate checks that exactly one of OptionID and TextResponse is set.
func (a *Answer) Validate() error {
	hasText := a.TextResponse != nil && strings.TrimSpace(*a.TextResponse) != ""
	hasOption := a.OptionID != nil
	switch {
	case hasText && hasOption:
		return ErrAnswerAmbiguous
	case !hasText && !hasOption:
		return ErrAnswerEmpty
	}
	return nil
}
