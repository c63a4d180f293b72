package entity

// QuestionType tags how a question is answered.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTypeMood           QuestionType = "MOOD"
	QuestionTypeShortAnswer    QuestionType = "SHORT_ANSWER"
	QuestionTypeLongAnswer     QuestionType = "LONG_ANSWER"
	QuestionTypeScale          QuestionType = "SCALE"
)

// MoodOptions is the fixed vocabulary attached to every MOOD question.
var MoodOptions = []string{"Very Sad", "Sad", "Neutral", "Happy", "Very Happy"}

// ScaleOptions is the fixed ordered scale attached to every SCALE question.
var ScaleOptions = []string{"1", "2", "3", "4", "5"}

// IsValid reports whether t is one of the known question types.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeMood, QuestionTypeShortAnswer,
		QuestionTypeLongAnswer, QuestionTypeScale:
		return true
	}
	return false
}

// IsChoice reports whether answers to t reference an Option rather than free text.
func (t QuestionType) IsChoice() bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeMood || t == QuestionTypeScale
}

// Question is a single prompt. Choice-like questions own an ordered set of options.
type Question struct {
	Base
	Text    string       `gorm:"size:1000;not null" json:"text"`
	Type    QuestionType `gorm:"size:32;not null" json:"type"`
	Options []Option     `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

// TableName returns the GORM table name
func (Question) TableName() string {
	return "questions"
}

// HasOption reports whether optionID is one of the question's loaded active options.
func (q *Question) HasOption(optionID uint) bool {
	for _, o := range q.Options {
		if o.ID == optionID && o.IsActive() {
			return true
		}
	}
	return false
}

// Option is one answer choice of a Question.
type Option struct {
	Base
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Text       string `gorm:"size:500;not null" json:"text"`
}

// TableName returns the GORM table name
func (Option) TableName() string {
	return "question_options"
}
