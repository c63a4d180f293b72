package service

import (
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
)

// OptionView is one answer choice
type OptionView struct {
	OptionID   uint   `json:"optionId"`
	OptionText string `json:"optionText"`
}

// QuestionView is a positioned question of a set
type QuestionView struct {
	QnOrderID    uint                `json:"qnOrderId"`
	Order        int                 `json:"order"`
	QuestionType entity.QuestionType `json:"questionType"`
	QuestionText string              `json:"questionText"`
	Options      []OptionView        `json:"options"`
}

// WindowView is one window with its main questions
type WindowView struct {
	WindowID  uint           `json:"windowId"`
	StartAt   time.Time      `json:"startAt"`
	EndAt     time.Time      `json:"endAt"`
	Questions []QuestionView `json:"questions"`
}

// SharedQuestionsView holds the questions shared by both windows of a pre/post questionnaire
type SharedQuestionsView struct {
	Questions []QuestionView `json:"questions"`
}

// QuestionnaireView is the full questionnaire returned to clients and cached
type QuestionnaireView struct {
	QuestionnaireID uint                       `json:"questionnaireId"`
	Title           string                     `json:"title"`
	Type            entity.QuestionnaireType   `json:"type"`
	Status          entity.QuestionnaireStatus `json:"status"`
	QuestionWindows []WindowView               `json:"questionWindows"`
	SharedQuestions *SharedQuestionsView       `json:"sharedQuestions,omitempty"`
	Programmes      []uint                     `json:"programmes"`
	Classes         []uint                     `json:"classes"`
}

// QuestionnaireSummary is a listing row
type QuestionnaireSummary struct {
	QuestionnaireID uint                       `json:"questionnaireId"`
	Title           string                     `json:"title"`
	Type            entity.QuestionnaireType   `json:"type"`
	Status          entity.QuestionnaireStatus `json:"status"`
	CreatedAt       time.Time                  `json:"createdAt"`
}

func questionViews(set *entity.QuestionSet) []QuestionView {
	views := []QuestionView{}
	if set == nil {
		return views
	}
	for _, o := range set.ActiveOrders() {
		qv := QuestionView{QnOrderID: o.ID, Order: o.Position, Options: []OptionView{}}
		if o.Question != nil {
			qv.QuestionType = o.Question.Type
			qv.QuestionText = o.Question.Text
			for _, opt := range o.Question.Options {
				if opt.IsActive() {
					qv.Options = append(qv.Options, OptionView{OptionID: opt.ID, OptionText: opt.Text})
				}
			}
		}
		views = append(views, qv)
	}
	return views
}

// NewQuestionnaireView flattens a questionnaire loaded with its relations
func NewQuestionnaireView(q *entity.Questionnaire) *QuestionnaireView {
	v := &QuestionnaireView{
		QuestionnaireID: q.ID,
		Title:           q.Title,
		Type:            q.Type,
		Status:          q.Status,
		QuestionWindows: []WindowView{},
		Programmes:      []uint{},
		Classes:         []uint{},
	}
	windows := q.ActiveWindows()
	for _, w := range windows {
		v.QuestionWindows = append(v.QuestionWindows, WindowView{
			WindowID:  w.ID,
			StartAt:   w.OpenAt,
			EndAt:     w.CloseAt,
			Questions: questionViews(w.MainSet),
		})
	}
	if len(windows) > 0 && windows[0].SharedSet != nil {
		v.SharedQuestions = &SharedQuestionsView{Questions: questionViews(windows[0].SharedSet)}
	}
	for _, l := range q.Programmes {
		if l.IsActive() {
			v.Programmes = append(v.Programmes, l.ProgrammeID)
		}
	}
	for _, l := range q.Classes {
		if l.IsActive() {
			v.Classes = append(v.Classes, l.ClassID)
		}
	}
	return v
}

func newSummary(q *entity.Questionnaire) QuestionnaireSummary {
	return QuestionnaireSummary{
		QuestionnaireID: q.ID,
		Title:           q.Title,
		Type:            q.Type,
		Status:          q.Status,
		CreatedAt:       q.CreatedAt,
	}
}
