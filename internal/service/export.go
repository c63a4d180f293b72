package service

import (
	"strconv"
	"time"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/service/questionnaire"
)

// ExportHeader names the columns of ExportRows
var ExportHeader = []string{"Respondent", "Window", "Section", "Submitted at", "Question order", "Question", "Answer"}

type questionInfo struct {
	text    string
	options map[uint]string
}

// questionIndex maps order ids of every loaded set to their question text and options
func questionIndex(q *entity.Questionnaire) map[uint]questionInfo {
	index := make(map[uint]questionInfo)
	add := func(set *entity.QuestionSet) {
		if set == nil {
			return
		}
		for _, o := range set.Orders {
			if o.Question == nil {
				continue
			}
			info := questionInfo{text: o.Question.Text, options: make(map[uint]string, len(o.Question.Options))}
			for _, opt := range o.Question.Options {
				info.options[opt.ID] = opt.Text
			}
			index[o.ID] = info
		}
	}
	for _, w := range q.ActiveWindows() {
		add(w.MainSet)
		add(w.SharedSet)
	}
	return index
}

// ExportRows flattens aggregated responses to one row per answer, in ExportHeader order.
// Answers to questions no longer in the questionnaire keep their order id with an empty question text.
func ExportRows(q *entity.Questionnaire, res *questionnaire.Responses) [][]string {
	index := questionIndex(q)
	var rows [][]string

	emit := func(respondent uint, window, section string, at time.Time, answers []entity.Answer) {
		for _, a := range answers {
			info := index[a.QuestionOrderID]
			value := ""
			switch {
			case a.OptionID != nil:
				value = info.options[*a.OptionID]
				if value == "" {
					value = "#" + strconv.FormatUint(uint64(*a.OptionID), 10)
				}
			case a.TextResponse != nil:
				value = *a.TextResponse
			}
			rows = append(rows, []string{
				strconv.FormatUint(uint64(respondent), 10),
				window,
				section,
				at.UTC().Format(time.RFC3339),
				strconv.FormatUint(uint64(a.QuestionOrderID), 10),
				info.text,
				value,
			})
		}
	}

	for _, r := range res.OneTime {
		for _, at := range r.Attempts {
			emit(r.RespondentID, "single", "main", at.SubmittedAt, at.Answers)
		}
	}
	for _, r := range res.PrePost {
		if r.HasBefore() {
			emit(r.RespondentID, "before", "main", r.SubmittedBefore, r.AnswersBefore)
			emit(r.RespondentID, "before", "shared", r.SubmittedBefore, r.SharedAnswersBefore)
		}
		if r.HasAfter() {
			emit(r.RespondentID, "after", "main", r.SubmittedAfter, r.AnswersAfter)
			emit(r.RespondentID, "after", "shared", r.SubmittedAfter, r.SharedAnswersAfter)
		}
	}
	return rows
}
