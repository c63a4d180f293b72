// Package questionnaire composes, edits and validates questionnaires: the question-set and
// programme/class reconcilers, the one-time and pre/post creators and editors, and the
// attempt aggregation used for reporting.
package questionnaire

import (
	"github.com/yourusername/survey-api/internal/domain/entity"
)

// The predicates below only look at relations already loaded on q. Callers must load windows
// and shared sets first (QuestionnaireRepository.GetWithRelations); unloaded relations read as false.

// IsOneTime reports whether q is a structurally valid ONE TIME questionnaire.
func IsOneTime(q *entity.Questionnaire) bool {
	if q == nil || q.Type != entity.QuestionnaireTypeOneTime {
		return false
	}
	return len(q.ActiveWindows()) == 1
}

// IsPrePost reports whether q is a structurally valid PRE POST questionnaire:
// two windows sharing one persisted shared set.
func IsPrePost(q *entity.Questionnaire) bool {
	if q == nil || q.Type != entity.QuestionnaireTypePrePost {
		return false
	}
	windows := q.ActiveWindows()
	if len(windows) != 2 {
		return false
	}
	before, after := windows[0].SharedSet, windows[1].SharedSet
	if before == nil || after == nil || before.ID == 0 || after.ID == 0 {
		return false
	}
	return before.ID == after.ID
}

// ValidateOrReject returns nil when q is persisted and either a valid ONE TIME or PRE POST questionnaire.
func ValidateOrReject(q *entity.Questionnaire) error {
	if q == nil || !q.IsPersisted() {
		return identityErrorf("questionnaire has not been persisted")
	}
	if IsOneTime(q) || IsPrePost(q) {
		return nil
	}
	return shapeErrorf("questionnaire %d is neither a valid %q nor a valid %q questionnaire",
		q.ID, entity.QuestionnaireTypeOneTime, entity.QuestionnaireTypePrePost)
}
