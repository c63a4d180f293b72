package questionnaire

import (
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
)

// notSubmittedOffset places the "not submitted yet" timestamp of a missing pre/post
// attempt far in the future, so sorting by submission time puts it last.
const notSubmittedOffset = 10 * 365 * 24 * time.Hour

// AttemptAnswers is one attempt of a ONE TIME questionnaire.
type AttemptAnswers struct {
	AttemptID   uint            `json:"attempt_id"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Answers     []entity.Answer `json:"answers"`
}

// RespondentAttempts groups the attempts of one respondent, oldest first.
type RespondentAttempts struct {
	RespondentID uint             `json:"respondent_id"`
	Attempts     []AttemptAnswers `json:"attempts"`
}

// PrePostResponse pairs a respondent's before and after attempts, split into main and shared answers.
// A missing attempt leaves its answers empty and its timestamp at the not-submitted sentinel.
type PrePostResponse struct {
	RespondentID        uint            `json:"respondent_id"`
	SubmittedBefore     time.Time       `json:"submitted_before"`
	SubmittedAfter      time.Time       `json:"submitted_after"`
	AnswersBefore       []entity.Answer `json:"answers_before"`
	AnswersAfter        []entity.Answer `json:"answers_after"`
	SharedAnswersBefore []entity.Answer `json:"shared_answers_before"`
	SharedAnswersAfter  []entity.Answer `json:"shared_answers_after"`

	notSubmitted time.Time
}

// HasBefore reports whether the respondent submitted the before window.
func (r PrePostResponse) HasBefore() bool {
	return !r.SubmittedBefore.Equal(r.notSubmitted)
}

// HasAfter reports whether the respondent submitted the after window.
func (r PrePostResponse) HasAfter() bool {
	return !r.SubmittedAfter.Equal(r.notSubmitted)
}

// Responses is the aggregated view of a questionnaire's attempts. Exactly one of OneTime and PrePost is set.
type Responses struct {
	QuestionnaireID uint                     `json:"questionnaire_id"`
	Type            entity.QuestionnaireType `json:"type"`
	OneTime         []RespondentAttempts     `json:"one_time,omitempty"`
	PrePost         []PrePostResponse        `json:"pre_post,omitempty"`
}

// Aggregator groups attempts for reporting. Its store should be a pool-level reader:
// the pre/post path loads several sets concurrently.
type Aggregator struct {
	store repository.Store
	now   func() time.Time
}

// NewAggregator creates an aggregator reading through store.
func NewAggregator(store repository.Store) *Aggregator {
	return &Aggregator{store: store, now: time.Now}
}

// NotSubmittedAt returns the sentinel used for missing pre/post attempts at reference time now.
func NotSubmittedAt(now time.Time) time.Time {
	return now.Add(notSubmittedOffset)
}

// Aggregate dispatches on the questionnaire's validated shape.
func (a *Aggregator) Aggregate(q *entity.Questionnaire) (*Responses, error) {
	if err := ValidateOrReject(q); err != nil {
		return nil, err
	}
	res := &Responses{QuestionnaireID: q.ID, Type: q.Type}
	var err error
	if IsPrePost(q) {
		res.PrePost, err = a.PrePost(q)
	} else {
		res.OneTime, err = a.OneTime(q)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// OneTime groups the attempts of the single window by respondent.
func (a *Aggregator) OneTime(q *entity.Questionnaire) ([]RespondentAttempts, error) {
	if !IsOneTime(q) {
		return nil, shapeErrorf("questionnaire %d is not a valid %q questionnaire", q.ID, entity.QuestionnaireTypeOneTime)
	}
	window := q.ActiveWindows()[0]

	attempts, err := a.store.Attempts().ListByWindows([]uint{window.ID})
	if err != nil {
		return nil, err
	}

	byRespondent := make(map[uint]*RespondentAttempts)
	for _, at := range attempts {
		ra, ok := byRespondent[at.RespondentID]
		if !ok {
			ra = &RespondentAttempts{RespondentID: at.RespondentID}
			byRespondent[at.RespondentID] = ra
		}
		ra.Attempts = append(ra.Attempts, AttemptAnswers{
			AttemptID:   at.ID,
			SubmittedAt: at.SubmittedAt,
			Answers:     at.Answers,
		})
	}

	out := make([]RespondentAttempts, 0, len(byRespondent))
	for _, ra := range byRespondent {
		out = append(out, *ra)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RespondentID < out[j].RespondentID })
	return out, nil
}

func idSet(ids []uint) map[uint]bool {
	s := make(map[uint]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// PrePost pairs each respondent's latest before and after attempts and routes every answer
// to the main or shared bucket of its window. Soft-deleted orders still route, so answers to
// questions removed by a later edit are kept.
func (a *Aggregator) PrePost(q *entity.Questionnaire) ([]PrePostResponse, error) {
	if !IsPrePost(q) {
		return nil, shapeErrorf("questionnaire %d is not a valid %q questionnaire", q.ID, entity.QuestionnaireTypePrePost)
	}
	windows := q.ActiveWindows()
	before, after := windows[0], windows[1]

	var (
		sharedIDs, beforeIDs, afterIDs []uint
		attempts                       []entity.Attempt
		g                              errgroup.Group
	)
	g.Go(func() error {
		var err error
		sharedIDs, err = a.store.QuestionSets().OrderIDs(*before.SharedSetID)
		return err
	})
	g.Go(func() error {
		var err error
		beforeIDs, err = a.store.QuestionSets().OrderIDs(before.MainSetID)
		return err
	})
	g.Go(func() error {
		var err error
		afterIDs, err = a.store.QuestionSets().OrderIDs(after.MainSetID)
		return err
	})
	g.Go(func() error {
		var err error
		attempts, err = a.store.Attempts().ListByWindows([]uint{before.ID, after.ID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	shared, mainBefore, mainAfter := idSet(sharedIDs), idSet(beforeIDs), idSet(afterIDs)
	notSubmitted := NotSubmittedAt(a.now())

	byRespondent := make(map[uint]*PrePostResponse)
	for _, at := range attempts {
		r, ok := byRespondent[at.RespondentID]
		if !ok {
			r = &PrePostResponse{
				RespondentID:    at.RespondentID,
				SubmittedBefore: notSubmitted,
				SubmittedAfter:  notSubmitted,
				notSubmitted:    notSubmitted,
			}
			byRespondent[at.RespondentID] = r
		}

		isBefore := at.WindowID == before.ID
		main := mainAfter
		if isBefore {
			main = mainBefore
		}

		var mainAnswers, sharedAnswers []entity.Answer
		for _, ans := range at.Answers {
			switch {
			case shared[ans.QuestionOrderID]:
				sharedAnswers = append(sharedAnswers, ans)
			case main[ans.QuestionOrderID]:
				mainAnswers = append(mainAnswers, ans)
			default:
				log.Printf("[Aggregator] answer %d of attempt %d references order %d outside window %d", ans.ID, at.ID, ans.QuestionOrderID, at.WindowID)
			}
		}

		// attempts arrive oldest first, so the latest attempt per window wins
		if isBefore {
			r.SubmittedBefore = at.SubmittedAt
			r.AnswersBefore = mainAnswers
			r.SharedAnswersBefore = sharedAnswers
		} else {
			r.SubmittedAfter = at.SubmittedAt
			r.AnswersAfter = mainAnswers
			r.SharedAnswersAfter = sharedAnswers
		}
	}

	out := make([]PrePostResponse, 0, len(byRespondent))
	for _, r := range byRespondent {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RespondentID < out[j].RespondentID })
	return out, nil
}
