package questionnaire

import (
	"errors"
	"fmt"

	apperrors "github.com/yourusername/survey-api/internal/pkg/errors"
)

// Kind classifies errors raised by creators, editors and reconcilers.
type Kind int

const (
	// KindShape: the payload has the wrong structure (window count, empty lists, MCQ without options).
	KindShape Kind = iota + 1
	// KindIdentity: an id is missing or does not match the loaded entity.
	KindIdentity
	// KindInvariant: a postcondition failed after writing. Signals a bug, not bad input.
	KindInvariant
	// KindUnknownType: a question type outside the known enum.
	KindUnknownType
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindIdentity:
		return "identity"
	case KindInvariant:
		return "invariant"
	case KindUnknownType:
		return "unknown_type"
	}
	return "unknown"
}

// Error carries a Kind and a human-readable message.
// It unwraps to apperrors.ErrInvariant for KindInvariant and apperrors.ErrValidation otherwise.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	if e.Kind == KindInvariant {
		return apperrors.ErrInvariant
	}
	return apperrors.ErrValidation
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func shapeErrorf(format string, args ...interface{}) error {
	return &Error{Kind: KindShape, Msg: fmt.Sprintf(format, args...)}
}

func identityErrorf(format string, args ...interface{}) error {
	return &Error{Kind: KindIdentity, Msg: fmt.Sprintf(format, args...)}
}

func invariantErrorf(format string, args ...interface{}) error {
	return &Error{Kind: KindInvariant, Msg: fmt.Sprintf(format, args...)}
}
