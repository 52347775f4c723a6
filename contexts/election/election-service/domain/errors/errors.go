package errors

import "errors"

var (
	ErrValidation          = errors.New("invalid input")
	ErrSelectionMissing    = errors.New("candidate and voter must be selected")
	ErrAlreadyVoted        = errors.New("voter has already voted")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)

// Kind is the discriminant callers branch on instead of matching sentinels one
// by one.
type Kind string

const (
	KindUnknown             Kind = "unknown"
	KindValidation          Kind = "validation"
	KindSelectionMissing    Kind = "selection_missing"
	KindAlreadyVoted        Kind = "already_voted"
	KindDuplicateIdentifier Kind = "duplicate_identifier"
)

func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrSelectionMissing):
		return KindSelectionMissing
	case errors.Is(err, ErrAlreadyVoted):
		return KindAlreadyVoted
	case errors.Is(err, ErrDuplicateIdentifier):
		return KindDuplicateIdentifier
	default:
		return KindUnknown
	}
}
