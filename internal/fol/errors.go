package fol

import "errors"

var (
	ErrEmptyIdentifier      = errors.New("identifier is required")
	ErrDuplicateSort        = errors.New("sort already declared")
	ErrUnknownSort          = errors.New("unknown sort")
	ErrConstantSortConflict = errors.New("constant already bound to a different sort")
	ErrDuplicatePredicate   = errors.New("predicate already declared with a different signature")
	ErrUnknownPredicate     = errors.New("unknown predicate")
	ErrZeroArityPredicate   = errors.New("predicate must take at least one argument")
	ErrUnknownConstant      = errors.New("unknown constant")
	ErrArityMismatch        = errors.New("argument count does not match predicate arity")
	ErrSortMismatch         = errors.New("argument sort does not match predicate signature")
	ErrNonUnaryPredicate    = errors.New("predicate is not unary")
	ErrSessionFinalized     = errors.New("session is finalized")
)

// Kind maps a rejection to a stable machine-readable kind string.
// Unrecognized errors map to "internal".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrEmptyIdentifier):
		return "empty_identifier"
	case errors.Is(err, ErrDuplicateSort):
		return "duplicate_sort"
	case errors.Is(err, ErrUnknownSort):
		return "unknown_sort"
	case errors.Is(err, ErrConstantSortConflict):
		return "constant_sort_conflict"
	case errors.Is(err, ErrDuplicatePredicate):
		return "duplicate_predicate"
	case errors.Is(err, ErrUnknownPredicate):
		return "unknown_predicate"
	case errors.Is(err, ErrZeroArityPredicate):
		return "zero_arity_predicate"
	case errors.Is(err, ErrUnknownConstant):
		return "unknown_constant"
	case errors.Is(err, ErrArityMismatch):
		return "arity_mismatch"
	case errors.Is(err, ErrSortMismatch):
		return "sort_mismatch"
	case errors.Is(err, ErrNonUnaryPredicate):
		return "non_unary_predicate"
	case errors.Is(err, ErrSessionFinalized):
		return "session_finalized"
	default:
		return "internal"
	}
}

// IsRejection reports whether err is one of the recoverable per-operation
// rejections, as opposed to an implementation bug.
func IsRejection(err error) bool {
	return err != nil && Kind(err) != "internal"
}
