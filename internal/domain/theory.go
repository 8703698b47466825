package domain

import (
	"time"

	"github.com/google/uuid"
)

// TheoryRecord is the archived, finalized result of one session: both
// serializations plus the signature counts, ready for a downstream reasoner
// or for audit.
type TheoryRecord struct {
	ID             uuid.UUID `json:"id"`
	SessionID      uuid.UUID `json:"session_id"`
	Canonical      string    `json:"canonical"`
	Solver         string    `json:"solver"`
	SortCount      int       `json:"sort_count"`
	ConstantCount  int       `json:"constant_count"`
	PredicateCount int       `json:"predicate_count"`
	FormulaCount   int       `json:"formula_count"`
	CreatedAt      time.Time `json:"created_at"`
}
