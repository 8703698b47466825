package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/tlagarde/folbase/internal/fol"
)

// Session is the public view of one theory-construction session.
type Session struct {
	ID          uuid.UUID  `json:"id"`
	State       fol.State  `json:"state"`
	Stats       fol.Stats  `json:"stats"`
	CreatedAt   time.Time  `json:"created_at"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
}
