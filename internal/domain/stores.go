package domain

import (
	"context"

	"github.com/google/uuid"
)

type ArchiveStore interface {
	Create(ctx context.Context, rec *TheoryRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*TheoryRecord, error)
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*TheoryRecord, error)
	ListRecent(ctx context.Context, limit int) ([]TheoryRecord, error)
}
