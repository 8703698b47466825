package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tlagarde/folbase/internal/domain"
)

var ErrNotFound = errors.New("not found")

type ArchiveStore struct {
	db *pgxpool.Pool
}

func NewArchiveStore(db *pgxpool.Pool) *ArchiveStore {
	return &ArchiveStore{db: db}
}

func (s *ArchiveStore) Create(ctx context.Context, rec *domain.TheoryRecord) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO theories (session_id, canonical, solver, sort_count, constant_count, predicate_count, formula_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		rec.SessionID, rec.Canonical, rec.Solver, rec.SortCount, rec.ConstantCount, rec.PredicateCount, rec.FormulaCount,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (s *ArchiveStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TheoryRecord, error) {
	rec := &domain.TheoryRecord{}
	err := s.db.QueryRow(ctx,
		`SELECT id, session_id, canonical, solver, sort_count, constant_count, predicate_count, formula_count, created_at
		 FROM theories WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.SessionID, &rec.Canonical, &rec.Solver, &rec.SortCount, &rec.ConstantCount, &rec.PredicateCount, &rec.FormulaCount, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *ArchiveStore) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.TheoryRecord, error) {
	rec := &domain.TheoryRecord{}
	err := s.db.QueryRow(ctx,
		`SELECT id, session_id, canonical, solver, sort_count, constant_count, predicate_count, formula_count, created_at
		 FROM theories WHERE session_id = $1`,
		sessionID,
	).Scan(&rec.ID, &rec.SessionID, &rec.Canonical, &rec.Solver, &rec.SortCount, &rec.ConstantCount, &rec.PredicateCount, &rec.FormulaCount, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *ArchiveStore) ListRecent(ctx context.Context, limit int) ([]domain.TheoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, session_id, canonical, solver, sort_count, constant_count, predicate_count, formula_count, created_at
		 FROM theories ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.TheoryRecord
	for rows.Next() {
		var rec domain.TheoryRecord
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Canonical, &rec.Solver, &rec.SortCount, &rec.ConstantCount, &rec.PredicateCount, &rec.FormulaCount, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
