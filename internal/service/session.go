package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tlagarde/folbase/internal/domain"
	"github.com/tlagarde/folbase/internal/fol"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotFinalized = errors.New("session is not finalized")
	ErrUnknownOperation    = errors.New("unknown operation")
)

type sessionEntry struct {
	builder     *fol.Builder
	theory      *fol.Theory
	record      *domain.TheoryRecord
	createdAt   time.Time
	finalizedAt *time.Time
	lastActive  time.Time
}

// SessionService owns the live builders, one per session. A builder is
// never shared across sessions; a session that went wrong is abandoned and
// a fresh one started.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*sessionEntry

	archive domain.ArchiveStore
	logger  *zap.Logger

	ttl           time.Duration
	sweepInterval time.Duration
	stopCh        chan struct{}
	wg            sync.WaitGroup
}

const defaultSweepInterval = 5 * time.Minute

func NewSessionService(archive domain.ArchiveStore, ttl time.Duration, logger *zap.Logger) *SessionService {
	return &SessionService{
		sessions:      make(map[uuid.UUID]*sessionEntry),
		archive:       archive,
		logger:        logger,
		ttl:           ttl,
		sweepInterval: defaultSweepInterval,
		stopCh:        make(chan struct{}),
	}
}

func (s *SessionService) SetSweepInterval(d time.Duration) {
	s.sweepInterval = d
}

// Create opens a new theory-construction session.
func (s *SessionService) Create(ctx context.Context) *domain.Session {
	id := uuid.New()
	now := time.Now()

	s.mu.Lock()
	s.sessions[id] = &sessionEntry{
		builder:    fol.NewBuilder(),
		createdAt:  now,
		lastActive: now,
	}
	s.mu.Unlock()

	s.logger.Info("session created", zap.String("session_id", id.String()))
	return &domain.Session{ID: id, State: fol.StateEmpty, CreatedAt: now}
}

// Get returns the current view of a session.
func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.snapshot(id, entry), nil
}

// Apply routes one named operation to the session's builder. A rejection is
// returned to the caller as-is; nothing is committed on failure.
func (s *SessionService) Apply(ctx context.Context, id uuid.UUID, op domain.Operation) (*domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	s.mu.Lock()
	entry.lastActive = time.Now()
	s.mu.Unlock()

	if op.Normalize {
		normalizeOperation(&op)
	}

	var err error
	switch op.Name {
	case domain.OpAddSort:
		err = entry.builder.AddSort(op.SortName)
	case domain.OpAddConstantToSort:
		err = entry.builder.AddConstantToSort(op.ConstantName, op.SortName)
	case domain.OpAddPredicateSchema:
		err = entry.builder.AddPredicateSchema(op.PredicateName, op.ArgumentSorts)
	case domain.OpAddAtomicFact:
		err = entry.builder.AddAtomicFact(op.PredicateName, op.Arguments)
	case domain.OpAddNegatedAtomicFact:
		err = entry.builder.AddNegatedAtomicFact(op.FactPredicateName, op.FactArguments)
	case domain.OpAddUniversalImplication:
		err = entry.builder.AddUniversalImplication(op.AntecedentPredicate, op.ConsequentPredicate, op.SortOfVariable)
	case domain.OpAddExistentialConjunction:
		err = entry.builder.AddExistentialConjunction(op.Predicate1, op.Predicate2, op.SortOfVariable)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op.Name)
	}
	if err != nil {
		s.logger.Debug("operation rejected",
			zap.String("session_id", id.String()),
			zap.String("op", string(op.Name)),
			zap.String("kind", fol.Kind(err)),
			zap.Error(err))
		return nil, err
	}

	return s.snapshot(id, entry), nil
}

// Finalize freezes the session, archives the serialized theory and returns
// the record. Repeat calls return the already-archived record.
func (s *SessionService) Finalize(ctx context.Context, id uuid.UUID) (*domain.TheoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastActive = time.Now()
	if entry.record != nil {
		return entry.record, nil
	}

	theory := entry.builder.Finalize()
	if err := theory.CheckShape(); err != nil {
		// by construction this cannot happen; treat it as a bug, not a rejection
		s.logger.Error("finalized theory failed shape check", zap.String("session_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("theory shape check failed: %w", err)
	}

	stats := theory.Stats()
	rec := &domain.TheoryRecord{
		SessionID:      id,
		Canonical:      theory.Serialize(),
		Solver:         theory.SerializeSolver(),
		SortCount:      stats.Sorts,
		ConstantCount:  stats.Constants,
		PredicateCount: stats.Predicates,
		FormulaCount:   stats.Formulas,
	}
	if err := s.archive.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("archive theory: %w", err)
	}

	now := time.Now()
	entry.theory = theory
	entry.record = rec
	entry.finalizedAt = &now

	s.logger.Info("session finalized",
		zap.String("session_id", id.String()),
		zap.String("theory_id", rec.ID.String()),
		zap.Int("formulas", stats.Formulas))
	return rec, nil
}

// Theory returns the archived record of a finalized session.
func (s *SessionService) Theory(ctx context.Context, id uuid.UUID) (*domain.TheoryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if entry.record == nil {
		return nil, ErrSessionNotFinalized
	}
	return entry.record, nil
}

// ValidateQuery checks a candidate ground query atom against a finalized
// session's signature without mutating anything.
func (s *SessionService) ValidateQuery(ctx context.Context, id uuid.UUID, predicate string, args []string) error {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	var theory *fol.Theory
	if ok {
		theory = entry.theory
	}
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}
	if theory == nil {
		return ErrSessionNotFinalized
	}
	return theory.ValidateAtom(predicate, args)
}

func (s *SessionService) snapshot(id uuid.UUID, entry *sessionEntry) *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &domain.Session{
		ID:          id,
		State:       entry.builder.State(),
		Stats:       entry.builder.Stats(),
		CreatedAt:   entry.createdAt,
		FinalizedAt: entry.finalizedAt,
	}
}

func normalizeOperation(op *domain.Operation) {
	op.SortName = fol.NormalizeIdentifier(op.SortName)
	op.ConstantName = fol.NormalizeIdentifier(op.ConstantName)
	op.PredicateName = fol.NormalizeIdentifier(op.PredicateName)
	op.FactPredicateName = fol.NormalizeIdentifier(op.FactPredicateName)
	op.AntecedentPredicate = fol.NormalizeIdentifier(op.AntecedentPredicate)
	op.ConsequentPredicate = fol.NormalizeIdentifier(op.ConsequentPredicate)
	op.Predicate1 = fol.NormalizeIdentifier(op.Predicate1)
	op.Predicate2 = fol.NormalizeIdentifier(op.Predicate2)
	op.SortOfVariable = fol.NormalizeIdentifier(op.SortOfVariable)
	for i, s := range op.ArgumentSorts {
		op.ArgumentSorts[i] = fol.NormalizeIdentifier(s)
	}
	for i, a := range op.Arguments {
		op.Arguments[i] = fol.NormalizeIdentifier(a)
	}
	for i, a := range op.FactArguments {
		op.FactArguments[i] = fol.NormalizeIdentifier(a)
	}
}

// StartSweeper evicts idle sessions on a periodic schedule in a background
// goroutine. Finalized sessions stay retrievable until they idle out; their
// theories remain in the archive.
func (s *SessionService) StartSweeper() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		s.logger.Info("session sweeper started", zap.Duration("ttl", s.ttl), zap.Duration("interval", s.sweepInterval))

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stopCh:
				s.logger.Info("session sweeper stopped")
				return
			}
		}
	}()
}

// StopSweeper gracefully stops the sweeper.
func (s *SessionService) StopSweeper() {
	close(s.stopCh)
	s.wg.Wait()
}

func (s *SessionService) sweep() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		if entry.lastActive.Before(cutoff) {
			delete(s.sessions, id)
			s.logger.Info("session evicted",
				zap.String("session_id", id.String()),
				zap.Bool("finalized", entry.record != nil))
		}
	}
}
