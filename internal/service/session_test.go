package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tlagarde/folbase/internal/domain"
	"github.com/tlagarde/folbase/internal/fol"
	"github.com/tlagarde/folbase/internal/store"
	"go.uber.org/zap"
)

// mockArchiveStore implements domain.ArchiveStore for testing.
type mockArchiveStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*domain.TheoryRecord
}

func newMockArchiveStore() *mockArchiveStore {
	return &mockArchiveStore{records: make(map[uuid.UUID]*domain.TheoryRecord)}
}

func (m *mockArchiveStore) Create(ctx context.Context, rec *domain.TheoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	m.records[rec.ID] = rec
	return nil
}

func (m *mockArchiveStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TheoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return rec, nil
}

func (m *mockArchiveStore) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*domain.TheoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rec := range m.records {
		if rec.SessionID == sessionID {
			return rec, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *mockArchiveStore) ListRecent(ctx context.Context, limit int) ([]domain.TheoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.TheoryRecord
	for _, rec := range m.records {
		out = append(out, *rec)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func setupSessionTest() (*SessionService, *mockArchiveStore) {
	archive := newMockArchiveStore()
	svc := NewSessionService(archive, time.Hour, zap.NewNop())
	return svc, archive
}

func applySyllogism(t *testing.T, svc *SessionService, id uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	ops := []domain.Operation{
		{Name: domain.OpAddSort, SortName: "homme"},
		{Name: domain.OpAddConstantToSort, ConstantName: "socrate", SortName: "homme"},
		{Name: domain.OpAddPredicateSchema, PredicateName: "Mortel", ArgumentSorts: []string{"homme"}},
		{Name: domain.OpAddPredicateSchema, PredicateName: "Homme", ArgumentSorts: []string{"homme"}},
		{Name: domain.OpAddUniversalImplication, AntecedentPredicate: "Homme", ConsequentPredicate: "Mortel", SortOfVariable: "homme"},
		{Name: domain.OpAddAtomicFact, PredicateName: "Homme", Arguments: []string{"socrate"}},
	}
	for _, op := range ops {
		_, err := svc.Apply(ctx, id, op)
		require.NoError(t, err, "op %s", op.Name)
	}
}

func TestSessionService_CreateAndGet(t *testing.T) {
	svc, _ := setupSessionTest()
	ctx := context.Background()

	session := svc.Create(ctx)
	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, fol.StateEmpty, session.State)

	got, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}

func TestSessionService_Get_NotFound(t *testing.T) {
	svc, _ := setupSessionTest()
	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_Apply(t *testing.T) {
	svc, _ := setupSessionTest()
	ctx := context.Background()

	session := svc.Create(ctx)
	applySyllogism(t, svc, session.ID)

	got, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, fol.StateBuilding, got.State)
	assert.Equal(t, fol.Stats{Sorts: 1, Constants: 1, Predicates: 2, Formulas: 2}, got.Stats)
}

func TestSessionService_Apply_Rejection(t *testing.T) {
	svc, _ := setupSessionTest()
	ctx := context.Background()
	session := svc.Create(ctx)

	_, err := svc.Apply(ctx, session.ID, domain.Operation{
		Name: domain.OpAddConstantToSort, ConstantName: "socrate", SortName: "homme",
	})
	assert.ErrorIs(t, err, fol.ErrUnknownSort)
}

func TestSessionService_Apply_UnknownOperation(t *testing.T) {
	svc, _ := setupSessionTest()
	ctx := context.Background()
	session := svc.Create(ctx)

	_, err := svc.Apply(ctx, session.ID, domain.Operation{Name: "drop_sort"})
	assert.ErrorIs(t, err, ErrUnknownOperation)
}

func TestSessionService_Apply_Normalize(t *testing.T) {
	svc, _ := setupSessionTest()
	ctx := context.Background()
	session := svc.Create(ctx)

	_, err := svc.Apply(ctx, session.ID, domain.Operation{
		Name: domain.OpAddSort, SortName: "Être Humain", Normalize: true,
	})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, session.ID, domain.Operation{
		Name: domain.OpAddConstantToSort, ConstantName: "Socrate", SortName: "être humain", Normalize: true,
	})
	require.NoError(t, err)

	rec, err := svc.Finalize(ctx, session.ID)
	require.NoError(t, err)
	assert.Contains(t, rec.Canonical, "sort etre_humain\n")
	assert.Contains(t, rec.Canonical, "const socrate : etre_humain\n")
}

func TestSessionService_Finalize(t *testing.T) {
	svc, archive := setupSessionTest()
	ctx := context.Background()
	session := svc.Create(ctx)
	applySyllogism(t, svc, session.ID)

	rec, err := svc.Finalize(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, rec.SessionID)
	assert.Equal(t, 1, rec.SortCount)
	assert.Equal(t, 1, rec.ConstantCount)
	assert.Equal(t, 2, rec.PredicateCount)
	assert.Equal(t, 2, rec.FormulaCount)
	assert.Contains(t, rec.Canonical, "∀X:homme (Homme(X) → Mortel(X))")
	assert.Contains(t, rec.Solver, "forall X: (Homme(X) => Mortel(X))")

	stored, err := archive.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Canonical, stored.Canonical)

	// session is frozen now
	_, err = svc.Apply(ctx, session.ID, domain.Operation{Name: domain.OpAddSort, SortName: "ville"})
	assert.ErrorIs(t, err, fol.ErrSessionFinalized)
}

func TestSessionService_Finalize_Idempotent(t *testing.T) {
	svc, _ := setupSessionTest()
	ctx := context.Background()
	session := svc.Create(ctx)
	applySyllogism(t, svc, session.ID)

	first, err := svc.Finalize(ctx, session.ID)
	require.NoError(t, err)
	second, err := svc.Finalize(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Canonical, second.Canonical)
}

func TestSessionService_Theory(t *testing.T) {
	svc, _ := setupSessionTest()
	ctx := context.Background()
	session := svc.Create(ctx)
	applySyllogism(t, svc, session.ID)

	_, err := svc.Theory(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFinalized)

	rec, err := svc.Finalize(ctx, session.ID)
	require.NoError(t, err)

	got, err := svc.Theory(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
}

func TestSessionService_ValidateQuery(t *testing.T) {
	svc, _ := setupSessionTest()
	ctx := context.Background()
	session := svc.Create(ctx)
	applySyllogism(t, svc, session.ID)

	err := svc.ValidateQuery(ctx, session.ID, "Mortel", []string{"socrate"})
	assert.ErrorIs(t, err, ErrSessionNotFinalized)

	_, err = svc.Finalize(ctx, session.ID)
	require.NoError(t, err)

	assert.NoError(t, svc.ValidateQuery(ctx, session.ID, "Mortel", []string{"socrate"}))
	assert.ErrorIs(t, svc.ValidateQuery(ctx, session.ID, "Dieu", []string{"socrate"}), fol.ErrUnknownPredicate)
}

func TestSessionService_Sweep(t *testing.T) {
	archive := newMockArchiveStore()
	svc := NewSessionService(archive, 10*time.Millisecond, zap.NewNop())
	ctx := context.Background()

	session := svc.Create(ctx)
	time.Sleep(20 * time.Millisecond)
	svc.sweep()

	_, err := svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
