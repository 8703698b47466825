package fol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTheoryFixture(t *testing.T) (*Theory, *Assembler) {
	t.Helper()
	sorts := NewSortRegistry()
	require.NoError(t, sorts.AddSort("homme"))
	require.NoError(t, sorts.AddConstant("socrate", "homme"))

	preds := NewPredicateRegistry(sorts)
	require.NoError(t, preds.AddSchema("Homme", []string{"homme"}))
	require.NoError(t, preds.AddSchema("Mortel", []string{"homme"}))

	return NewTheory(sorts, preds), NewAssembler(sorts, preds)
}

func TestTheory_Serialize(t *testing.T) {
	theory, asm := newTheoryFixture(t)

	rule, err := asm.AssembleUniversalImplication("Homme", "Mortel", "homme")
	require.NoError(t, err)
	theory.Commit(rule)

	fact, err := asm.AssembleAtomic("Homme", []string{"socrate"}, false)
	require.NoError(t, err)
	theory.Commit(fact)

	want := "sort homme\n" +
		"const socrate : homme\n" +
		"pred Homme(homme)\n" +
		"pred Mortel(homme)\n" +
		"∀X:homme (Homme(X) → Mortel(X))\n" +
		"Homme(socrate)\n"
	assert.Equal(t, want, theory.Serialize())
}

func TestTheory_Serialize_Deterministic(t *testing.T) {
	theory, asm := newTheoryFixture(t)
	fact, err := asm.AssembleAtomic("Mortel", []string{"socrate"}, true)
	require.NoError(t, err)
	theory.Commit(fact)

	first := theory.Serialize()
	second := theory.Serialize()
	assert.Equal(t, first, second)

	assert.Equal(t, theory.SerializeSolver(), theory.SerializeSolver())
}

func TestTheory_SerializeSolver(t *testing.T) {
	theory, asm := newTheoryFixture(t)

	rule, err := asm.AssembleUniversalImplication("Homme", "Mortel", "homme")
	require.NoError(t, err)
	theory.Commit(rule)

	fact, err := asm.AssembleAtomic("Homme", []string{"socrate"}, false)
	require.NoError(t, err)
	theory.Commit(fact)

	want := "homme = {socrate}\n" +
		"type(Homme(homme))\n" +
		"type(Mortel(homme))\n" +
		"forall X: (Homme(X) => Mortel(X))\n" +
		"Homme(socrate)\n"
	assert.Equal(t, want, theory.SerializeSolver())
}

func TestTheory_CheckShape(t *testing.T) {
	theory, asm := newTheoryFixture(t)

	fact, err := asm.AssembleAtomic("Homme", []string{"socrate"}, false)
	require.NoError(t, err)
	theory.Commit(fact)

	assert.NoError(t, theory.CheckShape())
}

func TestTheory_CheckShape_DanglingReference(t *testing.T) {
	theory, _ := newTheoryFixture(t)

	// bypass the assembler to simulate an implementation bug
	theory.Commit(&AtomicFact{Predicate: "Dieu", Args: []string{"socrate"}})
	assert.Error(t, theory.CheckShape())

	theory2, _ := newTheoryFixture(t)
	theory2.Commit(&AtomicFact{Predicate: "Homme", Args: []string{"platon"}})
	assert.Error(t, theory2.CheckShape())
}

func TestTheory_ValidateAtom(t *testing.T) {
	theory, _ := newTheoryFixture(t)

	assert.NoError(t, theory.ValidateAtom("Mortel", []string{"socrate"}))
	assert.ErrorIs(t, theory.ValidateAtom("Dieu", []string{"socrate"}), ErrUnknownPredicate)
	assert.ErrorIs(t, theory.ValidateAtom("Mortel", nil), ErrArityMismatch)
}

func TestTheory_Queries(t *testing.T) {
	theory, _ := newTheoryFixture(t)

	assert.True(t, theory.HasSort("homme"))
	assert.False(t, theory.HasSort("dieu"))

	sort, ok := theory.SortOf("socrate")
	require.True(t, ok)
	assert.Equal(t, "homme", sort)

	assert.True(t, theory.HasPredicateWithArity("Mortel", 1))
	assert.False(t, theory.HasPredicateWithArity("Mortel", 2))
	assert.False(t, theory.HasPredicateWithArity("Dieu", 1))
}

func TestTheory_Stats(t *testing.T) {
	theory, asm := newTheoryFixture(t)
	fact, err := asm.AssembleAtomic("Homme", []string{"socrate"}, false)
	require.NoError(t, err)
	theory.Commit(fact)

	assert.Equal(t, Stats{Sorts: 1, Constants: 1, Predicates: 2, Formulas: 1}, theory.Stats())
}
