package fol

import (
	"fmt"
	"sync"
)

// State is the builder session lifecycle.
type State string

const (
	StateEmpty     State = "empty"
	StateBuilding  State = "building"
	StateFinalized State = "finalized"
)

// Builder is the public operation surface for one theory-construction
// session. It owns the single mutable Theory; every operation runs its
// validate+commit pipeline under one mutex so interleaved callers never
// observe a half-updated registry. The model is append-only: correcting a
// mistake means starting a new session.
type Builder struct {
	mu     sync.Mutex
	state  State
	sorts  *SortRegistry
	preds  *PredicateRegistry
	asm    *Assembler
	theory *Theory
}

func NewBuilder() *Builder {
	sorts := NewSortRegistry()
	preds := NewPredicateRegistry(sorts)
	return &Builder{
		state:  StateEmpty,
		sorts:  sorts,
		preds:  preds,
		asm:    NewAssembler(sorts, preds),
		theory: NewTheory(sorts, preds),
	}
}

func (b *Builder) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Builder) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.theory.Stats()
}

// AddSort declares a new sort.
func (b *Builder) AddSort(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkMutable(); err != nil {
		return err
	}
	if err := b.sorts.AddSort(name); err != nil {
		return err
	}
	b.state = StateBuilding
	return nil
}

// AddConstantToSort binds a constant to an already-declared sort.
func (b *Builder) AddConstantToSort(constant, sort string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkMutable(); err != nil {
		return err
	}
	if err := b.sorts.AddConstant(constant, sort); err != nil {
		return err
	}
	b.state = StateBuilding
	return nil
}

// AddPredicateSchema declares a predicate with its argument sorts.
func (b *Builder) AddPredicateSchema(name string, argSorts []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkMutable(); err != nil {
		return err
	}
	if err := b.preds.AddSchema(name, argSorts); err != nil {
		return err
	}
	b.state = StateBuilding
	return nil
}

// AddAtomicFact asserts predicate(args...).
func (b *Builder) AddAtomicFact(predicate string, args []string) error {
	return b.addAtomic(predicate, args, false)
}

// AddNegatedAtomicFact asserts the negation of predicate(args...).
func (b *Builder) AddNegatedAtomicFact(predicate string, args []string) error {
	return b.addAtomic(predicate, args, true)
}

func (b *Builder) addAtomic(predicate string, args []string, negated bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkMutable(); err != nil {
		return err
	}
	f, err := b.asm.AssembleAtomic(predicate, args, negated)
	if err != nil {
		return err
	}
	b.theory.Commit(f)
	b.state = StateBuilding
	return nil
}

// AddUniversalImplication asserts "forall X of sortOfVariable,
// antecedent(X) -> consequent(X)".
func (b *Builder) AddUniversalImplication(antecedent, consequent, sortOfVariable string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkMutable(); err != nil {
		return err
	}
	f, err := b.asm.AssembleUniversalImplication(antecedent, consequent, sortOfVariable)
	if err != nil {
		return err
	}
	b.theory.Commit(f)
	b.state = StateBuilding
	return nil
}

// AddExistentialConjunction asserts "exists X of sortOfVariable,
// predicate1(X) and predicate2(X)".
func (b *Builder) AddExistentialConjunction(predicate1, predicate2, sortOfVariable string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkMutable(); err != nil {
		return err
	}
	f, err := b.asm.AssembleExistentialConjunction(predicate1, predicate2, sortOfVariable)
	if err != nil {
		return err
	}
	b.theory.Commit(f)
	b.state = StateBuilding
	return nil
}

// Finalize freezes the session and returns the theory. The transition is
// one-way and idempotent: repeated calls return the same snapshot, and any
// further mutating operation fails with ErrSessionFinalized.
func (b *Builder) Finalize() *Theory {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateFinalized
	return b.theory
}

func (b *Builder) checkMutable() error {
	if b.state == StateFinalized {
		return fmt.Errorf("%w: no further operations accepted", ErrSessionFinalized)
	}
	return nil
}
