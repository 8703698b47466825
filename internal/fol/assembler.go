package fol

import (
	"fmt"
	"slices"
)

// Assembler validates and constructs formulas against the registries.
// All cross-reference checks live here so that an invalid Formula is never
// constructed and no downstream consumer has to re-validate.
type Assembler struct {
	sorts *SortRegistry
	preds *PredicateRegistry
}

func NewAssembler(sorts *SortRegistry, preds *PredicateRegistry) *Assembler {
	return &Assembler{sorts: sorts, preds: preds}
}

// AssembleAtomic builds a ground fact, negated or not. The predicate must
// be declared, the argument count must match its arity, and each argument
// constant must be bound to the sort the schema expects at that position.
func (a *Assembler) AssembleAtomic(predicate string, args []string, negated bool) (*AtomicFact, error) {
	schema, ok := a.preds.SchemaOf(predicate)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPredicate, predicate)
	}
	if len(args) != schema.Arity() {
		return nil, fmt.Errorf("%w: %q expects %d argument(s), got %d", ErrArityMismatch, predicate, schema.Arity(), len(args))
	}
	for i, arg := range args {
		sort, ok := a.sorts.SortOf(arg)
		if !ok {
			return nil, fmt.Errorf("%w: %q at position %d of %q", ErrUnknownConstant, arg, i+1, predicate)
		}
		if sort != schema.ArgSorts[i] {
			return nil, fmt.Errorf("%w: %q is %q but position %d of %q expects %q", ErrSortMismatch, arg, sort, i+1, predicate, schema.ArgSorts[i])
		}
	}
	return &AtomicFact{Predicate: predicate, Args: slices.Clone(args), Negated: negated}, nil
}

// AssembleUniversalImplication builds a sort-restricted implication
// "forall X of varSort, antecedent(X) -> consequent(X)".
func (a *Assembler) AssembleUniversalImplication(antecedent, consequent, varSort string) (*UniversalImplication, error) {
	if err := a.checkUnary(antecedent, varSort); err != nil {
		return nil, err
	}
	if err := a.checkUnary(consequent, varSort); err != nil {
		return nil, err
	}
	return &UniversalImplication{Antecedent: antecedent, Consequent: consequent, VarSort: varSort}, nil
}

// AssembleExistentialConjunction builds a sort-restricted conjunction
// "exists X of varSort, first(X) and second(X)". The two predicates may
// be equal.
func (a *Assembler) AssembleExistentialConjunction(first, second, varSort string) (*ExistentialConjunction, error) {
	if err := a.checkUnary(first, varSort); err != nil {
		return nil, err
	}
	if err := a.checkUnary(second, varSort); err != nil {
		return nil, err
	}
	return &ExistentialConjunction{First: first, Second: second, VarSort: varSort}, nil
}

// checkUnary enforces the shared quantifier invariant: the predicate is
// declared, unary, and takes an argument of exactly the bound-variable sort.
func (a *Assembler) checkUnary(predicate, varSort string) error {
	if !a.sorts.HasSort(varSort) {
		return fmt.Errorf("%w: %q as bound-variable sort", ErrUnknownSort, varSort)
	}
	schema, ok := a.preds.SchemaOf(predicate)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPredicate, predicate)
	}
	if !schema.Unary() {
		return fmt.Errorf("%w: %q has arity %d", ErrNonUnaryPredicate, predicate, schema.Arity())
	}
	if schema.ArgSorts[0] != varSort {
		return fmt.Errorf("%w: %q takes %q, bound variable is %q", ErrSortMismatch, predicate, schema.ArgSorts[0], varSort)
	}
	return nil
}
