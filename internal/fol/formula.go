package fol

import (
	"fmt"
	"strings"
)

// FormulaKind discriminates the four statement kinds a theory can hold.
type FormulaKind string

const (
	KindAtomicFact             FormulaKind = "atomic_fact"
	KindNegatedAtomicFact      FormulaKind = "negated_atomic_fact"
	KindUniversalImplication   FormulaKind = "universal_implication"
	KindExistentialConjunction FormulaKind = "existential_conjunction"
)

// Formula is a validated statement. Formulas are only constructed by the
// Assembler, so holding one is proof that every referenced sort, predicate
// and constant was declared and sort-compatible at assembly time.
type Formula interface {
	Kind() FormulaKind
	// Canonical renders the formula in standard FOL notation.
	Canonical() string
	// Solver renders the formula in TweetyProject parser syntax.
	Solver() string
	// Predicates lists every predicate name the formula references.
	Predicates() []string
	// Constants lists every constant name the formula references.
	Constants() []string
}

// AtomicFact is a ground assertion, optionally negated, that a predicate
// holds for specific constants.
type AtomicFact struct {
	Predicate string   `json:"predicate"`
	Args      []string `json:"args"`
	Negated   bool     `json:"negated,omitempty"`
}

func (f *AtomicFact) Kind() FormulaKind {
	if f.Negated {
		return KindNegatedAtomicFact
	}
	return KindAtomicFact
}

func (f *AtomicFact) Canonical() string {
	atom := fmt.Sprintf("%s(%s)", f.Predicate, strings.Join(f.Args, ","))
	if f.Negated {
		return "¬" + atom
	}
	return atom
}

func (f *AtomicFact) Solver() string {
	atom := fmt.Sprintf("%s(%s)", f.Predicate, strings.Join(f.Args, ","))
	if f.Negated {
		return "!" + atom
	}
	return atom
}

func (f *AtomicFact) Predicates() []string { return []string{f.Predicate} }
func (f *AtomicFact) Constants() []string  { return f.Args }

// UniversalImplication is a sort-restricted rule: for all X of VarSort,
// Antecedent(X) implies Consequent(X). Both predicates are unary with
// argument sort VarSort.
type UniversalImplication struct {
	Antecedent string `json:"antecedent"`
	Consequent string `json:"consequent"`
	VarSort    string `json:"var_sort"`
}

func (f *UniversalImplication) Kind() FormulaKind { return KindUniversalImplication }

func (f *UniversalImplication) Canonical() string {
	return fmt.Sprintf("∀X:%s (%s(X) → %s(X))", f.VarSort, f.Antecedent, f.Consequent)
}

func (f *UniversalImplication) Solver() string {
	return fmt.Sprintf("forall X: (%s(X) => %s(X))", f.Antecedent, f.Consequent)
}

func (f *UniversalImplication) Predicates() []string { return []string{f.Antecedent, f.Consequent} }
func (f *UniversalImplication) Constants() []string  { return nil }

// ExistentialConjunction asserts that some X of VarSort satisfies both
// predicates. First and Second may be equal; the statement degenerates
// harmlessly to "some X is First".
type ExistentialConjunction struct {
	First   string `json:"predicate1"`
	Second  string `json:"predicate2"`
	VarSort string `json:"var_sort"`
}

func (f *ExistentialConjunction) Kind() FormulaKind { return KindExistentialConjunction }

func (f *ExistentialConjunction) Canonical() string {
	return fmt.Sprintf("∃X:%s (%s(X) ∧ %s(X))", f.VarSort, f.First, f.Second)
}

func (f *ExistentialConjunction) Solver() string {
	return fmt.Sprintf("exists X: (%s(X) && %s(X))", f.First, f.Second)
}

func (f *ExistentialConjunction) Predicates() []string { return []string{f.First, f.Second} }
func (f *ExistentialConjunction) Constants() []string  { return nil }
