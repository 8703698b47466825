package fol

import (
	"fmt"
	"strings"
)

// Stats counts the declarations and formulas a theory holds.
type Stats struct {
	Sorts      int `json:"sorts"`
	Constants  int `json:"constants"`
	Predicates int `json:"predicates"`
	Formulas   int `json:"formulas"`
}

// Theory is the accumulating aggregate: sorts, constants, predicate schemas
// and the ordered formula list. Commit is the single mutation point; once
// the owning builder finalizes, nothing mutates it anymore.
type Theory struct {
	sorts    *SortRegistry
	preds    *PredicateRegistry
	formulas []Formula
}

func NewTheory(sorts *SortRegistry, preds *PredicateRegistry) *Theory {
	return &Theory{sorts: sorts, preds: preds}
}

// Commit appends a formula. Validation happened at assembly time, so this
// never fails.
func (t *Theory) Commit(f Formula) {
	t.formulas = append(t.formulas, f)
}

// Formulas returns the committed formulas in insertion order.
func (t *Theory) Formulas() []Formula {
	out := make([]Formula, len(t.formulas))
	copy(out, t.formulas)
	return out
}

func (t *Theory) HasSort(name string) bool { return t.sorts.HasSort(name) }

func (t *Theory) SortOf(constant string) (string, bool) { return t.sorts.SortOf(constant) }

func (t *Theory) SchemaOf(name string) (PredicateSchema, bool) { return t.preds.SchemaOf(name) }

// HasPredicateWithArity reports whether name is declared with exactly the
// given arity.
func (t *Theory) HasPredicateWithArity(name string, arity int) bool {
	schema, ok := t.preds.SchemaOf(name)
	return ok && schema.Arity() == arity
}

func (t *Theory) Stats() Stats {
	return Stats{
		Sorts:      t.sorts.SortCount(),
		Constants:  t.sorts.ConstantCount(),
		Predicates: t.preds.PredicateCount(),
		Formulas:   len(t.formulas),
	}
}

// ValidateAtom checks a candidate ground query atom against the signature
// without committing anything. Used to vet queries before they are handed
// to a reasoner.
func (t *Theory) ValidateAtom(predicate string, args []string) error {
	_, err := NewAssembler(t.sorts, t.preds).AssembleAtomic(predicate, args, false)
	return err
}

// Serialize renders the theory in canonical FOL notation: sorts, constants
// with their sorts, predicate schemas, then formulas in insertion order.
// Output is byte-stable across repeated calls on the same state.
func (t *Theory) Serialize() string {
	var b strings.Builder
	for _, sort := range t.sorts.Sorts() {
		fmt.Fprintf(&b, "sort %s\n", sort)
	}
	for _, c := range t.sorts.Constants() {
		fmt.Fprintf(&b, "const %s : %s\n", c.Name, c.Sort)
	}
	for _, schema := range t.preds.Schemas() {
		fmt.Fprintf(&b, "pred %s(%s)\n", schema.Name, strings.Join(schema.ArgSorts, ","))
	}
	for _, f := range t.formulas {
		b.WriteString(f.Canonical())
		b.WriteByte('\n')
	}
	return b.String()
}

// SerializeSolver renders the theory in TweetyProject FOL parser syntax so
// the output can be fed directly to the downstream reasoner.
func (t *Theory) SerializeSolver() string {
	var b strings.Builder
	for _, sort := range t.sorts.Sorts() {
		fmt.Fprintf(&b, "%s = {%s}\n", sort, strings.Join(t.sorts.ConstantsOf(sort), ","))
	}
	for _, schema := range t.preds.Schemas() {
		fmt.Fprintf(&b, "type(%s(%s))\n", schema.Name, strings.Join(schema.ArgSorts, ","))
	}
	for _, f := range t.formulas {
		b.WriteString(f.Solver())
		b.WriteByte('\n')
	}
	return b.String()
}

// CheckShape verifies that every committed formula still resolves against
// the registries. In a well-behaved session this holds by construction; a
// failure here signals an implementation bug, not a caller error.
func (t *Theory) CheckShape() error {
	for i, f := range t.formulas {
		for _, pred := range f.Predicates() {
			if _, ok := t.preds.SchemaOf(pred); !ok {
				return fmt.Errorf("formula %d references undeclared predicate %q", i, pred)
			}
		}
		for _, c := range f.Constants() {
			if _, ok := t.sorts.SortOf(c); !ok {
				return fmt.Errorf("formula %d references undeclared constant %q", i, c)
			}
		}
	}
	return nil
}
