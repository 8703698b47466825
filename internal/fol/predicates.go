package fol

import (
	"fmt"
	"slices"
)

// PredicateSchema is a named relation with a fixed ordered list of argument
// sorts. Arity 1 models a property, arity >= 2 a relation.
type PredicateSchema struct {
	Name     string   `json:"name"`
	ArgSorts []string `json:"arg_sorts"`
}

func (s PredicateSchema) Arity() int { return len(s.ArgSorts) }

// Unary reports whether the schema has exactly one argument position.
func (s PredicateSchema) Unary() bool { return len(s.ArgSorts) == 1 }

// PredicateRegistry tracks declared predicate schemas. Argument sorts must
// already exist in the sort registry at declaration time.
type PredicateRegistry struct {
	sorts   *SortRegistry
	order   []string
	schemas map[string][]string
}

func NewPredicateRegistry(sorts *SortRegistry) *PredicateRegistry {
	return &PredicateRegistry{
		sorts:   sorts,
		schemas: make(map[string][]string),
	}
}

// AddSchema registers a predicate with its per-position argument sorts.
// Re-declaring with an identical signature is a no-op success; a different
// signature under the same name is rejected.
func (r *PredicateRegistry) AddSchema(name string, argSorts []string) error {
	if name == "" {
		return fmt.Errorf("%w: predicate name", ErrEmptyIdentifier)
	}
	if len(argSorts) == 0 {
		return fmt.Errorf("%w: %q", ErrZeroArityPredicate, name)
	}
	for _, sort := range argSorts {
		if !r.sorts.HasSort(sort) {
			return fmt.Errorf("%w: %q in signature of %q", ErrUnknownSort, sort, name)
		}
	}
	if existing, ok := r.schemas[name]; ok {
		if !slices.Equal(existing, argSorts) {
			return fmt.Errorf("%w: %q declared as %v, got %v", ErrDuplicatePredicate, name, existing, argSorts)
		}
		return nil
	}
	r.schemas[name] = slices.Clone(argSorts)
	r.order = append(r.order, name)
	return nil
}

// SchemaOf returns the declared schema for a predicate name.
func (r *PredicateRegistry) SchemaOf(name string) (PredicateSchema, bool) {
	argSorts, ok := r.schemas[name]
	if !ok {
		return PredicateSchema{}, false
	}
	return PredicateSchema{Name: name, ArgSorts: slices.Clone(argSorts)}, true
}

// Schemas returns all declared schemas in insertion order.
func (r *PredicateRegistry) Schemas() []PredicateSchema {
	out := make([]PredicateSchema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, PredicateSchema{Name: name, ArgSorts: slices.Clone(r.schemas[name])})
	}
	return out
}

func (r *PredicateRegistry) PredicateCount() int { return len(r.order) }
