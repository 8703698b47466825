package fol

import "fmt"

// Constant is a named individual bound to exactly one sort.
type Constant struct {
	Name string `json:"name"`
	Sort string `json:"sort"`
}

// SortRegistry tracks declared sorts and the constants typed to them.
// Insertion order is preserved so serialization stays deterministic.
type SortRegistry struct {
	sortOrder  []string
	sorts      map[string]struct{}
	constOrder []string
	constants  map[string]string
}

func NewSortRegistry() *SortRegistry {
	return &SortRegistry{
		sorts:     make(map[string]struct{}),
		constants: make(map[string]string),
	}
}

// AddSort registers a new sort. Re-declaring an existing sort is rejected
// rather than ignored so that caller mistakes surface immediately.
func (r *SortRegistry) AddSort(name string) error {
	if name == "" {
		return fmt.Errorf("%w: sort name", ErrEmptyIdentifier)
	}
	if _, ok := r.sorts[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSort, name)
	}
	r.sorts[name] = struct{}{}
	r.sortOrder = append(r.sortOrder, name)
	return nil
}

// AddConstant binds a constant to a sort. Re-binding to the same sort is a
// no-op success; the same constant name describing the same individual is
// naturally repeated across a long operation sequence.
func (r *SortRegistry) AddConstant(constant, sort string) error {
	if constant == "" {
		return fmt.Errorf("%w: constant name", ErrEmptyIdentifier)
	}
	if _, ok := r.sorts[sort]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSort, sort)
	}
	if existing, ok := r.constants[constant]; ok {
		if existing != sort {
			return fmt.Errorf("%w: %q is %q, cannot rebind to %q", ErrConstantSortConflict, constant, existing, sort)
		}
		return nil
	}
	r.constants[constant] = sort
	r.constOrder = append(r.constOrder, constant)
	return nil
}

func (r *SortRegistry) HasSort(name string) bool {
	_, ok := r.sorts[name]
	return ok
}

// SortOf returns the sort a constant is bound to.
func (r *SortRegistry) SortOf(constant string) (string, bool) {
	sort, ok := r.constants[constant]
	return sort, ok
}

// Sorts returns the declared sort names in insertion order.
func (r *SortRegistry) Sorts() []string {
	out := make([]string, len(r.sortOrder))
	copy(out, r.sortOrder)
	return out
}

// Constants returns the declared constants in insertion order.
func (r *SortRegistry) Constants() []Constant {
	out := make([]Constant, 0, len(r.constOrder))
	for _, name := range r.constOrder {
		out = append(out, Constant{Name: name, Sort: r.constants[name]})
	}
	return out
}

// ConstantsOf returns the constants bound to one sort, in insertion order.
func (r *SortRegistry) ConstantsOf(sort string) []string {
	var out []string
	for _, name := range r.constOrder {
		if r.constants[name] == sort {
			out = append(out, name)
		}
	}
	return out
}

func (r *SortRegistry) SortCount() int     { return len(r.sortOrder) }
func (r *SortRegistry) ConstantCount() int { return len(r.constOrder) }
