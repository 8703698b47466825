package domain

// OperationName identifies one of the builder operations.
type OperationName string

const (
	OpAddSort                   OperationName = "add_sort"
	OpAddConstantToSort         OperationName = "add_constant_to_sort"
	OpAddPredicateSchema        OperationName = "add_predicate_schema"
	OpAddAtomicFact             OperationName = "add_atomic_fact"
	OpAddNegatedAtomicFact      OperationName = "add_negated_atomic_fact"
	OpAddUniversalImplication   OperationName = "add_universal_implication"
	OpAddExistentialConjunction OperationName = "add_existential_conjunction"
)

// ValidOperationName reports whether s names a builder operation.
func ValidOperationName(s string) bool {
	switch OperationName(s) {
	case OpAddSort, OpAddConstantToSort, OpAddPredicateSchema,
		OpAddAtomicFact, OpAddNegatedAtomicFact,
		OpAddUniversalImplication, OpAddExistentialConjunction:
		return true
	}
	return false
}

// Operation is one builder call. The argument keys mirror the operation
// protocol one-to-one; only the fields relevant to Name are read.
type Operation struct {
	Name OperationName `json:"op"`

	// add_sort, add_constant_to_sort
	SortName     string `json:"sort_name,omitempty"`
	ConstantName string `json:"constant_name,omitempty"`

	// add_predicate_schema
	PredicateName string   `json:"predicate_name,omitempty"`
	ArgumentSorts []string `json:"argument_sorts,omitempty"`

	// add_atomic_fact (add_predicate_schema reuses PredicateName)
	Arguments []string `json:"arguments,omitempty"`

	// add_negated_atomic_fact
	FactPredicateName string   `json:"fact_predicate_name,omitempty"`
	FactArguments     []string `json:"fact_arguments,omitempty"`

	// add_universal_implication
	AntecedentPredicate string `json:"antecedent_predicate,omitempty"`
	ConsequentPredicate string `json:"consequent_predicate,omitempty"`

	// add_existential_conjunction
	Predicate1 string `json:"predicate1,omitempty"`
	Predicate2 string `json:"predicate2,omitempty"`

	// shared by the quantified forms
	SortOfVariable string `json:"sort_of_variable,omitempty"`

	// Normalize applies identifier normalization to every name in the
	// operation before it reaches the builder. Off by default.
	Normalize bool `json:"normalize,omitempty"`
}
