// Package sortstate tracks which fields of a sortable collection are
// currently used to order it, in what priority and in which direction.
// It owns the toggle-cycle state machine for sortable fields and derives
// the flattened multi-key ordering specification a generic stable list
// sorter consumes, plus per-field display status for view-layer rendering.
package sortstate

// Order is the direction of one sort criterion. Its wire form is the
// single-character prefix used in persisted state and query strings.
type Order string

// Sort direction constants
const (
	// Ascending sorts smallest values first
	Ascending Order = "+"
	// Descending sorts largest values first
	Descending Order = "-"
)

// Valid reports whether o is one of the two defined directions.
func (o Order) Valid() bool {
	return o == Ascending || o == Descending
}

// Opposite returns the other direction. The result for an invalid order
// is undefined; callers are expected to validate first.
func (o Order) Opposite() Order {
	if o == Ascending {
		return Descending
	}
	return Ascending
}

// Criterion is one active sort key: a field and its direction.
type Criterion struct {
	Field string `json:"field"`
	Order Order  `json:"order"`
}

// State is the ordered sequence of active criteria, unique by field.
// Position is priority: the first entry is the primary sort key, later
// entries break ties. It is the only shape an embedder should persist
// or supply as initial configuration.
type State []Criterion

// Find returns the criterion for field, if one is active.
func (s State) Find(field string) (Criterion, bool) {
	if i := s.index(field); i >= 0 {
		return s[i], true
	}
	return Criterion{}, false
}

// index returns the position of field in s, or -1. Criteria number in
// the tens at most, so a linear scan is fine.
func (s State) index(field string) int {
	for i, c := range s {
		if c.Field == field {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy of s.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	out := make(State, len(s))
	copy(out, s)
	return out
}

// Validate checks the state invariants: non-empty fields, no duplicate
// fields, and only the two defined directions. The first violation is
// reported as an *InvalidStateError.
func (s State) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, c := range s {
		if c.Field == "" {
			return NewInvalidStateError(c.Field, c.Order, "empty field name")
		}
		if !c.Order.Valid() {
			return NewInvalidStateError(c.Field, c.Order, "direction is neither ascending nor descending")
		}
		if _, dup := seen[c.Field]; dup {
			return NewInvalidStateError(c.Field, c.Order, "duplicate field")
		}
		seen[c.Field] = struct{}{}
	}
	return nil
}

// Normalize returns a copy of s with invalid entries dropped: empty
// fields, unknown directions, and duplicates (first occurrence wins).
// This is the lenient path for embedders migrating previously persisted
// state of uncertain shape; Replace and New validate strictly instead.
func Normalize(s State) State {
	out := make(State, 0, len(s))
	seen := make(map[string]struct{}, len(s))
	for _, c := range s {
		if c.Field == "" || !c.Order.Valid() {
			continue
		}
		if _, dup := seen[c.Field]; dup {
			continue
		}
		seen[c.Field] = struct{}{}
		out = append(out, c)
	}
	return out
}
