package sortstate

// FieldDescriptor describes one registered sortable field. DisplayRef is
// an opaque handle to whatever visual element the view layer wants
// updated; the controller stores it and hands it back, never interprets it.
type FieldDescriptor struct {
	Field           string
	DescendingFirst bool
	Label           string
	DisplayRef      any
}

// first returns the direction the field's toggle cycle visits first.
func (d FieldDescriptor) first() Order {
	if d.DescendingFirst {
		return Descending
	}
	return Ascending
}

// registry maps field names to descriptors. It grows only via
// registration and retains insertion order for listing. Re-registration
// overwrites the descriptor in place: last write wins.
type registry struct {
	byField map[string]FieldDescriptor
	order   []string
}

func newRegistry() *registry {
	return &registry{byField: make(map[string]FieldDescriptor)}
}

func (r *registry) put(d FieldDescriptor) {
	if _, exists := r.byField[d.Field]; !exists {
		r.order = append(r.order, d.Field)
	}
	r.byField[d.Field] = d
}

func (r *registry) get(field string) (FieldDescriptor, bool) {
	d, ok := r.byField[field]
	return d, ok
}

func (r *registry) list() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(r.order))
	for _, field := range r.order {
		out = append(out, r.byField[field])
	}
	return out
}
