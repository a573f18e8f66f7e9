package sortstate

import (
	"strings"
)

// ParseQuery decodes the compact query-parameter form of a criteria
// sequence: comma-separated field names, each optionally prefixed with
// "-" for descending or "+" for ascending (the default when unprefixed),
// e.g. "-price,name". Empty segments are rejected; the result is
// validated against the state invariants.
func ParseQuery(s string) (State, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return State{}, nil
	}
	parts := strings.Split(s, ",")
	out := make(State, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		order := Ascending
		switch {
		case strings.HasPrefix(part, "-"):
			order = Descending
			part = part[1:]
		case strings.HasPrefix(part, "+"):
			part = part[1:]
		}
		if part == "" {
			return nil, NewInvalidStateError(part, order, "empty field name in query form")
		}
		out = append(out, Criterion{Field: part, Order: order})
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryString encodes s in the compact query-parameter form accepted by
// ParseQuery. Ascending fields are emitted unprefixed.
func (s State) QueryString() string {
	var b strings.Builder
	for i, c := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		if c.Order == Descending {
			b.WriteByte('-')
		}
		b.WriteString(c.Field)
	}
	return b.String()
}

// Safelist rejects criteria referencing fields outside allowed. The view
// layer uses it to validate caller-supplied sort parameters against the
// registered fields before handing them to Replace.
func (s State) Safelist(allowed func(field string) bool) error {
	for _, c := range s {
		if !allowed(c.Field) {
			return NewUnknownFieldError(c.Field)
		}
	}
	return nil
}

// Registered reports whether field has a descriptor, in the shape
// Safelist expects.
func (c *Controller) Registered(field string) bool {
	_, ok := c.fields.get(field)
	return ok
}
