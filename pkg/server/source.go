package server

import "context"

// DataSource supplies the records served by the items endpoint. Records
// are map-backed rows, the shape a JSON collection decodes into.
type DataSource interface {
	Records(ctx context.Context) ([]map[string]any, error)
}

// StaticSource is a fixed in-memory DataSource, useful for demos and
// tests. Records returns a shallow copy so ordering one response does
// not disturb the next.
type StaticSource []map[string]any

// Records implements DataSource.
func (s StaticSource) Records(context.Context) ([]map[string]any, error) {
	out := make([]map[string]any, len(s))
	copy(out, s)
	return out, nil
}
