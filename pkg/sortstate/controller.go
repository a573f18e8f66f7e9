package sortstate

import (
	"github.com/tablekit/sortstate/pkg/observability/logger"
)

// DisplayStatus is the per-field rendering status the view layer polls
// after every state change to refresh visual indicators.
type DisplayStatus struct {
	Sorted     bool `json:"sorted"`
	Ascending  bool `json:"ascending"`
	Descending bool `json:"descending"`
}

// DisplayFunc receives a field's opaque display handle together with its
// current status. The controller invokes it once per RegisterField call
// so initial rendering reflects any pre-existing state for that field;
// after mutations the view layer polls DisplayStatus instead.
type DisplayFunc func(ref any, status DisplayStatus)

// Option configures a Controller.
type Option func(*Controller)

// WithInitialState seeds the controller with a previously persisted
// criteria sequence. The sequence is validated strictly by New.
func WithInitialState(s State) Option {
	return func(c *Controller) {
		c.criteria = s.Clone()
	}
}

// WithMultiSort enables multi-criteria sorting: toggled fields accumulate
// in click order instead of replacing the whole sequence.
func WithMultiSort(enabled bool) Option {
	return func(c *Controller) {
		c.multi = enabled
	}
}

// WithLogger sets the logger used for state-transition debug logging.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// WithDisplayFunc sets the callback invoked with a field's display handle
// and status at registration time.
func WithDisplayFunc(fn DisplayFunc) Option {
	return func(c *Controller) {
		c.display = fn
	}
}

// Controller owns an ordered sequence of active sort criteria and the
// registry of sortable fields. All operations are synchronous and run to
// completion; a Controller is owned by a single goroutine and carries no
// internal locking. The host environment is expected to serialize all
// mutations through a single update cycle.
type Controller struct {
	criteria State
	fields   *registry
	multi    bool
	display  DisplayFunc
	log      logger.Logger
	keys     []Key
}

// New creates a Controller and computes the initial ordering keys. An
// initial state that violates the state invariants (duplicate fields,
// unknown directions) is rejected with *InvalidStateError.
func New(opts ...Option) (*Controller, error) {
	c := &Controller{
		fields: newRegistry(),
		log:    logger.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.criteria.Validate(); err != nil {
		return nil, err
	}
	c.recompute()
	return c, nil
}

// RegisterField registers a sortable field. Registration typically
// happens once per field at setup time; re-registering overwrites the
// descriptor (last write wins). The display callback, if configured, is
// invoked immediately with the field's current status so pre-existing
// state is rendered.
func (c *Controller) RegisterField(field string, descendingFirst bool, label string, displayRef any) error {
	if field == "" {
		return ErrEmptyField
	}
	c.fields.put(FieldDescriptor{
		Field:           field,
		DescendingFirst: descendingFirst,
		Label:           label,
		DisplayRef:      displayRef,
	})
	c.log.Debug("field registered",
		"field", field,
		"label", label,
		"descending_first", descendingFirst,
	)
	if c.display != nil {
		c.display(displayRef, c.DisplayStatus(field))
	}
	return nil
}

// Toggle advances field through its three-state cycle:
//
//	descendingFirst=false: off -> ascending -> descending -> off
//	descendingFirst=true:  off -> descending -> ascending -> off
//
// Activating a field appends it as the lowest-priority criterion when
// multi-sort is enabled, and otherwise replaces the whole sequence with
// the single new criterion. Flipping preserves the criterion's position;
// deactivation removes it without disturbing the relative order of the
// remaining criteria. Toggling an unregistered field fails with
// *UnknownFieldError. A managed criterion carrying a direction outside
// the two defined orders fails with *InvalidStateError; that is a defect
// in state mutation, not a condition to handle.
func (c *Controller) Toggle(field string) error {
	desc, ok := c.fields.get(field)
	if !ok {
		return NewUnknownFieldError(field)
	}

	first := desc.first()
	second := first.Opposite()

	idx := c.criteria.index(field)
	switch {
	case idx < 0:
		next := Criterion{Field: field, Order: first}
		if c.multi {
			c.criteria = append(c.criteria, next)
		} else {
			c.criteria = State{next}
		}
	case c.criteria[idx].Order == first:
		c.criteria[idx].Order = second
	case c.criteria[idx].Order == second:
		c.criteria = append(c.criteria[:idx], c.criteria[idx+1:]...)
	default:
		return NewInvalidStateError(field, c.criteria[idx].Order, "managed criterion carries an unmanaged direction")
	}

	c.recompute()
	c.log.Debug("sort toggled",
		"field", field,
		"active_criteria", len(c.criteria),
		"multi_sort", c.multi,
	)
	return nil
}

// Replace substitutes the whole criteria sequence, validating strictly.
// Embedders restoring persisted state of uncertain shape should run it
// through Normalize first.
func (c *Controller) Replace(s State) error {
	if err := s.Validate(); err != nil {
		return err
	}
	c.criteria = s.Clone()
	c.recompute()
	c.log.Debug("sort state replaced", "active_criteria", len(c.criteria))
	return nil
}

// FieldState returns the active criterion for field, if any.
func (c *Controller) FieldState(field string) (Criterion, bool) {
	return c.criteria.Find(field)
}

// State returns a copy of the current criteria sequence, the shape an
// embedder persists.
func (c *Controller) State() State {
	return c.criteria.Clone()
}

// OrderingKeys returns the derived multi-key ordering specification. It
// is recomputed eagerly on every mutation because the view layer reads
// it every render cycle; callers must not modify the returned slice.
func (c *Controller) OrderingKeys() []Key {
	return c.keys
}

// DisplayStatus computes the rendering status for field. Ascending and
// descending mirror the active criterion's direction; all three are
// false when the field is inactive.
func (c *Controller) DisplayStatus(field string) DisplayStatus {
	cr, ok := c.criteria.Find(field)
	if !ok {
		return DisplayStatus{}
	}
	return DisplayStatus{
		Sorted:     true,
		Ascending:  cr.Order == Ascending,
		Descending: cr.Order == Descending,
	}
}

// Fields lists the registered field descriptors in registration order,
// for the view layer to iterate after each recompute.
func (c *Controller) Fields() []FieldDescriptor {
	return c.fields.list()
}

// MultiSort reports whether multi-criteria sorting is enabled.
func (c *Controller) MultiSort() bool {
	return c.multi
}

func (c *Controller) recompute() {
	c.keys = deriveKeys(c.criteria)
}
