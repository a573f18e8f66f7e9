package sortstate

import (
	"errors"
	"testing"
)

func mustController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func register(t *testing.T, c *Controller, field string, descendingFirst bool) {
	t.Helper()
	if err := c.RegisterField(field, descendingFirst, field, nil); err != nil {
		t.Fatalf("RegisterField(%q) failed: %v", field, err)
	}
}

func TestToggle_UnregisteredFieldFails(t *testing.T) {
	c := mustController(t)

	err := c.Toggle("price")
	if err == nil {
		t.Fatalf("expected error toggling unregistered field")
	}
	var unknown *UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownFieldError, got %T: %v", err, err)
	}
	if unknown.Field != "price" {
		t.Fatalf("expected field price, got %q", unknown.Field)
	}
}

func TestToggle_ActivatesAscendingByDefault(t *testing.T) {
	c := mustController(t)
	register(t, c, "name", false)

	if err := c.Toggle("name"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	cr, ok := c.FieldState("name")
	if !ok {
		t.Fatalf("expected name to be active")
	}
	if cr.Order != Ascending {
		t.Fatalf("expected ascending, got %q", cr.Order)
	}

	keys := c.OrderingKeys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	last := keys[len(keys)-1]
	if last.Signed() != "+name" {
		t.Fatalf("expected trailing signed key +name, got %q", last.Signed())
	}
}

func TestToggle_CycleAscendingFirst(t *testing.T) {
	c := mustController(t)
	register(t, c, "name", false)

	// off -> ascending -> descending -> off, then around again.
	expected := []struct {
		active bool
		order  Order
	}{
		{true, Ascending},
		{true, Descending},
		{false, ""},
		{true, Ascending},
	}
	for i, want := range expected {
		if err := c.Toggle("name"); err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
		cr, ok := c.FieldState("name")
		if ok != want.active {
			t.Fatalf("toggle %d: expected active=%v, got %v", i, want.active, ok)
		}
		if ok && cr.Order != want.order {
			t.Fatalf("toggle %d: expected order %q, got %q", i, want.order, cr.Order)
		}
	}
}

func TestToggle_CycleDescendingFirst(t *testing.T) {
	c := mustController(t)
	register(t, c, "created_at", true)

	expected := []struct {
		active bool
		order  Order
	}{
		{true, Descending},
		{true, Ascending},
		{false, ""},
		{true, Descending},
	}
	for i, want := range expected {
		if err := c.Toggle("created_at"); err != nil {
			t.Fatalf("toggle %d failed: %v", i, err)
		}
		cr, ok := c.FieldState("created_at")
		if ok != want.active {
			t.Fatalf("toggle %d: expected active=%v, got %v", i, want.active, ok)
		}
		if ok && cr.Order != want.order {
			t.Fatalf("toggle %d: expected order %q, got %q", i, want.order, cr.Order)
		}
	}
}

func TestToggle_SingleSortReplacesCriteria(t *testing.T) {
	c := mustController(t, WithMultiSort(false))
	register(t, c, "a", false)
	register(t, c, "b", false)

	if err := c.Toggle("a"); err != nil {
		t.Fatalf("Toggle(a) failed: %v", err)
	}
	if err := c.Toggle("b"); err != nil {
		t.Fatalf("Toggle(b) failed: %v", err)
	}

	state := c.State()
	if len(state) != 1 {
		t.Fatalf("expected single criterion, got %v", state)
	}
	if state[0].Field != "b" || state[0].Order != Ascending {
		t.Fatalf("expected b ascending, got %v", state[0])
	}
	if _, ok := c.FieldState("a"); ok {
		t.Fatalf("expected a to be dropped")
	}
}

func TestToggle_MultiSortAppendsInClickOrder(t *testing.T) {
	c := mustController(t, WithMultiSort(true))
	register(t, c, "a", false)
	register(t, c, "b", false)

	if err := c.Toggle("a"); err != nil {
		t.Fatalf("Toggle(a) failed: %v", err)
	}
	if err := c.Toggle("b"); err != nil {
		t.Fatalf("Toggle(b) failed: %v", err)
	}

	state := c.State()
	if len(state) != 2 {
		t.Fatalf("expected two criteria, got %v", state)
	}
	if state[0].Field != "a" || state[1].Field != "b" {
		t.Fatalf("expected priority order a then b, got %v", state)
	}

	// a's keys come before b's keys in the derived sequence.
	keys := c.OrderingKeys()
	if len(keys) != 4 {
		t.Fatalf("expected 4 keys, got %d", len(keys))
	}
	if keys[1].Signed() != "+a" || keys[3].Signed() != "+b" {
		t.Fatalf("expected +a before +b, got %q and %q", keys[1].Signed(), keys[3].Signed())
	}
}

func TestToggle_FlipPreservesPosition(t *testing.T) {
	c := mustController(t, WithMultiSort(true))
	register(t, c, "a", false)
	register(t, c, "b", false)
	register(t, c, "c", false)

	for _, f := range []string{"a", "b", "c"} {
		if err := c.Toggle(f); err != nil {
			t.Fatalf("Toggle(%s) failed: %v", f, err)
		}
	}

	// Flip b in place: priority order must stay a, b, c.
	if err := c.Toggle("b"); err != nil {
		t.Fatalf("Toggle(b) failed: %v", err)
	}
	state := c.State()
	if state[0].Field != "a" || state[1].Field != "b" || state[2].Field != "c" {
		t.Fatalf("expected order preserved, got %v", state)
	}
	if state[1].Order != Descending {
		t.Fatalf("expected b flipped to descending, got %q", state[1].Order)
	}

	// Toggle b off: a and c keep their relative order.
	if err := c.Toggle("b"); err != nil {
		t.Fatalf("Toggle(b) failed: %v", err)
	}
	state = c.State()
	if len(state) != 2 || state[0].Field != "a" || state[1].Field != "c" {
		t.Fatalf("expected a,c after removing b, got %v", state)
	}
}

func TestToggle_InvalidManagedDirectionIsDefect(t *testing.T) {
	c := mustController(t)
	register(t, c, "a", false)
	if err := c.Toggle("a"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}

	// Corrupt the managed criterion the way a buggy embedder could by
	// mutating shared state out of band.
	c.criteria[0].Order = Order("~")

	err := c.Toggle("a")
	var invalid *InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidStateError, got %T: %v", err, err)
	}
}

func TestFieldState_InactiveField(t *testing.T) {
	c := mustController(t)
	register(t, c, "a", false)

	if _, ok := c.FieldState("a"); ok {
		t.Fatalf("expected a inactive")
	}
	if _, ok := c.FieldState("never-registered"); ok {
		t.Fatalf("expected unregistered field inactive")
	}
}

func TestDisplayStatus(t *testing.T) {
	c := mustController(t, WithMultiSort(true))
	register(t, c, "up", false)
	register(t, c, "down", true)
	register(t, c, "idle", false)

	if err := c.Toggle("up"); err != nil {
		t.Fatalf("Toggle(up) failed: %v", err)
	}
	if err := c.Toggle("down"); err != nil {
		t.Fatalf("Toggle(down) failed: %v", err)
	}

	if got := c.DisplayStatus("up"); got != (DisplayStatus{Sorted: true, Ascending: true}) {
		t.Fatalf("unexpected status for up: %+v", got)
	}
	if got := c.DisplayStatus("down"); got != (DisplayStatus{Sorted: true, Descending: true}) {
		t.Fatalf("unexpected status for down: %+v", got)
	}
	if got := c.DisplayStatus("idle"); got != (DisplayStatus{}) {
		t.Fatalf("unexpected status for idle: %+v", got)
	}
}

func TestRegisterField_EmitsCurrentStatus(t *testing.T) {
	type emitted struct {
		ref    any
		status DisplayStatus
	}
	var calls []emitted

	c := mustController(t,
		WithInitialState(State{{Field: "price", Order: Descending}}),
		WithDisplayFunc(func(ref any, status DisplayStatus) {
			calls = append(calls, emitted{ref, status})
		}),
	)

	register(t, c, "price", true)
	register(t, c, "name", false)

	if len(calls) != 2 {
		t.Fatalf("expected 2 display calls, got %d", len(calls))
	}
	if calls[0].ref != "price" || !calls[0].status.Descending {
		t.Fatalf("expected pre-existing descending state emitted for price, got %+v", calls[0])
	}
	if calls[1].ref != "name" || calls[1].status.Sorted {
		t.Fatalf("expected inactive status for name, got %+v", calls[1])
	}
}

func TestRegisterField_Validation(t *testing.T) {
	c := mustController(t)
	if err := c.RegisterField("", false, "", nil); !errors.Is(err, ErrEmptyField) {
		t.Fatalf("expected ErrEmptyField, got %v", err)
	}
}

func TestRegisterField_LastWriteWins(t *testing.T) {
	c := mustController(t)
	register(t, c, "a", false)
	if err := c.RegisterField("a", true, "Again", nil); err != nil {
		t.Fatalf("re-registration failed: %v", err)
	}

	fields := c.Fields()
	if len(fields) != 1 {
		t.Fatalf("expected one descriptor, got %d", len(fields))
	}
	if !fields[0].DescendingFirst || fields[0].Label != "Again" {
		t.Fatalf("expected overwritten descriptor, got %+v", fields[0])
	}

	// The overwritten cycle starts descending now.
	if err := c.Toggle("a"); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	cr, _ := c.FieldState("a")
	if cr.Order != Descending {
		t.Fatalf("expected descending after descriptor overwrite, got %q", cr.Order)
	}
}

func TestNew_RejectsInvalidInitialState(t *testing.T) {
	_, err := New(WithInitialState(State{
		{Field: "a", Order: Ascending},
		{Field: "a", Order: Descending},
	}))
	var invalid *InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidStateError for duplicate field, got %v", err)
	}

	_, err = New(WithInitialState(State{{Field: "a", Order: "sideways"}}))
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidStateError for bad order, got %v", err)
	}
}

func TestReplace(t *testing.T) {
	c := mustController(t, WithMultiSort(true))
	register(t, c, "a", false)

	next := State{{Field: "a", Order: Descending}, {Field: "b", Order: Ascending}}
	if err := c.Replace(next); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if got := c.State(); len(got) != 2 || got[0].Order != Descending {
		t.Fatalf("unexpected state after replace: %v", got)
	}
	if len(c.OrderingKeys()) != 4 {
		t.Fatalf("expected keys recomputed after replace, got %d", len(c.OrderingKeys()))
	}

	// Mutating the caller's slice must not affect the controller.
	next[0].Order = Ascending
	if got, _ := c.FieldState("a"); got.Order != Descending {
		t.Fatalf("controller state aliased caller slice")
	}

	if err := c.Replace(State{{Field: "x", Order: "!"}}); err == nil {
		t.Fatalf("expected strict validation to reject bad order")
	}
}

func TestOrderingKeys_ClassifierPrecedesFieldKey(t *testing.T) {
	c := mustController(t, WithInitialState(State{{Field: "score", Order: Descending}}))

	keys := c.OrderingKeys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(keys))
	}
	if keys[0].Kind != KindNullsLast || keys[0].Order != Ascending {
		t.Fatalf("expected leading ascending classifier key, got %+v", keys[0])
	}
	if keys[1].Kind != KindField || keys[1].Signed() != "-score" {
		t.Fatalf("expected signed field key -score, got %+v", keys[1])
	}
}

func TestState_UnregisteredFieldsAccepted(t *testing.T) {
	// State referencing unregistered fields is accepted, ignored for
	// display purposes, and still emitted in the derived keys.
	c := mustController(t, WithInitialState(State{{Field: "ghost", Order: Ascending}}))

	if got := c.DisplayStatus("ghost"); !got.Sorted {
		// DisplayStatus mirrors criteria, registered or not; the view
		// layer only asks about fields it registered.
		t.Fatalf("expected criterion visible via DisplayStatus, got %+v", got)
	}
	if len(c.OrderingKeys()) != 2 {
		t.Fatalf("expected keys for unregistered field, got %d", len(c.OrderingKeys()))
	}
	if err := c.Toggle("ghost"); err == nil {
		t.Fatalf("expected toggle of unregistered field to fail")
	}
}
