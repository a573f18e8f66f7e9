package sortstate

// KeyKind discriminates the two kinds of derived ordering keys.
type KeyKind int

// Ordering key kinds
const (
	// KindNullsLast is a classifier key: records whose field value is
	// nil, an empty string, or not a number compare after all others.
	// Classifier keys are always ascending, so such values land at the
	// end regardless of the criterion's own direction.
	KindNullsLast KeyKind = iota
	// KindField is the signed comparison key for the criterion itself.
	KindField
)

// Key is one element of the flattened ordering-key sequence handed to a
// generic stable multi-key sorter.
type Key struct {
	Kind  KeyKind
	Field string
	Order Order
}

// Signed returns the direction-prefixed field form, e.g. "+name" or
// "-price". Classifier keys are always ascending.
func (k Key) Signed() string {
	return string(k.Order) + k.Field
}

// deriveKeys flattens criteria into the full multi-key ordering
// specification: for each criterion in priority order, a nulls-last
// classifier key followed by the signed field key.
func deriveKeys(s State) []Key {
	keys := make([]Key, 0, len(s)*2)
	for _, c := range s {
		keys = append(keys,
			Key{Kind: KindNullsLast, Field: c.Field, Order: Ascending},
			Key{Kind: KindField, Field: c.Field, Order: c.Order},
		)
	}
	return keys
}
