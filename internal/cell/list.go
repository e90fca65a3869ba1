// Released under an MIT license. See LICENSE.

package cell

// List is a reference-shared, mutable sequence of values (spec.md §3).
// Grounded on oh's reference-shared pair chain (internal/type/pair), but
// reshaped to a flat backing slice: spec.md's List is addressed by
// integer index (get/set/slice), not traversed car/cdr, so a slice is
// the natural representation and makes push/pop/get/set simple slice
// operations instead of cons-cell surgery.
type List struct {
	Items []Value
}

// NewList creates a fresh List holding items. The slice is copied so
// later mutation of the caller's slice does not alias the new List.
func NewList(items ...Value) *List {
	l := &List{Items: make([]Value, len(items))}
	copy(l.Items, items)

	return l
}

func (l *List) Name() string { return "list" }

// Equal on lists is reference identity (spec.md §3: "list... keys
// compare by identity"; the same rule governs general Equal/= per
// spec.md §4.5, distinct from the explicit lexicographic ordering
// operators lt/gt/le/ge).
func (l *List) Equal(other Value) bool {
	o, ok := other.(*List)
	return ok && l == o
}

// Compare returns -1, 0, or 1 comparing l and o lexicographically,
// element by element, falling back to length when one is a prefix of
// the other. This is spec.md §9's open-question resolution: list
// ordering is defined explicitly rather than left as host reference
// comparison.
func (l *List) Compare(o *List) int {
	for i := 0; i < len(l.Items) && i < len(o.Items); i++ {
		c := CompareValues(l.Items[i], o.Items[i])
		if c != 0 {
			return c
		}
	}

	switch {
	case len(l.Items) < len(o.Items):
		return -1
	case len(l.Items) > len(o.Items):
		return 1
	default:
		return 0
	}
}

// IsList reports whether v is a *List.
func IsList(v Value) bool {
	_, ok := v.(*List)
	return ok
}

// ToList returns v as a *List, panicking if it is not one.
func ToList(v Value) *List {
	l, ok := v.(*List)
	if !ok {
		panic("not a list")
	}

	return l
}
