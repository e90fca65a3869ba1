// Released under an MIT license. See LICENSE.

package cell

// CompareValues orders two values of the same orderable kind (number,
// string, or list — spec.md §4.5 "Ordering operators work on numbers,
// strings, and lists (lexicographic)"). It panics if a and b are not
// both one of those kinds, or are of different kinds. The lt/gt/le/ge
// builtins check their two top-level operands first and report a
// standardized type-mismatch error; elements of two lists are compared
// here without that check, so mismatched or unorderable elements panic
// with a plain message instead.
func CompareValues(a, b Value) int {
	switch av := a.(type) {
	case Number:
		bv := ToNumber(b)

		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case String:
		bv := ToString(b)

		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case *List:
		return av.Compare(ToList(b))
	}

	panic("values of type " + a.Name() + " are not orderable")
}
