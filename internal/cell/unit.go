// Released under an MIT license. See LICENSE.

package cell

// unit is the singleton type behind the Unit value, the value produced
// by an empty S-expression and by forms that have no meaningful result
// (spec.md §3: "The unit expression and unit value are distinct from
// the empty list and the zero number"). Grounded on the singleton
// pattern oh uses for pair.Null (internal/type/pair/pair.go's init()).
type unit struct{}

func (unit) Name() string { return "unit" }

func (unit) Equal(other Value) bool {
	return other == Unit
}

func (unit) String() string {
	return "()"
}

// Unit is the single unit value. It is distinct from an empty List and
// from Number(0).
var Unit Value = unit{} //nolint:gochecknoglobals
