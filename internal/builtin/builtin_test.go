// Released under an MIT license. See LICENSE.

package builtin

import (
	"testing"

	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

func call(t *testing.T, name string, args ...cell.Value) cell.Value {
	t.Helper()

	b, ok := Table()[name]
	if !ok {
		t.Fatalf("no builtin named %q", name)
	}

	if b.Eager == nil {
		t.Fatalf("builtin %q is Direct, not Eager; call it through eval instead", name)
	}

	return b.Eager(args)
}

func expectTypeError(t *testing.T, f func()) {
	t.Helper()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected a type-error panic")
		}

		if _, ok := r.(*rerr.T); !ok {
			t.Fatalf("expected a *rerr.T panic, got %#v", r)
		}
	}()

	f()
}

func TestAddPolymorphism(t *testing.T) {
	if got := call(t, "add", cell.Number(1), cell.Number(2)); got != cell.Number(3) {
		t.Errorf("add(1, 2) = %#v, want 3", got)
	}

	if got := call(t, "add", cell.String("a"), cell.String("b")); got != cell.String("ab") {
		t.Errorf("add(a, b) = %#v, want ab", got)
	}

	l := call(t, "add", cell.NewList(cell.Number(1)), cell.NewList(cell.Number(2))).(*cell.List)
	if len(l.Items) != 2 {
		t.Errorf("add(list, list) = %#v, want a 2-item list", l.Items)
	}

	expectTypeError(t, func() { call(t, "add", cell.Number(1), cell.String("x")) })
}

func TestDivStringPathJoin(t *testing.T) {
	got := call(t, "div", cell.String("usr"), cell.String("local"))
	if got != cell.String("usr/local") {
		t.Errorf("div(usr, local) = %#v, want usr/local", got)
	}
}

func TestDivByZero(t *testing.T) {
	expectTypeError(t, func() { call(t, "div", cell.Number(1), cell.Number(0)) })
}

func TestComparisonIdentityOnAggregates(t *testing.T) {
	a := cell.NewList(cell.Number(1))
	b := cell.NewList(cell.Number(1))

	if call(t, "=", a, b) != cell.False {
		t.Errorf("expected two distinct equal-contents lists to compare unequal by =")
	}

	if call(t, "=", a, a) != cell.True {
		t.Errorf("expected a list to = itself")
	}
}

func TestOrderingOnNumbersStringsLists(t *testing.T) {
	if call(t, "lt", cell.Number(1), cell.Number(2)) != cell.True {
		t.Errorf("expected 1 lt 2")
	}

	if call(t, "gt", cell.String("b"), cell.String("a")) != cell.True {
		t.Errorf("expected b gt a")
	}

	if call(t, "lt", cell.NewList(cell.Number(1), cell.Number(2)), cell.NewList(cell.Number(1), cell.Number(3))) != cell.True {
		t.Errorf("expected [1 2] lt [1 3]")
	}

	expectTypeError(t, func() { call(t, "lt", cell.Number(1), cell.String("a")) })
}

func TestPopFrontRemovesFirstElement(t *testing.T) {
	l := cell.NewList(cell.Number(1), cell.Number(2), cell.Number(3))

	got := call(t, "pop-front", l)
	if got != cell.Number(1) {
		t.Fatalf("pop-front returned %#v, want 1", got)
	}

	if len(l.Items) != 2 || l.Items[0] != cell.Number(2) || l.Items[1] != cell.Number(3) {
		t.Fatalf("pop-front left %#v, want [2 3]", l.Items)
	}
}

func TestPopRemovesLastElement(t *testing.T) {
	l := cell.NewList(cell.Number(1), cell.Number(2), cell.Number(3))

	got := call(t, "pop", l)
	if got != cell.Number(3) {
		t.Fatalf("pop returned %#v, want 3", got)
	}

	if len(l.Items) != 2 {
		t.Fatalf("pop left %#v, want length 2", l.Items)
	}
}

func TestGetRaisesOnOutOfRange(t *testing.T) {
	l := cell.NewList(cell.Number(1))

	expectTypeError(t, func() { call(t, "get", l, cell.Number(5)) })
}

func TestTrygetReturnsUnitInstead(t *testing.T) {
	l := cell.NewList(cell.Number(1))

	if got := call(t, "tryget", l, cell.Number(5)); got != cell.Unit {
		t.Errorf("tryget out of range = %#v, want Unit", got)
	}

	d := cell.NewDict()
	d.Set(cell.Number(1), cell.String("one"))

	if got := call(t, "tryget", d, cell.Number(2)); got != cell.Unit {
		t.Errorf("tryget missing key = %#v, want Unit", got)
	}
}

func TestEmptyAndLen(t *testing.T) {
	l := cell.NewList()
	if call(t, "empty?", l) != cell.True {
		t.Errorf("expected an empty list to be empty?")
	}

	l = cell.NewList(cell.Number(1), cell.Number(2))
	if call(t, "len", l) != cell.Number(2) {
		t.Errorf("expected len 2")
	}
}

func TestAbsPolymorphism(t *testing.T) {
	if got := call(t, "abs", cell.Number(-3)); got != cell.Number(3) {
		t.Errorf("abs(-3) = %#v, want 3", got)
	}

	got := call(t, "abs", cell.String("a/../b"))
	if got != cell.String("/b") {
		t.Errorf("abs(a/../b) = %#v, want /b", got)
	}
}

func TestKeysAndEntries(t *testing.T) {
	d := cell.NewDict()
	d.Set(cell.Number(1), cell.String("a"))

	keysList := call(t, "keys", d).(*cell.List)
	if len(keysList.Items) != 1 || keysList.Items[0] != cell.Number(1) {
		t.Errorf("keys = %#v, want [1]", keysList.Items)
	}

	entriesList := call(t, "entries", d).(*cell.List)
	if len(entriesList.Items) != 1 {
		t.Fatalf("entries = %#v, want one pair", entriesList.Items)
	}

	pair, ok := entriesList.Items[0].(*cell.List)
	if !ok || len(pair.Items) != 2 || pair.Items[0] != cell.Number(1) || pair.Items[1] != cell.String("a") {
		t.Errorf("entries[0] = %#v, want (1 a)", pair)
	}
}

func TestNotFlipsBooleans(t *testing.T) {
	if call(t, "not", cell.True) != cell.False {
		t.Errorf("not(#t) should be #f")
	}

	if call(t, "not", cell.False) != cell.True {
		t.Errorf("not(#f) should be #t")
	}
}

func TestTypeAndTypeIs(t *testing.T) {
	if call(t, "type", cell.Number(1)) != cell.String("number") {
		t.Errorf("type(1) should be \"number\"")
	}

	if call(t, "type-is", cell.Number(1), cell.String("number")) != cell.True {
		t.Errorf("type-is(1, number) should be #t")
	}

	if call(t, "type-is", cell.Number(1), cell.String("string")) != cell.False {
		t.Errorf("type-is(1, string) should be #f")
	}
}

func TestHostStubsAreUnsupported(t *testing.T) {
	for _, name := range []string{"read", "@"} {
		expectTypeError(t, func() { call(t, name) })
	}
}

func TestTableHasBooleanSingletons(t *testing.T) {
	if Table()["#t"] != cell.True || Table()["#f"] != cell.False {
		t.Errorf("expected Table() to install the #t/#f singletons")
	}
}
