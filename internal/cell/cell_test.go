// Released under an MIT license. See LICENSE.

package cell

import "testing"

func TestNumberStringEqualityIsByValue(t *testing.T) {
	if !Number(3).Equal(Number(3)) {
		t.Errorf("expected Number(3).Equal(Number(3))")
	}

	if Number(3).Equal(Number(4)) {
		t.Errorf("expected Number(3) != Number(4)")
	}

	if !String("a").Equal(String("a")) {
		t.Errorf("expected String(a).Equal(String(a))")
	}
}

func TestListDictClosureEqualityIsByIdentity(t *testing.T) {
	a := NewList(Number(1))
	b := NewList(Number(1))

	if a.Equal(b) {
		t.Errorf("expected two distinct lists with equal contents to compare unequal")
	}

	if !a.Equal(a) {
		t.Errorf("expected a list to equal itself")
	}

	da, db := NewDict(), NewDict()
	if da.Equal(db) {
		t.Errorf("expected two distinct dicts to compare unequal")
	}
}

func TestDictKeyStrictTypeMatch(t *testing.T) {
	d := NewDict()
	d.Set(Number(1), String("one"))

	if _, ok := d.Get(String("1")); ok {
		t.Errorf("expected a string key \"1\" not to find a number key 1's binding")
	}

	v, ok := d.Get(Number(1))
	if !ok || v != String("one") {
		t.Errorf("expected Number(1) to find its own binding, got %#v, %v", v, ok)
	}
}

func TestDictIdentityKeys(t *testing.T) {
	d := NewDict()

	key := NewList(Number(9))
	d.Set(key, String("nine"))

	if v, ok := d.Get(key); !ok || v != String("nine") {
		t.Errorf("expected the same list reference to find its binding")
	}

	other := NewList(Number(9))
	if _, ok := d.Get(other); ok {
		t.Errorf("expected a distinct list with equal contents not to find the binding")
	}
}

func TestListLexicographicCompare(t *testing.T) {
	cases := []struct {
		a, b []Value
		want int
	}{
		{[]Value{Number(1), Number(2)}, []Value{Number(1), Number(3)}, -1},
		{[]Value{Number(1), Number(2)}, []Value{Number(1)}, 1},
		{[]Value{Number(1)}, []Value{Number(1), Number(2)}, -1},
		{[]Value{Number(1), Number(2)}, []Value{Number(1), Number(2)}, 0},
		{[]Value{String("a")}, []Value{String("b")}, -1},
	}

	for _, c := range cases {
		got := NewList(c.a...).Compare(NewList(c.b...))
		if got != c.want {
			t.Errorf("Compare(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestUnitIsDistinctFromEmptyListAndZero(t *testing.T) {
	if Unit.Equal(NewList()) {
		t.Errorf("expected Unit != an empty list")
	}

	if Unit.Equal(Number(0)) {
		t.Errorf("expected Unit != Number(0)")
	}
}

func TestTruthy(t *testing.T) {
	if Truthy(Unit) {
		t.Errorf("expected Unit to be falsy")
	}

	if Truthy(False) {
		t.Errorf("expected the #f singleton to be falsy")
	}

	if !Truthy(True) {
		t.Errorf("expected the #t singleton to be truthy")
	}

	if !Truthy(Number(0)) {
		t.Errorf("expected Number(0) to be truthy (only Unit and #f are falsy)")
	}
}

func TestReprQuotesStringsShowDoesNot(t *testing.T) {
	if Show(String("hi")) != "hi" {
		t.Errorf("Show(String) = %q, want unquoted", Show(String("hi")))
	}

	if Repr(String("hi")) == "hi" {
		t.Errorf("Repr(String) should be quoted, got %q", Repr(String("hi")))
	}

	nested := NewList(String("hi"))
	if Show(nested) != Repr(nested) {
		t.Errorf("Show and Repr of a nested string should agree: %q vs %q", Show(nested), Repr(nested))
	}
}
