// Released under an MIT license. See LICENSE.

package builtin

import (
	"github.com/rumlisp/rumlisp/internal/cell"
	"github.com/rumlisp/rumlisp/internal/rerr"
)

// sequenceBuiltins implements spec.md §4.5's list/dict operations.
// get/set/push/pop and friends mutate the List or Dict they're handed
// in place — both are reference-shared values (spec.md §3), so a
// closure holding the same list sees the mutation too.
func sequenceBuiltins() map[string]*cell.Builtin {
	return map[string]*cell.Builtin{
		"empty?": unary("empty?", func(v cell.Value) cell.Value { return cell.Bool(seqLen(v) == 0) }),
		"len":    unary("len", func(v cell.Value) cell.Value { return cell.Number(seqLen(v)) }),

		"slice":   nary("slice", 3, 3, sliceFn),
		"del-ins": nary("del-ins", 3, 3, delIns),

		"get":    nary("get", 2, 2, get),
		"tryget": nary("tryget", 2, 2, tryget),
		"set":    nary("set", 3, 3, set),
		"tryset": nary("tryset", 3, 3, tryset),

		"push":       nary("push", 2, 2, push),
		"pop":        unary("pop", pop),
		"push-front": nary("push-front", 2, 2, pushFront),
		"pop-front":  unary("pop-front", popFront),

		"keys":    unary("keys", keys),
		"entries": unary("entries", entries),
	}
}

func nary(name string, min, max int, f func(args []cell.Value) cell.Value) *cell.Builtin {
	return &cell.Builtin{Ident: name, Min: min, Max: max, Eager: f}
}

func seqLen(v cell.Value) int {
	switch t := v.(type) {
	case *cell.List:
		return len(t.Items)
	case *cell.Dict:
		return t.Len()
	case cell.String:
		return len([]rune(string(t)))
	}

	rerr.Throw(typeError("len", []cell.Value{v}))

	panic("unreachable")
}

func index(name string, v cell.Value, n int) int {
	k, ok := v.(cell.Number)
	if !ok {
		rerr.Throw(typeError(name, []cell.Value{v}))
	}

	i := int(k)
	if i < 0 || i >= n {
		rerr.Throw(rerr.New(rerr.Evaluation, "index %d out of range for '%s' (length %d)", i, name, n))
	}

	return i
}

func sliceFn(args []cell.Value) cell.Value {
	l, ok := args[0].(*cell.List)
	if !ok {
		rerr.Throw(typeError("slice", args))
	}

	start, okS := args[1].(cell.Number)
	end, okE := args[2].(cell.Number)

	if !okS || !okE {
		rerr.Throw(typeError("slice", args))
	}

	i, j := int(start), int(end)
	if i < 0 || j < i || j > len(l.Items) {
		rerr.Throw(rerr.New(rerr.Evaluation, "slice bounds [%d:%d] out of range (length %d)", i, j, len(l.Items)))
	}

	return cell.NewList(l.Items[i:j]...)
}

// delIns removes every element from start to the end of the list and
// splices in replacement's elements in their place, returning the
// removed span.
func delIns(args []cell.Value) cell.Value {
	l, ok := args[0].(*cell.List)
	if !ok {
		rerr.Throw(typeError("del-ins", args))
	}

	start, okS := args[1].(cell.Number)

	if !okS {
		rerr.Throw(typeError("del-ins", args))
	}

	replacement, ok := args[2].(*cell.List)
	if !ok {
		rerr.Throw(typeError("del-ins", args))
	}

	i := int(start)
	if i < 0 || i > len(l.Items) {
		rerr.Throw(rerr.New(rerr.Evaluation, "index %d out of range for 'del-ins' (length %d)", i, len(l.Items)))
	}

	removed := cell.NewList(l.Items[i:]...)

	rest := make([]cell.Value, 0, i+len(replacement.Items))
	rest = append(rest, l.Items[:i]...)
	rest = append(rest, replacement.Items...)
	l.Items = rest

	return removed
}

func get(args []cell.Value) cell.Value {
	switch seq := args[0].(type) {
	case *cell.List:
		i := index("get", args[1], len(seq.Items))
		return seq.Items[i]
	case *cell.Dict:
		v, ok := seq.Get(args[1])
		if !ok {
			rerr.Throw(rerr.New(rerr.Evaluation, "key not found in 'get'"))
		}

		return v
	}

	rerr.Throw(typeError("get", args))

	panic("unreachable")
}

// tryget returns unit, rather than raising, when the index is out of
// range or the dict key is missing (spec.md §4.5).
func tryget(args []cell.Value) cell.Value {
	switch seq := args[0].(type) {
	case *cell.List:
		n, ok := args[1].(cell.Number)
		if !ok {
			return cell.Unit
		}

		i := int(n)
		if i < 0 || i >= len(seq.Items) {
			return cell.Unit
		}

		return seq.Items[i]
	case *cell.Dict:
		v, ok := seq.Get(args[1])
		if !ok {
			return cell.Unit
		}

		return v
	}

	rerr.Throw(typeError("tryget", args))

	panic("unreachable")
}

func set(args []cell.Value) cell.Value {
	switch seq := args[0].(type) {
	case *cell.List:
		i := index("set", args[1], len(seq.Items))
		seq.Items[i] = args[2]

		return args[2]
	case *cell.Dict:
		seq.Set(args[1], args[2])
		return args[2]
	}

	rerr.Throw(typeError("set", args))

	panic("unreachable")
}

// tryset returns unit, rather than raising, when the index is out of
// range; otherwise it returns the value just set (spec.md §4.5).
func tryset(args []cell.Value) cell.Value {
	switch seq := args[0].(type) {
	case *cell.List:
		n, ok := args[1].(cell.Number)
		if !ok {
			return cell.Unit
		}

		i := int(n)
		if i < 0 || i >= len(seq.Items) {
			return cell.Unit
		}

		seq.Items[i] = args[2]

		return args[2]
	case *cell.Dict:
		seq.Set(args[1], args[2])
		return args[2]
	}

	rerr.Throw(typeError("tryset", args))

	panic("unreachable")
}

func push(args []cell.Value) cell.Value {
	l, ok := args[0].(*cell.List)
	if !ok {
		rerr.Throw(typeError("push", args))
	}

	l.Items = append(l.Items, args[1])

	return l
}

func pushFront(args []cell.Value) cell.Value {
	l, ok := args[0].(*cell.List)
	if !ok {
		rerr.Throw(typeError("push-front", args))
	}

	l.Items = append([]cell.Value{args[1]}, l.Items...)

	return l
}

func pop(v cell.Value) cell.Value {
	l, ok := v.(*cell.List)
	if !ok {
		rerr.Throw(typeError("pop", []cell.Value{v}))
	}

	if len(l.Items) == 0 {
		rerr.Throw(rerr.New(rerr.Evaluation, "'pop' on an empty list"))
	}

	last := l.Items[len(l.Items)-1]
	l.Items = l.Items[:len(l.Items)-1]

	return last
}

// popFront removes and returns the first element of v — spec.md §9's
// documented bug fix on the source's version, which mutated the tail
// instead of actually shrinking the list from the front.
func popFront(v cell.Value) cell.Value {
	l, ok := v.(*cell.List)
	if !ok {
		rerr.Throw(typeError("pop-front", []cell.Value{v}))
	}

	if len(l.Items) == 0 {
		rerr.Throw(rerr.New(rerr.Evaluation, "'pop-front' on an empty list"))
	}

	first := l.Items[0]
	l.Items = l.Items[1:]

	return first
}

func keys(v cell.Value) cell.Value {
	d, ok := v.(*cell.Dict)
	if !ok {
		rerr.Throw(typeError("keys", []cell.Value{v}))
	}

	return cell.NewList(d.Keys()...)
}

func entries(v cell.Value) cell.Value {
	d, ok := v.(*cell.Dict)
	if !ok {
		rerr.Throw(typeError("entries", []cell.Value{v}))
	}

	es := d.Entries()
	items := make([]cell.Value, len(es))

	for i, e := range es {
		items[i] = e
	}

	return cell.NewList(items...)
}
