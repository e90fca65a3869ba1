// Released under an MIT license. See LICENSE.

package cell

import "github.com/rumlisp/rumlisp/internal/ast"

// Closure is a user-defined routine: a parameter list, a body, and the
// environment that was live at the point of definition, captured by
// reference (spec.md §3 "A closure captures the environment alive at
// the point of its definition, by reference"). Grounded on oh's
// internal/engine/task/closure.go Closure{Body, Labels, Scope} shape.
type Closure struct {
	Label   string // For stack traces; "" for an anonymous lambda.
	Params  []string
	Body    ast.Node
	Capture Scope
}

func (c *Closure) Name() string { return "closure" }

func (c *Closure) Equal(other Value) bool {
	o, ok := other.(*Closure)
	return ok && c == o
}

// IsClosure reports whether v is a *Closure.
func IsClosure(v Value) bool {
	_, ok := v.(*Closure)
	return ok
}

// ToClosure returns v as a *Closure, panicking if it is not one.
func ToClosure(v Value) *Closure {
	c, ok := v.(*Closure)
	if !ok {
		panic("not a closure")
	}

	return c
}
