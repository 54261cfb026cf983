// Package logic provides the first-order vocabulary shared by every agent:
// terms, predicates and one-directional unification against ground facts.
// Types in this package are plain comparable values so they can key maps.
package logic

import (
	"strconv"
)

type termKind uint8

const (
	termNone termKind = iota
	termInt
	termSym
	termVar
)

// Term is either a Constant (integer or symbol) or a Variable.
// The zero Term is neither and never unifies.
type Term struct {
	kind termKind
	num  int
	sym  string
}

// Int returns an integer constant.
func Int(v int) Term {
	return Term{kind: termInt, num: v}
}

// Sym returns a symbolic constant such as an agent identifier.
func Sym(s string) Term {
	return Term{kind: termSym, sym: s}
}

// Var returns a query variable. Variables are never stored in a knowledge base.
func Var(name string) Term {
	return Term{kind: termVar, sym: name}
}

// IsConstant reports whether t is an integer or symbol constant.
func (t Term) IsConstant() bool {
	return t.kind == termInt || t.kind == termSym
}

// IsVar reports whether t is a variable.
func (t Term) IsVar() bool {
	return t.kind == termVar
}

// IsInt reports whether t is an integer constant.
func (t Term) IsInt() bool {
	return t.kind == termInt
}

// IntValue returns the integer payload. It is 0 for non-integer terms.
func (t Term) IntValue() int {
	if t.kind != termInt {
		return 0
	}
	return t.num
}

// SymValue returns the symbol payload, or the variable name for variables.
func (t Term) SymValue() string {
	if t.kind == termInt {
		return ""
	}
	return t.sym
}

// String renders the term the way it appears in Datalog text.
func (t Term) String() string {
	switch t.kind {
	case termInt:
		return strconv.Itoa(t.num)
	case termSym:
		return strconv.Quote(t.sym)
	case termVar:
		return t.sym
	default:
		return "_"
	}
}

// less orders constants: integers before symbols, then by value.
func (t Term) less(o Term) bool {
	if t.kind != o.kind {
		return t.kind < o.kind
	}
	if t.kind == termInt {
		return t.num < o.num
	}
	return t.sym < o.sym
}
