package semantic

import (
	"sync/atomic"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

func newHeader() header {
	return header{id: nextID()}
}

func requireArity(kind Kind, args []Node, want int) {
	if len(args) < want {
		panic(&ArityError{Kind: kind, Got: len(args), Want: want})
	}
}

// NewNumber returns a numeric literal. value must be a non-negative decimal.
func NewNumber(value string) *Number {
	return &Number{header: newHeader(), Value: value}
}

// NewIdentifier returns a variable reference.
func NewIdentifier(name string) *Identifier {
	return &Identifier{header: newHeader(), Name: name}
}

// NewNeg returns -arg written as a unary minus.
func NewNeg(arg Node) *Neg {
	return &Neg{header: newHeader(), Arg: arg}
}

// NewSub returns -arg written as the right hand side of a subtraction.
func NewSub(arg Node) *Neg {
	return &Neg{header: newHeader(), Arg: arg, Subtraction: true}
}

func NewAdd(args ...Node) *Add {
	requireArity(KindAdd, args, 2)
	return &Add{header: newHeader(), Args: append([]Node(nil), args...)}
}

// NewMul returns an explicit product (a * b).
func NewMul(args ...Node) *Mul {
	requireArity(KindMul, args, 2)
	return &Mul{header: newHeader(), Args: append([]Node(nil), args...)}
}

// NewImplicitMul returns a product written by juxtaposition (2x).
func NewImplicitMul(args ...Node) *Mul {
	m := NewMul(args...)
	m.Implicit = true
	return m
}

func NewDiv(num, den Node) *Div {
	return &Div{header: newHeader(), Num: num, Den: den}
}

func NewPow(base, exp Node) *Pow {
	return &Pow{header: newHeader(), Base: base, Exp: exp}
}

func NewRoot(radicand, index Node) *Root {
	return &Root{header: newHeader(), Radicand: radicand, Index: index}
}

// NewSqrt returns the square root of radicand.
func NewSqrt(radicand Node) *Root {
	return NewRoot(radicand, NewNumber("2"))
}

func NewEq(args ...Node) *Eq {
	requireArity(KindEq, args, 2)
	return &Eq{header: newHeader(), Args: append([]Node(nil), args...)}
}

func NewCompare(op CompareOp, left, right Node) *Compare {
	return &Compare{header: newHeader(), Op: op, Left: left, Right: right}
}

func NewBool(value bool) *Bool {
	return &Bool{header: newHeader(), Value: value}
}

func NewLogic(op LogicOp, args ...Node) *Logic {
	requireArity(KindLogic, args, 2)
	return &Logic{header: newHeader(), Op: op, Args: append([]Node(nil), args...)}
}

func NewNot(arg Node) *Not {
	return &Not{header: newHeader(), Arg: arg}
}

func NewSet(elems ...Node) *Set {
	return &Set{header: newHeader(), Elems: append([]Node(nil), elems...)}
}

func NewApply(fn string, args ...Node) *Apply {
	return &Apply{header: newHeader(), Func: fn, Args: append([]Node(nil), args...)}
}

// Sum returns the sum of terms, collapsing the degenerate cases: no terms is
// the literal 0 and a single term is returned as is.
func Sum(terms ...Node) Node {
	switch len(terms) {
	case 0:
		return NewNumber("0")
	case 1:
		return terms[0]
	default:
		return NewAdd(terms...)
	}
}

// Product returns the product of factors with the same collapsing rules as
// Sum; an empty product is the literal 1.
func Product(implicit bool, factors ...Node) Node {
	switch len(factors) {
	case 0:
		return NewNumber("1")
	case 1:
		return factors[0]
	default:
		m := NewMul(factors...)
		m.Implicit = implicit
		return m
	}
}

// Tag returns a copy of n, keeping its id, marked as built by the rule p.
func Tag(n Node, p Provenance) Node {
	c := shallowCopy(n)
	c.meta().prov = p
	return c
}

func shallowCopy(n Node) Node {
	switch n := n.(type) {
	case *Number:
		c := *n
		return &c
	case *Identifier:
		c := *n
		return &c
	case *Neg:
		c := *n
		return &c
	case *Add:
		c := *n
		return &c
	case *Mul:
		c := *n
		return &c
	case *Div:
		c := *n
		return &c
	case *Pow:
		c := *n
		return &c
	case *Root:
		c := *n
		return &c
	case *Eq:
		c := *n
		return &c
	case *Compare:
		c := *n
		return &c
	case *Bool:
		c := *n
		return &c
	case *Logic:
		c := *n
		return &c
	case *Not:
		c := *n
		return &c
	case *Set:
		c := *n
		return &c
	case *Apply:
		c := *n
		return &c
	default:
		panic(unreachable(n))
	}
}
