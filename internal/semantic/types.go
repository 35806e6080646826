package semantic

import "fmt"

// Kind identifies the variant of a node.
type Kind int

const (
	KindNumber Kind = iota
	KindIdentifier
	KindNeg
	KindAdd
	KindMul
	KindDiv
	KindPow
	KindRoot
	KindEq
	KindCompare
	KindBool
	KindLogic
	KindNot
	KindSet
	KindApply
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindIdentifier:
		return "identifier"
	case KindNeg:
		return "neg"
	case KindAdd:
		return "add"
	case KindMul:
		return "mul"
	case KindDiv:
		return "div"
	case KindPow:
		return "pow"
	case KindRoot:
		return "root"
	case KindEq:
		return "eq"
	case KindCompare:
		return "compare"
	case KindBool:
		return "bool"
	case KindLogic:
		return "logic"
	case KindNot:
		return "not"
	case KindSet:
		return "set"
	case KindApply:
		return "apply"
	default:
		return "?"
	}
}

// Provenance records which dual rule built a node. The checker uses it to
// keep two rules from undoing each other forever.
type Provenance int

const (
	FromNone Provenance = iota
	FromEqSwap
	FromPowNegExp
	FromOneOverPowToNegPow
	FromPowOfMul
	FromMulPowsSameExp
	FromPowOfDiv
	FromDivOfPowsSameExp
	FromMulFrac
	FromDivIsMulByOneOver
	FromPowDef
	FromPowDefReverse
)

// Node is an expression tree node. The set of implementations is closed.
type Node interface {
	ID() int
	Kind() Kind
	Provenance() Provenance
	// Children returns the direct subexpressions in positional order.
	// The returned slice belongs to the caller.
	Children() []Node
	String() string

	meta() *header
}

type header struct {
	id   int
	prov Provenance
}

func (h *header) ID() int { return h.id }
func (h *header) Provenance() Provenance { return h.prov }
func (h *header) meta() *header { return h }

// Number is a non-negative numeric literal, kept as written ("17.8").
type Number struct {
	header
	Value string
}

func (*Number) Kind() Kind { return KindNumber }
func (*Number) Children() []Node { return nil }
func (n *Number) String() string { return Print(n) }

// Identifier is a variable name.
type Identifier struct {
	header
	Name string
}

func (*Identifier) Kind() Kind { return KindIdentifier }
func (*Identifier) Children() []Node { return nil }
func (n *Identifier) String() string { return Print(n) }

// Neg is a negation. Subtraction marks a negation written as "a - b".
type Neg struct {
	header
	Arg         Node
	Subtraction bool
}

func (*Neg) Kind() Kind { return KindNeg }
func (n *Neg) Children() []Node { return []Node{n.Arg} }
func (n *Neg) String() string { return Print(n) }

// Add is a sum of two or more terms.
type Add struct {
	header
	Args []Node
}

func (*Add) Kind() Kind { return KindAdd }
func (n *Add) Children() []Node { return append([]Node(nil), n.Args...) }
func (n *Add) String() string { return Print(n) }

// Mul is a product of two or more factors. Implicit marks juxtaposition.
type Mul struct {
	header
	Args     []Node
	Implicit bool
}

func (*Mul) Kind() Kind { return KindMul }
func (n *Mul) Children() []Node { return append([]Node(nil), n.Args...) }
func (n *Mul) String() string { return Print(n) }

// Div is a fraction.
type Div struct {
	header
	Num Node
	Den Node
}

func (*Div) Kind() Kind { return KindDiv }
func (n *Div) Children() []Node { return []Node{n.Num, n.Den} }
func (n *Div) String() string { return Print(n) }

// Pow is a power.
type Pow struct {
	header
	Base Node
	Exp  Node
}

func (*Pow) Kind() Kind { return KindPow }
func (n *Pow) Children() []Node { return []Node{n.Base, n.Exp} }
func (n *Pow) String() string { return Print(n) }

// Root is the Index-th root of Radicand.
type Root struct {
	header
	Radicand Node
	Index    Node
}

func (*Root) Kind() Kind { return KindRoot }
func (n *Root) Children() []Node { return []Node{n.Radicand, n.Index} }
func (n *Root) String() string { return Print(n) }

// Eq is an equality chain of two or more sides.
type Eq struct {
	header
	Args []Node
}

func (*Eq) Kind() Kind { return KindEq }
func (n *Eq) Children() []Node { return append([]Node(nil), n.Args...) }
func (n *Eq) String() string { return Print(n) }

// CompareOp is a relational operator other than equality.
type CompareOp int

const (
	OpNeq CompareOp = iota
	OpLt
	OpLte
	OpGt
	OpGte
)

func (op CompareOp) String() string {
	switch op {
	case OpNeq:
		return "!="
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	default:
		return "?"
	}
}

// Compare is a binary relation.
type Compare struct {
	header
	Op    CompareOp
	Left  Node
	Right Node
}

func (*Compare) Kind() Kind { return KindCompare }
func (n *Compare) Children() []Node { return []Node{n.Left, n.Right} }
func (n *Compare) String() string { return Print(n) }

// Bool is a truth value.
type Bool struct {
	header
	Value bool
}

func (*Bool) Kind() Kind { return KindBool }
func (*Bool) Children() []Node { return nil }
func (n *Bool) String() string { return Print(n) }

// LogicOp is a variadic boolean connective.
type LogicOp int

const (
	OpAnd LogicOp = iota
	OpOr
)

func (op LogicOp) String() string {
	if op == OpAnd {
		return "and"
	}
	return "or"
}

// Logic joins two or more boolean expressions.
type Logic struct {
	header
	Op   LogicOp
	Args []Node
}

func (*Logic) Kind() Kind { return KindLogic }
func (n *Logic) Children() []Node { return append([]Node(nil), n.Args...) }
func (n *Logic) String() string { return Print(n) }

// Not is boolean negation.
type Not struct {
	header
	Arg Node
}

func (*Not) Kind() Kind { return KindNot }
func (n *Not) Children() []Node { return []Node{n.Arg} }
func (n *Not) String() string { return Print(n) }

// Set is a finite set literal.
type Set struct {
	header
	Elems []Node
}

func (*Set) Kind() Kind { return KindSet }
func (n *Set) Children() []Node { return append([]Node(nil), n.Elems...) }
func (n *Set) String() string { return Print(n) }

// Apply is a named function applied to arguments, e.g. sin(x) or lim(...).
// The checker treats it as opaque.
type Apply struct {
	header
	Func string
	Args []Node
}

func (*Apply) Kind() Kind { return KindApply }
func (n *Apply) Children() []Node { return append([]Node(nil), n.Args...) }
func (n *Apply) String() string { return Print(n) }

// ArityError reports a variadic node built with too few arguments.
type ArityError struct {
	Kind Kind
	Got  int
	Want int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("invalid arity for %s: got %d arguments, want at least %d", e.Kind, e.Got, e.Want)
}

func unreachable(n Node) string {
	return fmt.Sprintf("semantic: unexpected node type %T", n)
}
