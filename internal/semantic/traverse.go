package semantic

import (
	set "github.com/hashicorp/go-set/v3"
)

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// IDs collects the id of every node in the given trees.
func IDs(roots ...Node) *set.Set[int] {
	ids := set.New[int](0)
	for _, r := range roots {
		Walk(r, func(n Node) bool {
			ids.Insert(n.ID())
			return true
		})
	}
	return ids
}

// WithChildren returns a copy of n with its children replaced, keeping the
// id, provenance and flags of n. children must match the shape of n.
func WithChildren(n Node, children []Node) Node {
	c := shallowCopy(n)
	switch c := c.(type) {
	case *Number, *Identifier, *Bool:
	case *Neg:
		c.Arg = children[0]
	case *Not:
		c.Arg = children[0]
	case *Add:
		requireArity(KindAdd, children, 2)
		c.Args = children
	case *Mul:
		requireArity(KindMul, children, 2)
		c.Args = children
	case *Eq:
		requireArity(KindEq, children, 2)
		c.Args = children
	case *Logic:
		requireArity(KindLogic, children, 2)
		c.Args = children
	case *Set:
		c.Elems = children
	case *Apply:
		c.Args = children
	case *Div:
		c.Num, c.Den = children[0], children[1]
	case *Pow:
		c.Base, c.Exp = children[0], children[1]
	case *Root:
		c.Radicand, c.Index = children[0], children[1]
	case *Compare:
		c.Left, c.Right = children[0], children[1]
	default:
		panic(unreachable(n))
	}
	return c
}

// Replace returns root with the subtree whose id is id swapped for repl.
// The original tree is left untouched; only the path to the replaced node is
// rebuilt. When repl is an Add replacing a non-Add term of an Add, its terms
// are spliced into the parent, and likewise for a Mul inside a Mul.
func Replace(root Node, id int, repl Node) Node {
	if root.ID() == id {
		return repl
	}
	children := root.Children()
	if len(children) == 0 {
		return root
	}

	changed := false
	rebuilt := make([]Node, 0, len(children))
	for _, c := range children {
		if c.ID() == id && splices(root, c, repl) {
			rebuilt = append(rebuilt, repl.Children()...)
			changed = true
			continue
		}
		r := Replace(c, id, repl)
		if r != c {
			changed = true
		}
		rebuilt = append(rebuilt, r)
	}
	if !changed {
		return root
	}
	return WithChildren(root, rebuilt)
}

func splices(parent, old, repl Node) bool {
	switch parent.Kind() {
	case KindAdd:
		return repl.Kind() == KindAdd && old.Kind() != KindAdd
	case KindMul:
		return repl.Kind() == KindMul && old.Kind() != KindMul
	default:
		return false
	}
}
