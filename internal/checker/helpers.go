package checker

import (
	"strconv"

	"github.com/gnoswap-labs/stepcheck/internal/eval"
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// literalValue returns the value of a number literal, possibly negated.
func literalValue(n semantic.Node) (eval.Value, bool) {
	switch n := n.(type) {
	case *semantic.Number:
		return eval.Parse(n.Value)
	case *semantic.Neg:
		num, ok := n.Arg.(*semantic.Number)
		if !ok {
			return eval.Value{}, false
		}
		v, ok := eval.Parse(num.Value)
		return v.Neg(), ok
	default:
		return eval.Value{}, false
	}
}

func isLiteral(n semantic.Node) bool {
	_, ok := literalValue(n)
	return ok
}

func isNumber(n semantic.Node, want int64) bool {
	num, ok := n.(*semantic.Number)
	if !ok {
		return false
	}
	v, ok := eval.Parse(num.Value)
	return ok && v.EqualsInt(want)
}

// partition splits nodes into those satisfying keep and the rest, keeping
// relative order.
func partition(nodes []semantic.Node, keep func(semantic.Node) bool) (yes, no []semantic.Node) {
	for _, n := range nodes {
		if keep(n) {
			yes = append(yes, n)
		} else {
			no = append(no, n)
		}
	}
	return yes, no
}

func sumValues(nodes []semantic.Node) eval.Value {
	total := eval.Int(0)
	for _, n := range nodes {
		v, _ := literalValue(n)
		total = total.Add(v)
	}
	return total
}

func productValues(nodes []semantic.Node) eval.Value {
	total := eval.Int(1)
	for _, n := range nodes {
		v, _ := literalValue(n)
		total = total.Mul(v)
	}
	return total
}

// implicitOf reports the Implicit flag of n when it is a product.
func implicitOf(n semantic.Node) bool {
	m, ok := n.(*semantic.Mul)
	return ok && m.Implicit
}

// replaceRun returns nodes with the elements of drop removed and repl
// inserted where the first of them was. drop must be elements of nodes,
// compared by identity.
func replaceRun(nodes, drop []semantic.Node, repl ...semantic.Node) []semantic.Node {
	out := make([]semantic.Node, 0, len(nodes))
	inserted := false
	for _, n := range nodes {
		if !containsNode(drop, n) {
			out = append(out, n)
			continue
		}
		if !inserted {
			out = append(out, repl...)
			inserted = true
		}
	}
	return out
}

func containsNode(nodes []semantic.Node, n semantic.Node) bool {
	for _, m := range nodes {
		if m == n {
			return true
		}
	}
	return false
}

// matchInOrder reorders the nodes of from to follow the order of their
// DeepEquals partners in to. ok is false unless both hold the same multiset.
func matchInOrder(from, to []semantic.Node) ([]semantic.Node, bool) {
	if len(from) != len(to) {
		return nil, false
	}
	used := make([]bool, len(from))
	out := make([]semantic.Node, 0, len(to))
	for _, t := range to {
		found := false
		for i, f := range from {
			if !used[i] && semantic.DeepEquals(f, t) {
				used[i] = true
				out = append(out, f)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return out, true
}

func numberNode(n int64) semantic.Node {
	if n < 0 {
		return semantic.NewNeg(semantic.NewNumber(strconv.FormatInt(-n, 10)))
	}
	return semantic.NewNumber(strconv.FormatInt(n, 10))
}
