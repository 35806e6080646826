package semantic

// IsNumeric reports whether n denotes a number-valued expression.
func IsNumeric(n Node) bool {
	switch n.Kind() {
	case KindNumber, KindIdentifier, KindNeg, KindAdd, KindMul,
		KindDiv, KindPow, KindRoot, KindApply:
		return true
	default:
		return false
	}
}

// GetTerms returns the arguments of an Add, or n itself as a single term.
func GetTerms(n Node) []Node {
	if a, ok := n.(*Add); ok {
		return a.Children()
	}
	return []Node{n}
}

// GetFactors returns the arguments of a Mul, or n itself as a single factor.
func GetFactors(n Node) []Node {
	if m, ok := n.(*Mul); ok {
		return m.Children()
	}
	return []Node{n}
}

// IsNegative reports whether n is a negation written as a unary minus.
func IsNegative(n Node) bool {
	neg, ok := n.(*Neg)
	return ok && !neg.Subtraction
}

// IsSubtraction reports whether n is a negation written as "- b".
func IsSubtraction(n Node) bool {
	neg, ok := n.(*Neg)
	return ok && neg.Subtraction
}

// DeepEquals compares two trees structurally. Ids and provenance are
// ignored; Neg.Subtraction and Mul.Implicit are not.
func DeepEquals(a, b Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return false
	}
	switch a := a.(type) {
	case *Number:
		return a.Value == b.(*Number).Value
	case *Identifier:
		return a.Name == b.(*Identifier).Name
	case *Bool:
		return a.Value == b.(*Bool).Value
	case *Neg:
		bn := b.(*Neg)
		return a.Subtraction == bn.Subtraction && DeepEquals(a.Arg, bn.Arg)
	case *Mul:
		if a.Implicit != b.(*Mul).Implicit {
			return false
		}
	case *Compare:
		if a.Op != b.(*Compare).Op {
			return false
		}
	case *Logic:
		if a.Op != b.(*Logic).Op {
			return false
		}
	case *Apply:
		if a.Func != b.(*Apply).Func {
			return false
		}
	}
	return allEqual(a.Children(), b.Children())
}

func allEqual(as, bs []Node) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !DeepEquals(as[i], bs[i]) {
			return false
		}
	}
	return true
}

// Difference returns the elements of as that have no DeepEquals partner in
// bs, treating both as multisets. Order and multiplicity follow as.
func Difference(as, bs []Node) []Node {
	used := make([]bool, len(bs))
	var result []Node
	for _, a := range as {
		if j := indexOfUnused(a, bs, used); j >= 0 {
			used[j] = true
			continue
		}
		result = append(result, a)
	}
	return result
}

// Intersection returns the elements of as that have a DeepEquals partner in
// bs, each partner matched at most once.
func Intersection(as, bs []Node) []Node {
	used := make([]bool, len(bs))
	var result []Node
	for _, a := range as {
		if j := indexOfUnused(a, bs, used); j >= 0 {
			used[j] = true
			result = append(result, a)
		}
	}
	return result
}

func indexOfUnused(n Node, ns []Node, used []bool) int {
	for j, m := range ns {
		if !used[j] && DeepEquals(n, m) {
			return j
		}
	}
	return -1
}

// SameMultiset reports whether as and bs hold the same nodes up to order.
func SameMultiset(as, bs []Node) bool {
	return len(as) == len(bs) && len(Difference(as, bs)) == 0
}
