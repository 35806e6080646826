package checker

import (
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// isInverse reports whether b is the negation of a, or a of b.
func isInverse(a, b semantic.Node) bool {
	if neg, ok := b.(*semantic.Neg); ok && semantic.DeepEquals(neg.Arg, a) {
		return true
	}
	if neg, ok := a.(*semantic.Neg); ok && semantic.DeepEquals(neg.Arg, b) {
		return true
	}
	return false
}

// addInverse cancels pairs of opposite terms. Each term is used in at most
// one pair.
func addInverse(prev, next semantic.Node, ctx *Context) *Result {
	pa, ok := prev.(*semantic.Add)
	if !ok {
		return nil
	}
	terms := pa.Children()
	canceled := make([]bool, len(terms))
	found := false
	for i := range terms {
		if canceled[i] {
			continue
		}
		for j := i + 1; j < len(terms); j++ {
			if !canceled[j] && isInverse(terms[i], terms[j]) {
				canceled[i], canceled[j] = true, true
				found = true
				break
			}
		}
	}
	if !found {
		return nil
	}

	var kept []semantic.Node
	for i, t := range terms {
		if !canceled[i] {
			kept = append(kept, t)
		}
	}
	newPrev := semantic.Sum(kept...)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"adding inverse", "adding inverse")
}

// subIsNeg rewrites every subtraction a - b as a + -b.
func subIsNeg(prev, next semantic.Node, ctx *Context) *Result {
	pa, ok := prev.(*semantic.Add)
	if !ok {
		return nil
	}
	terms := pa.Children()
	changed := false
	for i, t := range terms {
		if neg, ok := t.(*semantic.Neg); ok && neg.Subtraction {
			terms[i] = semantic.NewNeg(neg.Arg)
			changed = true
		}
	}
	if !changed {
		return nil
	}

	newPrev := semantic.NewAdd(terms...)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"subtracting is the same as adding the inverse",
		"adding the inverse is the same as subtracting")
}

// doubleNegative removes a negation of a negation, either at the top of prev
// or as a term of a sum.
func doubleNegative(prev, next semantic.Node, ctx *Context) *Result {
	var newPrev semantic.Node
	switch p := prev.(type) {
	case *semantic.Neg:
		inner, ok := p.Arg.(*semantic.Neg)
		if !ok {
			return nil
		}
		newPrev = inner.Arg
	case *semantic.Add:
		terms := p.Children()
		changed := false
		for i, t := range terms {
			outer, ok := t.(*semantic.Neg)
			if !ok {
				continue
			}
			if inner, ok := outer.Arg.(*semantic.Neg); ok {
				terms[i] = inner.Arg
				changed = true
			}
		}
		if !changed {
			return nil
		}
		newPrev = semantic.NewAdd(terms...)
	default:
		return nil
	}

	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"negative of a negative is positive", "negative of a negative is positive")
}

// moveNegInsideMul turns -(a * b) into -a * b.
func moveNegInsideMul(prev, next semantic.Node, ctx *Context) *Result {
	neg, ok := prev.(*semantic.Neg)
	if !ok || neg.Subtraction {
		return nil
	}
	m, ok := neg.Arg.(*semantic.Mul)
	if !ok {
		return nil
	}

	factors := m.Children()
	factors[0] = semantic.NewNeg(factors[0])
	newPrev := semantic.Product(m.Implicit, factors...)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"moving negative inside multiplication", "moving negative outside multiplication")
}

// moveNegToFirstFactor turns a * -b into -a * b.
func moveNegToFirstFactor(prev, next semantic.Node, ctx *Context) *Result {
	m, ok := prev.(*semantic.Mul)
	if !ok {
		return nil
	}
	factors := m.Children()
	idx := -1
	for i, f := range factors[1:] {
		if semantic.IsNegative(f) {
			idx = i + 1
			break
		}
	}
	if idx < 0 {
		return nil
	}

	factors[idx] = factors[idx].(*semantic.Neg).Arg
	factors[0] = semantic.NewNeg(factors[0])
	newPrev := semantic.Product(m.Implicit, factors...)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"moving negative to first factor", "moving negative to first factor")
}

// negIsMulNegOne turns -a into -1 * a. Negated literals and double
// negations are left to the other rules.
func negIsMulNegOne(prev, next semantic.Node, ctx *Context) *Result {
	neg, ok := prev.(*semantic.Neg)
	if !ok || neg.Subtraction {
		return nil
	}
	switch neg.Arg.Kind() {
	case semantic.KindNumber, semantic.KindNeg:
		return nil
	}
	if m, ok := neg.Arg.(*semantic.Mul); ok && isNumber(m.Args[0], 1) {
		return nil
	}

	newPrev := semantic.NewMul(semantic.NewNeg(semantic.NewNumber("1")), neg.Arg)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"negation is the same as multiplying by negative one",
		"multiplying by negative one is the same as negation")
}
