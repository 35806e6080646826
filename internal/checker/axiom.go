package checker

import (
	"slices"

	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// commuteAddition reorders the terms of prev to the order of next when both
// hold the same terms.
func commuteAddition(prev, next semantic.Node, ctx *Context) *Result {
	pa, ok := prev.(*semantic.Add)
	if !ok {
		return nil
	}
	na, ok := next.(*semantic.Add)
	if !ok {
		return nil
	}
	ordered, ok := matchInOrder(pa.Children(), na.Children())
	if !ok || slices.Equal(ordered, pa.Children()) {
		return nil
	}

	newPrev := semantic.NewAdd(ordered...)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"commutative property", "commutative property")
}

// commuteMultiplication is commuteAddition for factors. The rebuilt product
// takes the Implicit flag of next.
func commuteMultiplication(prev, next semantic.Node, ctx *Context) *Result {
	pm, ok := prev.(*semantic.Mul)
	if !ok {
		return nil
	}
	nm, ok := next.(*semantic.Mul)
	if !ok {
		return nil
	}
	ordered, ok := matchInOrder(pm.Children(), nm.Children())
	if !ok || slices.Equal(ordered, pm.Children()) {
		return nil
	}

	newPrev := semantic.Product(nm.Implicit, ordered...)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"commutative property", "commutative property")
}

// associativeAddition flattens sums nested directly inside a sum.
func associativeAddition(prev, next semantic.Node, ctx *Context) *Result {
	pa, ok := prev.(*semantic.Add)
	if !ok {
		return nil
	}
	var terms []semantic.Node
	nested := false
	for _, t := range pa.Args {
		if inner, ok := t.(*semantic.Add); ok {
			terms = append(terms, inner.Children()...)
			nested = true
			continue
		}
		terms = append(terms, t)
	}
	if !nested {
		return nil
	}

	newPrev := semantic.NewAdd(terms...)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"associative property", "associative property")
}

func associativeMultiplication(prev, next semantic.Node, ctx *Context) *Result {
	pm, ok := prev.(*semantic.Mul)
	if !ok {
		return nil
	}
	var factors []semantic.Node
	nested := false
	for _, f := range pm.Args {
		if inner, ok := f.(*semantic.Mul); ok {
			factors = append(factors, inner.Children()...)
			nested = true
			continue
		}
		factors = append(factors, f)
	}
	if !nested {
		return nil
	}

	newPrev := semantic.Product(pm.Implicit, factors...)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"associative property", "associative property")
}

// addZero drops literal zero terms. When prev has no zero terms but next is
// prev with some terms removed, those terms were not zero and the step is
// reported as a mistake.
func addZero(prev, next semantic.Node, ctx *Context) *Result {
	pa, ok := prev.(*semantic.Add)
	if !ok {
		return nil
	}
	zeros, kept := partition(pa.Children(), func(n semantic.Node) bool { return isNumber(n, 0) })
	if len(zeros) == 0 {
		reportNonIdentity(ExprAddNonIdentity, pa.Children(), semantic.GetTerms(next), ctx)
		return nil
	}

	newPrev := semantic.Sum(kept...)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"adding zero", "adding zero")
}

// mulOne drops literal one factors, the multiplicative counterpart of
// addZero.
func mulOne(prev, next semantic.Node, ctx *Context) *Result {
	pm, ok := prev.(*semantic.Mul)
	if !ok {
		return nil
	}
	ones, kept := partition(pm.Children(), func(n semantic.Node) bool { return isNumber(n, 1) })
	if len(ones) == 0 {
		reportNonIdentity(ExprMulNonIdentity, pm.Children(), semantic.GetFactors(next), ctx)
		return nil
	}

	newPrev := semantic.Product(pm.Implicit, kept...)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"multiplying by one", "multiplying by one")
}

// reportNonIdentity flags parts of prev that vanished in next when next kept
// every other part unchanged.
func reportNonIdentity(id MistakeID, prevParts, nextParts []semantic.Node, ctx *Context) {
	if !ctx.RecordsMistakes() || len(semantic.Difference(nextParts, prevParts)) > 0 {
		return
	}
	if extra := semantic.Difference(prevParts, nextParts); len(extra) > 0 {
		ctx.ReportMistake(id, extra, nil)
	}
}

// mulZero collapses a product with a literal zero factor.
func mulZero(prev, next semantic.Node, ctx *Context) *Result {
	pm, ok := prev.(*semantic.Mul)
	if !ok || !slices.ContainsFunc(pm.Args, func(n semantic.Node) bool { return isNumber(n, 0) }) {
		return nil
	}

	newPrev := semantic.NewNumber("0")
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"multiplication by zero", "multiplication by zero")
}
