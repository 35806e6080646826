package checker

import (
	"slices"

	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// sideSplit breaks an equation side into the parts an operation applied to
// both sides adds: terms for addition, factors for multiplication.
type sideSplit struct {
	split   func(semantic.Node) []semantic.Node
	combine func(template semantic.Node, parts []semantic.Node) semantic.Node
}

var (
	termSplit = sideSplit{
		split: semantic.GetTerms,
		combine: func(_ semantic.Node, parts []semantic.Node) semantic.Node {
			return semantic.Sum(parts...)
		},
	}
	factorSplit = sideSplit{
		split: semantic.GetFactors,
		combine: func(template semantic.Node, parts []semantic.Node) semantic.Node {
			return semantic.Product(implicitOf(template), parts...)
		},
	}
)

// balance is what an operation applied to every side of an equation added.
type balance struct {
	prev, next *semantic.Eq
	// added[i] holds the parts of next side i missing from prev side i
	added [][]semantic.Node
	canon int
}

// findBalance requires every part of each prev side to survive in the
// matching next side. It returns nil when the equations do not line up or
// nothing was added.
func findBalance(prev, next semantic.Node, sp sideSplit) *balance {
	pe, ok := prev.(*semantic.Eq)
	if !ok {
		return nil
	}
	ne, ok := next.(*semantic.Eq)
	if !ok || len(pe.Args) != len(ne.Args) {
		return nil
	}

	b := &balance{prev: pe, next: ne, added: make([][]semantic.Node, len(pe.Args))}
	anything := false
	for i := range pe.Args {
		pp, np := sp.split(pe.Args[i]), sp.split(ne.Args[i])
		if len(semantic.Difference(pp, np)) > 0 {
			return nil
		}
		b.added[i] = semantic.Difference(np, pp)
		anything = anything || len(b.added[i]) > 0
	}
	if !anything {
		return nil
	}

	// the side that added the fewest parts describes the operation
	for i := range b.added {
		if len(b.added[i]) < len(b.added[b.canon]) {
			b.canon = i
		}
	}
	return b
}

func (b *balance) allAdded() []semantic.Node {
	return slices.Concat(b.added...)
}

// consistent reports whether every side added something equivalent to the
// canonical side.
func (b *balance) consistent(ctx *Context, sp sideSplit) bool {
	canon := b.added[b.canon]
	if len(canon) == 0 {
		return false
	}
	spec := ctx.withoutMistakes()
	for i, parts := range b.added {
		if i == b.canon {
			continue
		}
		if len(parts) == 0 {
			return false
		}
		want := sp.combine(b.next.Args[b.canon], canon)
		got := sp.combine(b.next.Args[i], parts)
		if spec.Check(want, got) == nil {
			return false
		}
	}
	return true
}

// bridge applies the canonical parts to every prev side, following the
// order of next where the sides added the same number of parts.
func (b *balance) bridge(sp sideSplit) semantic.Node {
	canon := b.added[b.canon]
	sides := make([]semantic.Node, len(b.prev.Args))
	for i, side := range b.prev.Args {
		pp := sp.split(side)
		var parts []semantic.Node
		if len(b.added[i]) == len(canon) {
			parts = followOrder(pp, sp.split(b.next.Args[i]), canon)
		} else {
			parts = slices.Concat(pp, canon)
		}
		sides[i] = sp.combine(b.next.Args[i], parts)
	}
	return semantic.Tag(semantic.NewEq(sides...), b.prev.Provenance())
}

// followOrder lays out kept and extra in the order of target: positions of
// target matching a kept node take it, the rest take extra in turn.
func followOrder(kept, target, extra []semantic.Node) []semantic.Node {
	used := make([]bool, len(kept))
	out := make([]semantic.Node, 0, len(target))
	k := 0
	for _, t := range target {
		matched := false
		for i, n := range kept {
			if !used[i] && semantic.DeepEquals(n, t) {
				used[i] = true
				out = append(out, n)
				matched = true
				break
			}
		}
		if !matched && k < len(extra) {
			out = append(out, extra[k])
			k++
		}
	}
	return out
}

// checkAddSub recognizes the same value added to, or subtracted from, every
// side of an equation.
func checkAddSub(prev, next semantic.Node, ctx *Context) *Result {
	b := findBalance(prev, next, termSplit)
	if b == nil {
		return nil
	}
	if !b.consistent(ctx, termSplit) {
		ctx.ReportMistake(EqnAddDiff, nil, b.allAdded())
		return nil
	}

	newPrev := b.bridge(termSplit)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}

	if !slices.ContainsFunc(b.added[b.canon], func(n semantic.Node) bool { return !semantic.IsSubtraction(n) }) {
		return correctResult(prev, newPrev, ctx, nil, r.Steps,
			"subtracting the same value from both sides",
			"removing subtracting the same value from both sides")
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"adding the same value to both sides",
		"removing adding the same value to both sides")
}

// checkMul recognizes every side of an equation multiplied by the same
// non-zero value.
func checkMul(prev, next semantic.Node, ctx *Context) *Result {
	b := findBalance(prev, next, factorSplit)
	if b == nil {
		return nil
	}
	if !b.consistent(ctx, factorSplit) {
		ctx.ReportMistake(EqnMulDiff, nil, b.allAdded())
		return nil
	}
	factor := semantic.Product(false, b.added[b.canon]...)
	if v, ok := ctx.eval(factor); ok && v.IsZero() {
		return nil
	}

	newPrev := b.bridge(factorSplit)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"multiplying both sides by the same value",
		"removing multiplication of both sides by the same value")
}

// checkDiv recognizes every side of an equation divided by the same
// non-zero value.
func checkDiv(prev, next semantic.Node, ctx *Context) *Result {
	pe, ok := prev.(*semantic.Eq)
	if !ok {
		return nil
	}
	ne, ok := next.(*semantic.Eq)
	if !ok || len(pe.Args) != len(ne.Args) {
		return nil
	}

	var dens []semantic.Node
	divided := 0
	for i, side := range pe.Args {
		if d, ok := ne.Args[i].(*semantic.Div); ok && semantic.DeepEquals(d.Num, side) {
			dens = append(dens, d.Den)
			divided++
			continue
		}
		if !semantic.DeepEquals(ne.Args[i], side) {
			return nil
		}
	}
	if divided == 0 {
		return nil
	}

	spec := ctx.withoutMistakes()
	consistent := divided == len(pe.Args)
	for _, d := range dens[1:] {
		if !consistent {
			break
		}
		consistent = spec.Check(dens[0], d) != nil
	}
	if !consistent {
		ctx.ReportMistake(EqnMulDiff, nil, dens)
		return nil
	}
	if v, ok := ctx.eval(dens[0]); ok && v.IsZero() {
		return nil
	}

	sides := make([]semantic.Node, len(pe.Args))
	for i, side := range pe.Args {
		sides[i] = semantic.NewDiv(side, dens[0])
	}
	newPrev := semantic.Tag(semantic.NewEq(sides...), pe.Provenance())
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"dividing both sides by the same value",
		"removing division of both sides by the same value")
}
