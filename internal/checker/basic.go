package checker

import (
	"slices"

	"github.com/gnoswap-labs/stepcheck/internal/eval"
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

func exactMatch(prev, next semantic.Node, _ *Context) *Result {
	if semantic.DeepEquals(prev, next) {
		return &Result{}
	}
	return nil
}

// numberMatch accepts two literals spelling the same value, such as 2 and
// 2.0.
func numberMatch(prev, next semantic.Node, _ *Context) *Result {
	a, ok := prev.(*semantic.Number)
	if !ok {
		return nil
	}
	b, ok := next.(*semantic.Number)
	if !ok {
		return nil
	}
	va, ok := eval.Parse(a.Value)
	if !ok {
		return nil
	}
	vb, ok := eval.Parse(b.Value)
	if !ok || !va.Equals(vb) {
		return nil
	}
	return &Result{}
}

// checkArgs matches two nodes of the same kind argument by argument. Sums,
// products, sets and logic connectives match in any order: each argument of
// prev is paired with an unused argument of next, trying the same position
// first.
func checkArgs(prev, next semantic.Node, ctx *Context) *Result {
	if prev.Kind() != next.Kind() || !sameOperator(prev, next) {
		return nil
	}
	pa, na := prev.Children(), next.Children()
	if len(pa) == 0 || len(pa) != len(na) {
		return nil
	}

	switch prev.Kind() {
	case semantic.KindAdd, semantic.KindMul, semantic.KindSet, semantic.KindLogic:
		return checkUnordered(pa, na, ctx)
	default:
		results := make([]*Result, 0, len(pa))
		for i := range pa {
			r := ctx.Check(pa[i], na[i])
			if r == nil {
				return nil
			}
			results = append(results, r)
		}
		return &Result{Steps: stepsOf(results...)}
	}
}

func checkUnordered(pa, na []semantic.Node, ctx *Context) *Result {
	used := make([]bool, len(na))
	results := make([]*Result, 0, len(pa))

	for i, p := range pa {
		if !used[i] {
			if r := ctx.Check(p, na[i]); r != nil {
				used[i] = true
				results = append(results, r)
				continue
			}
		}

		spec := ctx.withoutMistakes()
		found := false
		for j, n := range na {
			if used[j] || j == i {
				continue
			}
			if r := spec.Check(p, n); r != nil {
				used[j] = true
				results = append(results, r)
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}
	return &Result{Steps: stepsOf(results...)}
}

// sameOperator compares the non-child fields that checkArgs must respect.
// The Implicit flag of products is presentation only and is ignored here.
func sameOperator(a, b semantic.Node) bool {
	switch a := a.(type) {
	case *semantic.Neg:
		return a.Subtraction == b.(*semantic.Neg).Subtraction
	case *semantic.Compare:
		return a.Op == b.(*semantic.Compare).Op
	case *semantic.Logic:
		return a.Op == b.(*semantic.Logic).Op
	case *semantic.Apply:
		return a.Func == b.(*semantic.Apply).Func
	default:
		return true
	}
}

// eqSwap applies the symmetric property of equality. It runs speculatively:
// a failed swap says nothing about the step.
func eqSwap(prev, next semantic.Node, ctx *Context) *Result {
	eq, ok := prev.(*semantic.Eq)
	if !ok || eq.Provenance() == semantic.FromEqSwap || next.Kind() != semantic.KindEq {
		return nil
	}

	sides := eq.Children()
	slices.Reverse(sides)
	newPrev := semantic.Tag(semantic.NewEq(sides...), semantic.FromEqSwap)

	r := ctx.withoutMistakes().Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"symmetric property of equality", "symmetric property of equality")
}
