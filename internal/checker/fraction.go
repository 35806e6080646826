package checker

import (
	"github.com/gnoswap-labs/stepcheck/internal/eval"
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

func divByOne(prev, next semantic.Node, ctx *Context) *Result {
	d, ok := prev.(*semantic.Div)
	if !ok || !isNumber(d.Den, 1) {
		return nil
	}
	return rewrite(prev, d.Num, next, ctx, "division by one", "division by one")
}

// isReciprocal reports whether b is 1 / a.
func isReciprocal(a, b semantic.Node) bool {
	d, ok := b.(*semantic.Div)
	return ok && isNumber(d.Num, 1) && semantic.DeepEquals(d.Den, a)
}

// mulInverse cancels the first adjacent pair a * 1/a of a product.
func mulInverse(prev, next semantic.Node, ctx *Context) *Result {
	m, ok := prev.(*semantic.Mul)
	if !ok {
		return nil
	}
	factors := m.Children()
	for i := 0; i+1 < len(factors); i++ {
		a, b := factors[i], factors[i+1]
		if !isReciprocal(a, b) && !isReciprocal(b, a) {
			continue
		}
		if ctx.isZero(a) || ctx.isZero(b) {
			continue
		}
		var repl []semantic.Node
		if len(factors) == 2 {
			repl = []semantic.Node{semantic.NewNumber("1")}
		}
		newPrev := semantic.Product(m.Implicit, replaceRun(factors, []semantic.Node{a, b}, repl...)...)
		return rewrite(prev, newPrev, next, ctx,
			"multiplying by the inverse", "multiplying by the inverse")
	}
	return nil
}

// divByFrac turns a / (b / c) into a * c / b. A denominator written with a
// negative exponent is first rewritten as a fraction.
func divByFrac(prev, next semantic.Node, ctx *Context) *Result {
	d, ok := prev.(*semantic.Div)
	if !ok {
		return nil
	}

	var before []Step
	den := d.Den
	if p, ok := den.(*semantic.Pow); ok && semantic.IsNegative(p.Exp) {
		asFrac := semantic.NewDiv(semantic.NewNumber("1"), semantic.NewPow(p.Base, p.Exp.(*semantic.Neg).Arg))
		before = append(before, Step{
			Message: "a negative exponent is one over the power",
			Before:  den,
			After:   asFrac,
		})
		den = asFrac
	}
	frac, ok := den.(*semantic.Div)
	if !ok || ctx.isZero(frac.Num) || ctx.isZero(frac.Den) {
		return nil
	}

	newPrev := semantic.NewMul(d.Num, semantic.NewDiv(frac.Den, frac.Num))
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, before, r.Steps,
		"dividing by a fraction is the same as multiplying by the reciprocal",
		"multiplying by the reciprocal is the same as dividing by a fraction")
}

// coefficient splits factors into a single integer literal and the rest.
// With zero or several literals there is no coefficient.
func coefficient(factors []semantic.Node) (*semantic.Number, []semantic.Node) {
	var coef *semantic.Number
	var rest []semantic.Node
	count := 0
	for _, f := range factors {
		if num, ok := f.(*semantic.Number); ok {
			if v, ok := eval.Parse(num.Value); ok && v.IsInt() {
				coef = num
				count++
				continue
			}
		}
		rest = append(rest, f)
	}
	if count != 1 {
		return nil, factors
	}
	return coef, rest
}

// cancelFrac removes every common factor of numerator and denominator at
// once, including the greatest common divisor of integer coefficients.
// Coefficients are split into primes first when only part of them cancels.
func cancelFrac(prev, next semantic.Node, ctx *Context) *Result {
	d, ok := prev.(*semantic.Div)
	if !ok || ctx.isZero(d.Den) {
		return nil
	}
	numCoef, numRest := coefficient(semantic.GetFactors(d.Num))
	denCoef, denRest := coefficient(semantic.GetFactors(d.Den))

	common := semantic.Intersection(numRest, denRest)
	g := eval.Int(1)
	var numVal, denVal eval.Value
	if numCoef != nil && denCoef != nil {
		numVal, _ = eval.Parse(numCoef.Value)
		denVal, _ = eval.Parse(denCoef.Value)
		g = eval.GCD(numVal, denVal)
	}
	gcd := !g.EqualsInt(1) && !g.IsZero()
	if len(common) == 0 && !gcd {
		return nil
	}

	var before []Step
	newNum := semantic.Difference(numRest, common)
	newDen := semantic.Difference(denRest, common)
	if gcd {
		before = append(before, primeSteps(numCoef, numVal, g)...)
		before = append(before, primeSteps(denCoef, denVal, g)...)
		newNum = withCoefficient(numVal, g, newNum)
		newDen = withCoefficient(denVal, g, newDen)
	} else {
		newNum = withCoefficientNode(numCoef, newNum)
		newDen = withCoefficientNode(denCoef, newDen)
	}

	num := semantic.Product(implicitOf(d.Num), newNum...)
	var newPrev semantic.Node = num
	if len(newDen) > 0 {
		newPrev = semantic.NewDiv(num, semantic.Product(implicitOf(d.Den), newDen...))
	}

	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, before, r.Steps,
		"canceling factors", "canceling factors")
}

// primeSteps records the prime factorization of a coefficient that only
// partly cancels.
func primeSteps(coef *semantic.Number, v, g eval.Value) []Step {
	if v.Equals(g) {
		return nil
	}
	primes := eval.PrimeDecomp(v)
	if len(primes) < 2 {
		return nil
	}
	factors := make([]semantic.Node, len(primes))
	for i, p := range primes {
		factors[i] = numberNode(p)
	}
	return []Step{{
		Message: "prime factorization",
		Before:  coef,
		After:   semantic.NewMul(factors...),
	}}
}

func withCoefficient(v, g eval.Value, rest []semantic.Node) []semantic.Node {
	reduced, _ := v.Quo(g)
	if reduced.EqualsInt(1) {
		return rest
	}
	return append([]semantic.Node{reduced.Node()}, rest...)
}

func withCoefficientNode(coef *semantic.Number, rest []semantic.Node) []semantic.Node {
	if coef == nil {
		return rest
	}
	return append([]semantic.Node{coef}, rest...)
}

// mulFrac multiplies all fractions of a product into one.
// Its dual is divIsMulByOneOver.
func mulFrac(prev, next semantic.Node, ctx *Context) *Result {
	m, ok := prev.(*semantic.Mul)
	if !ok || m.Provenance() == semantic.FromDivIsMulByOneOver {
		return nil
	}
	var nums, dens []semantic.Node
	for _, f := range m.Args {
		if d, ok := f.(*semantic.Div); ok {
			nums = append(nums, d.Num)
			dens = append(dens, d.Den)
			continue
		}
		nums = append(nums, f)
	}
	if len(dens) == 0 {
		return nil
	}

	newPrev := semantic.Tag(
		semantic.NewDiv(semantic.Product(m.Implicit, nums...), semantic.Product(false, dens...)),
		semantic.FromMulFrac,
	)
	return rewrite(prev, newPrev, next, ctx,
		"multiplying fractions", "multiplying fractions")
}

// divIsMulByOneOver turns a / b into a * 1/b.
func divIsMulByOneOver(prev, next semantic.Node, ctx *Context) *Result {
	d, ok := prev.(*semantic.Div)
	if !ok || d.Provenance() == semantic.FromMulFrac || isNumber(d.Num, 1) || ctx.isZero(d.Den) {
		return nil
	}
	newPrev := semantic.Tag(
		semantic.NewMul(d.Num, semantic.NewDiv(semantic.NewNumber("1"), d.Den)),
		semantic.FromDivIsMulByOneOver,
	)
	return rewrite(prev, newPrev, next, ctx,
		"dividing is the same as multiplying by one over", "multiplying by one over is the same as dividing")
}
