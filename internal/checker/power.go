package checker

import (
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// maxPowDef bounds the exponents expanded into repeated products.
const maxPowDef = 12

// rewrite is the shape shared by the rules below: build newPrev, check it
// against next and wrap the result.
func rewrite(prev, newPrev, next semantic.Node, ctx *Context, message, reverseMessage string) *Result {
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps, message, reverseMessage)
}

func powToZero(prev, next semantic.Node, ctx *Context) *Result {
	p, ok := prev.(*semantic.Pow)
	if !ok || !isNumber(p.Exp, 0) {
		return nil
	}
	return rewrite(prev, semantic.NewNumber("1"), next, ctx,
		"anything to the zero is one", "anything to the zero is one")
}

func powToOne(prev, next semantic.Node, ctx *Context) *Result {
	p, ok := prev.(*semantic.Pow)
	if !ok || !isNumber(p.Exp, 1) {
		return nil
	}
	return rewrite(prev, p.Base, next, ctx,
		"anything to the one is itself", "anything to the one is itself")
}

func powOfOne(prev, next semantic.Node, ctx *Context) *Result {
	p, ok := prev.(*semantic.Pow)
	if !ok || !isNumber(p.Base, 1) {
		return nil
	}
	return rewrite(prev, semantic.NewNumber("1"), next, ctx,
		"one to any power is one", "one to any power is one")
}

func powOfZero(prev, next semantic.Node, ctx *Context) *Result {
	p, ok := prev.(*semantic.Pow)
	if !ok || !isNumber(p.Base, 0) || isNumber(p.Exp, 0) {
		return nil
	}
	return rewrite(prev, semantic.NewNumber("0"), next, ctx,
		"zero to any power is zero", "zero to any power is zero")
}

// baseAndExp reads x^n as (x, n) and any other node as (x, nil).
func baseAndExp(n semantic.Node) (semantic.Node, semantic.Node) {
	if p, ok := n.(*semantic.Pow); ok {
		return p.Base, p.Exp
	}
	return n, nil
}

// mulPowsSameBase merges the first group of powers sharing a base,
// x^a * x^b -> x^(a + b).
func mulPowsSameBase(prev, next semantic.Node, ctx *Context) *Result {
	m, ok := prev.(*semantic.Mul)
	if !ok {
		return nil
	}
	factors := m.Children()
	for i, f := range factors {
		base, exp := baseAndExp(f)
		if exp == nil {
			continue
		}
		group := []semantic.Node{f}
		exps := []semantic.Node{exp}
		for _, g := range factors[i+1:] {
			b, e := baseAndExp(g)
			if e != nil && semantic.DeepEquals(b, base) {
				group = append(group, g)
				exps = append(exps, e)
			}
		}
		if len(group) < 2 {
			continue
		}
		merged := semantic.NewPow(base, semantic.NewAdd(exps...))
		newPrev := semantic.Product(m.Implicit, replaceRun(factors, group, merged)...)
		return rewrite(prev, newPrev, next, ctx,
			"multiplying powers adds exponents", "multiplying powers adds exponents")
	}
	return nil
}

// divPowsSameBase turns x^a / x^b into x^(a - b).
func divPowsSameBase(prev, next semantic.Node, ctx *Context) *Result {
	d, ok := prev.(*semantic.Div)
	if !ok {
		return nil
	}
	nb, ne := baseAndExp(d.Num)
	db, de := baseAndExp(d.Den)
	if ne == nil || de == nil || !semantic.DeepEquals(nb, db) {
		return nil
	}
	newPrev := semantic.NewPow(nb, semantic.NewAdd(ne, semantic.NewSub(de)))
	return rewrite(prev, newPrev, next, ctx,
		"dividing powers subtracts exponents", "dividing powers subtracts exponents")
}

// powNegExp turns x^-n into 1 / x^n. Its dual is oneOverPowToNegPow.
func powNegExp(prev, next semantic.Node, ctx *Context) *Result {
	p, ok := prev.(*semantic.Pow)
	if !ok || p.Provenance() == semantic.FromOneOverPowToNegPow || !semantic.IsNegative(p.Exp) {
		return nil
	}
	exp := p.Exp.(*semantic.Neg).Arg
	newPrev := semantic.Tag(
		semantic.NewDiv(semantic.NewNumber("1"), semantic.NewPow(p.Base, exp)),
		semantic.FromPowNegExp,
	)
	return rewrite(prev, newPrev, next, ctx,
		"a negative exponent is one over the power", "a negative exponent is one over the power")
}

func oneOverPowToNegPow(prev, next semantic.Node, ctx *Context) *Result {
	d, ok := prev.(*semantic.Div)
	if !ok || d.Provenance() == semantic.FromPowNegExp || !isNumber(d.Num, 1) {
		return nil
	}
	p, ok := d.Den.(*semantic.Pow)
	if !ok {
		return nil
	}
	newPrev := semantic.Tag(
		semantic.NewPow(p.Base, semantic.NewNeg(p.Exp)),
		semantic.FromOneOverPowToNegPow,
	)
	return rewrite(prev, newPrev, next, ctx,
		"one over a power is a negative exponent", "one over a power is a negative exponent")
}

// powOfPow turns (x^a)^b into x^(a * b).
func powOfPow(prev, next semantic.Node, ctx *Context) *Result {
	p, ok := prev.(*semantic.Pow)
	if !ok {
		return nil
	}
	inner, ok := p.Base.(*semantic.Pow)
	if !ok {
		return nil
	}
	newPrev := semantic.NewPow(inner.Base, semantic.NewMul(inner.Exp, p.Exp))
	return rewrite(prev, newPrev, next, ctx,
		"power of a power multiplies exponents", "power of a power multiplies exponents")
}

// powOfMul turns (a * b)^n into a^n * b^n. Its dual is mulPowsSameExp.
func powOfMul(prev, next semantic.Node, ctx *Context) *Result {
	p, ok := prev.(*semantic.Pow)
	if !ok || p.Provenance() == semantic.FromMulPowsSameExp {
		return nil
	}
	m, ok := p.Base.(*semantic.Mul)
	if !ok {
		return nil
	}
	factors := m.Children()
	for i, f := range factors {
		factors[i] = semantic.NewPow(f, p.Exp)
	}
	newPrev := semantic.Tag(semantic.Product(m.Implicit, factors...), semantic.FromPowOfMul)
	return rewrite(prev, newPrev, next, ctx,
		"power of a product", "power of a product")
}

// mulPowsSameExp turns a^n * b^n into (a * b)^n.
func mulPowsSameExp(prev, next semantic.Node, ctx *Context) *Result {
	m, ok := prev.(*semantic.Mul)
	if !ok || m.Provenance() == semantic.FromPowOfMul {
		return nil
	}
	var bases []semantic.Node
	var exp semantic.Node
	for _, f := range m.Args {
		p, ok := f.(*semantic.Pow)
		if !ok || (exp != nil && !semantic.DeepEquals(p.Exp, exp)) {
			return nil
		}
		exp = p.Exp
		bases = append(bases, p.Base)
	}
	newPrev := semantic.Tag(
		semantic.NewPow(semantic.Product(m.Implicit, bases...), exp),
		semantic.FromMulPowsSameExp,
	)
	return rewrite(prev, newPrev, next, ctx,
		"multiplying powers with the same exponent", "multiplying powers with the same exponent")
}

// powOfDiv turns (a / b)^n into a^n / b^n. Its dual is divOfPowsSameExp.
func powOfDiv(prev, next semantic.Node, ctx *Context) *Result {
	p, ok := prev.(*semantic.Pow)
	if !ok || p.Provenance() == semantic.FromDivOfPowsSameExp {
		return nil
	}
	d, ok := p.Base.(*semantic.Div)
	if !ok {
		return nil
	}
	newPrev := semantic.Tag(
		semantic.NewDiv(semantic.NewPow(d.Num, p.Exp), semantic.NewPow(d.Den, p.Exp)),
		semantic.FromPowOfDiv,
	)
	return rewrite(prev, newPrev, next, ctx,
		"power of a quotient", "power of a quotient")
}

func divOfPowsSameExp(prev, next semantic.Node, ctx *Context) *Result {
	d, ok := prev.(*semantic.Div)
	if !ok || d.Provenance() == semantic.FromPowOfDiv {
		return nil
	}
	np, ok := d.Num.(*semantic.Pow)
	if !ok {
		return nil
	}
	dp, ok := d.Den.(*semantic.Pow)
	if !ok || !semantic.DeepEquals(np.Exp, dp.Exp) {
		return nil
	}
	newPrev := semantic.Tag(
		semantic.NewPow(semantic.NewDiv(np.Base, dp.Base), np.Exp),
		semantic.FromDivOfPowsSameExp,
	)
	return rewrite(prev, newPrev, next, ctx,
		"dividing powers with the same exponent", "dividing powers with the same exponent")
}

// powDef expands x^n, for a small positive integer n, into x * x * ... * x.
// Its dual is powDefReverse.
func powDef(prev, next semantic.Node, ctx *Context) *Result {
	p, ok := prev.(*semantic.Pow)
	if !ok || p.Provenance() == semantic.FromPowDefReverse {
		return nil
	}
	v, ok := literalValue(p.Exp)
	if !ok {
		return nil
	}
	n, ok := v.Int64()
	if !ok || n < 2 || n > maxPowDef {
		return nil
	}
	factors := make([]semantic.Node, n)
	for i := range factors {
		factors[i] = p.Base
	}
	newPrev := semantic.Tag(semantic.NewMul(factors...), semantic.FromPowDef)
	return rewrite(prev, newPrev, next, ctx,
		"definition of a power", "definition of a power")
}

// powDefReverse collects repeated factors of a product into a power.
func powDefReverse(prev, next semantic.Node, ctx *Context) *Result {
	m, ok := prev.(*semantic.Mul)
	if !ok || m.Provenance() == semantic.FromPowDef {
		return nil
	}
	factors := m.Children()
	for i, f := range factors {
		group := []semantic.Node{f}
		for _, g := range factors[i+1:] {
			if semantic.DeepEquals(f, g) {
				group = append(group, g)
			}
		}
		if len(group) < 2 {
			continue
		}
		pow := semantic.NewPow(f, numberNode(int64(len(group))))
		newPrev := semantic.Product(m.Implicit, replaceRun(factors, group, pow)...)
		newPrev = semantic.Tag(newPrev, semantic.FromPowDefReverse)
		return rewrite(prev, newPrev, next, ctx,
			"definition of a power", "definition of a power")
	}
	return nil
}
