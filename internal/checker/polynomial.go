package checker

import (
	"slices"

	"github.com/gnoswap-labs/stepcheck/internal/eval"
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// likeTerm is a term of a sum read as coefficient times variable part.
type likeTerm struct {
	node semantic.Node
	// coef carries the sign of the term
	coef     eval.Value
	coefNode semantic.Node
	vars     []semantic.Node
	// evalStep is set when the coefficient was a product of literals
	evalStep *Step
}

func splitTerm(t semantic.Node) likeTerm {
	inner, negative := t, false
	if neg, ok := t.(*semantic.Neg); ok {
		inner, negative = neg.Arg, true
	}
	lits, vars := partition(semantic.GetFactors(inner), isLiteral)

	lt := likeTerm{node: t, vars: vars, coef: productValues(lits)}
	switch {
	case len(lits) == 0:
		lt.coefNode = semantic.NewNumber("1")
	case len(lits) == 1:
		lt.coefNode = lits[0]
	default:
		lt.coefNode = lt.coef.Node()
		if len(vars) > 0 {
			factors := append([]semantic.Node{lt.coefNode}, vars...)
			lt.evalStep = &Step{
				Message: "evaluation of multiplication",
				Before:  inner,
				After:   semantic.Product(implicitOf(inner), factors...),
			}
		}
	}
	if negative {
		lt.coef = lt.coef.Neg()
	}
	return lt
}

type likeGroup struct {
	vars  []semantic.Node
	terms []likeTerm
}

// collectLikeTerms sums the coefficients of terms sharing a variable part.
// Groups keep the order of their first term; terms without variables are
// moved to the end unchanged.
func collectLikeTerms(prev, next semantic.Node, ctx *Context) *Result {
	pa, ok := prev.(*semantic.Add)
	if !ok {
		return nil
	}

	var groups []*likeGroup
	var constants []semantic.Node
	for _, t := range pa.Args {
		lt := splitTerm(t)
		if len(lt.vars) == 0 {
			constants = append(constants, t)
			continue
		}
		idx := slices.IndexFunc(groups, func(g *likeGroup) bool {
			return semantic.SameMultiset(g.vars, lt.vars)
		})
		if idx < 0 {
			groups = append(groups, &likeGroup{vars: lt.vars})
			idx = len(groups) - 1
		}
		groups[idx].terms = append(groups[idx].terms, lt)
	}
	if !slices.ContainsFunc(groups, func(g *likeGroup) bool { return len(g.terms) > 1 }) {
		return nil
	}

	var (
		terms    []semantic.Node
		before   []Step
		substeps []Step
	)
	for _, g := range groups {
		if len(g.terms) == 1 {
			terms = append(terms, g.terms[0].node)
			continue
		}

		total := eval.Int(0)
		coefs := make([]semantic.Node, 0, len(g.terms))
		for i, lt := range g.terms {
			total = total.Add(lt.coef)
			coefs = append(coefs, signedCoefficient(lt, i == 0))
			if lt.evalStep != nil {
				before = append(before, *lt.evalStep)
			}
		}
		substeps = append(substeps, Step{
			Message: "evaluation of addition",
			Before:  semantic.NewAdd(coefs...),
			After:   total.Node(),
		})
		if total.IsZero() {
			continue
		}

		abs := total
		if total.Sign() < 0 {
			abs = total.Neg()
		}
		factors := g.vars
		if !abs.EqualsInt(1) {
			factors = append([]semantic.Node{abs.Node()}, g.vars...)
		}
		body := semantic.Product(true, factors...)
		switch {
		case total.Sign() > 0:
			terms = append(terms, body)
		case len(terms) == 0:
			terms = append(terms, semantic.NewNeg(body))
		default:
			terms = append(terms, semantic.NewSub(body))
		}
	}
	terms = append(terms, constants...)

	newPrev := semantic.Sum(terms...)
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, before, r.Steps,
		"collecting like terms", "collecting like terms", substeps...)
}

func signedCoefficient(lt likeTerm, first bool) semantic.Node {
	if _, negative := lt.node.(*semantic.Neg); !negative {
		return lt.coefNode
	}
	if first {
		return semantic.NewNeg(lt.coefNode)
	}
	return semantic.NewSub(lt.coefNode)
}

// distribute multiplies out the first product of a sum (or negated sum) it
// finds. Running reversed it explains factoring. The recursive check is
// speculative: the expanded trees are too far from what the student wrote
// for mistakes inside them to be useful.
func distribute(prev, next semantic.Node, ctx *Context) *Result {
	var newPrev semantic.Node
	switch p := prev.(type) {
	case *semantic.Mul:
		terms, ok := distributeMul(p, true)
		if !ok {
			return nil
		}
		newPrev = semantic.Sum(terms...)
	case *semantic.Neg:
		terms, ok := distributeNeg(p, true)
		if !ok {
			return nil
		}
		newPrev = semantic.Sum(terms...)
	case *semantic.Add:
		args := p.Children()
		for i, t := range args {
			var terms []semantic.Node
			ok := false
			switch t := t.(type) {
			case *semantic.Mul:
				terms, ok = distributeMul(t, i == 0)
			case *semantic.Neg:
				terms, ok = distributeNeg(t, i == 0)
			}
			if ok {
				newPrev = semantic.Sum(slices.Concat(args[:i], terms, args[i+1:])...)
				break
			}
		}
		if newPrev == nil {
			return nil
		}
	default:
		return nil
	}

	r := ctx.withoutMistakes().Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps, "distribution", "factoring")
}

// distributeMul expands the first sum factor of m over the other factors.
// first tells whether the expansion starts its enclosing sum, which decides
// how a leading negative term is written.
func distributeMul(m *semantic.Mul, first bool) ([]semantic.Node, bool) {
	k := slices.IndexFunc(m.Args, func(f semantic.Node) bool { return f.Kind() == semantic.KindAdd })
	if k < 0 {
		return nil, false
	}
	sum := m.Args[k].(*semantic.Add)

	terms := make([]semantic.Node, 0, len(sum.Args))
	for j, t := range sum.Args {
		inner, negative := t, false
		if neg, ok := t.(*semantic.Neg); ok {
			inner, negative = neg.Arg, true
		}
		factors := slices.Concat(m.Args[:k], semantic.GetFactors(inner), m.Args[k+1:])
		implicit := m.Implicit && slices.ContainsFunc(factors, func(f semantic.Node) bool { return !isLiteral(f) })
		product := semantic.Product(implicit, factors...)
		switch {
		case !negative:
			terms = append(terms, product)
		case first && j == 0:
			terms = append(terms, semantic.NewNeg(product))
		default:
			terms = append(terms, semantic.NewSub(product))
		}
	}
	return terms, true
}

// distributeNeg expands -(a + b) and -(c(a + b)).
func distributeNeg(n *semantic.Neg, first bool) ([]semantic.Node, bool) {
	var terms []semantic.Node
	switch arg := n.Arg.(type) {
	case *semantic.Add:
		terms = arg.Children()
	case *semantic.Mul:
		expanded, ok := distributeMul(arg, true)
		if !ok {
			return nil, false
		}
		terms = expanded
	default:
		return nil, false
	}

	leading := first && !n.Subtraction
	out := make([]semantic.Node, len(terms))
	for j, t := range terms {
		switch {
		case t.Kind() == semantic.KindNeg:
			out[j] = t.(*semantic.Neg).Arg
		case leading && j == 0:
			out[j] = semantic.NewNeg(t)
		default:
			out[j] = semantic.NewSub(t)
		}
	}
	return out, true
}
