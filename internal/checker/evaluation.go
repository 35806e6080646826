package checker

import (
	"github.com/gnoswap-labs/stepcheck/internal/eval"
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// arithmetic describes one of the two evaluated operators.
type arithmetic struct {
	parts    func(semantic.Node) []semantic.Node
	fold     func([]semantic.Node) eval.Value
	identity int64
	rebuild  func(prev semantic.Node, parts []semantic.Node) semantic.Node

	evalMistake, decompMistake MistakeID
	message, reverseMessage    string
}

var (
	addition = arithmetic{
		parts:    semantic.GetTerms,
		fold:     sumValues,
		identity: 0,
		rebuild: func(_ semantic.Node, parts []semantic.Node) semantic.Node {
			return semantic.Sum(parts...)
		},
		evalMistake:    EvalAdd,
		decompMistake:  DecompAdd,
		message:        "evaluation of addition",
		reverseMessage: "decomposition of addition",
	}
	multiplication = arithmetic{
		parts:    semantic.GetFactors,
		fold:     productValues,
		identity: 1,
		rebuild: func(prev semantic.Node, parts []semantic.Node) semantic.Node {
			return semantic.Product(implicitOf(prev), parts...)
		},
		evalMistake:    EvalMul,
		decompMistake:  DecompMul,
		message:        "evaluation of multiplication",
		reverseMessage: "decomposition of multiplication",
	}
)

// evaluate folds the number literals of prev into one. Literals that appear
// unchanged in next are left alone so partial evaluations are accepted.
// When the rest of the expression is untouched but the literals of next do
// not combine to the same value, the step is an evaluation mistake (or a
// decomposition mistake when running reversed).
func (a arithmetic) evaluate(prev, next semantic.Node, ctx *Context) *Result {
	if ctx.Options.SkipEvalChecker || !semantic.IsNumeric(next) {
		return nil
	}
	parts := a.parts(prev)
	prevLits, prevRest := partition(parts, isLiteral)
	if len(prevLits) < 2 {
		return nil
	}
	nextLits, nextRest := partition(a.parts(next), isLiteral)
	if len(nextLits) >= len(prevLits) {
		return nil
	}

	evaluated := semantic.Difference(prevLits, nextLits)
	if len(evaluated) < 2 {
		evaluated = prevLits
	}
	value := a.fold(evaluated)

	first := 0
	for parts[first] != evaluated[0] {
		first++
	}
	var repl []semantic.Node
	switch {
	case value.EqualsInt(a.identity) && len(parts) > len(evaluated):
		// the identity disappears into the remaining parts
	case value.Sign() < 0 && first > 0 && a.identity == 0:
		repl = []semantic.Node{semantic.NewSub(value.Neg().Node())}
	default:
		repl = []semantic.Node{value.Node()}
	}
	newPrev := a.rebuild(prev, replaceRun(parts, evaluated, repl...))

	if r := ctx.Check(newPrev, next); r != nil {
		return correctResult(prev, newPrev, ctx, nil, r.Steps, a.message, a.reverseMessage)
	}

	if !ctx.RecordsMistakes() || value.EqualsInt(a.identity) || !semantic.SameMultiset(prevRest, nextRest) {
		return nil
	}
	want, got := a.fold(prevLits), a.fold(nextLits)
	if want.Equals(got) {
		return nil
	}
	wrong := semantic.Difference(nextLits, prevLits)
	if len(wrong) == 0 {
		return nil
	}

	id := a.evalMistake
	var corrections []Correction
	if ctx.Reversed {
		id = a.decompMistake
	} else if len(wrong) == 1 {
		if fixed, ok := a.correction(want, nextLits, wrong[0]); ok {
			corrections = append(corrections, Correction{ID: wrong[0].ID(), Replacement: fixed.Node()})
		}
	}
	ctx.ReportMistake(id, evaluated, wrong, corrections...)
	return nil
}

// correction computes the literal that should replace wrong so the literals
// of next fold to want.
func (a arithmetic) correction(want eval.Value, nextLits []semantic.Node, wrong semantic.Node) (eval.Value, bool) {
	var others []semantic.Node
	for _, n := range nextLits {
		if n != wrong {
			others = append(others, n)
		}
	}
	rest := a.fold(others)
	if a.identity == 0 {
		return want.Sub(rest), true
	}
	return want.Quo(rest)
}

func evalAdd(prev, next semantic.Node, ctx *Context) *Result {
	if prev.Kind() != semantic.KindAdd {
		return nil
	}
	return addition.evaluate(prev, next, ctx)
}

func evalMul(prev, next semantic.Node, ctx *Context) *Result {
	if prev.Kind() != semantic.KindMul {
		return nil
	}
	return multiplication.evaluate(prev, next, ctx)
}

// evalDiv reduces a quotient of literals with an integral value. Only active
// when fractions are evaluated.
func evalDiv(prev, next semantic.Node, ctx *Context) *Result {
	if ctx.Options.SkipEvalChecker || !ctx.Options.EvalFractions {
		return nil
	}
	d, ok := prev.(*semantic.Div)
	if !ok || !isLiteral(d.Num) || !isLiteral(d.Den) {
		return nil
	}
	value, ok := ctx.eval(d)
	if !ok || !value.IsInt() {
		return nil
	}

	newPrev := value.Node()
	r := ctx.Check(newPrev, next)
	if r == nil {
		return nil
	}
	return correctResult(prev, newPrev, ctx, nil, r.Steps,
		"evaluation of division", "decomposition of division")
}
