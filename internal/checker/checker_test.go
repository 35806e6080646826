package checker

import (
	"testing"

	set "github.com/hashicorp/go-set/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/stepcheck/internal/parser"
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

func checkStep(t *testing.T, prev, next string, opts ...Option) *Report {
	t.Helper()
	return New(opts...).CheckStep(parser.MustParse(prev), parser.MustParse(next))
}

func messages(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Message
	}
	return out
}

func printed(nodes []semantic.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = semantic.Print(n)
	}
	return out
}

func TestAddingSameValueToBothSides(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "x = y", "x + 5 = y + 5")
	require.NotNil(t, report.Result)
	assert.Equal(t, []string{"adding the same value to both sides"}, messages(report.Result.Steps))
	assert.Contains(t, report.SuccessfulChecks, "check-add-sub")
	assert.Empty(t, report.Mistakes)
	assert.False(t, report.Inconclusive)
}

func TestRemovingSameValueFromBothSides(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "x + 5 = y + 5", "x = y")
	require.NotNil(t, report.Result)
	assert.Equal(t, []string{"removing adding the same value to both sides"}, messages(report.Result.Steps))

	step := report.Result.Steps[0]
	assert.Equal(t, "x + 5 = y + 5", semantic.Print(step.Before))
	assert.Equal(t, "x = y", semantic.Print(step.After))
}

func TestSubtractingSameValueFromBothSides(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "2x + 5 = 10", "2x + 5 - 5 = 10 - 5")
	require.NotNil(t, report.Result)
	assert.Equal(t, []string{"subtracting the same value from both sides"}, messages(report.Result.Steps))
}

func TestDifferentValuesAddedToSides(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "x = y", "x + 3 = y + 7")
	assert.Nil(t, report.Result)
	require.Len(t, report.Mistakes, 1)

	m := report.Mistakes[0]
	assert.Equal(t, EqnAddDiff, m.ID)
	assert.Empty(t, m.PrevNodes)
	assert.Equal(t, []string{"3", "7"}, printed(m.NextNodes))
}

func TestDifferentValuesSubtractedFromSides(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "2x + 5 = 10", "2x + 5 - 5 = 10 - 10")
	assert.Nil(t, report.Result)
	require.Len(t, report.Mistakes, 1)

	m := report.Mistakes[0]
	assert.Equal(t, EqnAddDiff, m.ID)
	require.Len(t, m.NextNodes, 2)
	for i, want := range []string{"5", "10"} {
		neg, ok := m.NextNodes[i].(*semantic.Neg)
		require.True(t, ok, "node %d is %T", i, m.NextNodes[i])
		assert.True(t, neg.Subtraction)
		assert.Equal(t, want, semantic.Print(neg.Arg))
	}
}

// Neither direction has a path, and the mistakes found inside the
// distributed products are not reported.
func TestNoPathWithoutMistakes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prev, next string
	}{
		{"2x + 3y", "2(x + 1) + 3(y + 1) + 4"},
		{"2(x + 1) + 3(y + 1) + 4", "2x + 3y"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.prev, func(t *testing.T) {
			t.Parallel()
			report := checkStep(t, tt.prev, tt.next)
			assert.Nil(t, report.Result)
			assert.Empty(t, report.Mistakes)
		})
	}
}

func TestCollectLikeTerms(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "2x + 3x", "5x")
	require.NotNil(t, report.Result)
	require.Len(t, report.Result.Steps, 1)

	step := report.Result.Steps[0]
	assert.Equal(t, "collecting like terms", step.Message)
	require.Len(t, step.Substeps, 1)
	assert.Equal(t, "evaluation of addition", step.Substeps[0].Message)
	assert.Equal(t, "2 + 3", semantic.Print(step.Substeps[0].Before))
	assert.Equal(t, "5", semantic.Print(step.Substeps[0].After))
}

func TestCollectLikeTermsEvaluatesCoefficient(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "2 * 3x + 4x", "10x")
	require.NotNil(t, report.Result)
	assert.Equal(t,
		[]string{"evaluation of multiplication", "collecting like terms"},
		messages(report.Result.Steps),
	)
	assert.Equal(t, "6 * x + 4x", semantic.Print(report.Result.Steps[1].Before))
}

func TestCollectLikeTermsKeepsConstantsLast(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "3 + x + 2x", "3x + 3")
	require.NotNil(t, report.Result)
	assert.Contains(t, messages(report.Result.Steps), "collecting like terms")
}

func TestReflexivity(t *testing.T) {
	t.Parallel()

	exprs := []string{
		"x",
		"2x + 3",
		"x = y",
		"a / b",
		"x^2 - 1",
		"sqrt(x) + root(8, 3)",
		"-(x + y)",
		"x < 3 and y >= 2",
		"{1, 2, 3}",
	}

	for _, src := range exprs {
		src := src
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			report := checkStep(t, src, src)
			require.NotNil(t, report.Result)
			assert.Empty(t, report.Result.Steps)
			assert.Equal(t, []string{"exact-match"}, report.SuccessfulChecks)
		})
	}
}

func TestSymmetricRulesWorkBothWays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
	}{
		{"add zero", "x + 0", "x"},
		{"mul one", "1 * x", "x"},
		{"eval add", "2 + 3", "5"},
		{"eval mul", "2 * 3", "6"},
		{"sub is neg", "x - y", "x + -y"},
		{"pow def", "x^2", "x * x"},
		{"pow to one", "x^1", "x"},
		{"div by one", "x / 1", "x"},
		{"distribute", "2(x + 1)", "2x + 2 * 1"},
		{"associative", "(a + b) + c", "a + b + c"},
		{"eq swap", "x = y", "y = x"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			forward := checkStep(t, tt.a, tt.b)
			require.NotNil(t, forward.Result, "%s -> %s", tt.a, tt.b)
			backward := checkStep(t, tt.b, tt.a)
			require.NotNil(t, backward.Result, "%s -> %s", tt.b, tt.a)
		})
	}
}

func TestDistributionMessages(t *testing.T) {
	t.Parallel()

	forward := checkStep(t, "2(x + 1)", "2x + 2 * 1")
	require.NotNil(t, forward.Result)
	assert.Equal(t, []string{"distribution"}, messages(forward.Result.Steps))

	backward := checkStep(t, "2x + 2 * 1", "2(x + 1)")
	require.NotNil(t, backward.Result)
	assert.Equal(t, []string{"factoring"}, messages(backward.Result.Steps))
}

func TestEvaluationMistakes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		prev, next  string
		id          MistakeID
		prevNodes   []string
		nextNodes   []string
		replacement string
	}{
		{"addition", "2 + 3", "6", EvalAdd, []string{"2", "3"}, []string{"6"}, "5"},
		{"multiplication", "2 * 3", "7", EvalMul, []string{"2", "3"}, []string{"7"}, "6"},
		{"decomposition", "6", "2 + 3", DecompAdd, []string{"6"}, []string{"2", "3"}, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			report := checkStep(t, tt.prev, tt.next)
			assert.Nil(t, report.Result)
			require.Len(t, report.Mistakes, 1)

			m := report.Mistakes[0]
			assert.Equal(t, tt.id, m.ID)
			assert.Equal(t, tt.prevNodes, printed(m.PrevNodes))
			assert.Equal(t, tt.nextNodes, printed(m.NextNodes))
			if tt.replacement == "" {
				assert.Empty(t, m.Corrections)
				return
			}
			require.Len(t, m.Corrections, 1)
			assert.Equal(t, m.NextNodes[0].ID(), m.Corrections[0].ID)
			assert.Equal(t, tt.replacement, semantic.Print(m.Corrections[0].Replacement))
		})
	}
}

func TestCancelFracFactorsCoefficients(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "6x / 3", "2x")
	require.NotNil(t, report.Result)
	assert.Equal(t, []string{"prime factorization", "canceling factors"}, messages(report.Result.Steps))

	prime := report.Result.Steps[0]
	assert.Equal(t, "6", semantic.Print(prime.Before))
	assert.Equal(t, "2 * 3", semantic.Print(prime.After))
}

func TestCancelFracCommonFactor(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "(a b) / b", "a")
	require.NotNil(t, report.Result)
	assert.Equal(t, []string{"canceling factors"}, messages(report.Result.Steps))
}

func TestEvalFractionsOption(t *testing.T) {
	t.Parallel()

	with := checkStep(t, "6 / 3", "2", WithOptions(Options{EvalFractions: true}))
	require.NotNil(t, with.Result)
	assert.Contains(t, with.SuccessfulChecks, "eval-div")

	without := checkStep(t, "6 / 3", "2")
	require.NotNil(t, without.Result)
	assert.NotContains(t, without.SuccessfulChecks, "eval-div")
	assert.Contains(t, without.SuccessfulChecks, "cancel-frac")
}

func TestDisabledRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
	}{
		{"ignored", []Option{WithIgnored("eval-add")}},
		{"skip eval checker", []Option{WithOptions(Options{SkipEvalChecker: true})}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			report := checkStep(t, "2 + 3", "5", tt.opts...)
			assert.Nil(t, report.Result)
		})
	}
}

func TestIgnoreRule(t *testing.T) {
	t.Parallel()

	c := New()
	require.Contains(t, c.Rules(), "distribute")
	c.IgnoreRule("distribute")
	assert.NotContains(t, c.Rules(), "distribute")
	assert.Len(t, c.Rules(), len(AllChecks())-1)
}

func TestSearchLimits(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "x = y", "x + 5 = y + 5", WithLimits(Limits{MaxDepth: 1, MaxChecks: 1}))
	assert.Nil(t, report.Result)
	assert.True(t, report.Inconclusive)

	report = checkStep(t, "x", "x", WithLimits(Limits{MaxDepth: 1, MaxChecks: 1}))
	require.NotNil(t, report.Result)
	assert.False(t, report.Inconclusive)
}

func TestCheckerSettings(t *testing.T) {
	t.Parallel()

	c := New()
	assert.Equal(t, DefaultLimits, c.Limits())
	assert.Equal(t, Options{}, c.Options())

	opts := Options{SkipEvalChecker: true, EvalFractions: true}
	limits := Limits{MaxDepth: 3, MaxChecks: 30}
	c = New(WithOptions(opts), WithLimits(limits))
	assert.Equal(t, opts, c.Options())
	assert.Equal(t, limits, c.Limits())
}

func TestAllChecksNamesAreUnique(t *testing.T) {
	t.Parallel()

	names := set.New[string](0)
	for _, chk := range AllChecks() {
		require.NotNil(t, chk.Run, chk.Name)
		assert.True(t, names.Insert(chk.Name), "duplicate rule %s", chk.Name)
	}
	assert.Equal(t, "exact-match", AllChecks()[0].Name)
}

func TestCustomCheckList(t *testing.T) {
	t.Parallel()

	c := New(WithChecks([]Check{{Name: "exact-match", Run: exactMatch}}))
	assert.Equal(t, []string{"exact-match"}, c.Rules())

	report := c.CheckStep(parser.MustParse("x + 0"), parser.MustParse("x"))
	assert.Nil(t, report.Result)
}

func TestRuleLibrary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rule       string
		prev, next string
		messages   []string
	}{
		{"add-inverse", "x + -x + y", "y", []string{"adding inverse"}},
		{"mul-inverse", "x * (1 / x)", "1", []string{"multiplying by the inverse"}},
		{"double-negative", "-(-x)", "x", []string{"negative of a negative is positive"}},
		{"move-neg-inside-mul", "-(2 * x)", "-2 * x", []string{"moving negative inside multiplication"}},
		{"move-neg-inside-mul", "-2 * x", "-(2 * x)", []string{"moving negative outside multiplication"}},
		{"move-neg-to-first-factor", "x * -y", "-x * y", []string{"moving negative to first factor"}},
		{"neg-is-mul-neg-one", "-x", "-1 * x", []string{"negation is the same as multiplying by negative one"}},
		{"check-mul", "x = y", "2x = 2y", []string{"multiplying both sides by the same value"}},
		{"check-div", "2x = 4", "2x / 2 = 4 / 2", []string{"dividing both sides by the same value"}},
		{"mul-pows-same-base", "x^2 * x^3", "x^(2 + 3)", []string{"multiplying powers adds exponents"}},
		{"div-pows-same-base", "x^5 / x^2", "x^(5 - 2)", []string{"dividing powers subtracts exponents"}},
		{"pow-of-pow", "(x^2)^3", "x^(2 * 3)", []string{"power of a power multiplies exponents"}},
		{"pow-of-mul", "(x y)^2", "x^2 y^2", []string{"power of a product"}},
		{"mul-pows-same-exp", "x^2 y^2", "(x y)^2", []string{"multiplying powers with the same exponent"}},
		{"pow-of-div", "(x / y)^2", "x^2 / y^2", []string{"power of a quotient"}},
		{"div-of-pows-same-exp", "x^2 / y^2", "(x / y)^2", []string{"dividing powers with the same exponent"}},
		{"pow-neg-exp", "x^-2", "1 / x^2", []string{"a negative exponent is one over the power"}},
		{"one-over-pow-to-neg-pow", "1 / x^2", "x^-2", []string{"one over a power is a negative exponent"}},
		{"pow-of-zero", "0^3", "0", []string{"zero to any power is zero"}},
		{"pow-to-zero", "0^0", "1", []string{"anything to the zero is one"}},
		{"div-by-frac", "a / (b / c)", "a * (c / b)", []string{"dividing by a fraction is the same as multiplying by the reciprocal"}},
		{"mul-frac", "(a / b) * (c / d)", "(a * c) / (b * d)", []string{"multiplying fractions"}},
		{"div-is-mul-by-one-over", "a / b", "a * (1 / b)", []string{"dividing is the same as multiplying by one over"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.rule+": "+tt.prev, func(t *testing.T) {
			t.Parallel()
			report := checkStep(t, tt.prev, tt.next)
			require.NotNil(t, report.Result, "%s -> %s", tt.prev, tt.next)
			assert.Equal(t, tt.messages, messages(report.Result.Steps))
			assert.Contains(t, report.SuccessfulChecks, tt.rule)
			assert.False(t, report.Inconclusive)
		})
	}
}

func TestDivByFracNegativeExponent(t *testing.T) {
	t.Parallel()

	report := checkStep(t, "x / y^-2", "x * y^2")
	require.NotNil(t, report.Result)
	assert.Equal(t, []string{
		"a negative exponent is one over the power",
		"dividing by a fraction is the same as multiplying by the reciprocal",
		"division by one",
	}, messages(report.Result.Steps))
	assert.NotContains(t, report.SuccessfulChecks, "pow-def")

	first := report.Result.Steps[0]
	assert.Equal(t, "y^-2", semantic.Print(first.Before))
	assert.Equal(t, "1 / y^2", semantic.Print(first.After))
}

// Dual rules must not undo each other forever when the step is wrong.
func TestDualRulesTerminate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prev, next string
	}{
		{"x^-2", "1 / x^3"},
		{"1 / x^3", "x^-2"},
		{"(x y)^2", "x^2 y^3"},
		{"(x / y)^2", "x^3 / y^2"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.prev, func(t *testing.T) {
			t.Parallel()
			assert.Nil(t, checkStep(t, tt.prev, tt.next).Result)
		})
	}
}

func TestZeroPowerPrecedence(t *testing.T) {
	t.Parallel()

	ok := checkStep(t, "0^0", "1")
	require.NotNil(t, ok.Result)
	assert.Contains(t, ok.SuccessfulChecks, "pow-to-zero")
	assert.NotContains(t, ok.SuccessfulChecks, "pow-of-zero")

	assert.Nil(t, checkStep(t, "0^0", "0").Result)
}

func TestZeroDivisorsHaveNoPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		prev, next string
		opts       []Option
	}{
		{"zero over zero", "0 / 0", "1", nil},
		{"zero over zero evaluating fractions", "0 / 0", "1", []Option{WithOptions(Options{EvalFractions: true})}},
		{"inverse of zero", "0 * (1 / 0)", "1", nil},
		{"canceling over zero", "(0 x) / (0 x)", "1", nil},
		{"multiplying sides by zero", "x = y", "0x = 0y", nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			report := checkStep(t, tt.prev, tt.next, tt.opts...)
			assert.Nil(t, report.Result, "%s -> %s", tt.prev, tt.next)
		})
	}
}
