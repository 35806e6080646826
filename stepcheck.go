// Package stepcheck decides whether one algebra step follows from the
// previous one and explains how, or reports the mistakes that were made.
package stepcheck

import (
	"errors"
	"fmt"

	"github.com/gnoswap-labs/stepcheck/internal/checker"
	"github.com/gnoswap-labs/stepcheck/internal/eval"
	"github.com/gnoswap-labs/stepcheck/internal/parser"
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

type (
	Node      = semantic.Node
	Report    = checker.Report
	Result    = checker.Result
	Step      = checker.Step
	Mistake   = checker.Mistake
	Options   = checker.Options
	Value     = eval.Value
	Checker   = checker.Checker
	Check     = checker.Check
	Option    = checker.Option
	Limits    = checker.Limits
	MistakeID = checker.MistakeID
)

// ErrNoPath is returned by CheckStrict when a step is neither explained nor
// diagnosed.
var ErrNoPath = errors.New("no path found / no mistakes found")

// Checker options.
var (
	WithChecks  = checker.WithChecks
	WithIgnored = checker.WithIgnored
	WithOptions = checker.WithOptions
	WithLimits  = checker.WithLimits
	WithLogger  = checker.WithLogger
)

var defaultChecker = checker.New()

// New creates a checker. Without options it tries every rule of AllChecks
// in order.
func New(opts ...Option) *Checker {
	return checker.New(opts...)
}

// AllChecks returns the default ordered rule list.
func AllChecks() []Check {
	return checker.AllChecks()
}

// Parse reads an expression such as "2x + 3 = 7".
func Parse(src string) (Node, error) {
	return parser.Parse(src)
}

// CheckStep checks next against prev with the default rules. A nil
// Report.Result is the ordinary answer for a step that does not follow.
func CheckStep(prev, next Node) *Report {
	return defaultChecker.CheckStep(prev, next)
}

// CheckStrict is CheckStep for callers that treat an unexplained and
// undiagnosed step as an error.
func CheckStrict(prev, next Node) (*Report, error) {
	report := defaultChecker.CheckStep(prev, next)
	if report.Result != nil || len(report.Mistakes) > 0 {
		return report, nil
	}
	if report.Inconclusive {
		return report, fmt.Errorf("%w: search limits reached", ErrNoPath)
	}
	return report, ErrNoPath
}

// EvalNode computes the exact value of a numeric expression.
func EvalNode(n Node, opts Options) (Value, error) {
	return eval.Eval(n, eval.Options{EvalFractions: opts.EvalFractions})
}

// PrimeDecomp factors a positive integer value; see eval.PrimeDecomp.
func PrimeDecomp(v Value) []int64 {
	return eval.PrimeDecomp(v)
}
