package checker

import (
	"slices"

	set "github.com/hashicorp/go-set/v3"

	"github.com/gnoswap-labs/stepcheck/internal/eval"
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// Options tunes the rule library.
type Options struct {
	// SkipEvalChecker disables the rules that evaluate numbers.
	SkipEvalChecker bool
	// EvalFractions lets division take part in numeric evaluation.
	EvalFractions bool
}

func (o Options) evalOptions() eval.Options {
	return eval.Options{EvalFractions: o.EvalFractions}
}

// session is the state shared by every recursive check of one top level
// CheckStep call.
type session struct {
	depth      int
	checks     int
	exhausted  bool
	successful *set.Set[string]
}

// Context is threaded through every recursive check. Derived contexts share
// the session and the mistake sink of their parent.
type Context struct {
	checker  *Checker
	Options  Options
	Reversed bool

	// nil while checks are speculative
	mistakes *[]Mistake
	session  *session
}

// Check asks the engine whether next is reachable from prev.
func (c *Context) Check(prev, next semantic.Node) *Result {
	return c.checker.check(prev, next, c)
}

// RecordsMistakes reports whether ReportMistake has any effect.
func (c *Context) RecordsMistakes() bool {
	return c.mistakes != nil
}

// ReportMistake records a mistake. The nodes are given from the point of view
// of the running rule and are swapped back when the rule runs reversed.
func (c *Context) ReportMistake(id MistakeID, prevNodes, nextNodes []semantic.Node, corrections ...Correction) {
	if c.mistakes == nil {
		return
	}
	if c.Reversed {
		prevNodes, nextNodes = nextNodes, prevNodes
	}
	*c.mistakes = append(*c.mistakes, Mistake{
		ID:          id,
		PrevNodes:   prevNodes,
		NextNodes:   nextNodes,
		Corrections: corrections,
	})
}

func (c *Context) withReversed() *Context {
	cc := *c
	cc.Reversed = !c.Reversed
	return &cc
}

// withoutMistakes derives a context for speculative checks whose failures
// must not show up as diagnostics.
func (c *Context) withoutMistakes() *Context {
	cc := *c
	cc.mistakes = nil
	return &cc
}

func (c *Context) eval(n semantic.Node) (eval.Value, bool) {
	v, err := eval.Eval(n, c.Options.evalOptions())
	return v, err == nil
}

// isZero reports whether n evaluates to zero or has a literal zero factor.
func (c *Context) isZero(n semantic.Node) bool {
	if slices.ContainsFunc(semantic.GetFactors(n), func(f semantic.Node) bool { return isNumber(f, 0) }) {
		return true
	}
	v, ok := c.eval(n)
	return ok && v.IsZero()
}
