package checker

import (
	"slices"

	set "github.com/hashicorp/go-set/v3"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// CheckFunc inspects a pair of trees and returns nil when its law does not
// connect them.
type CheckFunc func(prev, next semantic.Node, ctx *Context) *Result

// Check is one named rule. Symmetric rules are also tried with prev and next
// swapped, so they only need to be written for one direction.
type Check struct {
	Name      string
	Symmetric bool
	Run       CheckFunc
}

// Limits bound a single top level search. A search that hits either limit
// is inconclusive.
type Limits struct {
	// MaxDepth bounds the nesting of recursive checks.
	MaxDepth int
	// MaxChecks bounds the number of recursive checks.
	MaxChecks int
}

// DefaultLimits is used unless WithLimits says otherwise.
var DefaultLimits = Limits{MaxDepth: 64, MaxChecks: 20000}

// Checker walks an ordered rule list looking for a path between two trees.
// A Checker is safe for concurrent use; every CheckStep call gets its own
// Context.
type Checker struct {
	checks  []Check
	ignored map[string]bool
	options Options
	limits  Limits
	logger  *zap.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithChecks replaces the default rule list. Order is preserved.
func WithChecks(checks []Check) Option {
	return func(c *Checker) { c.checks = slices.Clone(checks) }
}

// WithIgnored disables rules by name.
func WithIgnored(names ...string) Option {
	return func(c *Checker) {
		for _, name := range names {
			c.ignored[name] = true
		}
	}
}

// WithOptions sets the rule library options.
func WithOptions(opts Options) Option {
	return func(c *Checker) { c.options = opts }
}

func WithLimits(limits Limits) Option {
	return func(c *Checker) { c.limits = limits }
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Checker) { c.logger = logger }
}

// New creates a checker running AllChecks unless configured otherwise.
func New(opts ...Option) *Checker {
	c := &Checker{
		checks:  AllChecks(),
		ignored: make(map[string]bool),
		limits:  DefaultLimits,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.ignored) > 0 {
		c.checks = slices.DeleteFunc(c.checks, func(chk Check) bool {
			return c.ignored[chk.Name]
		})
	}
	return c
}

// IgnoreRule disables a rule by name after construction.
func (c *Checker) IgnoreRule(name string) {
	c.ignored[name] = true
	c.checks = slices.DeleteFunc(c.checks, func(chk Check) bool {
		return chk.Name == name
	})
}

// Rules returns the names of the active rules in the order they are tried.
func (c *Checker) Rules() []string {
	names := make([]string, len(c.checks))
	for i, chk := range c.checks {
		names[i] = chk.Name
	}
	return names
}

// Options returns the rule library options.
func (c *Checker) Options() Options {
	return c.options
}

// Limits returns the search limits.
func (c *Checker) Limits() Limits {
	return c.limits
}

// Report is the outcome of a top level check.
type Report struct {
	// Result is nil when no path was found.
	Result *Result
	// SuccessfulChecks names every rule that matched during the search.
	SuccessfulChecks []string
	Mistakes         []Mistake
	// Inconclusive is set when the search hit its limits.
	Inconclusive bool
}

// CheckStep decides whether next follows from prev in one step.
func (c *Checker) CheckStep(prev, next semantic.Node) *Report {
	var mistakes []Mistake
	ctx := &Context{
		checker:  c,
		Options:  c.options,
		mistakes: &mistakes,
		session:  &session{successful: set.New[string](0)},
	}

	result := c.check(prev, next, ctx)
	report := &Report{
		Result:           result,
		SuccessfulChecks: ctx.session.successful.Slice(),
		Inconclusive:     result == nil && ctx.session.exhausted,
	}
	slices.Sort(report.SuccessfulChecks)
	if result == nil {
		report.Mistakes = FilterMistakes(mistakes, prev, next)
	}

	if ctx.session.exhausted {
		c.logger.Warn("search limits reached",
			zap.Stringer("prev", prev),
			zap.Stringer("next", next),
			zap.Int("checks", ctx.session.checks),
		)
	}
	c.logger.Debug("checked step",
		zap.Stringer("prev", prev),
		zap.Stringer("next", next),
		zap.Bool("valid", result != nil),
		zap.Int("checks", ctx.session.checks),
		zap.Int("mistakes", len(report.Mistakes)),
	)
	return report
}

func (c *Checker) check(prev, next semantic.Node, ctx *Context) *Result {
	s := ctx.session
	if s.depth >= c.limits.MaxDepth || s.checks >= c.limits.MaxChecks {
		s.exhausted = true
		return nil
	}
	s.depth++
	s.checks++
	defer func() { s.depth-- }()

	for _, chk := range c.checks {
		if r := chk.Run(prev, next, ctx); r != nil {
			s.successful.Insert(chk.Name)
			return r
		}
		if !chk.Symmetric {
			continue
		}
		if r := chk.Run(next, prev, ctx.withReversed()); r != nil {
			s.successful.Insert(chk.Name)
			return r
		}
	}
	return nil
}
