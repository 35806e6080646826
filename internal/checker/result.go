package checker

import (
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

// Result marks a successful check. Steps may be empty when prev and next
// match exactly.
type Result struct {
	Steps []Step
}

// Step is one justified rewrite in an explanation chain.
type Step struct {
	Message  string
	Before   semantic.Node
	After    semantic.Node
	Substeps []Step
}

// correctResult wraps the rewrite prev -> newPrev into a Result.
//
// beforeSteps are rewrites of subtrees of prev that the rule needed first
// (their Before ids must belong to prev); they are replayed onto prev to
// obtain the tree the rule actually rewrote. afterSteps are the steps from
// newPrev to next, usually returned by the recursive check.
func correctResult(
	prev, newPrev semantic.Node,
	ctx *Context,
	beforeSteps, afterSteps []Step,
	message, reverseMessage string,
	substeps ...Step,
) *Result {
	rewritten := applySteps(prev, beforeSteps)

	if !ctx.Reversed {
		steps := make([]Step, 0, len(beforeSteps)+1+len(afterSteps))
		steps = append(steps, beforeSteps...)
		steps = append(steps, Step{
			Message:  message,
			Before:   rewritten,
			After:    newPrev,
			Substeps: substeps,
		})
		steps = append(steps, afterSteps...)
		return &Result{Steps: steps}
	}

	if reverseMessage == "" {
		reverseMessage = message
	}
	steps := make([]Step, 0, len(beforeSteps)+1+len(afterSteps))
	steps = append(steps, afterSteps...)
	steps = append(steps, Step{
		Message:  reverseMessage,
		Before:   newPrev,
		After:    rewritten,
		Substeps: substeps,
	})
	for i := len(beforeSteps) - 1; i >= 0; i-- {
		s := beforeSteps[i]
		steps = append(steps, Step{
			Message:  s.Message,
			Before:   s.After,
			After:    s.Before,
			Substeps: s.Substeps,
		})
	}
	return &Result{Steps: steps}
}

// applySteps replays steps onto root by substituting each step's Before
// subtree, located by id, with its After.
func applySteps(root semantic.Node, steps []Step) semantic.Node {
	for _, s := range steps {
		root = semantic.Replace(root, s.Before.ID(), s.After)
	}
	return root
}

// stepsOf concatenates the steps of non-nil results.
func stepsOf(results ...*Result) []Step {
	var steps []Step
	for _, r := range results {
		steps = append(steps, r.Steps...)
	}
	return steps
}
