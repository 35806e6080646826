package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnoswap-labs/stepcheck/internal/semantic"
)

func TestFilterMistakes(t *testing.T) {
	t.Parallel()

	three, seven := semantic.NewNumber("3"), semantic.NewNumber("7")
	x := semantic.NewIdentifier("x")
	prev := semantic.NewAdd(x, three)
	next := semantic.NewAdd(x, seven)
	stranger := semantic.NewNumber("3")

	tests := []struct {
		name     string
		mistakes []Mistake
		want     []MistakeID
	}{
		{
			name:     "empty",
			mistakes: nil,
			want:     []MistakeID{},
		},
		{
			name: "unknown nodes are dropped",
			mistakes: []Mistake{
				{ID: EvalAdd, PrevNodes: []semantic.Node{stranger}},
				{ID: ExprAddNonIdentity, PrevNodes: []semantic.Node{three}},
			},
			want: []MistakeID{ExprAddNonIdentity},
		},
		{
			name: "duplicates are merged",
			mistakes: []Mistake{
				{ID: EvalAdd, PrevNodes: []semantic.Node{three}, NextNodes: []semantic.Node{seven}},
				{ID: EvalAdd, PrevNodes: []semantic.Node{three}, NextNodes: []semantic.Node{seven}},
			},
			want: []MistakeID{EvalAdd},
		},
		{
			name: "same kind with different nodes is kept",
			mistakes: []Mistake{
				{ID: EvalAdd, PrevNodes: []semantic.Node{three}},
				{ID: EvalAdd, PrevNodes: []semantic.Node{x}},
			},
			want: []MistakeID{EvalAdd, EvalAdd},
		},
		{
			name: "only the highest priority survives",
			mistakes: []Mistake{
				{ID: ExprAddNonIdentity, PrevNodes: []semantic.Node{three}},
				{ID: EvalAdd, PrevNodes: []semantic.Node{three}},
				{ID: EqnAddDiff, NextNodes: []semantic.Node{seven}},
				{ID: DecompAdd, NextNodes: []semantic.Node{seven}},
			},
			want: []MistakeID{EqnAddDiff},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FilterMistakes(tt.mistakes, prev, next)
			ids := make([]MistakeID, len(got))
			for i, m := range got {
				ids[i] = m.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMistakeIDStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       MistakeID
		name     string
		priority int
	}{
		{EqnAddDiff, "EQN_ADD_DIFF", 3},
		{EqnMulDiff, "EQN_MUL_DIFF", 3},
		{EvalAdd, "EVAL_ADD", 2},
		{EvalMul, "EVAL_MUL", 2},
		{DecompAdd, "DECOMP_ADD", 2},
		{DecompMul, "DECOMP_MUL", 2},
		{ExprAddNonIdentity, "EXPR_ADD_NON_IDENTITY", 1},
		{ExprMulNonIdentity, "EXPR_MUL_NON_IDENTITY", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.id.String())
		assert.Equal(t, tt.priority, tt.id.Priority())
		assert.NotEmpty(t, tt.id.Description())
	}
	assert.Equal(t, "UNKNOWN", MistakeID(99).String())
}

func TestReportMistakeSwapsWhenReversed(t *testing.T) {
	t.Parallel()

	a, b := semantic.NewNumber("1"), semantic.NewNumber("2")
	var mistakes []Mistake
	ctx := &Context{mistakes: &mistakes}

	ctx.ReportMistake(EvalAdd, []semantic.Node{a}, []semantic.Node{b})
	ctx.withReversed().ReportMistake(EvalAdd, []semantic.Node{a}, []semantic.Node{b})
	ctx.withoutMistakes().ReportMistake(EvalAdd, []semantic.Node{a}, []semantic.Node{b})

	require.Len(t, mistakes, 2)
	assert.Equal(t, []semantic.Node{a}, mistakes[0].PrevNodes)
	assert.Equal(t, []semantic.Node{b}, mistakes[1].PrevNodes)
	assert.Equal(t, []semantic.Node{a}, mistakes[1].NextNodes)
	assert.False(t, ctx.withoutMistakes().RecordsMistakes())
}

func TestCorrectResultReversed(t *testing.T) {
	t.Parallel()

	prev := semantic.NewAdd(semantic.NewIdentifier("x"), semantic.NewNumber("0"))
	newPrev := semantic.NewIdentifier("x")
	after := []Step{{Message: "later"}}

	forward := correctResult(prev, newPrev, &Context{}, nil, after, "adding zero", "removing zero")
	require.Len(t, forward.Steps, 2)
	assert.Equal(t, "adding zero", forward.Steps[0].Message)
	assert.Same(t, prev, forward.Steps[0].Before)
	assert.Equal(t, "later", forward.Steps[1].Message)

	reversed := correctResult(prev, newPrev, &Context{Reversed: true}, nil, after, "adding zero", "removing zero")
	require.Len(t, reversed.Steps, 2)
	assert.Equal(t, "later", reversed.Steps[0].Message)
	assert.Equal(t, "removing zero", reversed.Steps[1].Message)
	assert.Same(t, newPrev, reversed.Steps[1].Before)
}
