package formatter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	tt "github.com/gnoswap-labs/stepcheck/internal/types"
)

func TestFormatValidFinding(t *testing.T) {
	t.Parallel()

	findings := []tt.Finding{
		{
			Filename: "steps.yaml",
			Index:    0,
			Prev:     "x = y",
			Next:     "x + 5 = y + 5",
			Verdict:  tt.VerdictValid,
			Steps: []tt.Step{
				{Message: "adding the same value to both sides", Before: "x = y", After: "x + 5 = y + 5"},
			},
		},
		{
			Filename: "steps.yaml",
			Index:    1,
			Prev:     "2x + 3x",
			Next:     "5x",
			Verdict:  tt.VerdictValid,
			Steps: []tt.Step{
				{
					Message: "collecting like terms",
					Before:  "2x + 3x",
					After:   "5x",
					Substeps: []tt.Step{
						{Message: "evaluation of addition", Before: "2 + 3", After: "5"},
					},
				},
			},
		},
	}

	expected := `ok: valid
 --> steps.yaml#0
  |
  | x = y
  | => x + 5 = y + 5
1 | adding the same value to both sides
  |   x = y -> x + 5 = y + 5

ok: valid
 --> steps.yaml#1
  |
  | 2x + 3x
  | => 5x
1 | collecting like terms
  |   2x + 3x -> 5x
  |    evaluation of addition: 2 + 3 -> 5

`

	assert.Equal(t, expected, GenerateFormattedFindings(findings))
}

func TestFormatValidFindingMultipleDigits(t *testing.T) {
	t.Parallel()

	list := make([]tt.Step, 10)
	for i := range list {
		list[i] = tt.Step{Message: fmt.Sprintf("step %d", i), Before: "a", After: "a"}
	}
	result := GenerateFormattedFindings([]tt.Finding{
		{Index: 3, Prev: "a", Next: "a", Verdict: tt.VerdictValid, Steps: list},
	})

	assert.True(t, strings.HasPrefix(result, "ok: valid\n  --> step 3\n   |\n"), result)
	assert.Contains(t, result, " 1 | step 0\n")
	assert.Contains(t, result, "10 | step 9\n")
	assert.Contains(t, result, "   |   a -> a\n")
}

func TestFormatMistakeFinding(t *testing.T) {
	t.Parallel()

	findings := []tt.Finding{
		{
			Index:   1,
			Prev:    "x = y",
			Next:    "x + 3 = y + 7",
			Verdict: tt.VerdictMistake,
			Mistakes: []tt.Mistake{
				{
					ID:          "EQN_ADD_DIFF",
					Description: "different values were added to the two sides",
					NextNodes:   []string{"3", "7"},
				},
			},
		},
		{
			Index:   2,
			Prev:    "2 + 3",
			Next:    "6",
			Verdict: tt.VerdictMistake,
			Mistakes: []tt.Mistake{
				{
					ID:          "EVAL_ADD",
					Description: "addition was evaluated incorrectly",
					PrevNodes:   []string{"2 + 3"},
					NextNodes:   []string{"6"},
					Corrections: []string{"6 -> 5"},
				},
			},
		},
	}

	expected := `error: mistake
 --> step 1
  |
  | x = y
  | => x + 3 = y + 7
  = EQN_ADD_DIFF: different values were added to the two sides
  |   in next: 3, 7

error: mistake
 --> step 2
  |
  | 2 + 3
  | => 6
  = EVAL_ADD: addition was evaluated incorrectly
  |   in prev: 2 + 3
  |   in next: 6
Suggestion: 6 -> 5

`

	assert.Equal(t, expected, GenerateFormattedFindings(findings))
}

func TestFormatGeneralFindings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		finding  tt.Finding
		expected string
	}{
		{
			name:    "no path",
			finding: tt.Finding{Index: 0, Prev: "a", Next: "b", Verdict: tt.VerdictNoPath},
			expected: `error: no-path
 --> step 0
  |
  | a
  | => b
  = no path found and no mistakes found

`,
		},
		{
			name:    "inconclusive",
			finding: tt.Finding{Filename: "hard.yaml", Index: 4, Prev: "a", Next: "b", Verdict: tt.VerdictInconclusive},
			expected: `warning: inconclusive
 --> hard.yaml#4
  |
  | a
  | => b
  = search limits reached before a path was found

`,
		},
		{
			name: "invalid input",
			finding: tt.Finding{
				Index:   5,
				Prev:    "x +",
				Next:    "x",
				Verdict: tt.VerdictInvalidInput,
				Error:   "prev: unexpected end of input",
			},
			expected: `error: invalid-input
 --> step 5
  |
  | x +
  | => x
  = prev: unexpected end of input

`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, buildFinding(tt.finding, getFindingFormatter(tt.finding.Verdict)))
		})
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 steps checked\n", Summary(nil))
	assert.Equal(t, "1 step checked: 1 valid\n", Summary([]tt.Finding{{Verdict: tt.VerdictValid}}))
	assert.Equal(t, "4 steps checked: 2 valid, 1 mistake, 1 invalid-input\n", Summary([]tt.Finding{
		{Verdict: tt.VerdictInvalidInput},
		{Verdict: tt.VerdictValid},
		{Verdict: tt.VerdictMistake},
		{Verdict: tt.VerdictValid},
	}))
}

func TestCalculateMaxNumWidth(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, calculateMaxNumWidth(0))
	assert.Equal(t, 1, calculateMaxNumWidth(9))
	assert.Equal(t, 2, calculateMaxNumWidth(10))
	assert.Equal(t, 3, calculateMaxNumWidth(100))
}
