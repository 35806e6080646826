package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tt "github.com/gnoswap-labs/stepcheck/internal/types"
	"github.com/gnoswap-labs/stepcheck/verify"
)

func TestSplitStep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		prev string
		next string
		ok   bool
	}{
		{"x = y => x + 5 = y + 5", "x = y", "x + 5 = y + 5", true},
		{"  2 + 3=>5 ", "2 + 3", "5", true},
		{"x >= 1 => 1 <= x", "x >= 1", "1 <= x", true},
		{"2 + 3", "2 + 3", "", false},
		{"=> 5", "", "5", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			prev, next, ok := splitStep(tt.line)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.prev, prev)
				assert.Equal(t, tt.next, next)
			}
		})
	}
}

func TestHandleReplLine(t *testing.T) {
	t.Parallel()

	var calls [][2]string
	check := func(prev, next string) tt.Finding {
		calls = append(calls, [2]string{prev, next})
		return tt.Finding{Prev: prev, Next: next, Verdict: tt.VerdictValid}
	}

	var buf bytes.Buffer
	assert.False(t, handleReplLine(&buf, check, ""))
	assert.False(t, handleReplLine(&buf, check, ":help"))
	assert.Contains(t, buf.String(), "unknown command")

	buf.Reset()
	assert.False(t, handleReplLine(&buf, check, "no arrow"))
	assert.Contains(t, buf.String(), "expected")
	assert.Empty(t, calls)

	buf.Reset()
	assert.False(t, handleReplLine(&buf, check, "1 + 1 => 2"))
	assert.Equal(t, [][2]string{{"1 + 1", "2"}}, calls)
	assert.Contains(t, buf.String(), "ok: valid")
	assert.Contains(t, buf.String(), "1 step checked: 1 valid")

	assert.True(t, handleReplLine(&buf, check, ":QUIT"))
}

func TestPrintFindingsJSON(t *testing.T) {
	t.Parallel()

	findings := []tt.Finding{
		{Index: 0, Prev: "2 + 3", Next: "6", Verdict: tt.VerdictMistake, Mistakes: []tt.Mistake{{ID: "EVAL_ADD"}}},
	}

	var buf bytes.Buffer
	require.NoError(t, printFindings(&buf, findings, true))

	var decoded []tt.Finding
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, findings, decoded)
}

func TestListRules(t *testing.T) {
	t.Parallel()

	engine := verify.NewEngine(verify.DefaultConfig(), nil)
	engine.IgnoreRule("distribute")

	var buf bytes.Buffer
	listRules(&buf, engine.Rules())
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Equal(t, " 1  exact-match", lines[0])
	assert.Contains(t, buf.String(), "check-add-sub (symmetric)\n")
	assert.True(t, slices.ContainsFunc(lines, func(line string) bool {
		return strings.HasSuffix(line, "  distribute (symmetric) [off]")
	}), buf.String())
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	written, err := initConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	config, err := verify.LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, config.DisabledRules())
	assert.Equal(t, verify.RuleOn, config.Rules["exact-match"])
}

func TestRunBatchProcess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte("steps:\n  - prev: \"1 + 1\"\n    next: \"2\"\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("steps:\n  - prev: \"1 + 1\"\n    next: \"3\"\n"), 0o644))

	engine := verify.NewEngine(verify.DefaultConfig(), nil)
	ctx := context.Background()

	out := filepath.Join(dir, "out.json")
	assert.False(t, runBatchProcess(ctx, zap.NewNop(), engine, []string{good}, true, out))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	var findings []tt.Finding
	require.NoError(t, json.Unmarshal(content, &findings))
	require.Len(t, findings, 1)
	assert.Equal(t, tt.VerdictValid, findings[0].Verdict)

	text := filepath.Join(dir, "out.txt")
	assert.True(t, runBatchProcess(ctx, zap.NewNop(), engine, []string{bad}, false, text))
	content, err = os.ReadFile(text)
	require.NoError(t, err)
	assert.Contains(t, string(content), "error: mistake")

	assert.True(t, runBatchProcess(ctx, zap.NewNop(), engine, []string{filepath.Join(dir, "missing.yaml")}, false, text))
}
