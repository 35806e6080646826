package verify

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnoswap-labs/stepcheck/internal/types"
)

func TestCacheGetSet(t *testing.T) {
	t.Parallel()

	cache, err := NewCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	findings := []tt.Finding{{Filename: "a.yaml", Prev: "1 + 1", Next: "2", Verdict: tt.VerdictValid}}
	cache.Set("a.yaml", "h1", findings)

	got, ok := cache.Get("a.yaml", "h1")
	assert.True(t, ok)
	assert.Equal(t, findings, got)

	_, ok = cache.Get("a.yaml", "h2")
	assert.False(t, ok)
	_, ok = cache.Get("a.yaml", "h1")
	assert.False(t, ok, "stale entry is dropped")

	cache.Set("b.yaml", "h1", findings)
	cache.InvalidateAll()
	_, ok = cache.Get("b.yaml", "h1")
	assert.False(t, ok)
}

func TestCacheMaxAge(t *testing.T) {
	t.Parallel()

	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	cache.SetMaxAge(-time.Second)

	cache.Set("a.yaml", "h", nil)
	_, ok := cache.Get("a.yaml", "h")
	assert.False(t, ok)
}

func TestCachePersistence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache, err := NewCache(dir)
	require.NoError(t, err)

	findings := []tt.Finding{{
		Filename: "a.yaml",
		Verdict:  tt.VerdictMistake,
		Mistakes: []tt.Mistake{{ID: "EVAL_ADD", Corrections: []string{"6 -> 5"}}},
	}}
	cache.Set("a.yaml", "h", findings)
	require.NoError(t, cache.Save())

	reloaded, err := NewCache(dir)
	require.NoError(t, err)
	got, ok := reloaded.Get("a.yaml", "h")
	assert.True(t, ok)
	assert.Equal(t, findings, got)
}

func TestCachedVerifier(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "steps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - prev: \"1 + 1\"\n    next: \"2\"\n"), 0o644))

	cache, err := NewCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	verifier := NewCachedVerifier(NewEngine(DefaultConfig(), nil), cache)

	first, err := verifier.Run(path)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, tt.VerdictValid, first[0].Verdict)

	hash := verifier.hash([]byte("steps:\n  - prev: \"1 + 1\"\n    next: \"2\"\n"))
	cached, ok := cache.Get(path, hash)
	require.True(t, ok)
	assert.Equal(t, first, cached)

	// changing the rule list invalidates the entry
	verifier.IgnoreRule("eval-add")
	second, err := verifier.Run(path)
	require.NoError(t, err)
	assert.NotEqual(t, tt.VerdictValid, second[0].Verdict)

	_, err = verifier.Run(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "error reading")
}

func TestCachedVerifierConfigChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "steps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - prev: \"2 + 3\"\n    next: \"5\"\n"), 0o644))

	cache, err := NewCache(filepath.Join(dir, "cache"))
	require.NoError(t, err)

	first, err := NewCachedVerifier(NewEngine(DefaultConfig(), nil), cache).Run(path)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, tt.VerdictValid, first[0].Verdict)

	config := DefaultConfig()
	config.Options.SkipEvalChecker = true
	second, err := NewCachedVerifier(NewEngine(config, nil), cache).Run(path)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, tt.VerdictNoPath, second[0].Verdict)
}

func TestEngineFingerprint(t *testing.T) {
	t.Parallel()

	base := NewEngine(DefaultConfig(), nil).Fingerprint()
	assert.Equal(t, base, NewEngine(DefaultConfig(), nil).Fingerprint())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"skip eval checker", func(c *Config) { c.Options.SkipEvalChecker = true }},
		{"eval fractions", func(c *Config) { c.Options.EvalFractions = true }},
		{"max depth", func(c *Config) { c.Limits.MaxDepth = 8 }},
		{"max checks", func(c *Config) { c.Limits.MaxChecks = 100 }},
		{"disabled rule", func(c *Config) { c.Rules["distribute"] = RuleOff }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config := DefaultConfig()
			tt.modify(&config)
			assert.NotEqual(t, base, NewEngine(config, nil).Fingerprint())
		})
	}
}
