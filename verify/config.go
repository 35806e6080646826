package verify

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/stepcheck/internal/checker"
)

const DefaultConfigPath = ".stepcheck.yaml"

// RuleSetting turns a rule on or off in the configuration file.
type RuleSetting string

const (
	RuleOn  RuleSetting = "on"
	RuleOff RuleSetting = "off"
)

// Config represents the configuration file.
type Config struct {
	Name    string                 `yaml:"name"`
	Options OptionsConfig          `yaml:"options"`
	Limits  LimitsConfig           `yaml:"limits"`
	Rules   map[string]RuleSetting `yaml:"rules"`
}

type OptionsConfig struct {
	SkipEvalChecker bool `yaml:"skip_eval_checker"`
	EvalFractions   bool `yaml:"eval_fractions"`
}

// LimitsConfig bounds the search of a single step. Zero means the default.
type LimitsConfig struct {
	MaxDepth  int `yaml:"max_depth"`
	MaxChecks int `yaml:"max_checks"`
}

func DefaultConfig() Config {
	return Config{
		Name: "stepcheck",
		Limits: LimitsConfig{
			MaxDepth:  checker.DefaultLimits.MaxDepth,
			MaxChecks: checker.DefaultLimits.MaxChecks,
		},
		Rules: map[string]RuleSetting{},
	}
}

// LoadConfig reads the configuration at path. An empty path yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return config, fmt.Errorf("error reading %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		return config, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if err := config.validate(); err != nil {
		return config, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	return config, nil
}

// WriteConfig writes config to path in YAML form.
func WriteConfig(path string, config Config) error {
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}

func (c Config) validate() error {
	known := make(map[string]bool)
	for _, chk := range checker.AllChecks() {
		known[chk.Name] = true
	}

	var errs []error
	for name, setting := range c.Rules {
		if !known[name] {
			errs = append(errs, fmt.Errorf("unknown rule %q", name))
		}
		if setting != RuleOn && setting != RuleOff {
			errs = append(errs, fmt.Errorf("rule %q: setting must be %q or %q, got %q", name, RuleOn, RuleOff, setting))
		}
	}
	if c.Limits.MaxDepth < 0 || c.Limits.MaxChecks < 0 {
		errs = append(errs, errors.New("limits must not be negative"))
	}
	return errors.Join(errs...)
}

// DisabledRules lists the rules switched off, in rule order.
func (c Config) DisabledRules() []string {
	var names []string
	for _, chk := range checker.AllChecks() {
		if c.Rules[chk.Name] == RuleOff {
			names = append(names, chk.Name)
		}
	}
	return names
}

func (c Config) limits() checker.Limits {
	limits := checker.DefaultLimits
	if c.Limits.MaxDepth > 0 {
		limits.MaxDepth = c.Limits.MaxDepth
	}
	if c.Limits.MaxChecks > 0 {
		limits.MaxChecks = c.Limits.MaxChecks
	}
	return limits
}

func (c Config) checkerOptions() []checker.Option {
	return []checker.Option{
		checker.WithOptions(checker.Options{
			SkipEvalChecker: c.Options.SkipEvalChecker,
			EvalFractions:   c.Options.EvalFractions,
		}),
		checker.WithLimits(c.limits()),
		checker.WithIgnored(c.DisabledRules()...),
	}
}
