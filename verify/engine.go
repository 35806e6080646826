package verify

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/stepcheck/internal/checker"
	"github.com/gnoswap-labs/stepcheck/internal/parser"
	"github.com/gnoswap-labs/stepcheck/internal/semantic"
	tt "github.com/gnoswap-labs/stepcheck/internal/types"
)

// Verifier checks the steps of step files.
type Verifier interface {
	Run(filePath string) ([]tt.Finding, error)
	RunSource(source []byte) ([]tt.Finding, error)
	IgnoreRule(rule string)
}

// Engine is the Verifier backed by the rule checker.
type Engine struct {
	checker *checker.Checker
	logger  *zap.Logger
}

// New creates an engine from the configuration file at configPath. An empty
// path uses the defaults.
func New(configPath string, logger *zap.Logger) (*Engine, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewEngine(config, logger), nil
}

func NewEngine(config Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := append(config.checkerOptions(), checker.WithLogger(logger))
	return &Engine{
		checker: checker.New(opts...),
		logger:  logger,
	}
}

// IgnoreRule disables a rule. It must not be called while files are being
// processed.
func (e *Engine) IgnoreRule(rule string) {
	e.checker.IgnoreRule(rule)
}

// Rules returns the active rule names in order.
func (e *Engine) Rules() []string {
	return e.checker.Rules()
}

// Fingerprint identifies everything besides the source that changes the
// findings of a step file.
func (e *Engine) Fingerprint() string {
	opts, limits := e.checker.Options(), e.checker.Limits()
	return fmt.Sprintf("rules=%s;skip_eval_checker=%t;eval_fractions=%t;max_depth=%d;max_checks=%d",
		strings.Join(e.checker.Rules(), ","),
		opts.SkipEvalChecker, opts.EvalFractions,
		limits.MaxDepth, limits.MaxChecks,
	)
}

// Run checks every step of the step file at filePath.
func (e *Engine) Run(filePath string) ([]tt.Finding, error) {
	source, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filePath, err)
	}
	findings, err := e.RunSource(source)
	if err != nil {
		return nil, fmt.Errorf("error checking %s: %w", filePath, err)
	}
	for i := range findings {
		findings[i].Filename = filePath
	}
	return findings, nil
}

// RunSource checks every step of a step file held in memory.
func (e *Engine) RunSource(source []byte) ([]tt.Finding, error) {
	file, err := ParseStepFile(source)
	if err != nil {
		return nil, err
	}
	pairs := file.Pairs()
	findings := make([]tt.Finding, len(pairs))
	for i, pair := range pairs {
		findings[i] = e.CheckStep(pair.Prev, pair.Next)
		findings[i].Index = i
	}
	return findings, nil
}

// CheckStep parses and checks a single step.
func (e *Engine) CheckStep(prev, next string) tt.Finding {
	finding := tt.Finding{Prev: prev, Next: next}

	prevNode, err := parser.Parse(prev)
	if err != nil {
		finding.Verdict = tt.VerdictInvalidInput
		finding.Error = fmt.Sprintf("prev: %v", err)
		return finding
	}
	nextNode, err := parser.Parse(next)
	if err != nil {
		finding.Verdict = tt.VerdictInvalidInput
		finding.Error = fmt.Sprintf("next: %v", err)
		return finding
	}

	return NewFinding(finding, e.checker.CheckStep(prevNode, nextNode))
}

// CheckChain checks every consecutive pair of exprs.
func (e *Engine) CheckChain(exprs []string) []tt.Finding {
	var findings []tt.Finding
	for i := 1; i < len(exprs); i++ {
		f := e.CheckStep(exprs[i-1], exprs[i])
		f.Index = i - 1
		findings = append(findings, f)
	}
	return findings
}

// NewFinding fills finding from a checker report.
func NewFinding(finding tt.Finding, report *checker.Report) tt.Finding {
	finding.Rules = report.SuccessfulChecks
	switch {
	case report.Result != nil:
		finding.Verdict = tt.VerdictValid
		finding.Steps = printSteps(report.Result.Steps)
	case len(report.Mistakes) > 0:
		finding.Verdict = tt.VerdictMistake
	case report.Inconclusive:
		finding.Verdict = tt.VerdictInconclusive
	default:
		finding.Verdict = tt.VerdictNoPath
	}
	for _, m := range report.Mistakes {
		finding.Mistakes = append(finding.Mistakes, printMistake(m))
	}
	return finding
}

func printSteps(steps []checker.Step) []tt.Step {
	if len(steps) == 0 {
		return nil
	}
	out := make([]tt.Step, len(steps))
	for i, s := range steps {
		out[i] = tt.Step{
			Message:  s.Message,
			Before:   semantic.Print(s.Before),
			After:    semantic.Print(s.After),
			Substeps: printSteps(s.Substeps),
		}
	}
	return out
}

func printMistake(m checker.Mistake) tt.Mistake {
	out := tt.Mistake{
		ID:          m.ID.String(),
		Description: m.ID.Description(),
		PrevNodes:   printNodes(m.PrevNodes),
		NextNodes:   printNodes(m.NextNodes),
	}
	for _, c := range m.Corrections {
		wrong := findNode(c.ID, m.PrevNodes, m.NextNodes)
		if wrong == nil {
			continue
		}
		out.Corrections = append(out.Corrections,
			semantic.Print(wrong)+" -> "+semantic.Print(c.Replacement))
	}
	return out
}

func printNodes(nodes []semantic.Node) []string {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = semantic.Print(n)
	}
	return out
}

func findNode(id int, lists ...[]semantic.Node) semantic.Node {
	for _, nodes := range lists {
		for _, n := range nodes {
			if n.ID() == id {
				return n
			}
		}
	}
	return nil
}
