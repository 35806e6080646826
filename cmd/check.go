package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/stepcheck/formatter"
	tt "github.com/gnoswap-labs/stepcheck/internal/types"
)

var (
	checkIgnoreRules string
	checkJsonOutput  bool
)

// checkCmd: stepcheck check <prev> <next>
var checkCmd = &cobra.Command{
	Use:   "check <prev> <next>",
	Short: "Check a single step",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(checkIgnoreRules)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		finding := engine.CheckStep(args[0], args[1])
		if err := printFindings(os.Stdout, []tt.Finding{finding}, checkJsonOutput); err != nil {
			logger.Fatal("Failed to print finding", zap.Error(err))
		}
		if finding.Verdict.Failed() {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkIgnoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	checkCmd.Flags().BoolVar(&checkJsonOutput, "json", false, "Output the finding in JSON format")
}

// printFindings writes findings as rendered text followed by a summary, or
// as a JSON array.
func printFindings(w io.Writer, findings []tt.Finding, isJson bool) error {
	if isJson {
		d, err := json.MarshalIndent(findings, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshalling findings to JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(d))
		return err
	}
	if _, err := io.WriteString(w, formatter.GenerateFormattedFindings(findings)); err != nil {
		return err
	}
	_, err := io.WriteString(w, formatter.Summary(findings))
	return err
}

func anyFailed(findings []tt.Finding) bool {
	for _, f := range findings {
		if f.Verdict.Failed() {
			return true
		}
	}
	return false
}
