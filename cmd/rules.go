package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	set "github.com/hashicorp/go-set/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/stepcheck/internal/checker"
)

// rulesCmd: stepcheck rules
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rules in the order they are tried",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine("")
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}
		listRules(os.Stdout, engine.Rules())
	},
}

// listRules prints every known rule, marking the ones that are switched off
// and the ones that are also tried with the step reversed.
func listRules(w io.Writer, active []string) {
	enabled := set.From(active)
	off := color.New(color.FgHiBlack)
	for i, chk := range checker.AllChecks() {
		line := fmt.Sprintf("%2d  %s", i+1, chk.Name)
		if chk.Symmetric {
			line += " (symmetric)"
		}
		if !enabled.Contains(chk.Name) {
			fmt.Fprintln(w, off.Sprint(line+" [off]"))
			continue
		}
		fmt.Fprintln(w, line)
	}
}
