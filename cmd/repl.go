package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	tt "github.com/gnoswap-labs/stepcheck/internal/types"
)

const (
	historyFile = ".stepcheck_history"
	promptMain  = "step> "
	stepArrow   = "=>"
)

var replIgnoreRules string

// replCmd: stepcheck repl
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Check steps interactively, one \"prev => next\" per line",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(replIgnoreRules)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}
		runRepl(engine.CheckStep)
	},
}

func init() {
	replCmd.Flags().StringVar(&replIgnoreRules, "ignore", "", "Comma-separated list of rules to ignore")
}

func runRepl(check func(prev, next string) tt.Finding) {
	fmt.Println(`Enter a step as "prev => next". Type :quit to exit.`)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			if !errors.Is(err, liner.ErrPromptAborted) && !errors.Is(err, io.EOF) {
				logger.Error("Error reading input", zap.Error(err))
			}
			fmt.Println()
			return
		}
		if quit := handleReplLine(os.Stdout, check, line); quit {
			return
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
	}
}

// handleReplLine checks one input line and reports whether the session
// should end.
func handleReplLine(w io.Writer, check func(prev, next string) tt.Finding, line string) (quit bool) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return false
	case strings.HasPrefix(line, ":"):
		if strings.ToLower(line) == ":quit" {
			return true
		}
		fmt.Fprintln(w, "unknown command. Type :quit to exit.")
		return false
	}

	prev, next, ok := splitStep(line)
	if !ok {
		fmt.Fprintln(w, color.RedString("error: expected \"prev %s next\"", stepArrow))
		return false
	}
	_ = printFindings(w, []tt.Finding{check(prev, next)}, false)
	return false
}

func splitStep(line string) (prev, next string, ok bool) {
	prev, next, ok = strings.Cut(line, stepArrow)
	prev, next = strings.TrimSpace(prev), strings.TrimSpace(next)
	return prev, next, ok && prev != "" && next != ""
}
