package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	tt "github.com/gnoswap-labs/stepcheck/internal/types"
	"github.com/gnoswap-labs/stepcheck/verify"
)

var (
	ignoreRules     string
	batchJsonOutput bool
	outPath         string
	cacheDir        string
	watchMode       bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [paths...]",
	Short: "Check every step of the given step files and directories",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		if code := runBatch(args); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	batchCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	batchCmd.Flags().BoolVar(&batchJsonOutput, "json", false, "Output findings in JSON format")
	batchCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (defaults to stdout)")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Reuse findings of unchanged step files from this directory")
	batchCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Keep running and re-check step files when they change")
}

func runBatch(paths []string) int {
	engine, err := newEngine(ignoreRules)
	if err != nil {
		logger.Error("Failed to initialize engine", zap.Error(err))
		return 1
	}

	var verifier verify.Verifier = engine
	if cacheDir != "" {
		cache, err := verify.NewCache(cacheDir)
		if err != nil {
			logger.Error("Failed to open cache", zap.Error(err))
			return 1
		}
		defer func() {
			if err := cache.Save(); err != nil {
				logger.Error("Error saving cache", zap.Error(err))
			}
		}()
		verifier = verify.NewCachedVerifier(engine, cache)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	failed := runBatchProcess(ctx, logger, verifier, paths, batchJsonOutput, outPath)
	cancel()

	if watchMode {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := verify.Watch(ctx, logger, engine, paths, func(_ string, findings []tt.Finding) {
			if err := writeFindings(findings, batchJsonOutput, outPath); err != nil {
				logger.Error("Error writing findings", zap.Error(err))
			}
		})
		if err != nil && ctx.Err() == nil {
			logger.Error("Error watching files", zap.Error(err))
			return 1
		}
		return 0
	}

	if failed {
		return 1
	}
	return 0
}

// runBatchProcess checks paths and prints the findings. It reports whether
// the run should fail: a processing error or any step that is not valid.
func runBatchProcess(ctx context.Context, logger *zap.Logger, engine verify.Verifier, paths []string, isJson bool, output string) bool {
	findings, err := verify.ProcessFiles(ctx, logger, engine, paths, verify.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		return true
	}

	if err := writeFindings(findings, isJson, output); err != nil {
		logger.Error("Error writing findings", zap.Error(err))
		return true
	}
	return anyFailed(findings)
}

func writeFindings(findings []tt.Finding, isJson bool, output string) error {
	if output == "" {
		return printFindings(os.Stdout, findings, isJson)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	return printFindings(f, findings, isJson)
}
