package verify

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	tt "github.com/gnoswap-labs/stepcheck/internal/types"
)

// Progress is where the progress bar of directory runs is drawn. Set to
// io.Discard to silence it.
var Progress io.Writer = os.Stderr

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine Verifier,
	sources [][]byte,
	processor func(Verifier, []byte) ([]tt.Finding, error),
) ([]tt.Finding, error) {
	var all []tt.Finding
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		findings, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, findings...)
	}
	return all, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Verifier,
	paths []string,
	processor func(Verifier, string) ([]tt.Finding, error),
) ([]tt.Finding, error) {
	var all []tt.Finding
	for _, path := range paths {
		findings, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, findings...)
	}
	return all, nil
}

// ProcessPath checks a single step file, or every step file below a
// directory using one worker per CPU. Files that fail to load are logged
// and skipped. Findings are ordered by file and step index.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Verifier,
	path string,
	processor func(Verifier, string) ([]tt.Finding, error),
) ([]tt.Finding, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	var files []string
	err = filepath.WalkDir(path, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasDesiredExtension(filePath) && d.Name() != DefaultConfigPath {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(Progress),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	type result struct {
		findings []tt.Finding
		err      error
	}
	results := make(chan result, len(files))
	sem := make(chan struct{}, runtime.NumCPU())

	started := 0
	for _, filePath := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		started++
		go func(fp string) {
			defer func() { <-sem }()
			findings, err := processor(engine, fp)
			if err != nil && logger != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			_ = bar.Add(1)
			results <- result{findings: findings, err: err}
		}(filePath)
	}

	var all []tt.Finding
	for range started {
		r := <-results
		if r.err != nil {
			continue
		}
		all = append(all, r.findings...)
	}
	_ = bar.Finish()
	fmt.Fprintln(Progress)

	slices.SortStableFunc(all, func(a, b tt.Finding) int {
		return cmp.Or(cmp.Compare(a.Filename, b.Filename), cmp.Compare(a.Index, b.Index))
	})
	return all, nil
}

func ProcessFile(engine Verifier, filePath string) ([]tt.Finding, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine Verifier, source []byte) ([]tt.Finding, error) {
	return engine.RunSource(source)
}

var desiredExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}
