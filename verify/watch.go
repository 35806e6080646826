package verify

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnoswap-labs/stepcheck/internal/types"
)

// settleDelay groups the writes an editor makes when saving into one run.
const settleDelay = 100 * time.Millisecond

// Watch re-checks step files below paths whenever they are written, calling
// report with the new findings. It returns when ctx is done.
func Watch(
	ctx context.Context,
	logger *zap.Logger,
	engine Verifier,
	paths []string,
	report func(filename string, findings []tt.Finding),
) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || p == path {
				return watcher.Add(p)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding %s to watcher: %w", path, err)
		}
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(settleDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isStepFileChange(event) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(settleDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Error watching files", zap.Error(err))
		case <-timer.C:
			for filename := range pending {
				findings, err := engine.Run(filename)
				if err != nil {
					logger.Error("Error processing file", zap.String("file", filename), zap.Error(err))
					continue
				}
				report(filename, findings)
			}
			clear(pending)
		}
	}
}

func isStepFileChange(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return hasDesiredExtension(event.Name) && filepath.Base(event.Name) != DefaultConfigPath
}
