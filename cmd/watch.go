package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/gridfit/pkg/loader"
)

// watchDebounce coalesces the burst of events editors emit on save.
var watchDebounce = 100 * time.Millisecond

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// watchFile calls onChange with the reloaded definition each time path is
// written, created or renamed into place. The parent directory is watched
// so that editors replacing the file are still seen. Reload errors are
// logged and the previous definition stays in effect. It returns when ctx
// is done.
func watchFile(ctx context.Context, lgr logr.Logger, path string, onChange func(*loader.Definition)) error {
	if path == "" {
		return fmt.Errorf("watch: no file to watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	lgr.V(1).Info("watching definition", "path", target)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(watchDebounce)
		case <-pending:
			pending = nil
			def, err := loader.LoadFile(target)
			if err != nil {
				lgr.Error(err, "reload failed, keeping previous definition", "path", target)
				continue
			}
			lgr.V(1).Info("definition reloaded", "path", target, "columns", len(def.Columns))
			onChange(def)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			lgr.Error(err, "watcher error")
		}
	}
}
