package cli

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultWatchDebounce = 250 * time.Millisecond

// snapshotWatcher re-imports a snapshot file after it changes. The parent
// directory is watched so editors that replace the file on save still
// trigger a reload.
type snapshotWatcher struct {
	path     string
	name     string
	debounce time.Duration
	logger   *slog.Logger
	fw       *fsnotify.Watcher

	lastSum [sha256.Size]byte
	loaded  bool
}

func newSnapshotWatcher(path string, debounce time.Duration, logger *slog.Logger) (*snapshotWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &snapshotWatcher{
		path:     abs,
		name:     filepath.Base(abs),
		debounce: debounce,
		logger:   logger.With("file", abs),
		fw:       fw,
	}, nil
}

// Run loads the snapshot once, then calls reload after each burst of changes
// to the file until ctx is done. Reload errors are logged and watching
// continues. Run closes the underlying watcher before returning.
func (sw *snapshotWatcher) Run(ctx context.Context, reload func(context.Context) error) error {
	defer sw.fw.Close()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	fire := make(chan struct{}, 1)
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(sw.debounce, func() {
			select {
			case fire <- struct{}{}:
			default:
			}
		})
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	sw.reloadIfChanged(ctx, reload)

	for {
		select {
		case <-ctx.Done():
			sw.logger.Info("snapshot watcher stopped")
			return nil
		case ev, ok := <-sw.fw.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Base(ev.Name), sw.name) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove|fsnotify.Chmod) == 0 {
				continue
			}
			sw.logger.Debug("snapshot changed", "op", ev.Op.String())
			schedule()
		case err, ok := <-sw.fw.Errors:
			if !ok {
				return nil
			}
			sw.logger.Warn("snapshot watcher error", "err", err)
		case <-fire:
			sw.reloadIfChanged(ctx, reload)
		}
	}
}

// reloadIfChanged skips the reload when the content matches the last
// successful import, which also absorbs chmod-only and touch events.
func (sw *snapshotWatcher) reloadIfChanged(ctx context.Context, reload func(context.Context) error) {
	data, err := os.ReadFile(sw.path)
	if err != nil {
		// Mid-save renames briefly leave no file; the Create that follows reschedules.
		sw.logger.Warn("snapshot unreadable", "err", err)
		return
	}
	sum := sha256.Sum256(data)
	if sw.loaded && sum == sw.lastSum {
		sw.logger.Debug("snapshot unchanged")
		return
	}

	started := time.Now()
	if err := reload(ctx); err != nil {
		sw.logger.Error("snapshot reload failed", "err", err)
		return
	}
	sw.lastSum = sum
	sw.loaded = true
	sw.logger.Info("snapshot reloaded", "duration_ms", time.Since(started).Milliseconds())
}
