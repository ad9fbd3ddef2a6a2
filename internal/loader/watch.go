package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchDebounce coalesces the burst of events an editor or exporter produces for one save.
const watchDebounce = 150 * time.Millisecond

// Watch reloads path whenever it changes on disk, until ctx is done or the loader is
// closed. The parent directory is watched so that atomic replace-by-rename saves are seen.
func (l *Loader) Watch(ctx context.Context, path string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return fmt.Errorf("watch %s: %w", path, err)
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		w.Close()
		return ErrClosed
	}
	l.wg.Add(1)
	l.mu.Unlock()
	go func() {
		defer l.wg.Done()
		defer w.Close()
		l.watchLoop(ctx, w, target)
	}()
	l.log.Info("watching asset", zap.String("source", target))
	return nil
}

func (l *Loader) watchLoop(ctx context.Context, w *fsnotify.Watcher, target string) {
	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			l.log.Warn("asset watcher error", zap.Error(err))
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(watchDebounce)
		case <-timer.C:
			l.log.Debug("asset changed on disk", zap.String("source", target))
			if _, err := l.Load(ctx, target); err != nil {
				return
			}
		}
	}
}
