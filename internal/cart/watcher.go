package cart

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch observes the file backing the cart slot and reloads the store when
// it changes on disk outside this process (manual edits, sync tools).
// Only meaningful for the fs storage backend. cb (if non-nil) is called
// after each reload that actually changed the cart.
//
// Reload events are debounced because editors and atomic-rename writers
// emit bursts of Create/Write/Rename events for a single logical change.
func Watch(ctx context.Context, store *Store, slotPath string, logger *slog.Logger, cb func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the parent directory: the slot file itself may not exist yet,
	// and atomic renames replace the inode.
	dir := filepath.Dir(slotPath)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("cart watcher: started", slog.String("slot", slotPath))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("cart watcher: stopped")
			return nil

		case <-reloadCh:
			if store.Reload(ctx) {
				logger.Info("cart watcher: reloaded from disk")
				if cb != nil {
					cb()
				}
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != slotPath {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("cart watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
