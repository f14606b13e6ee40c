package cmd

import (
	"context"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/gamedevtech/tao/logger"
)

// watchDebounce collapses the burst of events an editor produces on save.
var watchDebounce = 500 * time.Millisecond

// watchDescriptors calls regenerate each time the file at path is written or
// replaced, until ctx is cancelled. The containing directory is watched so
// that editors which save by rename are still seen. Regeneration errors are
// logged and watching continues.
func watchDescriptors(ctx context.Context, path string, regenerate func() error) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrapf(err, "watching %s", filepath.Dir(target))
	}

	var debounceTimer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Logger.Debugw("Descriptor file changed",
				"file", event.Name,
				"op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if err := regenerate(); err != nil {
				logger.Logger.Errorw("Regeneration failed",
					"file", path,
					"error", err)
				continue
			}
			logger.Logger.Infow("Regenerated", "file", path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Logger.Warnw("File watcher error", "error", err)
		}
	}
}
