package ingest

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 2 * time.Second

// Watch reloads the dataset when either CSV export is rewritten. Events are
// debounced since exports are often written in several chunks. Blocks until
// the context is cancelled.
func (s *Service) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := map[string]bool{
		filepath.Clean(s.cnfg.ReadingsCsv): true,
		filepath.Clean(s.cnfg.PricesCsv):   true,
	}

	dirs := map[string]bool{}
	for file := range watched {
		dirs[filepath.Dir(file)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
		s.logger.Debug("watching data directory", slog.String("dir", dir))
	}

	var debounce *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.logger.Debug("data file changed", slog.String("file", event.Name))
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := s.RefreshFromFiles(ctx); err != nil {
				s.logger.Error("reload after file change failed", slog.Any("error", err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("data watcher error", slog.Any("error", err))
		}
	}
}
