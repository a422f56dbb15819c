package regime

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"tax-engine/internal/model"
)

// Watch reloads the regime file at path whenever it changes on disk and
// passes each valid result to apply. An edit that fails to parse or validate
// is logged and the previously applied regime stays in effect. Watch blocks
// until ctx is cancelled.
func Watch(ctx context.Context, path string, log *slog.Logger, apply func(Regime)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return &model.OpError{Op: "regime.watch", Kind: model.KindInvalidConfig, Path: path, Err: err}
	}
	defer w.Close()

	// Editors often save by writing a temp file and renaming it over the
	// original, so watch the directory rather than the file itself.
	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return &model.OpError{Op: "regime.watch", Kind: model.KindNotFound, Path: path, Err: err}
	}
	log.Info("regime.watching", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			r, err := LoadFile(target)
			if err != nil {
				log.Warn("regime.reload_rejected", "path", target, "error", err)
				continue
			}
			log.Info("regime.reloaded", "path", target, "name", r.Name)
			apply(r)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("regime.watch_error", "error", err)
		}
	}
}
