// Package watch re-renders a screenshot whenever its source file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/youruser/shotframe/internal/batch"
	"github.com/youruser/shotframe/internal/logging"
	"github.com/youruser/shotframe/internal/util"
)

// DefaultDebounce absorbs the burst of write events an editor or export tool
// emits for a single save.
const DefaultDebounce = 250 * time.Millisecond

// Renderer processes one input. *batch.Runner satisfies it.
type Renderer interface {
	RunOne(ctx context.Context, input string) (batch.Report, error)
}

// Watcher maps file events on local inputs to re-renders.
type Watcher struct {
	renderer Renderer
	inputs   map[string]string // cleaned absolute path -> configured input
	debounce time.Duration
	logger   *zap.Logger
}

// New watches the local entries of inputs. Remote inputs are ignored.
func New(renderer Renderer, inputs []string, logger *zap.Logger) (*Watcher, error) {
	w := &Watcher{
		renderer: renderer,
		inputs:   make(map[string]string),
		debounce: DefaultDebounce,
		logger:   logging.Component(logger, "watch"),
	}
	for _, in := range inputs {
		if util.IsRemote(in) {
			continue
		}
		abs, err := filepath.Abs(in)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", in, err)
		}
		w.inputs[abs] = in
	}
	if len(w.inputs) == 0 {
		return nil, fmt.Errorf("no local inputs to watch")
	}
	return w, nil
}

// SetDebounce overrides DefaultDebounce.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks until ctx is cancelled. Parent directories are watched rather
// than the files so inputs that are replaced or created later are seen.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer fsw.Close()

	dirs := make(map[string]bool)
	for abs := range w.inputs {
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
		w.logger.Info("watching", zap.String("dir", dir))
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.tick())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", zap.Error(err))
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			input, relevant := w.match(ev)
			if relevant {
				pending[input] = time.Now().Add(w.debounce)
			}
		case now := <-ticker.C:
			for input, due := range pending {
				if now.Before(due) {
					continue
				}
				delete(pending, input)
				if err := w.render(ctx, input); err != nil {
					return err
				}
			}
		}
	}
}

func (w *Watcher) tick() time.Duration {
	t := w.debounce / 2
	if t < 10*time.Millisecond {
		t = 10 * time.Millisecond
	}
	return t
}

// match returns the configured input for a create or write event.
func (w *Watcher) match(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return "", false
	}
	input, ok := w.inputs[abs]
	return input, ok
}

func (w *Watcher) render(ctx context.Context, input string) error {
	w.logger.Info("input changed", zap.String("input", input))
	rep, err := w.renderer.RunOne(ctx, input)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	w.logger.Info("re-rendered",
		zap.String("input", input),
		zap.Int("ok", rep.OK()),
		zap.Int("failed", rep.Failed()))
	return nil
}
