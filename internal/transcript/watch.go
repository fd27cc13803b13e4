package transcript

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"withefuck/internal/logging"
)

// DefaultDebounce collapses the burst of writes `script` makes per command.
const DefaultDebounce = 250 * time.Millisecond

// Watcher re-parses a transcript whenever it changes.
type Watcher struct {
	Parser   *Parser
	Count    int
	Debounce time.Duration
}

// Watch calls onChange with the last Count records once immediately and again
// after every settled burst of writes, until ctx is cancelled. onChange runs on
// a single goroutine.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func([]Record)) error {
	parser := w.Parser
	if parser == nil {
		parser = NewParser()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	recs, err := parser.LastN(path, w.Count)
	if err != nil {
		return err
	}
	onChange(recs)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	logging.Watch("Watching %s (debounce=%s)", path, debounce)

	changed := make(chan struct{}, 1)
	g, gctx := errgroup.WithContext(ctx)

	// Event pump: coalesce fsnotify events into a single pending signal.
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev, ok := <-fsw.Events:
				if !ok {
					return nil
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				logging.WatchDebug("Event %s", ev)
				select {
				case changed <- struct{}{}:
				default:
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return nil
				}
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
	})

	// Debounced re-parse.
	g.Go(func() error {
		timer := time.NewTimer(debounce)
		timer.Stop()
		defer timer.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-changed:
				timer.Reset(debounce)
			case <-timer.C:
				recs, err := parser.LastN(path, w.Count)
				if err != nil {
					logging.WatchError("Re-parse failed: %v", err)
					continue
				}
				onChange(recs)
			}
		}
	})

	return g.Wait()
}
