package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// snapshotDelay coalesces rapid change notifications so subscribers see one
// snapshot per burst of store activity instead of one per write.
const snapshotDelay = 100 * time.Millisecond

// Subscribe streams full snapshots of the collection at path until ctx is
// cancelled. One initial snapshot is always delivered. The client's own
// writes are observed the same way as everyone else's: through the next
// snapshot. When a subscriber lags, older snapshots are replaced by newer
// ones rather than queued; the last full replace wins.
func (r *replica) Subscribe(ctx context.Context, path string) (<-chan Snapshot, error) {
	collection, key, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if key != "" {
		return nil, fmt.Errorf("store: subscribe wants a collection path, got %q", path)
	}

	dir := filepath.Join(r.basePath, collection)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, unavailable("ensure "+collection, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, unavailable("create watcher", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, unavailable("watch "+collection, err)
	}

	snapshots := make(chan Snapshot, 1)

	go func() {
		defer close(snapshots)
		defer func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		}()

		if snap, err := r.Current(ctx, collection); err == nil {
			deliver(snapshots, snap)
		} else {
			fmt.Fprintf(os.Stderr, "store: initial snapshot %s: %v\n", collection, err)
		}

		var flush <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				if flush == nil {
					flush = time.After(snapshotDelay)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Treat watcher trouble as a change so subscribers resync.
				if flush == nil {
					flush = time.After(snapshotDelay)
				}
			case <-flush:
				flush = nil
				snap, err := r.Current(ctx, collection)
				if err != nil {
					// Keep the last good snapshot on the subscriber side.
					fmt.Fprintf(os.Stderr, "store: snapshot %s: %v\n", collection, err)
					continue
				}
				deliver(snapshots, snap)
			}
		}
	}()

	return snapshots, nil
}

// deliver sends keeping only the freshest snapshot: if the subscriber has
// not consumed the previous one, it is dropped in favor of this one.
func deliver(ch chan Snapshot, snap Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
