package watch

import (
	"context"
	"fmt"

	"tableflip.dev/opsdeck/pkg/app"
	"tableflip.dev/opsdeck/pkg/board"
	"tableflip.dev/opsdeck/pkg/printers"
	"tableflip.dev/opsdeck/pkg/record"
	"tableflip.dev/opsdeck/pkg/store"
)

// Watch streams snapshots and re-renders the affected view on each one,
// until the context is cancelled.
type Watch struct {
	Collection string
	ShowKeys   bool

	Service *app.Service
}

func (n *Watch) Do(ctx context.Context) error {
	paths := record.Paths()
	if n.Collection != "" {
		paths = []string{n.Collection}
	}

	views := make(map[string]*board.View, len(paths))
	merged := make(chan store.Snapshot)
	for _, path := range paths {
		if path != record.EmergencyPath {
			if v := board.ForPath(n.Service.Client, path); v != nil {
				views[path] = v
			} else {
				return fmt.Errorf("unknown collection %q", path)
			}
		}
		snaps, err := n.Service.Subscribe(ctx, path)
		if err != nil {
			return err
		}
		go func() {
			for snap := range snaps {
				select {
				case merged <- snap:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	pp := printers.PrettyPrint{ShowKeys: n.ShowKeys}
	for {
		select {
		case snap := <-merged:
			if snap.Path == record.EmergencyPath {
				var e record.Emergency
				ok, err := snap.Single(&e)
				if err != nil {
					continue
				}
				pp.Emergency(e, ok)
				continue
			}
			v := views[snap.Path]
			v.Apply(snap)
			pp.View(v)
		case <-ctx.Done():
			return nil
		}
	}
}
