package get

import (
	"context"
	"fmt"

	"tableflip.dev/opsdeck/pkg/app"
	"tableflip.dev/opsdeck/pkg/board"
	"tableflip.dev/opsdeck/pkg/printers"
	"tableflip.dev/opsdeck/pkg/record"
)

// Get pretty-prints one collection, or all of them.
type Get struct {
	Collection string
	ShowKeys   bool

	Service *app.Service
}

func (n *Get) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{ShowKeys: n.ShowKeys}
	fmt.Println("")

	paths := record.Paths()
	if n.Collection != "" {
		paths = []string{n.Collection}
	}

	for _, path := range paths {
		if path == record.EmergencyPath {
			current, ok, err := n.Service.CurrentEmergency(ctx)
			if err != nil {
				return err
			}
			pp.Emergency(current, ok)
			continue
		}

		v := board.ForPath(n.Service.Client, path)
		if v == nil {
			return fmt.Errorf("unknown collection %q", path)
		}
		snap, err := n.Service.Snapshot(ctx, path)
		if err != nil {
			return err
		}
		v.Apply(snap)
		pp.View(v)
	}

	return nil
}
