package crowd

import (
	"context"

	"tableflip.dev/opsdeck/pkg/app"
	"tableflip.dev/opsdeck/pkg/board"
	"tableflip.dev/opsdeck/pkg/printers"
	"tableflip.dev/opsdeck/pkg/record"
)

// Crowd overwrites the status for one location.
type Crowd struct {
	Location string
	Level    string

	Service *app.Service
}

func (n *Crowd) Do(ctx context.Context) error {
	if err := n.Service.SetCrowd(ctx, n.Location, n.Level); err != nil {
		return err
	}

	snap, err := n.Service.Snapshot(ctx, record.CrowdPath)
	if err != nil {
		return err
	}
	v := board.Crowds()
	v.Apply(snap)

	pp := printers.PrettyPrint{}
	pp.View(v)
	return nil
}
