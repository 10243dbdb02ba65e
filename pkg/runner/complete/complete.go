package complete

import (
	"context"

	"tableflip.dev/opsdeck/pkg/app"
	"tableflip.dev/opsdeck/pkg/board"
	"tableflip.dev/opsdeck/pkg/printers"
	"tableflip.dev/opsdeck/pkg/record"
)

// Complete toggles a task's completion. Undo flips it back open.
type Complete struct {
	Key      string
	Undo     bool
	ShowKeys bool

	Service *app.Service
}

func (n *Complete) Do(ctx context.Context) error {
	var err error
	if n.Undo {
		err = n.Service.ReopenTask(ctx, n.Key)
	} else {
		err = n.Service.CompleteTask(ctx, n.Key)
	}
	if err != nil {
		return err
	}

	snap, err := n.Service.Snapshot(ctx, record.TasksPath)
	if err != nil {
		return err
	}
	v := board.Tasks(n.Service.Client)
	v.Apply(snap)

	pp := printers.PrettyPrint{ShowKeys: n.ShowKeys}
	pp.View(v)
	return nil
}
