package add

import (
	"context"

	"tableflip.dev/opsdeck/pkg/app"
	"tableflip.dev/opsdeck/pkg/board"
	"tableflip.dev/opsdeck/pkg/printers"
	"tableflip.dev/opsdeck/pkg/record"
)

type Add struct {
	Text     string
	ShowKeys bool

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if _, err := n.Service.AddTask(ctx, n.Text); err != nil {
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
