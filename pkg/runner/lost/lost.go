package lost

import (
	"context"

	"tableflip.dev/opsdeck/pkg/app"
	"tableflip.dev/opsdeck/pkg/board"
	"tableflip.dev/opsdeck/pkg/printers"
	"tableflip.dev/opsdeck/pkg/record"
)

// Report files a lost-and-found report.
type Report struct {
	Item     string
	Location string
	ShowKeys bool

	Service *app.Service
}

func (n *Report) Do(ctx context.Context) error {
	if _, err := n.Service.ReportLost(ctx, n.Item, n.Location); err != nil {
		return err
	}
	return print(ctx, n.Service, n.ShowKeys)
}

// Resolve marks a report found.
type Resolve struct {
	Key      string
	ShowKeys bool

	Service *app.Service
}

func (n *Resolve) Do(ctx context.Context) error {
	if err := n.Service.ResolveLost(ctx, n.Key); err != nil {
		return err
	}
	return print(ctx, n.Service, n.ShowKeys)
}

func print(ctx context.Context, service *app.Service, showKeys bool) error {
	snap, err := service.Snapshot(ctx, record.LostFoundPath)
	if err != nil {
		return err
	}
	v := board.LostFound(service.Client)
	v.Apply(snap)

	pp := printers.PrettyPrint{ShowKeys: showKeys}
	pp.View(v)
	return nil
}
