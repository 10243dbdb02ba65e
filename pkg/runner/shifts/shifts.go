package shifts

import (
	"context"
	"fmt"

	"tableflip.dev/opsdeck/pkg/app"
	"tableflip.dev/opsdeck/pkg/board"
	"tableflip.dev/opsdeck/pkg/printers"
	"tableflip.dev/opsdeck/pkg/record"
)

// Add records a new shift after validating its window.
type Add struct {
	Start    string
	End      string
	Person   string
	Role     string
	ShowKeys bool

	Service *app.Service
}

func (n *Add) Do(ctx context.Context) error {
	if _, err := n.Service.AddShift(ctx, n.Start, n.End, n.Person, n.Role); err != nil {
		return err
	}
	return print(ctx, n.Service, n.ShowKeys)
}

// End removes a shift immediately, whatever its derived status.
type End struct {
	Key      string
	ShowKeys bool

	Service *app.Service
}

func (n *End) Do(ctx context.Context) error {
	if err := n.Service.EndShift(ctx, n.Key); err != nil {
		return err
	}
	return print(ctx, n.Service, n.ShowKeys)
}

// Sweep runs one lifecycle evaluation and retires expired shifts.
type Sweep struct {
	ShowKeys bool

	Service *app.Service
}

func (n *Sweep) Do(ctx context.Context) error {
	evals, removed, err := n.Service.SweepShifts(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("swept %d expired, %d shifts remain\n", removed, len(evals))
	return print(ctx, n.Service, n.ShowKeys)
}

func print(ctx context.Context, service *app.Service, showKeys bool) error {
	snap, err := service.Snapshot(ctx, record.ShiftsPath)
	if err != nil {
		return err
	}
	v := board.Shifts(service.Client, nil)
	v.Apply(snap)

	pp := printers.PrettyPrint{ShowKeys: showKeys}
	pp.View(v)
	return nil
}
