package board

import (
	"context"

	"tableflip.dev/opsdeck/pkg/app"
	"tableflip.dev/opsdeck/pkg/tui"
)

// Board runs the live dashboard until the context is cancelled or the
// user quits.
type Board struct {
	Service *app.Service
}

func (n *Board) Do(ctx context.Context) error {
	return tui.Run(ctx, n.Service)
}
