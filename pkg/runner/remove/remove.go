package remove

import (
	"context"
	"fmt"

	"tableflip.dev/opsdeck/pkg/app"
)

// Remove deletes a task outright. Unknown keys are a no-op, so repeated
// removes do not error.
type Remove struct {
	Key string

	Service *app.Service
}

func (n *Remove) Do(ctx context.Context) error {
	if err := n.Service.DeleteTask(ctx, n.Key); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", n.Key)
	return nil
}
