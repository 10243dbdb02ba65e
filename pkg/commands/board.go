package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/opsdeck/pkg/runner/board"
)

func addBoard(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the live dashboard",
		Example: `
opsdeck board
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := board.Board{Service: svc}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
