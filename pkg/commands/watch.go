package commands

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/opsdeck/pkg/commands/options"
	"tableflip.dev/opsdeck/pkg/record"
	"tableflip.dev/opsdeck/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	ko := &options.KeyOptions{}

	cmd := &cobra.Command{
		Use:       "watch [collection]",
		Short:     "Stream collection changes to the terminal",
		ValidArgs: record.Paths(),
		Example: `
opsdeck watch
opsdeck watch tasks
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) > 1 {
				return fmt.Errorf("at most one collection, got %d", len(args))
			}
			if len(args) == 1 && !knownPath(args[0]) {
				return fmt.Errorf("unknown collection %q (want one of %s)",
					args[0], strings.Join(record.Paths(), ", "))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := watch.Watch{
				ShowKeys: ko.ShowKeys,
				Service:  svc,
			}
			if len(args) == 1 {
				s.Collection = args[0]
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	options.AddShowKeysArgs(cmd, ko)

	topLevel.AddCommand(cmd)
}
