package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/opsdeck/pkg/commands/options"
	"tableflip.dev/opsdeck/pkg/runner/complete"
	"tableflip.dev/opsdeck/pkg/runner/remove"
)

func addDone(topLevel *cobra.Command) {
	ko := &options.KeyOptions{}
	undo := false

	cmd := &cobra.Command{
		Use:   "done <key>",
		Short: "Mark a task completed",
		Example: `
opsdeck done -MxTk29vXq1
opsdeck done --undo -MxTk29vXq1
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a task key")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := complete.Complete{
				Key:      args[0],
				Undo:     undo,
				ShowKeys: ko.ShowKeys,
				Service:  svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Reopen the task instead.")
	options.AddShowKeysArgs(cmd, ko)

	topLevel.AddCommand(cmd)

	// undo is also a top-level alias for done --undo.
	undoCmd := &cobra.Command{
		Use:   "undo <key>",
		Short: "Reopen a completed task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := complete.Complete{
				Key:     args[0],
				Undo:    true,
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}
	topLevel.AddCommand(undoCmd)
}

func addRm(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "rm <key>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := remove.Remove{
				Key:     args[0],
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
