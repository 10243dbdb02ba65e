package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/opsdeck/pkg/commands/options"
	"tableflip.dev/opsdeck/pkg/runner/shifts"
)

func addShift(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Manage staff shifts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addShiftAdd(cmd)
	addShiftEnd(cmd)
	addShiftSweep(cmd)

	topLevel.AddCommand(cmd)
}

func addShiftAdd(topLevel *cobra.Command) {
	ko := &options.KeyOptions{}
	so := &options.ShiftOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a shift",
		Example: `
opsdeck shift add --start 09:00 --end 12:00 --person ren --role gate
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := shifts.Add{
				Start:    so.Start,
				End:      so.End,
				Person:   so.Person,
				Role:     so.Role,
				ShowKeys: ko.ShowKeys,
				Service:  svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddShiftArgs(cmd, so)
	options.AddShowKeysArgs(cmd, ko)

	topLevel.AddCommand(cmd)
}

func addShiftEnd(topLevel *cobra.Command) {
	ko := &options.KeyOptions{}

	cmd := &cobra.Command{
		Use:   "end <key>",
		Short: "End a shift now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := shifts.End{
				Key:      args[0],
				ShowKeys: ko.ShowKeys,
				Service:  svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddShowKeysArgs(cmd, ko)

	topLevel.AddCommand(cmd)
}

func addShiftSweep(topLevel *cobra.Command) {
	ko := &options.KeyOptions{}

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove expired shifts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := shifts.Sweep{
				ShowKeys: ko.ShowKeys,
				Service:  svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddShowKeysArgs(cmd, ko)

	topLevel.AddCommand(cmd)
}
