package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/opsdeck/pkg/commands/options"
	"tableflip.dev/opsdeck/pkg/runner/emergency"
)

func addEmergency(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "emergency",
		Short: "Raise or resolve the event emergency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEmergencyRaise(cmd)
	addEmergencyResolve(cmd)

	topLevel.AddCommand(cmd)
}

func addEmergencyRaise(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}
	message := ""

	cmd := &cobra.Command{
		Use:   "raise <kind>",
		Short: "Raise an emergency",
		Example: `
opsdeck emergency raise fire --message "evacuate hall B" --yes
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires an emergency kind")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := emergency.Raise{
				Kind:    strings.Join(args, " "),
				Value:   message,
				Yes:     co.Yes,
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Detail shown with the alert.")
	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}

func addEmergencyResolve(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the active emergency",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := emergency.Resolve{
				Yes:     co.Yes,
				Service: svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
