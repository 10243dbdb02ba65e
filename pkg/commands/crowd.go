package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/opsdeck/pkg/runner/crowd"
)

func addCrowd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "crowd <location> <level>",
		Short: "Set the crowd level for a location",
		Example: `
opsdeck crowd "gate A" severe
opsdeck crowd stage normal
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 2 {
				return errors.New("requires a location and a level")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := crowd.Crowd{
				Location: strings.Join(args[:len(args)-1], " "),
				Level:    args[len(args)-1],
				Service:  svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
