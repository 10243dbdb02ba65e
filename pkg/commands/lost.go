package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/opsdeck/pkg/commands/options"
	"tableflip.dev/opsdeck/pkg/runner/lost"
)

func addLost(topLevel *cobra.Command) {
	ko := &options.KeyOptions{}
	lo := &options.LostOptions{}
	item := ""

	cmd := &cobra.Command{
		Use:   "lost <item>",
		Short: "Report a lost item",
		Example: `
opsdeck lost "blue backpack" --location "gate A"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires an item description")
			}
			item = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := lost.Report{
				Item:     item,
				Location: lo.Location,
				ShowKeys: ko.ShowKeys,
				Service:  svc,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddLostArgs(cmd, lo)
	options.AddShowKeysArgs(cmd, ko)

	topLevel.AddCommand(cmd)
}

func addFound(topLevel *cobra.Command) {
	ko := &options.KeyOptions{}

	cmd := &cobra.Command{
		Use:   "found <key>",
		Short: "Mark a lost item found",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := lost.Resolve{
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
