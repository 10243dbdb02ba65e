package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/opsdeck/pkg/commands/options"
	"tableflip.dev/opsdeck/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ko := &options.KeyOptions{}
	text := ""

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Example: `
opsdeck add restock the water station
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires task text")
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := service()
			if err != nil {
				return err
			}
			s := add.Add{
				Text:     text,
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
