package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/opsdeck/pkg/commands/options"
	"tableflip.dev/opsdeck/pkg/record"
	"tableflip.dev/opsdeck/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	ko := &options.KeyOptions{}

	cmd := &cobra.Command{
		Use:       "get [collection]",
		Short:     "Print one collection, or all of them",
		ValidArgs: record.Paths(),
		Example: `
opsdeck get
opsdeck get tasks
opsdeck get shifts --show-keys
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
			s := get.Get{
				ShowKeys: ko.ShowKeys,
				Service:  svc,
			}
			if len(args) == 1 {
				s.Collection = args[0]
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddShowKeysArgs(cmd, ko)

	topLevel.AddCommand(cmd)
}

func knownPath(p string) bool {
	for _, path := range record.Paths() {
		if p == path {
			return true
		}
	}
	return false
}
