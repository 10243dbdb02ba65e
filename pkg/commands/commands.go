package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/opsdeck/pkg/app"
	"tableflip.dev/opsdeck/pkg/store"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "opsdeck",
		Short: base.Wrap80("A shared operations board for live events, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addBoard(topLevel)
	addAdd(topLevel)
	addDone(topLevel)
	addRm(topLevel)
	addLost(topLevel)
	addFound(topLevel)
	addShift(topLevel)
	addCrowd(topLevel)
	addEmergency(topLevel)
	addGet(topLevel)
	addWatch(topLevel)
	addVersion(topLevel)
}

// service loads the configured store client and wraps it.
func service() (*app.Service, error) {
	client, err := store.Load(nil)
	if err != nil {
		return nil, err
	}
	return &app.Service{Client: client}, nil
}
