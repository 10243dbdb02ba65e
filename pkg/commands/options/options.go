// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// KeyOptions controls record-key display.
type KeyOptions struct {
	ShowKeys bool
}

func AddShowKeysArgs(cmd *cobra.Command, o *KeyOptions) {
	cmd.Flags().BoolVarP(&o.ShowKeys, "show-keys", "k", false,
		"Show record keys alongside each row.")
}

// LostOptions captures lost-and-found flags.
type LostOptions struct {
	Location string
}

func AddLostArgs(cmd *cobra.Command, o *LostOptions) {
	cmd.Flags().StringVarP(&o.Location, "location", "l", "",
		"Where the item was found or last seen.")
}

// ShiftOptions captures the shift window and assignment flags.
type ShiftOptions struct {
	Start  string
	End    string
	Person string
	Role   string
}

func AddShiftArgs(cmd *cobra.Command, o *ShiftOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "", `Shift start, example: --start="09:00".`)
	cmd.Flags().StringVar(&o.End, "end", "", `Shift end, example: --end="12:00".`)
	cmd.Flags().StringVar(&o.Person, "person", "", "Who takes the shift.")
	cmd.Flags().StringVar(&o.Role, "role", "", "What the shift covers.")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("person")
}

// ConfirmOptions skips interactive confirmation prompts.
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Skip the confirmation prompt.")
}
