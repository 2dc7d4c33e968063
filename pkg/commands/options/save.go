package options

import (
	"github.com/spf13/cobra"
)

// SaveOptions
type SaveOptions struct {
	NoSave bool
}

func AddSaveArgs(cmd *cobra.Command, o *SaveOptions) {
	cmd.Flags().BoolVar(&o.NoSave, "no-save", false,
		"Do not store the teardown trace.")
}

// WatchOptions
type WatchOptions struct {
	Watch bool
}

func AddWatchArgs(cmd *cobra.Command, o *WatchOptions) {
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"Keep printing traces as they are stored.")
}
