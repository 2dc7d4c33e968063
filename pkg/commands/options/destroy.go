package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/subviews/pkg/store"
)

// DestroyOptions
type DestroyOptions struct {
	KeepInHost  bool
	TraceBefore bool
}

func AddDestroyArgs(cmd *cobra.Command, o *DestroyOptions) {
	cmd.Flags().BoolVar(&o.KeepInHost, "keep-in-host", false,
		"Leave destroyed views in the host; only release their subscriptions.")
	cmd.Flags().BoolVar(&o.TraceBefore, "before-each", false,
		"Record the callback run before each child is destroyed.")
}

// Detach resolves DetachFromHost: the flag when set, otherwise the config.
func (o *DestroyOptions) Detach(cmd *cobra.Command, cfg store.Config) bool {
	if cmd.Flags().Changed("keep-in-host") || cfg == nil {
		return !o.KeepInHost
	}
	return cfg.Detach()
}
