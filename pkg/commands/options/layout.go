// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"tableflip.dev/subviews/pkg/layout"
	"tableflip.dev/subviews/pkg/store"
)

// LayoutOptions selects the layout file to build.
type LayoutOptions struct {
	Path string
}

func AddLayoutArgs(cmd *cobra.Command, o *LayoutOptions) {
	cmd.Flags().StringVar(&o.Path, "layout", "",
		`Layout file to build, example: --layout="~/layout.yaml". Defaults to the configured layout.`)
}

// Load reads the flag's layout, falling back to the configured one and
// then to the default chain.
func (o *LayoutOptions) Load(cfg store.Config) ([]layout.Node, error) {
	path := o.Path
	if path == "" && cfg != nil {
		path = cfg.LayoutPath()
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	return layout.Load(path)
}
