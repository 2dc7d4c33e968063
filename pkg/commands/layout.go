package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/subviews/pkg/commands/options"
	"tableflip.dev/subviews/pkg/printers"
	layoutrunner "tableflip.dev/subviews/pkg/runner/layout"
	"tableflip.dev/subviews/pkg/store"
)

func addLayout(topLevel *cobra.Command) {
	lo := &options.LayoutOptions{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: base.Wrap80("Print the layout demo and ui would build, in the layout file format."),
		Example: `
subviews layout > layout.yaml
subviews layout --layout ./layout.hcl --json
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			nodes, err := lo.Load(cfg)
			if err != nil {
				return oo.HandleError(err)
			}
			l := layoutrunner.Layout{
				Nodes:   nodes,
				JSON:    oo.JSON,
				Printer: &printers.PrettyPrint{},
			}
			return oo.HandleError(l.Do(context.Background()))
		},
	}

	options.AddLayoutArgs(cmd, lo)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
