package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/subviews/pkg/commands/options"
	"tableflip.dev/subviews/pkg/printers"
	"tableflip.dev/subviews/pkg/runner/demo"
	"tableflip.dev/subviews/pkg/store"
)

func addDemo(topLevel *cobra.Command) {
	lo := &options.LayoutOptions{}
	do := &options.DestroyOptions{}
	so := &options.SaveOptions{}

	cmd := &cobra.Command{
		Use:   "demo [target]",
		Short: base.Wrap80("Build a layout, tear it down and print the order the hooks ran in."),
		Long: base.Wrap80(`Every subview of the layout is destroyed from the root. The destroy
hooks run from the root down to the leaves, then every view is detached from
the leaves back up. Pass a slash separated target to destroy just that
subtree.`),
		Example: `
subviews demo
subviews demo first/second --keep-in-host
subviews demo --layout ./layout.yaml --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			nodes, err := lo.Load(cfg)
			if err != nil {
				return oo.HandleError(err)
			}

			d := demo.Demo{
				Layout:      nodes,
				Detach:      do.Detach(cmd, cfg),
				TraceBefore: do.TraceBefore,
				JSON:        oo.JSON,
				Printer:     &printers.PrettyPrint{ShowID: !so.NoSave},
			}
			if len(args) == 1 {
				d.Target = args[0]
			}
			if !so.NoSave {
				p, err := store.Load(cfg)
				if err != nil {
					return oo.HandleError(err)
				}
				d.Persistence = p
			}
			return oo.HandleError(d.Do(context.Background()))
		},
	}

	options.AddLayoutArgs(cmd, lo)
	options.AddDestroyArgs(cmd, do)
	options.AddSaveArgs(cmd, so)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
