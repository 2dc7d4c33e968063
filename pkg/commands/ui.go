package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/subviews/pkg/commands/options"
	"tableflip.dev/subviews/pkg/runner/ui"
	"tableflip.dev/subviews/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	lo := &options.LayoutOptions{}
	so := &options.SaveOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive subview tree.",
		Example: `
subviews ui
subviews ui --layout ./layout.yaml
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			nodes, err := lo.Load(cfg)
			if err != nil {
				return err
			}
			i := ui.UI{Layout: nodes}
			if !so.NoSave {
				p, err := store.Load(cfg)
				if err != nil {
					return err
				}
				i.Persistence = p
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return i.Do(ctx)
		},
	}

	options.AddLayoutArgs(cmd, lo)
	options.AddSaveArgs(cmd, so)
	topLevel.AddCommand(cmd)
}
