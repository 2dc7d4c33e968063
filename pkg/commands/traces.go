package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/subviews/pkg/commands/options"
	"tableflip.dev/subviews/pkg/runner/traces"
	"tableflip.dev/subviews/pkg/store"
)

func addTraces(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	wo := &options.WatchOptions{}
	del := false

	cmd := &cobra.Command{
		Use:   "traces [id]",
		Short: "List stored teardown traces, or show one.",
		Example: `
subviews traces
subviews traces 3f9a --json
subviews traces --watch
subviews traces 3f9a --delete
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return traceCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}
			s := traces.Traces{
				Persistence: p,
				JSON:        oo.JSON,
				ShowID:      ido.ShowID,
				Delete:      del,
				Watch:       wo.Watch,
			}
			if len(args) == 1 {
				s.ID = args[0]
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return oo.HandleError(s.Do(ctx))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddWatchArgs(cmd, wo)
	cmd.Flags().BoolVar(&del, "delete", false, "Delete the trace instead of showing it.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
