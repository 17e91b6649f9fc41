package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/ghie29/avmango/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(browseCmd)
}

var browseCmd = &cobra.Command{
	Use:               "browse [category]",
	Short:             "Browse categories in a full-screen interface",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeCategories,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		a := mustApp(ctx)
		defer a.Close()

		options := tui.Options{}
		if len(args) > 0 {
			options.Category = args[0]
		}

		handleErr(tui.Run(ctx, a.registry, a.resolver, &options))
	},
}
