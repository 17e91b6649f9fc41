package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/ghie29/avmango/icon"
	"github.com/ghie29/avmango/query"
	"github.com/ghie29/avmango/render"
	"github.com/ghie29/avmango/style"
	"github.com/ghie29/avmango/util"
	"github.com/ghie29/avmango/view"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolP("json", "j", false, "Print JSON")
	searchCmd.SetOut(os.Stdout)
}

var searchCmd = &cobra.Command{
	Use:   "search <term...>",
	Short: "Search titles across every category",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := mustApp(ctx)
		defer a.Close()

		term := strings.Join(args, " ")
		results, err := a.search.Search(ctx, term)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(view.Write(cmd.OutOrStdout(), view.NewSearch(term, results)))
			return
		}

		cmd.Printf("%s %s\n", icon.Get(icon.Search), style.Faint(util.Quantify(len(results), "result", "results")))
		cmd.Println(render.Tagged(results, render.Width()))
	},
}
