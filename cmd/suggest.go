package cmd

import (
	"os"

	"github.com/ghie29/avmango/query"
	"github.com/ghie29/avmango/view"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().BoolP("json", "j", false, "Print JSON")
	suggestCmd.SetOut(os.Stdout)
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <prefix>",
	Short: "Suggest remembered search terms",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		found := query.SuggestMany(args[0])

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(view.Write(cmd.OutOrStdout(), &view.Suggestions{Prefix: args[0], Suggestions: lo.Ternary(found == nil, []string{}, found)}))
			return
		}

		for _, s := range found {
			cmd.Println(s)
		}
	},
}
