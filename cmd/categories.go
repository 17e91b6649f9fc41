package cmd

import (
	"context"
	"os"

	"github.com/ghie29/avmango/color"
	"github.com/ghie29/avmango/icon"
	"github.com/ghie29/avmango/style"
	"github.com/ghie29/avmango/view"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.Flags().BoolP("json", "j", false, "Print JSON")
	categoriesCmd.SetOut(os.Stdout)
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the navigable categories",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp(context.Background())
		defer a.Close()

		list := view.NewCategories(a.registry.All())
		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(view.Write(cmd.OutOrStdout(), list))
			return
		}

		for _, c := range list.Categories {
			cmd.Printf("%s %s %s\n",
				icon.Get(icon.Folder),
				style.Fg(color.Purple)(c.Slug),
				style.Faint(c.Label+" · "+string(c.Kind)),
			)
		}
	},
}
