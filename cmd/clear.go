package cmd

import (
	"github.com/ghie29/avmango/filesystem"
	"github.com/ghie29/avmango/util"
	"github.com/ghie29/avmango/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var clearTargets = []location{
	{"cache directory", "cache", "c", where.Cache},
	{"query history", "queries", "q", where.Queries},
	{"logs", "logs", "l", where.Logs},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	for _, t := range clearTargets {
		clearCmd.Flags().BoolP(t.flag, t.short, false, "clear "+t.name)
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached files, query history or logs",
	Run: func(cmd *cobra.Command, args []string) {
		targets := lo.Filter(clearTargets, func(t location, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.flag))
		})
		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, t := range targets {
			handleErr(filesystem.API().RemoveAll(t.path()))
			success("%s cleared", util.Capitalize(t.name))
		}
	},
}
