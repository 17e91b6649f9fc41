package cmd

import (
	"os"

	"github.com/ghie29/avmango/color"
	"github.com/ghie29/avmango/style"
	"github.com/ghie29/avmango/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type location struct {
	name  string
	flag  string
	short string
	path  func() string
}

var locations = []location{
	{"Config", "config", "c", where.Config},
	{"Logs", "logs", "l", where.Logs},
	{"Cache", "cache", "", where.Cache},
	{"Queries", "queries", "q", where.Queries},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		whereCmd.Flags().BoolP(l.flag, l.short, false, l.name+" path")
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string { return l.flag })...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the paths used for config, logs and cache",
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range locations {
			if lo.Must(cmd.Flags().GetBool(l.flag)) {
				cmd.Println(l.path())
				return
			}
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		for i, l := range locations {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", header(l.name+"?"), style.Fg(color.Yellow)("--"+l.flag))
			cmd.Println(l.path())
		}
	},
}
