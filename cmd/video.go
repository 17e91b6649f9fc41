package cmd

import (
	"context"
	"os"

	"github.com/ghie29/avmango/open"
	"github.com/ghie29/avmango/render"
	"github.com/ghie29/avmango/style"
	"github.com/ghie29/avmango/view"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(videoCmd)
	videoCmd.Flags().BoolP("json", "j", false, "Print JSON")
	videoCmd.Flags().BoolP("open", "o", false, "Play the video")
	videoCmd.MarkFlagsMutuallyExclusive("json", "open")
	videoCmd.SetOut(os.Stdout)
}

var videoCmd = &cobra.Command{
	Use:   "video <id>",
	Short: "Resolve a video by id, slug or code",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := mustApp(ctx)
		defer a.Close()

		result, err := a.resolver.Resolve(ctx, args[0])
		handleErr(err)

		switch {
		case lo.Must(cmd.Flags().GetBool("json")):
			handleErr(view.Write(cmd.OutOrStdout(), view.NewVideo(result)))
		case lo.Must(cmd.Flags().GetBool("open")):
			handleErr(open.Play(result.Video))
		default:
			width := render.Width()
			cmd.Println(render.Playable(result.Video, width))
			if len(result.Related) > 0 {
				cmd.Println()
				cmd.Println(style.Bold("Related"))
				cmd.Println(render.Grid(result.Related, width))
			}
		}
	},
}
