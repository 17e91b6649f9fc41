package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghie29/avmango/key"
	"github.com/ghie29/avmango/query"
	"github.com/ghie29/avmango/server"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address")
	lo.Must0(viper.BindPFlag(key.ServerAddr, serveCmd.Flags().Lookup("addr")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog as JSON over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a := mustApp(ctx)
		defer a.Close()

		opts := []server.Option{
			server.WithHomeLimit(viper.GetInt(key.HomeLimit)),
			server.WithViewTTL(viper.GetDuration(key.ServerViewTTL)),
			server.WithMaxViews(viper.GetInt(key.ServerMaxViews)),
		}
		if viper.GetBool(key.SearchShowQuerySuggestions) {
			opts = append(opts, server.WithSuggestions(query.SuggestMany))
		}

		srv := server.New(a.registry, a.resolver, a.search, opts...)
		handleErr(srv.Serve(ctx, viper.GetString(key.ServerAddr)))
	},
}
