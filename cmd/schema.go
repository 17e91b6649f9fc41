package cmd

import (
	"os"

	"github.com/ghie29/avmango/view"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

var schemaCmd = &cobra.Command{
	Use:       "schema [document]",
	Short:     "Print the JSON schema of a response document",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: view.Documents(),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			for _, name := range view.Documents() {
				cmd.Println(name)
			}
			return
		}

		schema, err := view.Schema(args[0])
		handleErr(err)
		handleErr(view.Write(cmd.OutOrStdout(), schema))
	},
}
