package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/ghie29/avmango/bulk"
	"github.com/ghie29/avmango/catalog"
	"github.com/ghie29/avmango/category"
	"github.com/ghie29/avmango/key"
	"github.com/ghie29/avmango/pager"
	"github.com/ghie29/avmango/render"
	"github.com/ghie29/avmango/style"
	"github.com/ghie29/avmango/view"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.Flags().IntP("page", "p", 1, "Listing page to show")
	categoryCmd.Flags().BoolP("json", "j", false, "Print JSON")
	categoryCmd.Flags().BoolP("all", "a", false, "Walk every page of the category")
	categoryCmd.MarkFlagsMutuallyExclusive("page", "all")
	categoryCmd.SetOut(os.Stdout)
}

var categoryCmd = &cobra.Command{
	Use:               "category [name]",
	Short:             "Show one page of a category",
	Long:              "Show one page of a category. Without a name the category is picked interactively.",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeCategories,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := mustApp(ctx)
		defer a.Close()

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			handleErr(survey.AskOne(categoryPrompt(a.registry), &name))
		}

		c, ok := a.registry.Get(name)
		if !ok {
			handleErr(fmt.Errorf("category %q: %w", name, catalog.ErrNotFound))
		}

		asJSON := lo.Must(cmd.Flags().GetBool("json"))

		if lo.Must(cmd.Flags().GetBool("all")) {
			handleErr(walk(ctx, cmd, c.Source, asJSON))
			return
		}

		rec := pager.NewReconciler()
		defer rec.Close()

		current, err := rec.Load(ctx, c.Source)
		handleErr(err)

		if page := lo.Must(cmd.Flags().GetInt("page")); page != 1 {
			current, err = rec.Goto(ctx, page)
			handleErr(err)
		}

		if asJSON {
			handleErr(view.Write(cmd.OutOrStdout(), view.NewListing(c, current, "")))
			return
		}

		cmd.Println(style.Title(c.Title()))
		cmd.Println(render.Grid(current.Items, render.Width()))
		cmd.Println(render.Pagination(current.Cursor))
	},
}

func completeCategories(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	builtins := category.Builtins(viper.GetString(key.StructuredBoard), viper.GetString(key.BulkBaseURL))
	return lo.Map(builtins, func(d category.Descriptor, _ int) string { return d.Name() }), cobra.ShellCompDirectiveNoFileComp
}

// categoryPrompt asks for one of the registry's categories by slug.
func categoryPrompt(registry *category.Registry) *survey.Select {
	all := registry.All()
	return &survey.Select{
		Message: "Pick a category",
		Options: lo.Map(all, func(c *category.Category, _ int) string { return c.Name() }),
		Description: func(_ string, index int) string {
			return all[index].Title()
		},
		PageSize: len(all),
	}
}

// walk prints every page of src. Bulk sources are paced between pages.
func walk(ctx context.Context, cmd *cobra.Command, src catalog.Source, asJSON bool) error {
	show := func(p *catalog.Page) error {
		if asJSON {
			return view.Write(cmd.OutOrStdout(), p)
		}
		cmd.Println(style.Faint(fmt.Sprintf("page %d of %d", p.Number, p.TotalPages)))
		cmd.Println(render.Grid(p.Items, render.Width()))
		return nil
	}

	if b, ok := src.(*bulk.Source); ok {
		return b.Walk(ctx, show)
	}

	first, err := src.ListPage(ctx, 1)
	if err != nil {
		return err
	}
	return show(first)
}
