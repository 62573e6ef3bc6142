package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mealcraft/internal/display"
	"github.com/hammamikhairi/mealcraft/internal/recipe"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe <name>",
	Short: "Show a recipe with ingredients, steps and nutrition",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRecipe,
}

var randomFlags struct {
	count int
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Suggest random recipes",
	RunE:  runRandom,
}

func init() {
	f := randomCmd.Flags()
	f.IntVarP(&randomFlags.count, "count", "n", 5, "number of recipes")
}

func runRecipe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	name := strings.Join(args, " ")
	detail, err := a.loader().Details(cmd.Context(), name)
	if err != nil {
		return err
	}

	p := display.NewPrinter(cmd.OutOrStdout())
	p.RecipeDetail(detail)
	p.Println()
	p.Link("Share", recipeShareLink(a, detail.Name))
	return nil
}

func runRandom(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	recipes, origin, err := a.loader().Random(cmd.Context(), randomFlags.count)
	if err != nil {
		return err
	}

	p := display.NewPrinter(cmd.OutOrStdout())
	if origin == recipe.OriginDemo {
		p.Hint("From the demo collection")
	}
	p.Recipes(recipes)
	return nil
}

func recipeShareLink(a *app, name string) string {
	return recipe.ShareLink(a.cfg.APIURL, name)
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}
