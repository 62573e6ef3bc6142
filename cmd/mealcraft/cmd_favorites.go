package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mealcraft/internal/display"
	"github.com/hammamikhairi/mealcraft/internal/domain"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "List and manage saved recipes",
	RunE:    runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a recipe",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a saved recipe",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFavoritesRemove,
}

func init() {
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
}

func runFavoritesList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	saved, err := a.favorites().List(cmd.Context())
	if err != nil {
		return err
	}

	p := display.NewPrinter(cmd.OutOrStdout())
	if len(saved) == 0 {
		p.Hint("No saved recipes yet. Press ctrl+f in the browser or run 'mealcraft favorites add <name>'.")
		return nil
	}
	p.Recipes(saved)
	return nil
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	name := strings.Join(args, " ")
	detail, err := a.loader().Details(ctx, name)
	if err != nil {
		return err
	}

	p := display.NewPrinter(cmd.OutOrStdout())
	switch err := a.favorites().Add(ctx, detail.Recipe); {
	case errors.Is(err, domain.ErrAlreadyExists):
		p.Hint(fmt.Sprintf("%s is already saved", detail.Name))
	case err != nil:
		return err
	default:
		p.Chat(fmt.Sprintf("Saved %s", detail.Name))
	}
	p.Link("Share", recipeShareLink(a, detail.Name))
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	name := strings.Join(args, " ")
	if err := a.favorites().Remove(cmd.Context(), name); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%q is not a saved recipe", name)
		}
		return err
	}
	display.NewPrinter(cmd.OutOrStdout()).Chat(fmt.Sprintf("Removed %s", name))
	return nil
}
