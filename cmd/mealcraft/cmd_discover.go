package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mealcraft/internal/display"
	"github.com/hammamikhairi/mealcraft/internal/engine"
)

var discoverFlags struct {
	query string
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Browse recipes with live search and filters",
	RunE:  runDiscover,
}

func init() {
	f := discoverCmd.Flags()
	f.StringVarP(&discoverFlags.query, "query", "q", "", "initial search text")
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	log := a.log.With("discover")
	model := display.NewDiscover(ctx, engine.New(a.log.With("engine")), a.loader().Load, log,
		display.WithDebounce(a.cfg.Debounce.Std()),
		display.WithFavorites(a.favorites()),
		display.WithInitialQuery(discoverFlags.query),
	)

	// Bubble Tea owns the terminal until the user quits or picks a recipe.
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("recipe browser: %w", err)
	}

	sel := model.Selected()
	if sel == nil {
		return nil
	}
	detail, err := a.loader().Details(ctx, sel.Name)
	if err != nil {
		return err
	}
	pr := display.NewPrinter(cmd.OutOrStdout())
	pr.RecipeDetail(detail)
	pr.Println()
	pr.Link("Share", recipeShareLink(a, sel.Name))
	return nil
}
