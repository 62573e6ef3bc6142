package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mealcraft/internal/display"
	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/shopping"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the diets, regions, cuisines and stores the backend accepts",
	RunE:  runOptions,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the backend and show the resolved configuration",
	RunE:  runHealth,
}

func runOptions(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	p := display.NewPrinter(cmd.OutOrStdout())
	if a.client == nil {
		return fmt.Errorf("options need the backend: %w", domain.ErrSourceUnavailable)
	}
	opts, err := a.client.Options(cmd.Context())
	if err != nil {
		return err
	}

	for _, row := range []struct {
		label  string
		values []string
	}{
		{"Diets", opts.Diets},
		{"Regions", opts.Regions},
		{"Cuisines", opts.Cuisines},
		{"Flavors", opts.Flavors},
		{"Goals", opts.Goals},
		{"Complexity", opts.CookingComplexity},
		{"Stores", opts.Stores},
	} {
		p.Heading(row.label)
		p.Line(joinOrNone(row.values))
	}
	return nil
}

func runHealth(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	p := display.NewPrinter(cmd.OutOrStdout())
	p.Title("MealCraft " + version)
	p.Line("Backend:  " + a.cfg.APIURL)
	p.Line("Data:     " + a.store.Path())
	p.Line("User:     " + a.email(cmd.Context()))
	for _, src := range a.cfg.Sources {
		p.Hint("config: " + src)
	}

	if catalog, err := shopping.DefaultCatalog(); err == nil {
		p.Line(fmt.Sprintf("Stores:   %d delivery stores", len(catalog.Stores())))
	}

	p.Println()
	if a.client == nil {
		p.Urgent("Offline mode: demo recipes and plans only")
		return nil
	}
	h, err := a.client.Health(cmd.Context())
	if err != nil {
		p.Urgent(fmt.Sprintf("Backend unreachable: %v", err))
		return nil
	}
	if h.Healthy() {
		p.Chat("Backend healthy")
	} else {
		p.Urgent("Backend status: " + h.Status)
	}
	names := make([]string, 0, len(h.Services))
	for name := range h.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p.Line(fmt.Sprintf("  %-12s %s", name, h.Services[name]))
	}
	return nil
}
