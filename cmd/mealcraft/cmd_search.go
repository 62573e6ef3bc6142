package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mealcraft/internal/display"
	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/engine"
	"github.com/hammamikhairi/mealcraft/internal/recipe"
)

var searchFlags struct {
	diet    string
	course  string
	region  string
	flavor  string
	maxTime int
	limit   int
	facets  bool
}

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Filter the recipe collection without the browser",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchFlags.diet, "diet", "", "vegetarian or non-vegetarian")
	f.StringVar(&searchFlags.course, "course", "", "course, e.g. \"main course\"")
	f.StringVar(&searchFlags.region, "region", "", "region, e.g. North")
	f.StringVar(&searchFlags.flavor, "flavor", "", "flavor profile, e.g. spicy")
	f.IntVar(&searchFlags.maxTime, "max-time", 0, "maximum total time in minutes")
	f.IntVar(&searchFlags.limit, "limit", 0, "print at most this many results (0 prints all)")
	f.BoolVar(&searchFlags.facets, "facets", false, "also print the available regions, courses and flavors")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	res := a.loader().Load(ctx)

	eng := engine.New(a.log.With("engine"), engine.WithBaseline(res.Recipes))
	state := domain.FilterState{
		Diet:    searchFlags.diet,
		Course:  searchFlags.course,
		Region:  searchFlags.region,
		Flavor:  searchFlags.flavor,
		MaxTime: searchFlags.maxTime,
	}
	if len(args) == 1 {
		state.Query = args[0]
	}
	matches := eng.Apply(state)

	p := display.NewPrinter(cmd.OutOrStdout())
	if res.Origin == recipe.OriginDemo {
		p.Urgent("Backend unavailable, showing demo recipes")
	}
	if res.Err != nil {
		p.Hint(res.Err.Error())
	}

	shown := matches
	if searchFlags.limit > 0 && len(shown) > searchFlags.limit {
		shown = shown[:searchFlags.limit]
	}
	p.Recipes(shown)
	p.Println()
	p.Hint(fmt.Sprintf("Showing %d of %d recipes", len(matches), eng.Len()))

	if searchFlags.facets {
		fc := eng.Facets()
		p.Println()
		p.Line("Regions: " + joinOrNone(fc.Regions))
		p.Line("Courses: " + joinOrNone(fc.Courses))
		p.Line("Flavors: " + joinOrNone(fc.Flavors))
	}
	return nil
}
