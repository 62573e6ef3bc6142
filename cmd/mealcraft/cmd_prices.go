package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mealcraft/internal/display"
	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/grocery"
	"github.com/hammamikhairi/mealcraft/internal/storage"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Grocery prices across delivery stores",
}

var pricesListFlags struct {
	store string
}

var pricesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scraped prices grouped by store",
	RunE:  runPricesList,
}

var pricesCompareCmd = &cobra.Command{
	Use:   "compare <item>...",
	Short: "Find the cheapest store for each item",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPricesCompare,
}

var pricesScrapeFlags struct {
	stores []string
}

var pricesScrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Ask the backend to refresh prices",
	RunE:  runPricesScrape,
}

var pricesExportFlags struct {
	out string
}

var pricesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the current shopping list with best prices to a spreadsheet",
	RunE:  runPricesExport,
}

func init() {
	pricesCmd.AddCommand(pricesListCmd)
	pricesCmd.AddCommand(pricesCompareCmd)
	pricesCmd.AddCommand(pricesScrapeCmd)
	pricesCmd.AddCommand(pricesExportCmd)

	pricesListCmd.Flags().StringVar(&pricesListFlags.store, "store", "", "only this store")
	pricesScrapeCmd.Flags().StringSliceVar(&pricesScrapeFlags.stores, "stores", nil, "stores to scrape (default: backend's set)")
	pricesExportCmd.Flags().StringVarP(&pricesExportFlags.out, "out", "o", "shopping-list.xlsx", "output file")
}

func (a *app) grocery() (*grocery.Service, error) {
	prices, err := a.prices()
	if err != nil {
		return nil, err
	}
	return grocery.New(prices, a.log.With("grocery"), grocery.WithWorkers(a.cfg.CompareWorkers)), nil
}

func runPricesList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	svc, err := a.grocery()
	if err != nil {
		return err
	}
	listing, err := svc.Prices(cmd.Context(), pricesListFlags.store)
	if err != nil {
		return err
	}
	display.NewPrinter(cmd.OutOrStdout()).Prices(listing)
	return nil
}

func runPricesCompare(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	svc, err := a.grocery()
	if err != nil {
		return err
	}
	results, err := svc.Compare(cmd.Context(), args...)
	if err != nil {
		return err
	}
	display.NewPrinter(cmd.OutOrStdout()).Comparisons(results)
	return nil
}

func runPricesScrape(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	svc, err := a.grocery()
	if err != nil {
		return err
	}
	n, err := svc.Scrape(cmd.Context(), pricesScrapeFlags.stores...)
	if err != nil {
		return err
	}
	display.NewPrinter(cmd.OutOrStdout()).Chat(fmt.Sprintf("Updated %d prices", n))
	return nil
}

func runPricesExport(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	var list domain.ShoppingList
	if err := a.store.Get(ctx, storage.KeyCurrentShoppingList, &list); err != nil {
		if storage.IsMissing(err) {
			return errors.New("no shopping list yet: generate a plan or pick a meal in 'mealcraft shop'")
		}
		return err
	}

	p := display.NewPrinter(cmd.OutOrStdout())

	// Without the backend the list is exported unpriced.
	var results []grocery.Comparison
	if svc, err := a.grocery(); err == nil {
		results, err = svc.Compare(ctx, list.Ingredients...)
		if err != nil {
			p.Urgent(fmt.Sprintf("Price comparison failed, exporting without prices: %v", err))
			results = nil
		}
	} else {
		p.Hint("Offline, exporting without prices")
	}

	if err := grocery.ExportXLSX(pricesExportFlags.out, list, results); err != nil {
		return err
	}
	p.Chat(fmt.Sprintf("Wrote %d items to %s", len(list.Ingredients), pricesExportFlags.out))
	if len(results) > 0 {
		p.Line(fmt.Sprintf("Best total: ₹%.2f", grocery.Total(results)))
	}
	return nil
}
