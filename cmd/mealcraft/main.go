// MealCraft is a terminal client for recipe discovery, weekly meal plans and
// grocery shopping.
//
// Usage:
//
//	mealcraft [command] [--offline] [--api-url URL] [--email EMAIL]
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config   string
	apiURL   string
	dataDir  string
	email    string
	logLevel string
	logFile  string
	offline  bool
}

var rootCmd = &cobra.Command{
	Use:   "mealcraft",
	Short: "Discover Indian recipes, plan your week and shop for groceries",
	Long: "MealCraft searches the recipe collection with live filters, generates\n" +
		"weekly meal plans and walks you through ordering the ingredients.\n" +
		"Run without a command to open the recipe browser.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	RunE: runDiscover,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.config, "config", "", "path to a JSONC config file")
	pf.StringVar(&rootFlags.apiURL, "api-url", "", "backend base URL")
	pf.StringVar(&rootFlags.dataDir, "data-dir", "", "directory for saved favorites, plans and profile")
	pf.StringVar(&rootFlags.email, "email", "", "user email for plans and history")
	pf.StringVar(&rootFlags.logLevel, "log-level", "", "off, normal or verbose")
	pf.StringVar(&rootFlags.logFile, "log-file", "", "file to write logs to (\"stderr\" logs to the console)")
	pf.BoolVar(&rootFlags.offline, "offline", false, "skip the backend and use demo data")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(pricesCmd)
	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.Version = version
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
