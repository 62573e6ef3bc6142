package main

import (
	"context"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mealcraft/internal/api"
	"github.com/hammamikhairi/mealcraft/internal/config"
	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
	"github.com/hammamikhairi/mealcraft/internal/recipe"
	"github.com/hammamikhairi/mealcraft/internal/storage"
)

// app holds the dependencies every command shares.
type app struct {
	cfg    config.Config
	log    *logger.Logger
	client *api.Client // nil when offline
	store  *storage.FileStore
	logOut io.Closer

	// explicitEmail is set when --email or MEALCRAFT_EMAIL chose the user.
	explicitEmail bool
}

// newApp resolves the configuration and wires the logger, the local store
// and the backend client.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(config.LoadInput{
		ConfigPath: rootFlags.config,
		Env:        config.EnvMap(os.Environ()),
		Overrides: config.Overrides{
			APIURL:   rootFlags.apiURL,
			DataDir:  rootFlags.dataDir,
			Email:    rootFlags.email,
			LogLevel: rootFlags.logLevel,
			LogFile:  rootFlags.logFile,
			Offline:  rootFlags.offline,
		},
	})
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:           cfg,
		explicitEmail: cmd.Flags().Changed("email") || os.Getenv(config.EnvEmail) != "",
	}

	// Logs go to a file by default so the TUI and the REPL stay clean.
	var logOut io.Writer = cmd.ErrOrStderr()
	logFile := cfg.LogFile
	if logFile == "" {
		logFile = filepath.Join(cfg.DataDir, "logs", "mealcraft.log")
	}
	if logFile != "stderr" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err == nil {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not open log file %s: %v (falling back to stderr)\n", logFile, err)
			} else {
				logOut = f
				a.logOut = f
			}
		}
	}
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	a.log = logger.New(level, logOut)
	for _, src := range cfg.Sources {
		a.log.Debug("config loaded from %s", src)
	}

	a.store, err = storage.OpenFileStore(cfg.DataDir, a.log.With("storage"))
	if err != nil {
		a.close()
		return nil, err
	}

	if !cfg.Offline {
		a.client = api.NewClient(cfg.APIURL, a.log.With("api"),
			api.WithHTTPTimeout(cfg.HTTPTimeout.Std()),
			api.WithUserAgent("mealcraft/"+version),
		)
	}
	return a, nil
}

func (a *app) close() {
	if a.logOut != nil {
		a.logOut.Close()
	}
}

// ── Ports ────────────────────────────────────────────────────────
//
// Each accessor returns a nil interface when offline so callers fall back to
// demo data instead of calling through a nil client.

func (a *app) recipes() domain.RecipeSource {
	if a.client == nil {
		return nil
	}
	return a.client
}

func (a *app) plans() domain.PlanService {
	if a.client == nil {
		return nil
	}
	return a.client
}

func (a *app) users() domain.UserService {
	if a.client == nil {
		return nil
	}
	return a.client
}

func (a *app) orders() domain.OrderPlacer {
	if a.client == nil {
		return nil
	}
	return a.client
}

// prices requires the backend; there is no demo price list.
func (a *app) prices() (domain.PriceService, error) {
	if a.client == nil {
		return nil, fmt.Errorf("grocery prices need the backend: %w", domain.ErrSourceUnavailable)
	}
	return a.client, nil
}

// loader builds the recipe loader with a health probe in front of the
// search.
func (a *app) loader() *recipe.Loader {
	opts := []recipe.LoaderOption{recipe.WithLimit(a.cfg.RecipeLimit)}
	if a.client != nil {
		opts = append(opts, recipe.WithHealthCheck(a.healthCheck))
	}
	return recipe.NewLoader(a.recipes(), recipe.NewDemoSource(a.log.With("demo")), a.log.With("recipes"), opts...)
}

func (a *app) healthCheck(ctx context.Context) error {
	h, err := a.client.Health(ctx)
	if err != nil {
		return err
	}
	if !h.Healthy() {
		return fmt.Errorf("backend reports %q: %w", h.Status, domain.ErrSourceUnavailable)
	}
	return nil
}

func (a *app) favorites() *recipe.Favorites {
	return recipe.NewFavorites(a.store, a.log.With("favorites"))
}

// email picks the user: an explicit --email or MEALCRAFT_EMAIL wins, then the
// address saved by onboarding, then the configured default.
func (a *app) email(ctx context.Context) string {
	if a.explicitEmail {
		return a.cfg.UserEmail
	}
	if e := storage.UserEmail(ctx, a.store); e != storage.DefaultUserEmail {
		return e
	}
	return a.cfg.UserEmail
}
