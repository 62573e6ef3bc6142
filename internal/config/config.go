// Package config loads MealCraft settings from JSONC files, the environment
// and command-line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tailscale/hujson"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

// FileName is the project config file looked up in the working directory.
const FileName = ".mealcraft.json"

// Environment variables read by Load.
const (
	EnvAPIURL  = "MEALCRAFT_API_URL"
	EnvEmail   = "MEALCRAFT_EMAIL"
	EnvDataDir = "MEALCRAFT_DATA_DIR"
)

// Duration is a time.Duration written as "500ms" or "10s" in config files.
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of milliseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("duration must be a string like \"500ms\" or milliseconds")
	}
	*d = Duration(time.Duration(ms) * time.Millisecond)
	return nil
}

// MarshalJSON writes the duration string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the time.Duration value.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all settings.
type Config struct {
	APIURL         string   `json:"api_url,omitempty"`
	RecipeLimit    int      `json:"recipe_limit,omitempty"`
	Debounce       Duration `json:"debounce,omitempty"`
	HTTPTimeout    Duration `json:"http_timeout,omitempty"`
	DataDir        string   `json:"data_dir,omitempty"`
	UserEmail      string   `json:"user_email,omitempty"`
	LogLevel       string   `json:"log_level,omitempty"`
	LogFile        string   `json:"log_file,omitempty"`
	CompareWorkers int      `json:"compare_workers,omitempty"`
	Offline        bool     `json:"offline,omitempty"`

	// Sources lists the files that were loaded, lowest precedence first.
	Sources []string `json:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:         "http://localhost:8000",
		RecipeLimit:    500,
		Debounce:       Duration(500 * time.Millisecond),
		HTTPTimeout:    Duration(10 * time.Second),
		UserEmail:      "guest@mealcraft.com",
		LogLevel:       "normal",
		CompareWorkers: 4,
	}
}

// Overrides are command-line values. Empty fields leave the loaded value.
type Overrides struct {
	APIURL   string
	DataDir  string
	Email    string
	LogLevel string
	LogFile  string
	Offline  bool
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDir    string // empty uses os.Getwd
	ConfigPath string // --config; must exist when set
	Env        map[string]string
	Overrides  Overrides
}

// Load resolves the configuration. Later sources win:
//  1. defaults
//  2. global file ($XDG_CONFIG_HOME/mealcraft/config.json)
//  3. project file (.mealcraft.json in the working directory)
//  4. explicit file (--config)
//  5. environment
//  6. command-line overrides
func Load(in LoadInput) (Config, error) {
	workDir := in.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
		workDir = wd
	}

	cfg := Default()

	files := []struct {
		path      string
		mustExist bool
	}{
		{globalPath(in.Env), false},
		{filepath.Join(workDir, FileName), false},
	}
	if in.ConfigPath != "" {
		p := in.ConfigPath
		if !filepath.IsAbs(p) {
			p = filepath.Join(workDir, p)
		}
		files = append(files, struct {
			path      string
			mustExist bool
		}{p, true})
	}

	for _, f := range files {
		if f.path == "" {
			continue
		}
		fileCfg, loaded, err := loadFile(f.path, f.mustExist)
		if err != nil {
			return Config{}, err
		}
		if loaded {
			cfg = merge(cfg, fileCfg)
			cfg.Sources = append(cfg.Sources, f.path)
		}
	}

	cfg = merge(cfg, Config{
		APIURL:    in.Env[EnvAPIURL],
		UserEmail: in.Env[EnvEmail],
		DataDir:   in.Env[EnvDataDir],
	})
	cfg = merge(cfg, Config{
		APIURL:    in.Overrides.APIURL,
		DataDir:   in.Overrides.DataDir,
		UserEmail: in.Overrides.Email,
		LogLevel:  in.Overrides.LogLevel,
		LogFile:   in.Overrides.LogFile,
		Offline:   in.Overrides.Offline,
	})

	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir(in.Env, workDir)
	}
	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(workDir, cfg.DataDir)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for obvious mistakes.
func Validate(cfg Config) error {
	var errs []error

	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_url %q must be an http(s) URL", cfg.APIURL))
	}
	if cfg.RecipeLimit <= 0 {
		errs = append(errs, fmt.Errorf("recipe_limit must be positive, got %d", cfg.RecipeLimit))
	}
	if cfg.Debounce.Std() < 0 {
		errs = append(errs, fmt.Errorf("debounce must not be negative"))
	}
	if cfg.HTTPTimeout.Std() <= 0 {
		errs = append(errs, fmt.Errorf("http_timeout must be positive"))
	}
	if cfg.CompareWorkers <= 0 {
		errs = append(errs, fmt.Errorf("compare_workers must be positive, got %d", cfg.CompareWorkers))
	}
	if _, err := logger.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if !strings.Contains(cfg.UserEmail, "@") {
		errs = append(errs, fmt.Errorf("user_email %q is not an email address", cfg.UserEmail))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, errors.Join(errs...))
}

func globalPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "mealcraft", "config.json")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "mealcraft", "config.json")
	}
	return ""
}

func defaultDataDir(env map[string]string, workDir string) string {
	if xdg := env["XDG_DATA_HOME"]; xdg != "" {
		return filepath.Join(xdg, "mealcraft")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "share", "mealcraft")
	}
	return filepath.Join(workDir, ".mealcraft")
}

// loadFile reads one config file. A missing optional file is not an error.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("%w: reading %s: %w", domain.ErrInvalidConfig, path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w: %s: %w", domain.ErrInvalidConfig, path, err)
	}
	return cfg, true, nil
}

// Parse decodes a JSONC config document. Comments and trailing commas are
// allowed.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	var cfg Config
	dec := json.NewDecoder(strings.NewReader(string(standardized)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func merge(base, overlay Config) Config {
	if overlay.APIURL != "" {
		base.APIURL = strings.TrimRight(overlay.APIURL, "/")
	}
	if overlay.RecipeLimit != 0 {
		base.RecipeLimit = overlay.RecipeLimit
	}
	if overlay.Debounce != 0 {
		base.Debounce = overlay.Debounce
	}
	if overlay.HTTPTimeout != 0 {
		base.HTTPTimeout = overlay.HTTPTimeout
	}
	if overlay.DataDir != "" {
		base.DataDir = overlay.DataDir
	}
	if overlay.UserEmail != "" {
		base.UserEmail = overlay.UserEmail
	}
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}
	if overlay.LogFile != "" {
		base.LogFile = overlay.LogFile
	}
	if overlay.CompareWorkers != 0 {
		base.CompareWorkers = overlay.CompareWorkers
	}
	if overlay.Offline {
		base.Offline = true
	}
	return base
}

// EnvMap converts os.Environ output to a map.
func EnvMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}
