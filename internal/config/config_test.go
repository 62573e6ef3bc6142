package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/mealcraft/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(LoadInput{WorkDir: dir, Env: map[string]string{"HOME": dir}})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, 500, cfg.RecipeLimit)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce.Std())
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout.Std())
	assert.Equal(t, "guest@mealcraft.com", cfg.UserEmail)
	assert.Equal(t, 4, cfg.CompareWorkers)
	assert.Equal(t, filepath.Join(dir, ".local", "share", "mealcraft"), cfg.DataDir)
	assert.Empty(t, cfg.Sources)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	xdg := filepath.Join(dir, "xdg")

	writeFile(t, filepath.Join(xdg, "mealcraft", "config.json"), `{
		// global
		"api_url": "http://global:8000",
		"recipe_limit": 100,
		"debounce": "250ms",
	}`)
	writeFile(t, filepath.Join(dir, FileName), `{"recipe_limit": 200, "http_timeout": 3000}`)
	writeFile(t, filepath.Join(dir, "custom.json"), `{"compare_workers": 8, "data_dir": "store"}`)

	cfg, err := Load(LoadInput{
		WorkDir:    dir,
		ConfigPath: "custom.json",
		Env: map[string]string{
			"XDG_CONFIG_HOME": xdg,
			EnvAPIURL:         "http://env:9000/",
			EnvEmail:          "env@example.com",
		},
		Overrides: Overrides{Email: "flag@example.com", LogLevel: "verbose"},
	})
	require.NoError(t, err)

	assert.Equal(t, "http://env:9000", cfg.APIURL)
	assert.Equal(t, 200, cfg.RecipeLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce.Std())
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout.Std())
	assert.Equal(t, 8, cfg.CompareWorkers)
	assert.Equal(t, filepath.Join(dir, "store"), cfg.DataDir)
	assert.Equal(t, "flag@example.com", cfg.UserEmail)
	assert.Equal(t, "verbose", cfg.LogLevel)
	assert.Len(t, cfg.Sources, 3)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		project string
		input   LoadInput
	}{
		{name: "missing explicit file", input: LoadInput{ConfigPath: "nope.json"}},
		{name: "bad jsonc", project: `{"api_url": `},
		{name: "unknown field", project: `{"api_uri": "http://x"}`},
		{name: "bad duration", project: `{"debounce": "soon"}`},
		{name: "bad url", project: `{"api_url": "localhost:8000"}`},
		{name: "bad level", input: LoadInput{Overrides: Overrides{LogLevel: "loud"}}},
		{name: "bad email", input: LoadInput{Overrides: Overrides{Email: "guest"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.project != "" {
				writeFile(t, filepath.Join(dir, FileName), tt.project)
			}
			in := tt.input
			in.WorkDir = dir
			in.Env = map[string]string{"HOME": dir}

			_, err := Load(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig), "expected ErrInvalidConfig, got %v", err)
		})
	}
}

func TestEnvMap(t *testing.T) {
	env := EnvMap([]string{"A=1", "B=x=y", "broken"})
	assert.Equal(t, map[string]string{"A": "1", "B": "x=y"}, env)
}
