package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
	assert.Equal(t, hclog.Warn, cfg.Level())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `schema: forms/promotions.yaml
renderer: html
output: pretty
log-level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("FORMSTATE_OUTPUT", "form")
	t.Setenv("FORMSTATE_LOG_LEVEL", "info")

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "forms/promotions.yaml", cfg.Schema)
	assert.Equal(t, "html", cfg.Renderer)
	assert.Equal(t, "form", cfg.Output, "environment wins over the config file")
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "survey", cfg.Driver)
}

func TestLoad_DiscoversConfigInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "formstate.yaml"), []byte("driver: huh\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "huh", cfg.Driver)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"renderer":  func(c *Config) { c.Renderer = "pdf" },
		"driver":    func(c *Config) { c.Driver = "readline" },
		"output":    func(c *Config) { c.Output = "xml" },
		"log level": func(c *Config) { c.LogLevel = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Defaults()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
	assert.NoError(t, Defaults().Validate())
}
