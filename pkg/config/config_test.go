package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/secstmt/pkg/messages"
)

// inDir runs the test from an empty directory so no stray config.yaml or
// .env is picked up.
func inDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestBuildDefaults(t *testing.T) {
	inDir(t)

	cfg, err := Build("", nil)
	require.NoError(t, err)
	assert.Equal(t, messages.Spanish, cfg.Language)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Equal(t, OutputPretty, cfg.Output)
	assert.Empty(t, cfg.GetOutputPath())
}

func TestBuildFileEnvAndFlags(t *testing.T) {
	dir := inDir(t)
	path := filepath.Join(dir, "secstmt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: en\noutput: json\nlog_level: debug\noutput_dir: out\n"), 0o644))

	cfg, err := Build(path, nil)
	require.NoError(t, err)
	assert.Equal(t, messages.English, cfg.Language)
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "out", cfg.OutputDir)

	t.Setenv("SECSTMT_OUTPUT", "summary")
	cfg, err = Build(path, nil)
	require.NoError(t, err)
	assert.Equal(t, OutputSummary, cfg.Output)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("lang", "", "")
	flags.String("output", "", "")
	require.NoError(t, flags.Parse([]string{"--lang", "es-AR", "--output", "csv"}))

	cfg, err = Build(path, flags)
	require.NoError(t, err)
	assert.Equal(t, messages.Spanish, cfg.Language)
	assert.Equal(t, OutputCSV, cfg.Output)
}

func TestBuildDotEnv(t *testing.T) {
	dir := inDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SECSTMT_LANGUAGE=1\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SECSTMT_LANGUAGE") })

	cfg, err := Build("", nil)
	require.NoError(t, err)
	assert.Equal(t, messages.English, cfg.Language)
}

func TestBuildRejectsInvalidValues(t *testing.T) {
	inDir(t)

	t.Setenv("SECSTMT_OUTPUT", "xml")
	_, err := Build("", nil)
	require.Error(t, err)

	t.Setenv("SECSTMT_OUTPUT", "json")
	t.Setenv("SECSTMT_LOG_LEVEL", "loud")
	_, err = Build("", nil)
	require.Error(t, err)

	t.Setenv("SECSTMT_LOG_LEVEL", "info")
	t.Setenv("SECSTMT_LANGUAGE", "ja")
	_, err = Build("", nil)
	require.Error(t, err)

	_, err = Build("missing.yaml", nil)
	require.Error(t, err)
}

func TestCatalogOverride(t *testing.T) {
	dir := inDir(t)
	cfg := Default()
	c, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Same(t, messages.Default(), c)

	cfg.Messages = filepath.Join(dir, "nope.yaml")
	_, err = cfg.Catalog()
	require.Error(t, err)
}
