package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datalens/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://datasets-server.huggingface.co", cfg.Hub.APIBaseURL)
	assert.Equal(t, 10000, cfg.Hub.MaxRows)
	assert.Equal(t, 6*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 30, cfg.Viz.HistogramBins)
	assert.Equal(t, 10, cfg.Viz.TopN)
	assert.NotEmpty(t, cfg.Datasets.Suggested)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("VIZ_BINS", "50")
	t.Setenv("HUB_MAX_ROWS", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 50, cfg.Viz.HistogramBins)
	assert.Equal(t, 500, cfg.Hub.MaxRows)
}

func TestLoad_RejectsOutOfRangeViz(t *testing.T) {
	t.Setenv("VIZ_BINS", "5")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_RejectsNonPositiveMaxRows(t *testing.T) {
	t.Setenv("HUB_MAX_ROWS", "-1")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_SuggestedDatasetsFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datasets.yaml")
	content := "suggested:\n  - acme/events\n  - acme/logs\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("DATASETS_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"acme/events", "acme/logs"}, cfg.Datasets.Suggested)
}

func TestLoad_RejectsMissingDatasetsFile(t *testing.T) {
	t.Setenv("DATASETS_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidSplit(t *testing.T) {
	assert.True(t, ValidSplit("train"))
	assert.True(t, ValidSplit("test"))
	assert.True(t, ValidSplit("validation"))
	assert.False(t, ValidSplit("dev"))
	assert.False(t, ValidSplit(""))
}
