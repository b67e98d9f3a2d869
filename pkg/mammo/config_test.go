package mammo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "filters.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFilterConfig(t *testing.T) {
	path := writeTempConfig(t, `
allowed_techniques:
  - ffdm
  - tomo
exclude_implants: true
exclude_non_standard_views: true
require_common_technique_group: true
`)
	config, err := LoadFilterConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []Technique{TechniqueFullFieldDigital, TechniqueTomosynthesis}, config.AllowedTechniques)
	assert.True(t, config.ExcludeImplants)
	assert.True(t, config.ExcludeNonStandardViews)
	assert.True(t, config.RequireCommonTechniqueGroup)

	// fields absent from the file keep their defaults
	assert.True(t, config.ExcludeForProcessing)
	assert.True(t, config.ExcludeSecondaryCapture)
	assert.True(t, config.ExcludeNonMGModality)
}

func TestLoadFilterConfig_OverrideDefaults(t *testing.T) {
	path := writeTempConfig(t, `
exclude_for_processing: false
exclude_secondary_capture: false
exclude_non_mg_modality: false
`)
	config, err := LoadFilterConfig(path)
	require.NoError(t, err)
	assert.Equal(t, PermissiveFilterConfig(), config)
}

func TestLoadFilterConfig_BadTechnique(t *testing.T) {
	path := writeTempConfig(t, `
allowed_techniques: [xray]
`)
	_, err := LoadFilterConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xray")
}

func TestLoadFilterConfig_MissingFile(t *testing.T) {
	_, err := LoadFilterConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestWriteFilterConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.yaml")
	config := DefaultFilterConfig()
	config.AllowedTechniques = []Technique{TechniqueSynthetic2D}
	config.RequireCommonTechniqueGroup = true

	require.NoError(t, WriteFilterConfig(path, config))

	loaded, err := LoadFilterConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}
