package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAML_MissingFileIsNotAnError(t *testing.T) {
	got, err := LoadYAML(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoadYAML_ParsesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
parser:
  aliases:
    number: [number, tel]
search:
  city: Oakland
conversation:
  context_turns: 6
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := LoadYAML(path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"number", "tel"}, got.Parser.Aliases["number"])
	assert.Equal(t, "Oakland", got.Search.City)
	assert.Equal(t, 6, got.Conversation.ContextTurns)
}

func TestLoadYAML_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("parser: ["), 0o644))

	_, err := LoadYAML(path)
	require.Error(t, err)
}

func TestApply_OverlaysLocationOnly(t *testing.T) {
	cfg := &Config{}
	cfg.Search.City = "San Francisco"
	cfg.Search.Country = "us"

	overlay := &YAMLConfig{}
	overlay.Search.City = "Oakland"
	overlay.Apply(cfg)

	assert.Equal(t, "Oakland", cfg.Search.City)
	assert.Equal(t, "us", cfg.Search.Country)

	// A nil overlay is a no-op.
	var none *YAMLConfig
	none.Apply(cfg)
	assert.Equal(t, "Oakland", cfg.Search.City)
}
