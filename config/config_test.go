package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "UserCreated_", cfg.Export.FilePrefix)
	assert.Equal(t, float32(.25), cfg.Layout.Height.Default)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textcreator.toml")
	src := `
[font]
name = "lmsans10bold"
depth = 4

[layout.size]
min = 0.5
max = 3
default = 2

[export]
format = "glb"
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lmsans10bold", cfg.Font.Name)
	assert.Equal(t, float32(4), cfg.Font.Depth)
	assert.Equal(t, 8, cfg.Font.CurveSteps, "unset keys keep defaults")
	assert.Equal(t, Range{Min: .5, Max: 3, Default: 2}, cfg.Layout.Size)
	assert.Equal(t, "glb", cfg.Export.Format)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[font]\ncolour = 3\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEXTCREATOR_OUTPUT_DIR", dir)
	t.Setenv("TEXTCREATOR_FORMAT", "obj")
	t.Setenv("TEXTCREATOR_DEPTH", "2.5")
	t.Setenv("TEXTCREATOR_FONT", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Export.OutputDir)
	assert.Equal(t, "obj", cfg.Export.Format)
	assert.Equal(t, float32(2.5), cfg.Font.Depth)
	assert.Equal(t, "gobold", cfg.Font.Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty font", func(c *Config) { c.Font.Name = "" }},
		{"zero depth", func(c *Config) { c.Font.Depth = 0 }},
		{"no curve steps", func(c *Config) { c.Font.CurveSteps = 0 }},
		{"default outside range", func(c *Config) { c.Layout.Spacing.Default = 2 }},
		{"inverted range", func(c *Config) { c.Layout.Height = Range{Min: 1, Max: .5, Default: .7} }},
		{"unknown format", func(c *Config) { c.Export.Format = "3mf" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestRangeClamp(t *testing.T) {
	r := Default().Layout.Size
	assert.Equal(t, float32(.3), r.Clamp(0))
	assert.Equal(t, float32(2), r.Clamp(5))
	assert.Equal(t, float32(1.5), r.Clamp(1.5))
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Default()))
	assert.True(t, strings.Contains(buf.String(), "file_prefix = 'UserCreated_'") ||
		strings.Contains(buf.String(), `file_prefix = "UserCreated_"`))

	cfg := &Config{}
	require.NoError(t, Decode(&buf, cfg))
	assert.Equal(t, Default(), cfg)
}
