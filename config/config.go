// Package config loads the tool settings from TOML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	goio "io"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	meshio "text-creator/io"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the whole tool configuration.
type Config struct {
	Font   Font   `toml:"font"`
	Layout Layout `toml:"layout"`
	Export Export `toml:"export"`
	Editor Editor `toml:"editor"`
}

// Font selects the face and the meshing resolution.
type Font struct {
	// Name is a built-in face ("gobold", "lmsans10bold") or a TTF/OTF path.
	Name       string  `toml:"name"`
	PointSize  float32 `toml:"point_size"`
	CurveSteps int     `toml:"curve_steps"`
	Depth      float32 `toml:"depth"`
}

// Range bounds a slider value.
type Range struct {
	Min     float32 `toml:"min"`
	Max     float32 `toml:"max"`
	Default float32 `toml:"default"`
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float32) float32 {
	return max(r.Min, min(r.Max, v))
}

type Layout struct {
	Spacing   Range `toml:"spacing"`
	Size      Range `toml:"size"`
	Height    Range `toml:"height"`
	Underline bool  `toml:"underline"`
}

type Export struct {
	OutputDir  string `toml:"output_dir"`
	Format     string `toml:"format"`
	FilePrefix string `toml:"file_prefix"`
}

type Editor struct {
	HistoryDepth int `toml:"history_depth"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Font: Font{
			Name:       "gobold",
			PointSize:  12,
			CurveSteps: 8,
			Depth:      10,
		},
		Layout: Layout{
			Spacing:   Range{Min: .5, Max: 1, Default: 1},
			Size:      Range{Min: .3, Max: 2, Default: 1},
			Height:    Range{Min: .05, Max: 1, Default: .25},
			Underline: true,
		},
		Export: Export{
			OutputDir:  ".",
			Format:     string(meshio.FormatSTL),
			FilePrefix: "UserCreated_",
		},
		Editor: Editor{HistoryDepth: 50},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := Decode(f, cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode reads TOML from r into cfg, rejecting unknown keys.
func Decode(r goio.Reader, cfg *Config) error {
	return toml.NewDecoder(r).DisallowUnknownFields().Decode(cfg)
}

// Write encodes cfg as TOML.
func Write(w goio.Writer, cfg *Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

func (c *Config) applyEnv() {
	c.Font.Name = getEnv("TEXTCREATOR_FONT", c.Font.Name)
	c.Font.Depth = getEnvAsFloat("TEXTCREATOR_DEPTH", c.Font.Depth)
	c.Export.OutputDir = getEnv("TEXTCREATOR_OUTPUT_DIR", c.Export.OutputDir)
	c.Export.Format = getEnv("TEXTCREATOR_FORMAT", c.Export.Format)
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float32) float32 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(f)
		}
	}
	return defaultVal
}

// Validate reports the first inconsistent setting.
func (c *Config) Validate() error {
	switch {
	case c.Font.Name == "":
		return fmt.Errorf("%w: font name is empty", ErrInvalid)
	case c.Font.PointSize <= 0:
		return fmt.Errorf("%w: point size %v", ErrInvalid, c.Font.PointSize)
	case c.Font.CurveSteps < 1:
		return fmt.Errorf("%w: curve steps %d", ErrInvalid, c.Font.CurveSteps)
	case c.Font.Depth <= 0:
		return fmt.Errorf("%w: depth %v", ErrInvalid, c.Font.Depth)
	case c.Editor.HistoryDepth < 0:
		return fmt.Errorf("%w: history depth %d", ErrInvalid, c.Editor.HistoryDepth)
	}
	for name, r := range map[string]Range{
		"spacing": c.Layout.Spacing,
		"size":    c.Layout.Size,
		"height":  c.Layout.Height,
	} {
		if r.Min <= 0 || r.Min > r.Max || r.Default < r.Min || r.Default > r.Max {
			return fmt.Errorf("%w: %s range [%v, %v] default %v", ErrInvalid, name, r.Min, r.Max, r.Default)
		}
	}
	if _, err := meshio.ForFormat(c.Export.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
