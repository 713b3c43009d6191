package io

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"text-creator/core"
	"text-creator/math"
	"text-creator/scene"
)

// CompositionVersion is written into every composition file.
const CompositionVersion = "1.0"

// CompositionFile is the .tcomp format: enough to re-mesh the text and put
// every solid back where the user left it. Meshes are not stored.
type CompositionFile struct {
	Version  string       `json:"version"`
	Text     string       `json:"text"`
	Font     string       `json:"font"`
	Settings SettingsData `json:"settings"`
	Solids   []SolidData  `json:"solids"`
}

// SettingsData stores the layout sliders.
type SettingsData struct {
	Spacing   float32 `json:"spacing"`
	Size      float32 `json:"size"`
	Height    float32 `json:"height"`
	Underline bool    `json:"underline"`
}

// SolidData stores one solid's identity and transform. Rune ties a glyph
// to its rune in Text; Box is the underline's size, which depends on the
// glyphs present when it was last fitted.
type SolidData struct {
	ID            uuid.UUID  `json:"id"`
	Kind          string     `json:"kind"`
	Rune          int        `json:"rune"`
	Box           *math.Vec3 `json:"box,omitempty"`
	Scale         math.Mat4  `json:"scale"`
	Rotate        math.Mat4  `json:"rotate"`
	Translate     math.Mat4  `json:"translate"`
	CurrentSize   float32    `json:"current_size"`
	CurrentHeight float32    `json:"current_height"`
}

// NewCompositionFile captures set.
func NewCompositionFile(text, font string, settings SettingsData, set *scene.SolidSet) *CompositionFile {
	c := &CompositionFile{
		Version:  CompositionVersion,
		Text:     text,
		Font:     font,
		Settings: settings,
		Solids:   make([]SolidData, set.Len()),
	}
	for i, solid := range set.Solids {
		t, d := set.Transforms[i], set.Metadata[i]
		sd := SolidData{
			ID:            solid.ID,
			Kind:          solid.Kind.String(),
			Scale:         t.Scale,
			Rotate:        t.Rotate,
			Translate:     t.Translate,
			CurrentSize:   d.CurrentSize,
			CurrentHeight: d.CurrentHeight,
		}
		if solid.Kind == scene.KindGlyph {
			sd.Rune = d.RuneIndex
		} else {
			box := solid.Mesh.Bounds().Size()
			sd.Box = &box
		}
		c.Solids[i] = sd
	}
	return c
}

// Restore rebuilds set, freshly meshed from Text, into the saved
// composition: glyphs are matched by rune index and put back in saved
// order with their saved identities and transforms, glyphs deleted before
// saving are dropped and the underline is recreated at its saved size.
func (c *CompositionFile) Restore(set *scene.SolidSet) error {
	byRune := make(map[int][]int)
	for i, solid := range set.Solids {
		if solid.Kind == scene.KindGlyph {
			r := set.Metadata[i].RuneIndex
			byRune[r] = append(byRune[r], i)
		}
	}

	out := scene.NewSolidSet()
	for i, sd := range c.Solids {
		t := core.Transform{Scale: sd.Scale, Rotate: sd.Rotate, Translate: sd.Translate}
		var (
			solid *scene.Solid
			d     scene.PlatingData
		)
		switch sd.Kind {
		case scene.KindGlyph.String():
			queue := byRune[sd.Rune]
			if len(queue) == 0 {
				return fmt.Errorf("solid %d: text has no glyph at rune %d", i, sd.Rune)
			}
			byRune[sd.Rune] = queue[1:]
			solid, d = set.Solids[queue[0]], set.Metadata[queue[0]]
		case scene.KindUnderline.String():
			if sd.Box == nil {
				return fmt.Errorf("solid %d: underline without box", i)
			}
			mesh := scene.CreateBox(*sd.Box)
			mesh.Name = "Underline"
			solid, d = scene.NewSolid(scene.KindUnderline, mesh), scene.NewPlatingData(mesh, 0)
		default:
			return fmt.Errorf("solid %d: unknown kind %q", i, sd.Kind)
		}
		solid.ID = sd.ID
		d.CurrentSize = sd.CurrentSize
		d.CurrentHeight = sd.CurrentHeight
		out.Append(solid, t, d)
	}
	if out.Len() == 0 {
		return fmt.Errorf("composition has no solids")
	}

	*set = *out
	return nil
}

// SaveComposition writes c as indented JSON.
func SaveComposition(path string, c *CompositionFile) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal composition: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadComposition reads a file written by SaveComposition.
func LoadComposition(path string) (*CompositionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read composition file: %w", err)
	}

	c := &CompositionFile{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse composition file: %w", err)
	}
	if c.Version != CompositionVersion {
		return nil, fmt.Errorf("unsupported composition version %q", c.Version)
	}
	return c, nil
}
