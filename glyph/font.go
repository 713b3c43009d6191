package glyph

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"text-creator/math"
)

// Built-in faces.
const (
	FontGoBold          = "gobold"
	FontLatinModernBold = "lmsans10bold"
)

// Options selects and sizes a face.
type Options struct {
	// Name is a built-in face or the path of a .ttf/.otf file.
	Name string
	// PointSize is the em size in output units.
	PointSize float32
	// CurveSteps is the number of lines each curve is split into.
	CurveSteps int
}

// TypeFace provides glyph outlines and shaped pen positions. It is safe for
// concurrent use.
type TypeFace struct {
	name       string
	outlines   *sfnt.Font
	shapes     *font.Font
	size       float32
	curveSteps int
}

// LoadFont resolves opts.Name and parses the face.
func LoadFont(opts Options) (*TypeFace, error) {
	data, err := fontData(opts.Name)
	if err != nil {
		return nil, err
	}
	return ParseFont(opts, data)
}

func fontData(name string) ([]byte, error) {
	switch strings.ToLower(name) {
	case "", FontGoBold:
		return gobold.TTF, nil
	case FontLatinModernBold:
		return lmsans10bold.TTF, nil
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read font %q: %w", name, err)
	}
	return data, nil
}

// ParseFont builds a TypeFace from raw font bytes.
func ParseFont(opts Options, data []byte) (*TypeFace, error) {
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrFontParse, opts.Name, err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrFontParse, opts.Name, err)
	}
	size := opts.PointSize
	if size <= 0 {
		size = 12
	}
	steps := opts.CurveSteps
	if steps <= 0 {
		steps = 8
	}
	name := opts.Name
	if name == "" {
		name = FontGoBold
	}
	return &TypeFace{
		name:       name,
		outlines:   outlines,
		shapes:     face.Font,
		size:       size,
		curveSteps: steps,
	}, nil
}

func (f *TypeFace) Name() string { return f.name }

func (f *TypeFace) PointSize() float32 { return f.size }

func (f *TypeFace) ppem() fixed.Int26_6 {
	return fixed.Int26_6(f.size * 64)
}

// Contours returns the flattened outline of r. Runes without a glyph and
// glyphs without ink return no contours.
func (f *TypeFace) Contours(r rune) ([]Contour, error) {
	var buf sfnt.Buffer
	gid, err := f.outlines.GlyphIndex(&buf, r)
	if err != nil {
		return nil, fmt.Errorf("glyph index %q: %w", r, err)
	}
	if gid == 0 {
		return nil, nil
	}
	segs, err := f.outlines.LoadGlyph(&buf, gid, f.ppem(), nil)
	if err != nil {
		return nil, fmt.Errorf("load glyph %q: %w", r, err)
	}
	return flatten(segs, f.curveSteps), nil
}

// Size returns the advance width of text and the line height.
func (f *TypeFace) Size(text string) math.Vec2 {
	var width float32
	for _, g := range f.shape([]rune(text)) {
		width += fixedToFloat(g.Advance)
	}
	var buf sfnt.Buffer
	m, err := f.outlines.Metrics(&buf, f.ppem(), xfont.HintingNone)
	if err != nil {
		return math.Vec2{X: width}
	}
	return math.Vec2{X: width, Y: fixedToFloat(m.Ascent + m.Descent)}
}

// Offsets returns the pen x position of every rune of text. Runes merged
// into a ligature continue from the previous rune's advance.
func (f *TypeFace) Offsets(text string) []float32 {
	runes := []rune(text)
	offsets := make([]float32, len(runes))
	set := make([]bool, len(runes))

	var x float32
	for _, g := range f.shape(runes) {
		if ci := g.TextIndex(); ci >= 0 && ci < len(runes) && !set[ci] {
			offsets[ci] = x + fixedToFloat(g.XOffset)
			set[ci] = true
		}
		x += fixedToFloat(g.Advance)
	}
	for i := 1; i < len(runes); i++ {
		if !set[i] {
			offsets[i] = offsets[i-1] + f.advance(runes[i-1])
		}
	}
	return offsets
}

func (f *TypeFace) shape(runes []rune) []shaping.Glyph {
	if len(runes) == 0 {
		return nil
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		// Face is not safe for concurrent use; one per call.
		Face:     font.NewFace(f.shapes),
		Size:     f.ppem(),
		Script:   detectScript(runes),
		Language: language.NewLanguage("en"),
	}
	var shaper shaping.HarfbuzzShaper
	return shaper.Shape(input).Glyphs
}

func (f *TypeFace) advance(r rune) float32 {
	var buf sfnt.Buffer
	gid, err := f.outlines.GlyphIndex(&buf, r)
	if err != nil {
		return 0
	}
	adv, err := f.outlines.GlyphAdvance(&buf, gid, f.ppem(), xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat(adv)
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r > ' ' {
			return language.LookupScript(r)
		}
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
