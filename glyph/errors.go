package glyph

import "errors"

var (
	// ErrUnknownFont is returned when a font name is neither built in nor a
	// TrueType/OpenType file path.
	ErrUnknownFont = errors.New("glyph: unknown font")

	// ErrFontParse wraps failures from the font parsers.
	ErrFontParse = errors.New("glyph: cannot parse font")
)
