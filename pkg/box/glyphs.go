package box

import (
	"unicode"

	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/arthur-debert/nestbox/pkg/text"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Glyphs is the set of border characters a frame draws with.
// Every glyph must occupy exactly one terminal cell.
type Glyphs struct {
	UpperLeft     string `koanf:"upper_left" toml:"upper_left,omitempty"`
	UpperRight    string `koanf:"upper_right" toml:"upper_right,omitempty"`
	LowerLeft     string `koanf:"lower_left" toml:"lower_left,omitempty"`
	LowerRight    string `koanf:"lower_right" toml:"lower_right,omitempty"`
	Horizontal    string `koanf:"horizontal" toml:"horizontal,omitempty"`
	Vertical      string `koanf:"vertical" toml:"vertical,omitempty"`
	SepLeft       string `koanf:"sep_left" toml:"sep_left,omitempty"`
	SepHorizontal string `koanf:"sep_horizontal" toml:"sep_horizontal,omitempty"`
	SepRight      string `koanf:"sep_right" toml:"sep_right,omitempty"`
}

// defaultGlyphs fill whatever a partial glyph set leaves empty
var defaultGlyphs = Glyphs{
	UpperLeft:     "┌",
	UpperRight:    "┐",
	LowerLeft:     "└",
	LowerRight:    "┘",
	Horizontal:    "─",
	Vertical:      "│",
	SepLeft:       "├",
	SepHorizontal: "─",
	SepRight:      "┤",
}

// cellWidth measures glyphs with East Asian ambiguous characters counted as
// narrow, which is how box-drawing characters render in Western locales.
var cellWidth = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// FromBorder converts a lipgloss border into a glyph set. The separator uses
// the border's middle joints and falls back to its side walls.
func FromBorder(b lipgloss.Border) Glyphs {
	g := Glyphs{
		UpperLeft:     b.TopLeft,
		UpperRight:    b.TopRight,
		LowerLeft:     b.BottomLeft,
		LowerRight:    b.BottomRight,
		Horizontal:    b.Top,
		Vertical:      b.Left,
		SepLeft:       b.MiddleLeft,
		SepHorizontal: b.Top,
		SepRight:      b.MiddleRight,
	}
	if g.SepLeft == "" {
		g.SepLeft = b.Left
	}
	if g.SepRight == "" {
		g.SepRight = b.Right
	}
	return g
}

// WithDefaults returns g with every empty glyph taken from the simple preset
func (g Glyphs) WithDefaults() Glyphs {
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&g.UpperLeft, defaultGlyphs.UpperLeft)
	fill(&g.UpperRight, defaultGlyphs.UpperRight)
	fill(&g.LowerLeft, defaultGlyphs.LowerLeft)
	fill(&g.LowerRight, defaultGlyphs.LowerRight)
	fill(&g.Horizontal, defaultGlyphs.Horizontal)
	fill(&g.Vertical, defaultGlyphs.Vertical)
	fill(&g.SepLeft, defaultGlyphs.SepLeft)
	fill(&g.SepHorizontal, defaultGlyphs.SepHorizontal)
	fill(&g.SepRight, defaultGlyphs.SepRight)
	return g
}

// Validate checks that every glyph is a single visible cell
func (g Glyphs) Validate() error {
	for _, f := range g.fields() {
		if err := validateGlyph(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

type glyphField struct {
	name  string
	value string
}

func (g Glyphs) fields() []glyphField {
	return []glyphField{
		{"upper_left", g.UpperLeft},
		{"upper_right", g.UpperRight},
		{"lower_left", g.LowerLeft},
		{"lower_right", g.LowerRight},
		{"horizontal", g.Horizontal},
		{"vertical", g.Vertical},
		{"sep_left", g.SepLeft},
		{"sep_horizontal", g.SepHorizontal},
		{"sep_right", g.SepRight},
	}
}

func validateGlyph(name, value string) error {
	invalid := func(reason string) error {
		return errors.Newf(errors.ErrInvalidGlyph, "%s glyph %q %s", name, value, reason).
			WithDetail("glyph", name).
			WithDetail("value", value)
	}

	if value == "" {
		return invalid("is empty")
	}
	if text.Strip(value) != value {
		return invalid("contains escape sequences")
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return invalid("contains control characters")
		}
	}
	if w := cellWidth.StringWidth(value); w != 1 {
		return invalid("must be exactly one cell wide")
	}
	return nil
}
