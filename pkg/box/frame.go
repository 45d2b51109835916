package box

import (
	"strings"

	"github.com/arthur-debert/nestbox/pkg/errors"
)

// MinSize is the narrowest fixed size a frame accepts: two walls and the
// padding column on each side.
const MinSize = 4

// Frame is an immutable border configuration: a glyph set plus an optional
// fixed width. A zero size means the width is derived when drawing.
type Frame struct {
	name   string
	glyphs Glyphs
	size   int
}

// FrameOption customizes a frame at construction
type FrameOption func(*Frame)

// WithSize fixes the frame width in columns. Zero or negative derives it.
func WithSize(n int) FrameOption {
	return func(f *Frame) {
		if n < 0 {
			n = 0
		}
		f.size = n
	}
}

// WithName labels the frame for logs and listings
func WithName(name string) FrameOption {
	return func(f *Frame) {
		f.name = name
	}
}

// NewFrame builds and validates a frame. Empty glyphs fall back to the
// simple preset so partial sets only need to name what differs.
func NewFrame(g Glyphs, opts ...FrameOption) (Frame, error) {
	f := Frame{name: "custom", glyphs: g.WithDefaults()}
	for _, opt := range opts {
		opt(&f)
	}

	if err := f.glyphs.Validate(); err != nil {
		return Frame{}, err
	}
	if f.size != 0 && f.size < MinSize {
		return Frame{}, errors.Newf(errors.ErrConfigInvalid, "frame size %d is below the minimum of %d", f.size, MinSize).
			WithDetail("size", f.size)
	}
	return f, nil
}

// MustFrame is NewFrame for glyph sets known to be valid
func MustFrame(g Glyphs, opts ...FrameOption) Frame {
	f, err := NewFrame(g, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the frame label
func (f Frame) Name() string {
	return f.name
}

// Glyphs returns the frame's glyph set
func (f Frame) Glyphs() Glyphs {
	return f.glyphs
}

// Size returns the fixed width, or 0 when the width is derived
func (f Frame) Size() int {
	return f.size
}

// Top renders the upper border for a total width
func (f Frame) Top(width int) string {
	return line(f.glyphs.UpperLeft, f.glyphs.Horizontal, f.glyphs.UpperRight, width)
}

// Bottom renders the lower border for a total width
func (f Frame) Bottom(width int) string {
	return line(f.glyphs.LowerLeft, f.glyphs.Horizontal, f.glyphs.LowerRight, width)
}

// Separator renders a divider for a total width
func (f Frame) Separator(width int) string {
	return line(f.glyphs.SepLeft, f.glyphs.SepHorizontal, f.glyphs.SepRight, width)
}

func line(start, fill, end string, width int) string {
	n := width - 2
	if n < 0 {
		n = 0
	}
	return start + strings.Repeat(fill, n) + end
}
