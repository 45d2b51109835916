package box_test

import (
	"testing"

	"github.com/arthur-debert/nestbox/pkg/box"
	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/arthur-debert/nestbox/pkg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetGlyphTables(t *testing.T) {
	tests := []struct {
		preset box.Preset
		want   string // ul ur ll lr h v sl sh sr
	}{
		{box.Simple, "┌┐└┘─│├─┤"},
		{box.Thick, "┏┓┗┛━┃┣━┫"},
		{box.Info, "┏┓┗┛━┃┠─┨"},
		{box.ASCII, "++++=|+-+"},
		{box.Star, "*********"},
		{box.Double, "╔╗╚╝═║╠═╣"},
		{box.Fancy, "╒╕╘╛═│├─┤"},
		{box.Round, "╭╮╰╯─│├─┤"},
	}

	for _, tt := range tests {
		t.Run(tt.preset.String(), func(t *testing.T) {
			g := tt.preset.Glyphs()
			got := g.UpperLeft + g.UpperRight + g.LowerLeft + g.LowerRight +
				g.Horizontal + g.Vertical + g.SepLeft + g.SepHorizontal + g.SepRight
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEveryPresetBuildsValidFrame(t *testing.T) {
	for _, p := range box.Presets() {
		t.Run(p.String(), func(t *testing.T) {
			f, err := p.Frame(box.WithSize(12))
			require.NoError(t, err)
			assert.Equal(t, p.String(), f.Name())
			assert.Equal(t, 12, f.Size())
			assert.Equal(t, 12, text.Length(f.Top(12)))
			assert.Equal(t, 12, text.Length(f.Bottom(12)))
			assert.Equal(t, 12, text.Length(f.Separator(12)))
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		input string
		want  box.Preset
	}{
		{"simple", box.Simple},
		{"THICK", box.Thick},
		{" double ", box.Double},
		{"informational", box.Info},
		{"decorative", box.Star},
		{"rounded", box.Round},
		{"heavy", box.Thick},
		{"block", box.Block},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := box.ParsePreset(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []string{"light", "single"}, box.Simple.Aliases())
	assert.Empty(t, box.Double.Aliases())

	_, err := box.ParsePreset("wavy")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownPreset))
	assert.Equal(t, "unknown", box.Preset(99).String())
}

func TestFrameLines(t *testing.T) {
	f, err := box.Simple.Frame()
	require.NoError(t, err)

	assert.Equal(t, 0, f.Size())
	assert.Equal(t, "┌──┐", f.Top(4))
	assert.Equal(t, "└──┘", f.Bottom(4))
	assert.Equal(t, "├──┤", f.Separator(4))
	assert.Equal(t, "┌┐", f.Top(1), "widths below two draw corners only")
}

func TestNewFrameValidation(t *testing.T) {
	tests := []struct {
		name   string
		glyphs box.Glyphs
		opts   []box.FrameOption
		code   errors.ErrorCode
	}{
		{"multi character vertical", box.Glyphs{Vertical: "||"}, nil, errors.ErrInvalidGlyph},
		{"wide glyph", box.Glyphs{Horizontal: "界"}, nil, errors.ErrInvalidGlyph},
		{"escape sequence", box.Glyphs{UpperLeft: "\x1b[31m+"}, nil, errors.ErrInvalidGlyph},
		{"control character", box.Glyphs{SepRight: "\t"}, nil, errors.ErrInvalidGlyph},
		{"size below minimum", box.Glyphs{}, []box.FrameOption{box.WithSize(3)}, errors.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := box.NewFrame(tt.glyphs, tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestNewFrameFillsDefaults(t *testing.T) {
	f, err := box.NewFrame(box.Glyphs{Horizontal: "~"}, box.WithSize(-5), box.WithName("wave"))
	require.NoError(t, err)

	assert.Equal(t, "wave", f.Name())
	assert.Equal(t, 0, f.Size(), "negative sizes derive the width")
	assert.Equal(t, "┌~~~┐", f.Top(5))
	assert.Equal(t, "│", f.Glyphs().Vertical)
}

func TestMustFramePanicsOnInvalidGlyphs(t *testing.T) {
	assert.Panics(t, func() {
		box.MustFrame(box.Glyphs{Vertical: "ab"})
	})
	assert.NotPanics(t, func() {
		box.MustFrame(box.Glyphs{})
	})
}

func TestRegistry(t *testing.T) {
	reg := box.NewRegistry()

	require.NoError(t, reg.Register("Dots", box.Glyphs{Horizontal: "·", Vertical: ":"}))

	f, err := reg.Lookup("dots", box.WithSize(8))
	require.NoError(t, err)
	assert.Equal(t, "dots", f.Name())
	assert.Equal(t, "┌······┐", f.Top(8))

	f, err = reg.Lookup("rounded")
	require.NoError(t, err)
	assert.Equal(t, "round", f.Name())

	_, err = reg.Lookup("nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownPreset))

	err = reg.Register("bad", box.Glyphs{Vertical: "||"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
	assert.Equal(t, "bad", errors.GetErrorDetails(err)["frame"])

	assert.True(t, errors.IsErrorCode(reg.Register(" ", box.Glyphs{}), errors.ErrConfigInvalid))

	names := reg.Names()
	assert.Equal(t, "simple", names[0])
	assert.Equal(t, "dots", names[len(names)-1])
}

func TestOverflowPolicyParsing(t *testing.T) {
	p, err := box.ParseOverflowPolicy("ERROR")
	require.NoError(t, err)
	assert.Equal(t, box.OverflowError, p)
	assert.Equal(t, "error", p.String())

	p, err = box.ParseOverflowPolicy("")
	require.NoError(t, err)
	assert.Equal(t, box.OverflowClamp, p)

	_, err = box.ParseOverflowPolicy("wrap")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}
