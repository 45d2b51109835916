package config

import (
	"sort"

	"github.com/arthur-debert/nestbox/pkg/box"
	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/arthur-debert/nestbox/pkg/terminal"
)

// Config is the complete nestbox configuration
type Config struct {
	Box    Box                   `koanf:"box" toml:"box"`
	Output Output                `koanf:"output" toml:"output"`
	Style  Style                 `koanf:"style" toml:"style"`
	Frames map[string]box.Glyphs `koanf:"frames" toml:"frames,omitempty"`
}

// Box selects the frame wrap and exec draw with
type Box struct {
	Preset   string `koanf:"preset" toml:"preset"`
	Size     int    `koanf:"size" toml:"size"`
	Overflow string `koanf:"overflow" toml:"overflow"`
}

// Output controls how boxes are written to the terminal
type Output struct {
	Color string `koanf:"color" toml:"color"`
	Width int    `koanf:"width" toml:"width"`
}

// Style selects the theme and the theme style borders are drawn with
type Style struct {
	Theme  string `koanf:"theme" toml:"theme"`
	Border string `koanf:"border" toml:"border"`
}

// Validate checks every value and returns the first CONFIG_INVALID error
func (c *Config) Validate() error {
	if c.Box.Size != 0 && c.Box.Size < box.MinSize {
		return errors.Newf(errors.ErrConfigInvalid, "box.size must be 0 or at least %d, got %d", box.MinSize, c.Box.Size).
			WithDetail("key", "box.size")
	}
	if c.Output.Width < 0 {
		return errors.Newf(errors.ErrConfigInvalid, "output.width must not be negative, got %d", c.Output.Width).
			WithDetail("key", "output.width")
	}
	if _, err := c.OverflowPolicy(); err != nil {
		return err
	}
	if _, err := terminal.ParseColorMode(c.Output.Color); err != nil {
		return errors.Wrap(err, errors.ErrConfigInvalid, "output.color is invalid").
			WithDetail("key", "output.color")
	}

	reg, err := c.Registry()
	if err != nil {
		return err
	}
	if _, err := reg.Lookup(c.Box.Preset); err != nil {
		return errors.Wrapf(err, errors.ErrConfigInvalid, "box.preset %q is not a preset or configured frame", c.Box.Preset).
			WithDetail("key", "box.preset")
	}
	return nil
}

// Registry returns the presets plus every frame declared under [frames]
func (c *Config) Registry() (*box.Registry, error) {
	reg := box.NewRegistry()

	names := make([]string, 0, len(c.Frames))
	for name := range c.Frames {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := reg.Register(name, c.Frames[name]); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Frame builds the configured box frame
func (c *Config) Frame() (box.Frame, error) {
	reg, err := c.Registry()
	if err != nil {
		return box.Frame{}, err
	}
	return reg.Lookup(c.Box.Preset, box.WithSize(c.Box.Size))
}

// OverflowPolicy parses box.overflow
func (c *Config) OverflowPolicy() (box.OverflowPolicy, error) {
	p, err := box.ParseOverflowPolicy(c.Box.Overflow)
	if err != nil {
		return p, errors.Wrap(err, errors.ErrConfigInvalid, "box.overflow is invalid").
			WithDetail("key", "box.overflow")
	}
	return p, nil
}

// ColorMode parses output.color, falling back to auto
func (c *Config) ColorMode() terminal.ColorMode {
	mode, err := terminal.ParseColorMode(c.Output.Color)
	if err != nil {
		return terminal.ColorAuto
	}
	return mode
}
