package style

import (
	_ "embed"
	"os"
	"sort"

	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML. Foreground and background
// name entries of the colors table; unknown names are used as literal colors.
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Faint      bool   `yaml:"faint,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Underline  bool   `yaml:"underline,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	Background string `yaml:"background,omitempty"`
}

// ThemeConfig is the on-disk theme format
type ThemeConfig struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Theme maps semantic style names to adaptive style specs
type Theme struct {
	colors map[string]lipgloss.AdaptiveColor
	styles map[string]StyleDef
}

//go:embed embedded/theme.yaml
var embeddedTheme []byte

// DefaultTheme returns the embedded theme
func DefaultTheme() *Theme {
	theme, err := ParseTheme(embeddedTheme)
	if err != nil {
		// The embedded file is part of the build; failing here is a packaging bug.
		panic(errors.Wrap(err, errors.ErrInternal, "embedded theme is invalid"))
	}
	return theme
}

// LoadTheme loads a theme from a YAML file
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read theme file %s", path).
			WithDetail("path", path)
	}
	theme, err := ParseTheme(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load theme %s", path).
			WithDetail("path", path)
	}
	return theme, nil
}

// ParseTheme parses a YAML theme
func ParseTheme(data []byte) (*Theme, error) {
	var config ThemeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse theme data")
	}

	theme := &Theme{
		colors: make(map[string]lipgloss.AdaptiveColor, len(config.Colors)),
		styles: make(map[string]StyleDef, len(config.Styles)),
	}
	for name, def := range config.Colors {
		theme.colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}
	for name, def := range config.Styles {
		theme.styles[name] = def
	}
	return theme, nil
}

// Names returns the style names defined by the theme, sorted
func (t *Theme) Names() []string {
	names := make([]string, 0, len(t.styles))
	for name := range t.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spec resolves a named style for a light or dark background
func (t *Theme) Spec(name string, dark bool) (Spec, bool) {
	def, ok := t.styles[name]
	if !ok {
		return Spec{}, false
	}
	return Spec{
		Foreground: t.resolve(def.Foreground, dark),
		Background: t.resolve(def.Background, dark),
		Bold:       def.Bold,
		Faint:      def.Faint,
		Italic:     def.Italic,
		Underline:  def.Underline,
	}, true
}

// Style renders a named style. Unknown names render as the empty style.
func (t *Theme) Style(name string, profile termenv.Profile, dark bool) Style {
	spec, ok := t.Spec(name, dark)
	if !ok {
		return ""
	}
	return Build(spec, profile)
}

func (t *Theme) resolve(value string, dark bool) string {
	if value == "" {
		return ""
	}
	c, ok := t.colors[value]
	if !ok {
		return value
	}
	if dark {
		return c.Dark
	}
	return c.Light
}
