package box

import (
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/charmbracelet/lipgloss"
)

// Preset names one of the built-in glyph sets
type Preset int

const (
	// Simple is the light single-line box
	Simple Preset = iota
	// Thick is the heavy single-line box
	Thick
	// Info is a heavy box with light separators
	Info
	// ASCII draws with plain ASCII characters only
	ASCII
	// Star draws every edge with asterisks
	Star
	// Double is the double-line box
	Double
	// Fancy has double horizontal edges and single vertical walls
	Fancy
	// Round is the light box with rounded corners
	Round
	// Block draws with full block characters
	Block
)

var presetNames = [...]string{
	Simple: "simple",
	Thick:  "thick",
	Info:   "info",
	ASCII:  "ascii",
	Star:   "star",
	Double: "double",
	Fancy:  "fancy",
	Round:  "round",
	Block:  "block",
}

var presetAliases = map[string]Preset{
	"single":        Simple,
	"light":         Simple,
	"heavy":         Thick,
	"informational": Info,
	"decorative":    Star,
	"rounded":       Round,
}

var presetGlyphs = [...]Glyphs{
	Simple: FromBorder(lipgloss.NormalBorder()),
	Thick:  FromBorder(lipgloss.ThickBorder()),
	Info: {
		UpperLeft: "┏", UpperRight: "┓", LowerLeft: "┗", LowerRight: "┛",
		Horizontal: "━", Vertical: "┃",
		SepLeft: "┠", SepHorizontal: "─", SepRight: "┨",
	},
	ASCII: {
		UpperLeft: "+", UpperRight: "+", LowerLeft: "+", LowerRight: "+",
		Horizontal: "=", Vertical: "|",
		SepLeft: "+", SepHorizontal: "-", SepRight: "+",
	},
	Star: {
		UpperLeft: "*", UpperRight: "*", LowerLeft: "*", LowerRight: "*",
		Horizontal: "*", Vertical: "*",
		SepLeft: "*", SepHorizontal: "*", SepRight: "*",
	},
	Double: FromBorder(lipgloss.DoubleBorder()),
	Fancy: Glyphs{
		UpperLeft: "╒", UpperRight: "╕", LowerLeft: "╘", LowerRight: "╛",
		Horizontal: "═",
	}.WithDefaults(),
	Round: FromBorder(lipgloss.RoundedBorder()),
	Block: FromBorder(lipgloss.BlockBorder()),
}

// Presets returns every built-in preset in declaration order
func Presets() []Preset {
	out := make([]Preset, len(presetNames))
	for i := range presetNames {
		out[i] = Preset(i)
	}
	return out
}

// String returns the preset name
func (p Preset) String() string {
	if p < 0 || int(p) >= len(presetNames) {
		return "unknown"
	}
	return presetNames[p]
}

// ParsePreset resolves a preset by name or alias, case-insensitively
func ParsePreset(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range presetNames {
		if n == key {
			return Preset(i), nil
		}
	}
	if p, ok := presetAliases[key]; ok {
		return p, nil
	}
	return Simple, errors.Newf(errors.ErrUnknownPreset, "unknown box preset: %s", name).
		WithDetail("preset", name)
}

// Aliases returns the alternative names ParsePreset accepts for p, sorted
func (p Preset) Aliases() []string {
	var out []string
	for alias, target := range presetAliases {
		if target == p {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// Glyphs returns the preset's glyph set
func (p Preset) Glyphs() Glyphs {
	if p < 0 || int(p) >= len(presetGlyphs) {
		return defaultGlyphs
	}
	return presetGlyphs[p]
}

// Frame builds a frame from the preset. Options such as WithSize override
// the preset defaults.
func (p Preset) Frame(opts ...FrameOption) (Frame, error) {
	return NewFrame(p.Glyphs(), append([]FrameOption{WithName(p.String())}, opts...)...)
}

// Registry resolves frame names to glyph sets. It starts with every preset
// and accepts additional glyph sets, typically from configuration.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]Glyphs
}

// NewRegistry creates a registry holding the built-in presets
func NewRegistry() *Registry {
	return &Registry{custom: make(map[string]Glyphs)}
}

// Register adds or replaces a named glyph set after validating it
func (r *Registry) Register(name string, g Glyphs) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return errors.New(errors.ErrConfigInvalid, "frame name must not be empty")
	}
	g = g.WithDefaults()
	if err := g.Validate(); err != nil {
		return errors.Wrapf(err, errors.ErrConfigInvalid, "frame %s is invalid", name).
			WithDetail("frame", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom[key] = g
	return nil
}

// Lookup builds a frame by name. Registered glyph sets shadow presets.
func (r *Registry) Lookup(name string, opts ...FrameOption) (Frame, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	r.mu.RLock()
	g, ok := r.custom[key]
	r.mu.RUnlock()
	if ok {
		return NewFrame(g, append([]FrameOption{WithName(key)}, opts...)...)
	}

	p, err := ParsePreset(key)
	if err != nil {
		return Frame{}, err
	}
	return p.Frame(opts...)
}

// Names lists presets in declaration order followed by registered names
func (r *Registry) Names() []string {
	names := append([]string(nil), presetNames[:]...)

	r.mu.RLock()
	custom := make([]string, 0, len(r.custom))
	for name := range r.custom {
		if _, err := ParsePreset(name); err != nil {
			custom = append(custom, name)
		}
	}
	r.mu.RUnlock()

	sort.Strings(custom)
	return append(names, custom...)
}
