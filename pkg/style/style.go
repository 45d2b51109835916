// Package style holds the ambient style state that boxes snapshot when they
// open and re-assert around every line they decorate.
//
// A Style is an opaque escape prefix. Nothing in nestbox parses it; it is only
// concatenated into output and measured as zero-width by pkg/text.
package style

import (
	"strings"

	"github.com/muesli/termenv"
)

// Style is a rendered escape prefix. The zero value applies no styling.
type Style string

// String returns the escape sequence
func (s Style) String() string {
	return string(s)
}

// Spec describes a style independently of the color profile
type Spec struct {
	Foreground string
	Background string
	Bold       bool
	Faint      bool
	Italic     bool
	Underline  bool
}

// IsZero reports whether the spec applies no styling at all
func (s Spec) IsZero() bool {
	return s == Spec{}
}

// Build renders a spec into an escape prefix for the given profile.
// The Ascii profile always yields the empty style.
func Build(spec Spec, profile termenv.Profile) Style {
	if profile == termenv.Ascii || spec.IsZero() {
		return ""
	}

	var seqs []string
	if spec.Bold {
		seqs = append(seqs, termenv.BoldSeq)
	}
	if spec.Faint {
		seqs = append(seqs, termenv.FaintSeq)
	}
	if spec.Italic {
		seqs = append(seqs, termenv.ItalicSeq)
	}
	if spec.Underline {
		seqs = append(seqs, termenv.UnderlineSeq)
	}
	if seq := colorSeq(profile, spec.Foreground, false); seq != "" {
		seqs = append(seqs, seq)
	}
	if seq := colorSeq(profile, spec.Background, true); seq != "" {
		seqs = append(seqs, seq)
	}

	if len(seqs) == 0 {
		return ""
	}
	return Style(termenv.CSI + strings.Join(seqs, ";") + "m")
}

// colorSeq renders a color value; unparseable colors are ignored
func colorSeq(profile termenv.Profile, value string, bg bool) string {
	if value == "" {
		return ""
	}
	c := profile.Color(value)
	if c == nil {
		return ""
	}
	return c.Sequence(bg)
}

// ResetFor returns the reset sequence for a profile ("" for Ascii)
func ResetFor(profile termenv.Profile) string {
	if profile == termenv.Ascii {
		return ""
	}
	return termenv.CSI + termenv.ResetSeq + "m"
}
