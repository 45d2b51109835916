package terminal

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// ColorMode selects how the color profile is chosen
type ColorMode string

const (
	// ColorAuto detects terminal capabilities
	ColorAuto ColorMode = "auto"
	// ColorAlways forces escape sequences even when piped
	ColorAlways ColorMode = "always"
	// ColorNever disables all escape sequences
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a string into a ColorMode value
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always", "on", "force":
		return ColorAlways, nil
	case "never", "off", "none":
		return ColorNever, nil
	default:
		return ColorAuto, errors.Newf(errors.ErrInvalidInput, "unknown color mode: %s", s).
			WithDetail("mode", s)
	}
}

// ColorProfile determines the termenv profile used to render styles on w
func ColorProfile(w io.Writer, mode ColorMode) termenv.Profile {
	switch mode {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		profile := termenv.NewOutput(w).EnvColorProfile()
		if profile == termenv.Ascii {
			return termenv.ANSI
		}
		return profile
	}

	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}

	file, ok := w.(*os.File)
	if !ok {
		return termenv.Ascii
	}
	if !isatty.IsTerminal(file.Fd()) && !isatty.IsCygwinTerminal(file.Fd()) {
		return termenv.Ascii
	}

	return termenv.NewOutput(file).EnvColorProfile()
}
