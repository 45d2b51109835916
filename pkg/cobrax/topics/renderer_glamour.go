package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer uses the glamour library for rich markdown rendering
type GlamourRenderer struct {
	Style string // Standard style name: "dark", "light", "notty", "ascii"; empty auto-detects
	Width int    // Word wrap width (0 = glamour default)
}

// NewGlamourRenderer creates a markdown renderer using glamour with auto-detection
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

// Render converts markdown to terminal output. Other formats pass through.
func (r *GlamourRenderer) Render(content string, format string) (string, error) {
	if format != ".md" {
		return content, nil
	}

	var options []glamour.TermRendererOption
	if r.Style != "" {
		options = append(options, glamour.WithStandardStyle(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}
