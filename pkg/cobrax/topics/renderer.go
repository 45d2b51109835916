package topics

// Renderer defines the interface for rendering topic content
type Renderer interface {
	// Render takes raw content and its file extension and returns the text
	// to print
	Render(content string, format string) (string, error)
}

// PlainRenderer is the default renderer that returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) (string, error) {
	return content, nil
}

// RendererFunc adapts a function to the Renderer interface
type RendererFunc func(content string, format string) (string, error)

// Render calls f
func (f RendererFunc) Render(content string, format string) (string, error) {
	return f(content, format)
}
