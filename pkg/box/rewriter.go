package box

import (
	"strings"

	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/arthur-debert/nestbox/pkg/linebuf"
	"github.com/arthur-debert/nestbox/pkg/text"
)

// rewriter decorates the completed lines of one box. It reads the renderer's
// stack but never changes it; the renderer mutex is held by whoever writes.
type rewriter struct {
	renderer *Renderer
	scope    *Scope
	style    string
	sep      string
	lines    *linebuf.Writer
}

func newRewriter(r *Renderer, s *Scope, style, separator string) *rewriter {
	rw := &rewriter{
		renderer: r,
		scope:    s,
		style:    style,
		sep:      text.Strip(separator),
	}
	rw.lines = linebuf.New(r.base, rw.rewrite)
	return rw
}

// isSeparator compares the first and last two visible characters of line
// with this box's separator
func (rw *rewriter) isSeparator(line string) bool {
	cleaned := text.Strip(line)
	return text.Head(cleaned, 2) == text.Head(rw.sep, 2) &&
		text.Tail(cleaned, 2) == text.Tail(rw.sep, 2)
}

func (rw *rewriter) rewrite(line string) (string, error) {
	if rw.isSeparator(line) {
		return rw.style + line + rw.renderer.styles.Current(), nil
	}
	return rw.decorate(line)
}

// decorate adds the walls of this box and every box enclosing it, padding
// so each right wall lands on its box's edge
func (rw *rewriter) decorate(line string) (string, error) {
	r := rw.renderer
	current := r.styles.Current()
	stack := r.stack[:rw.scope.index+1]

	walls := make([]string, len(stack))
	for i, e := range stack {
		walls[i] = e.style + e.frame.glyphs.Vertical
	}

	var b strings.Builder
	b.WriteString(rw.style)
	b.WriteString(strings.Join(walls, " "))
	b.WriteString(" ")
	b.WriteString(current)
	b.WriteString(line)
	b.WriteString(rw.style)
	visible := text.Length(b.String())

	for i := len(stack) - 1; i >= 0; i-- {
		e := stack[i]
		vertical := e.frame.glyphs.Vertical
		size := r.effectiveSize(e.frame, stack[:i])
		pad := size - visible - text.Length(vertical) - i*2

		if pad < 0 {
			if r.overflow == OverflowError {
				return "", errors.Newf(errors.ErrLayoutOverflow,
					"line is %d columns wider than its %s box", -pad, e.frame.Name()).
					WithDetail("width", size).
					WithDetail("needed", size-pad).
					WithDetail("depth", i+1)
			}
			r.logger.Debug().
				Str("frame", e.frame.Name()).
				Int("width", size).
				Int("overflow", -pad).
				Msg("Line wider than box, clamping padding")
			pad = 0
		}

		b.WriteString(e.style)
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(vertical)
		visible += pad + text.Length(vertical)
	}

	b.WriteString(current)
	return b.String(), nil
}
