package box

import (
	"github.com/arthur-debert/nestbox/pkg/errors"
)

// Scope is an open box. It is an io.Writer: every completed line written to
// it is decorated with the walls of this box and all boxes enclosing it.
type Scope struct {
	renderer *Renderer
	frame    Frame
	index    int
	rw       *rewriter
	closed   bool
}

// Frame returns the box's frame
func (s *Scope) Frame() Frame {
	return s.frame
}

// Depth returns the nesting level of this box, starting at 1
func (s *Scope) Depth() int {
	return s.index + 1
}

// Write implements io.Writer
func (s *Scope) Write(p []byte) (int, error) {
	s.renderer.mu.Lock()
	defer s.renderer.mu.Unlock()

	if s.closed {
		return 0, errors.Newf(errors.ErrSinkWrite, "write to closed %s box", s.frame.Name())
	}
	return s.rw.lines.Write(p)
}

// WriteString implements io.StringWriter
func (s *Scope) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// Separator draws a divider across this box
func (s *Scope) Separator() error {
	r := s.renderer
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.closed {
		return errors.Newf(errors.ErrSinkWrite, "separator on closed %s box", s.frame.Name())
	}
	if err := s.rw.lines.Flush(); err != nil {
		return err
	}
	width := r.effectiveSize(s.frame, r.stack[:s.index]) - 4*s.index
	line := s.rw.style + s.frame.Separator(width)
	if s.index == 0 {
		line += r.styles.Current()
	}
	if err := r.draw(r.stack[:s.index], line); err != nil {
		return sinkError(err, "failed to draw separator")
	}
	return nil
}

// Close flushes a pending partial line, draws the bottom border and restores
// the enclosing sink. Closing twice is a no-op; closing a box while a box
// nested in it is still open panics.
func (s *Scope) Close() error {
	r := s.renderer
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.closed {
		return nil
	}
	return r.exit(s)
}

// closeNested closes boxes left open inside s, then s itself
func (s *Scope) closeNested() error {
	r := s.renderer
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.closed {
		return nil
	}

	var first error
	for len(r.stack) > s.index+1 {
		inner := r.stack[len(r.stack)-1].scope
		r.logger.Warn().
			Str("frame", inner.frame.Name()).
			Str("enclosing", s.frame.Name()).
			Msg("Closing box left open inside its enclosing box")
		if err := r.exit(inner); err != nil && first == nil {
			first = err
		}
	}
	if err := r.exit(s); err != nil && first == nil {
		first = err
	}
	return first
}
