package box

import (
	"io"
	"sync"

	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/arthur-debert/nestbox/pkg/logging"
	"github.com/arthur-debert/nestbox/pkg/style"
	"github.com/arthur-debert/nestbox/pkg/terminal"
	"github.com/rs/zerolog"
)

// entry is one open box: its frame, the style active when it opened, and the
// scope whose rewriter is the sink while it is innermost.
type entry struct {
	frame Frame
	style string
	scope *Scope
}

// Renderer owns the stack of open boxes for one output.
type Renderer struct {
	mu       sync.Mutex
	base     io.Writer
	stack    []entry
	depth    int
	width    terminal.WidthOracle
	styles   *style.State
	overflow OverflowPolicy
	logger   zerolog.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithWidthOracle sets where unsized frames get their width from
func WithWidthOracle(o terminal.WidthOracle) Option {
	return func(r *Renderer) {
		r.width = o
	}
}

// WithWidth fixes the width unsized frames derive from
func WithWidth(columns int) Option {
	return WithWidthOracle(terminal.Fixed(columns))
}

// WithStyleState shares an ambient style state with the renderer
func WithStyleState(s *style.State) Option {
	return func(r *Renderer) {
		r.styles = s
	}
}

// WithOverflow sets the policy for lines wider than their box
func WithOverflow(p OverflowPolicy) Option {
	return func(r *Renderer) {
		r.overflow = p
	}
}

// WithLogger replaces the renderer's logger
func WithLogger(l zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}

// NewRenderer creates a renderer writing to out. Without options the width
// follows the terminal behind out and colors follow its detected profile.
func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		base:     out,
		overflow: OverflowClamp,
		logger:   logging.GetLogger("box"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.width == nil {
		r.width = terminal.ForWriter(out)
	}
	if r.styles == nil {
		r.styles = style.NewState(terminal.ColorProfile(out, terminal.ColorAuto))
	}
	return r
}

// Styles returns the ambient style state
func (r *Renderer) Styles() *style.State {
	return r.styles
}

// Depth returns the number of open boxes
func (r *Renderer) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depth
}

// Out returns the current sink: the innermost scope, or the base writer
// when no box is open.
func (r *Renderer) Out() io.Writer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.stack); n > 0 {
		return r.stack[n-1].scope
	}
	return r.base
}

// Open draws the top border of f and makes it the innermost box.
// The returned scope must be closed; prefer With when the lifetime fits a
// function body.
func (r *Renderer) Open(f Frame) (*Scope, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n := len(r.stack); n > 0 {
		if err := r.stack[n-1].scope.rw.lines.Flush(); err != nil {
			return nil, sinkError(err, "failed to flush enclosing box")
		}
	}

	current := r.styles.Current()

	r.depth++
	width := r.lineWidth(f, r.stack)
	if err := r.draw(r.stack, current+f.Top(width)+r.styles.Reset()); err != nil {
		r.depth--
		return nil, sinkError(err, "failed to draw top border")
	}

	scope := &Scope{renderer: r, frame: f, index: len(r.stack)}
	scope.rw = newRewriter(r, scope, current, f.Separator(width))
	r.stack = append(r.stack, entry{frame: f, style: current, scope: scope})

	r.logger.Debug().
		Str("frame", f.Name()).
		Int("depth", r.depth).
		Int("width", width).
		Msg("Box opened")
	return scope, nil
}

// OpenPreset opens a box drawn with a preset
func (r *Renderer) OpenPreset(p Preset, opts ...FrameOption) (*Scope, error) {
	f, err := p.Frame(opts...)
	if err != nil {
		return nil, err
	}
	return r.Open(f)
}

// With opens f, runs fn with the box's writer and closes the box on every
// exit path. Boxes opened inside fn and left open are closed first. A panic
// in fn propagates after the box is closed.
func (r *Renderer) With(f Frame, fn func(w io.Writer) error) (err error) {
	scope, err := r.Open(f)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := scope.closeNested(); err == nil {
			err = closeErr
		}
	}()
	return fn(scope)
}

// Box is With for a preset
func (r *Renderer) Box(p Preset, fn func(w io.Writer) error, opts ...FrameOption) error {
	f, err := p.Frame(opts...)
	if err != nil {
		return err
	}
	return r.With(f, fn)
}

// Unwind closes every open box, innermost first, restoring the renderer to
// its idle state. It returns the first error encountered.
func (r *Renderer) Unwind() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var first error
	for len(r.stack) > 0 {
		if err := r.exit(r.stack[len(r.stack)-1].scope); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// draw writes a line the boxes themselves produce. Inside other boxes it
// gets their walls directly, so a border is never mistaken for a separator
// of the enclosing box.
func (r *Renderer) draw(enclosing []entry, line string) error {
	if n := len(enclosing); n > 0 {
		decorated, err := enclosing[n-1].scope.rw.decorate(line)
		if err != nil {
			return err
		}
		line = decorated
	}
	return r.emit(r.base, line)
}

// exit closes the innermost box. Closing anything else is a programming
// error and panics.
func (r *Renderer) exit(s *Scope) error {
	n := len(r.stack)
	if n == 0 || r.depth == 0 {
		panic(errors.New(errors.ErrStackUnderflow, "box closed without a matching open").
			WithDetail("frame", s.frame.Name()))
	}
	if r.stack[n-1].scope != s {
		panic(errors.New(errors.ErrScopeOrder, "box closed while a nested box is still open").
			WithDetail("frame", s.frame.Name()).
			WithDetail("depth", n))
	}

	flushErr := s.rw.lines.Flush()

	top := r.stack[n-1]
	r.stack = r.stack[:n-1]
	s.closed = true

	width := r.lineWidth(s.frame, r.stack)
	drawErr := r.draw(r.stack, top.style+s.frame.Bottom(width)+r.styles.Reset())
	r.depth--

	r.logger.Debug().
		Str("frame", s.frame.Name()).
		Int("depth", r.depth).
		Msg("Box closed")

	if flushErr != nil {
		return flushErr
	}
	if drawErr != nil {
		return sinkError(drawErr, "failed to draw bottom border")
	}
	return nil
}

// effectiveSize is the width a frame is laid out against: its own size, the
// nearest enclosing fixed size, or the live terminal width.
func (r *Renderer) effectiveSize(f Frame, enclosing []entry) int {
	if f.size > 0 {
		return f.size
	}
	for i := len(enclosing) - 1; i >= 0; i-- {
		if s := enclosing[i].frame.size; s > 0 {
			return s
		}
	}
	return r.width.Columns()
}

// lineWidth is the border width of f drawn at the current depth
func (r *Renderer) lineWidth(f Frame, enclosing []entry) int {
	return r.effectiveSize(f, enclosing) - 4*(r.depth-1)
}

// sinkError wraps writer failures. Errors that already carry a code, such as
// an overflow raised by an enclosing box, are returned unchanged.
func sinkError(err error, msg string) error {
	if errors.GetErrorCode(err) != errors.ErrUnknown {
		return err
	}
	return errors.Wrap(err, errors.ErrSinkWrite, msg)
}

func (r *Renderer) emit(w io.Writer, line string) error {
	_, err := io.WriteString(w, line+"\n")
	return err
}
