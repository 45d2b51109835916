/*
Package box draws nested bordered boxes around arbitrary printed text.

A Renderer owns the stack of open boxes and the chain of output sinks. Opening
a box draws its top border into the current sink, records the frame together
with the style active at that moment, and returns a Scope. Everything written
to the Scope is split into lines and each completed line is rewritten so it
carries the left and right walls of every open box before it reaches the
renderer's base writer. Closing the Scope flushes any partial line, restores
the previous sink, and draws the bottom border.

# Usage

	r := box.NewRenderer(os.Stdout)
	err := r.Box(box.Thick, func(w io.Writer) error {
		fmt.Fprintln(w, "outer")
		return r.Box(box.Simple, func(w io.Writer) error {
			fmt.Fprintln(w, "inner")
			return nil
		})
	}, box.WithSize(30))

With and Box guarantee the scope is closed on every exit path, including
errors and panics raised by the body. Open/Close are available when the
lifetime does not fit a callback; Close must then be deferred by the caller.

# Widths

A frame with a fixed size uses it; an unsized frame inherits the size of the
nearest enclosing sized frame, falling back to the terminal width which is
queried on every draw. Borders of a box opened at depth d are 4*(d-1) columns
narrower than that size, and content lines are padded so every wall lands on
the column of its box's border corner.

Separator lines drawn by a box are recognized by their first and last two
visible characters and are passed through without walls.

# Concurrency

All operations on a Renderer and its Scopes serialize on one mutex, so
several goroutines may write to the same box. Line order between writers is
the order in which their newlines arrive.
*/
package box
