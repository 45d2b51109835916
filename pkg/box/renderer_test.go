package box_test

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/arthur-debert/nestbox/pkg/box"
	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/arthur-debert/nestbox/pkg/style"
	"github.com/arthur-debert/nestbox/pkg/text"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(buf *bytes.Buffer, opts ...box.Option) *box.Renderer {
	base := []box.Option{
		box.WithWidth(80),
		box.WithStyleState(style.NewState(termenv.Ascii)),
		box.WithLogger(zerolog.Nop()),
	}
	return box.NewRenderer(buf, append(base, opts...)...)
}

func outputLines(buf *bytes.Buffer) []string {
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestSimpleBoxEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	err := r.Box(box.Simple, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "hi")
		return err
	}, box.WithSize(20))
	require.NoError(t, err)

	want := []string{
		"┌" + strings.Repeat("─", 18) + "┐",
		"│ hi" + strings.Repeat(" ", 15) + "│",
		"└" + strings.Repeat("─", 18) + "┘",
	}
	assert.Equal(t, want, outputLines(&buf))
	assert.Equal(t, 0, r.Depth())
}

func TestNestedBoxEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	err := r.Box(box.Thick, func(w io.Writer) error {
		return r.Box(box.Simple, func(w io.Writer) error {
			assert.Equal(t, 2, r.Depth())
			_, err := fmt.Fprintln(w, "hi")
			return err
		})
	}, box.WithSize(30))
	require.NoError(t, err)

	want := []string{
		"┏" + strings.Repeat("━", 28) + "┓",
		"┃ ┌" + strings.Repeat("─", 24) + "┐ ┃",
		"┃ │ hi" + strings.Repeat(" ", 21) + "│ ┃",
		"┃ └" + strings.Repeat("─", 24) + "┘ ┃",
		"┗" + strings.Repeat("━", 28) + "┛",
	}
	lines := outputLines(&buf)
	assert.Equal(t, want, lines)

	content := []rune(lines[2])
	assert.Equal(t, '│', content[27], "inner wall lands on the inner box's right corner column")
	assert.Equal(t, '┃', content[29], "outer wall lands on the outer box's right corner column")
}

func TestInnerBorderWidthIsOuterMinusFour(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	outer, err := r.OpenPreset(box.Double, box.WithSize(40))
	require.NoError(t, err)
	inner, err := r.OpenPreset(box.Round)
	require.NoError(t, err)
	require.NoError(t, inner.Close())
	require.NoError(t, outer.Close())

	lines := outputLines(&buf)
	require.Len(t, lines, 4)

	innerTop := strings.TrimSpace(strings.Trim(lines[1], "║"))
	innerBottom := strings.TrimSpace(strings.Trim(lines[2], "║"))
	assert.Equal(t, 36, text.Length(innerTop))
	assert.Equal(t, 36, text.Length(innerBottom))
	assert.True(t, strings.HasPrefix(innerTop, "╭"))
	assert.True(t, strings.HasPrefix(innerBottom, "╰"))
}

func TestEveryLineMatchesFrameWidth(t *testing.T) {
	contents := []string{"", "x", "hello world", "\x1b[31mstyled\x1b[0m text"}

	for depth := 1; depth <= 3; depth++ {
		t.Run(fmt.Sprintf("depth %d", depth), func(t *testing.T) {
			var buf bytes.Buffer
			r := newTestRenderer(&buf)

			var open func(level int, w io.Writer) error
			open = func(level int, w io.Writer) error {
				for _, c := range contents {
					if _, err := fmt.Fprintln(w, c); err != nil {
						return err
					}
				}
				if level == depth {
					return nil
				}
				return r.Box(box.Simple, func(w io.Writer) error {
					return open(level+1, w)
				})
			}

			err := r.Box(box.Thick, func(w io.Writer) error {
				return open(1, w)
			}, box.WithSize(40))
			require.NoError(t, err)

			lines := outputLines(&buf)
			assert.Len(t, lines, 2*depth+len(contents)*depth)
			for _, line := range lines {
				assert.Equal(t, 40, text.Length(line), "line %q", line)
			}
		})
	}
}

func TestUnsizedFrameFollowsWidthOracle(t *testing.T) {
	var buf bytes.Buffer
	columns := 24
	r := newTestRenderer(&buf, box.WithWidthOracle(oracleFunc(func() int { return columns })))

	scope, err := r.OpenPreset(box.ASCII)
	require.NoError(t, err)
	columns = 30
	_, err = fmt.Fprintln(scope, "resize")
	require.NoError(t, err)
	require.NoError(t, scope.Close())

	lines := outputLines(&buf)
	assert.Equal(t, "+"+strings.Repeat("=", 22)+"+", lines[0])
	assert.Equal(t, 30, text.Length(lines[1]), "width is queried on every line")
	assert.Equal(t, "+"+strings.Repeat("=", 28)+"+", lines[2])
}

type oracleFunc func() int

func (f oracleFunc) Columns() int { return f() }

func TestContentIsPreservedInOrder(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	content := "\x1b[1mbold\x1b[0m and \x1b[32mgreen\x1b[0m"

	err := r.Box(box.Info, func(w io.Writer) error {
		return r.Box(box.Star, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, content)
			return err
		})
	}, box.WithSize(50))
	require.NoError(t, err)

	line := outputLines(&buf)[2]
	assert.Contains(t, line, content, "content bytes are never altered")

	stripped := text.Strip(line)
	require.True(t, strings.HasPrefix(stripped, "┃ * "+text.Strip(content)))
	rest := strings.TrimPrefix(stripped, "┃ * "+text.Strip(content))
	assert.Empty(t, strings.Trim(rest, " *┃"), "only padding and walls follow the content")
}

func TestSeparatorPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	err := r.Box(box.Simple, func(w io.Writer) error {
		fmt.Fprintln(w, "above")
		require.NoError(t, w.(*box.Scope).Separator())
		fmt.Fprintln(w, "below")
		return nil
	}, box.WithSize(20))
	require.NoError(t, err)

	lines := outputLines(&buf)
	require.Len(t, lines, 5)
	assert.Equal(t, "├"+strings.Repeat("─", 18)+"┤", lines[2])
	assert.Equal(t, "│ below"+strings.Repeat(" ", 12)+"│", lines[3])
}

func TestNestedSeparatorKeepsEnclosingWalls(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	err := r.Box(box.Simple, func(w io.Writer) error {
		return r.Box(box.Simple, func(w io.Writer) error {
			fmt.Fprintln(w, "above")
			require.NoError(t, w.(*box.Scope).Separator())
			fmt.Fprintln(w, "below")
			return nil
		})
	}, box.WithSize(20))
	require.NoError(t, err)

	lines := outputLines(&buf)
	require.Len(t, lines, 7)
	assert.Equal(t, "│ ├"+strings.Repeat("─", 14)+"┤ │", lines[3])
	for i, line := range lines {
		assert.Equal(t, 20, text.Length(line), "line %d: %q", i, line)
	}
}

func TestNestedBordersNotMistakenForSeparators(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	err := r.Box(box.Star, func(w io.Writer) error {
		return r.Box(box.Star, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, "x")
			return err
		})
	}, box.WithSize(12))
	require.NoError(t, err)

	lines := outputLines(&buf)
	require.Len(t, lines, 5)
	assert.Equal(t, "* ******** *", lines[1])
	assert.Equal(t, "* * x    * *", lines[2])
	assert.Equal(t, "* ******** *", lines[3])
}

func TestPartialLineFlushedOnClose(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	err := r.Box(box.ASCII, func(w io.Writer) error {
		_, err := io.WriteString(w, "no newline")
		return err
	}, box.WithSize(16))
	require.NoError(t, err)

	lines := outputLines(&buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "| no newline   |", lines[1])
}

func TestPartialCRLineFlushedOnClose(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	err := r.Box(box.ASCII, func(w io.Writer) error {
		_, err := io.WriteString(w, "partial\r")
		return err
	}, box.WithSize(16))
	require.NoError(t, err)

	lines := outputLines(&buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "| partial      |", lines[1])
	assert.NotContains(t, buf.String(), "\r")
}

func TestPartialLineFlushedBeforeNestedBox(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	err := r.Box(box.ASCII, func(w io.Writer) error {
		_, _ = io.WriteString(w, "pending")
		return r.Box(box.ASCII, func(w io.Writer) error { return nil })
	}, box.WithSize(20))
	require.NoError(t, err)

	lines := outputLines(&buf)
	require.Len(t, lines, 5)
	assert.Equal(t, "| pending"+strings.Repeat(" ", 10)+"|", lines[1])
}

func TestOverflowClamp(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	err := r.Box(box.Simple, func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "0123456789")
		return err
	}, box.WithSize(10))
	require.NoError(t, err)

	assert.Equal(t, "│ 0123456789│", outputLines(&buf)[1])
}

func TestOverflowError(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf, box.WithOverflow(box.OverflowError))

	err := r.Box(box.Simple, func(w io.Writer) error {
		if _, err := fmt.Fprintln(w, "fits"); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "0123456789")
		return err
	}, box.WithSize(10))

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLayoutOverflow))
	details := errors.GetErrorDetails(err)
	assert.Equal(t, 10, details["width"])
	assert.Equal(t, 13, details["needed"])

	lines := outputLines(&buf)
	assert.Equal(t, []string{
		"┌────────┐",
		"│ fits   │",
		"└────────┘",
	}, lines, "the rejected line is not written and the box still closes")
	assert.Equal(t, 0, r.Depth())
}

func TestWithClosesOnError(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)
	boom := errors.New(errors.ErrInternal, "boom")

	err := r.Box(box.Round, func(w io.Writer) error {
		return boom
	}, box.WithSize(8))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, r.Depth())
	assert.Equal(t, []string{"╭──────╮", "╰──────╯"}, outputLines(&buf))
}

func TestWithClosesOnPanic(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	func() {
		defer func() {
			assert.Equal(t, "kaboom", recover())
		}()
		_ = r.Box(box.Simple, func(w io.Writer) error {
			return r.Box(box.Simple, func(w io.Writer) error {
				panic("kaboom")
			})
		}, box.WithSize(12))
	}()

	assert.Equal(t, 0, r.Depth())
	lines := outputLines(&buf)
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "│ └"))
	assert.True(t, strings.HasPrefix(lines[3], "└"))
}

func TestWithClosesBoxesLeftOpen(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	err := r.Box(box.Simple, func(w io.Writer) error {
		_, err := r.OpenPreset(box.ASCII)
		return err
	}, box.WithSize(12))
	require.NoError(t, err)

	assert.Equal(t, 0, r.Depth())
	lines := outputLines(&buf)
	require.Len(t, lines, 4)
	assert.Equal(t, "│ +======+ │", lines[1])
	assert.Equal(t, "│ +======+ │", lines[2])
	assert.Equal(t, "└──────────┘", lines[3])
}

func TestCloseOutOfOrderPanics(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	outer, err := r.OpenPreset(box.Simple, box.WithSize(20))
	require.NoError(t, err)
	_, err = r.OpenPreset(box.Simple)
	require.NoError(t, err)

	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r)
			assert.True(t, errors.IsErrorCode(errors.FromPanic(r), errors.ErrScopeOrder))
		}()
		_ = outer.Close()
	}()

	assert.Equal(t, 2, r.Depth(), "a rejected close leaves the stack untouched")
	require.NoError(t, r.Unwind())
	assert.Equal(t, 0, r.Depth())
	assert.NoError(t, outer.Close(), "closing an unwound box is a no-op")
}

func TestWriteToClosedScope(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	scope, err := r.OpenPreset(box.Simple, box.WithSize(10))
	require.NoError(t, err)
	require.NoError(t, scope.Close())

	_, err = fmt.Fprintln(scope, "late")
	assert.True(t, errors.IsErrorCode(err, errors.ErrSinkWrite))
	assert.True(t, errors.IsErrorCode(scope.Separator(), errors.ErrSinkWrite))
}

func TestOutFollowsInnermostBox(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	assert.Equal(t, io.Writer(&buf), r.Out())

	scope, err := r.OpenPreset(box.Simple, box.WithSize(10))
	require.NoError(t, err)
	assert.Equal(t, io.Writer(scope), r.Out())
	assert.Equal(t, 1, scope.Depth())

	require.NoError(t, scope.Close())
	assert.Equal(t, io.Writer(&buf), r.Out())
}

func TestStyleSnapshotColorsWalls(t *testing.T) {
	var buf bytes.Buffer
	styles := style.NewState(termenv.ANSI)
	r := newTestRenderer(&buf, box.WithStyleState(styles))

	red := styles.Build(style.Spec{Foreground: "1"})
	styles.Push(red)
	scope, err := r.OpenPreset(box.Simple, box.WithSize(10))
	require.NoError(t, err)
	styles.Pop()

	_, err = fmt.Fprintln(scope, "hi")
	require.NoError(t, err)
	require.NoError(t, scope.Close())

	lines := outputLines(&buf)
	require.Len(t, lines, 3)

	assert.Equal(t, "\x1b[31m┌────────┐\x1b[0m", lines[0])
	assert.Equal(t, "\x1b[31m\x1b[31m│ hi\x1b[31m\x1b[31m     │", lines[1])
	assert.Equal(t, "\x1b[31m└────────┘\x1b[0m", lines[2])
	for _, line := range lines {
		assert.Equal(t, 10, text.Length(line))
	}
}

func TestConcurrentWritersProduceWholeLines(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRenderer(&buf)

	scope, err := r.OpenPreset(box.Simple, box.WithSize(30))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				_, _ = fmt.Fprintf(scope, "writer %d line %d\n", g, i)
			}
		}(g)
	}
	wg.Wait()
	require.NoError(t, scope.Close())

	lines := outputLines(&buf)
	assert.Len(t, lines, 102)
	for _, line := range lines {
		assert.Equal(t, 30, text.Length(line), "line %q", line)
	}
}
