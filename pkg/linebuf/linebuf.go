// Package linebuf provides the interception base used by box rewriters: an
// io.Writer that buffers partial lines and hands every completed line to a
// hook before forwarding the result.
package linebuf

import (
	"bytes"
	"io"
	"strings"
)

// Hook rewrites one completed line. The line never contains the trailing
// newline; the returned string is written followed by a single "\n".
type Hook func(line string) (string, error)

// Writer buffers incomplete lines and forwards rewritten complete lines to dst
type Writer struct {
	dst     io.Writer
	hook    Hook
	pending bytes.Buffer
}

// New creates a Writer forwarding to dst through hook
func New(dst io.Writer, hook Hook) *Writer {
	return &Writer{dst: dst, hook: hook}
}

// Write implements io.Writer. It reports len(p) on success even when part of
// p is still buffered waiting for its newline.
func (w *Writer) Write(p []byte) (int, error) {
	data := p
	for len(data) > 0 {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			w.pending.Write(data)
			break
		}
		w.pending.Write(data[:i])
		data = data[i+1:]

		line := strings.TrimSuffix(w.pending.String(), "\r")
		w.pending.Reset()
		if err := w.emit(line); err != nil {
			return len(p) - len(data), err
		}
	}
	return len(p), nil
}

// WriteString implements io.StringWriter
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Flush emits a buffered partial line as if it had been terminated
func (w *Writer) Flush() error {
	if w.pending.Len() == 0 {
		return nil
	}
	line := strings.TrimSuffix(w.pending.String(), "\r")
	w.pending.Reset()
	return w.emit(line)
}

// Pending reports how many bytes are waiting for a newline
func (w *Writer) Pending() int {
	return w.pending.Len()
}

func (w *Writer) emit(line string) error {
	out, err := w.hook(line)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w.dst, out+"\n")
	return err
}
