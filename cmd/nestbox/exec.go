package nestbox

import (
	"bufio"
	stderrors "errors"
	"io"
	"os/exec"
	"time"

	"github.com/arthur-debert/nestbox/pkg/box"
	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/arthur-debert/nestbox/pkg/logging"
	"github.com/arthur-debert/nestbox/pkg/style"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newExecCmd(a *app) *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:     "exec -- <command> [args...]",
		Short:   MsgExecShort,
		Long:    MsgExecLong,
		GroupID: "core",
		Example: `  nestbox exec -- go test ./...
  nestbox exec --preset thick -- make build`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.exec")

			f, err := a.frame()
			if err != nil {
				return err
			}
			o, err := a.newOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			child := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
			child.Stdin = cmd.InOrStdin()
			stdout, err := child.StdoutPipe()
			if err != nil {
				return errors.Wrapf(err, errors.ErrInternal, MsgErrStart, args[0])
			}
			stderr, err := child.StderrPipe()
			if err != nil {
				return errors.Wrapf(err, errors.ErrInternal, MsgErrStart, args[0])
			}

			start := time.Now()
			err = o.with(f, func(s *box.Scope) error {
				done := logging.LogOperationStart(logger, "exec "+args[0])
				defer done()

				if err := child.Start(); err != nil {
					return errors.Wrapf(err, errors.ErrCommandFailed, MsgErrStart, args[0]).
						WithDetail("command", args[0])
				}

				errStyle := o.style("error")
				reset := o.renderer.Styles().Reset()

				var g errgroup.Group
				g.Go(func() error { return pump(s, stdout, "", "") })
				g.Go(func() error { return pump(s, stderr, errStyle, reset) })
				pumpErr := g.Wait()

				if err := child.Wait(); err != nil {
					var exitErr *exec.ExitError
					if stderrors.As(err, &exitErr) {
						return errors.Wrapf(err, errors.ErrCommandFailed, MsgErrExited, args[0], exitErr.ExitCode()).
							WithDetail("command", args[0]).
							WithDetail("exit_code", exitErr.ExitCode())
					}
					return errors.Wrapf(err, errors.ErrCommandFailed, "%s failed", args[0]).
						WithDetail("command", args[0])
				}
				return pumpErr
			})

			if status {
				printStatus(cmd.OutOrStdout(), o, args[0], time.Since(start), err)
			}
			return err
		},
	}

	cmd.Flags().StringP("preset", "p", "", MsgFlagPreset)
	cmd.Flags().IntP("size", "s", 0, MsgFlagSize)
	cmd.Flags().String("overflow", "", MsgFlagOverflow)
	cmd.Flags().BoolVar(&status, "status", false, MsgFlagStatus)

	return cmd
}

// printStatus reports how the command ended on the line after the box
func printStatus(w io.Writer, o *output, name string, elapsed time.Duration, err error) {
	if o.renderer.Styles().Profile() == termenv.Ascii {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}

	elapsed = elapsed.Round(time.Millisecond)
	switch {
	case err == nil:
		pterm.Success.WithWriter(w).Printfln(MsgExecFinished, name, elapsed)
	case errors.IsErrorCode(err, errors.ErrCommandFailed):
		code := ExitCode(err)
		pterm.Error.WithWriter(w).Printfln(MsgExecFailed, name, code, elapsed)
	default:
		pterm.Warning.WithWriter(w).Printfln(MsgExecAborted, name, err)
	}
}

// pump copies r into s line by line. Each line is a single write, so lines
// from concurrent pumps never interleave.
func pump(s *box.Scope, r io.Reader, prefix style.Style, reset string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if prefix != "" {
			line = string(prefix) + line + reset
		}
		if _, err := s.WriteString(line + "\n"); err != nil {
			// Keep draining so the child does not block on a full pipe
			_, _ = io.Copy(io.Discard, r)
			return err
		}
	}
	return scanner.Err()
}
