package nestbox

import (
	"bufio"
	"io"
	"os"

	"github.com/arthur-debert/nestbox/pkg/box"
	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/arthur-debert/nestbox/pkg/logging"
	"github.com/arthur-debert/nestbox/pkg/style"
	"github.com/spf13/cobra"
)

// maxLineSize bounds a single input line
const maxLineSize = 1024 * 1024

func newWrapCmd(a *app) *cobra.Command {
	var (
		styleName string
		split     string
	)

	cmd := &cobra.Command{
		Use:     "wrap [file...]",
		Short:   MsgWrapShort,
		Long:    MsgWrapLong,
		GroupID: "core",
		Example: `  ls -l | nestbox wrap
  nestbox wrap --preset double --size 60 notes.txt
  nestbox wrap --split --- report.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.WithFields(map[string]interface{}{
				"component": "cmd.wrap",
				"files":     args,
				"split":     split,
			})
			logger.Info().Msg("Wrapping input")

			f, err := a.frame()
			if err != nil {
				return err
			}
			o, err := a.newOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			var content style.Style
			if styleName != "" {
				if _, ok := o.theme.Spec(styleName, o.dark); !ok {
					return errors.Newf(errors.ErrInvalidInput, MsgErrUnknownStyle, styleName).
						WithDetail("style", styleName)
				}
				content = o.style(styleName)
			}

			if len(args) == 0 {
				args = []string{"-"}
			}

			return o.with(f, func(s *box.Scope) error {
				styles := o.renderer.Styles()
				for i, name := range args {
					if i > 0 {
						if err := s.Separator(); err != nil {
							return err
						}
					}
					err := styles.With(content, func() error {
						return copyInput(s, cmd.InOrStdin(), name, split)
					})
					if err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringP("preset", "p", "", MsgFlagPreset)
	cmd.Flags().IntP("size", "s", 0, MsgFlagSize)
	cmd.Flags().String("overflow", "", MsgFlagOverflow)
	cmd.Flags().StringVar(&styleName, "style", "", MsgFlagStyle)
	cmd.Flags().StringVar(&split, "split", "", MsgFlagSplit)

	return cmd
}

// copyInput writes every line of the named input into s. Lines equal to
// split become separators. The name "-" reads stdin.
func copyInput(s *box.Scope, stdin io.Reader, name, split string) error {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidInput, MsgErrOpenInput, name).
				WithDetail("path", name)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Text()
		if split != "" && line == split {
			if err := s.Separator(); err != nil {
				return err
			}
			continue
		}
		if _, err := s.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, MsgErrReadInput, name).
			WithDetail("path", name)
	}
	return nil
}
