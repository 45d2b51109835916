package nestbox

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nestbox/pkg/box"
	"github.com/arthur-debert/nestbox/pkg/text"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

func newPresetsCmd(a *app) *cobra.Command {
	var nested bool

	cmd := &cobra.Command{
		Use:     "presets",
		Short:   MsgPresetsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.frame()
			if err != nil {
				return err
			}
			o, err := a.newOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			headerColor := color.New(color.FgCyan, color.Underline)
			nameColor := color.New(color.Bold)
			for _, c := range []*color.Color{headerColor, nameColor} {
				if o.renderer.Styles().Profile() == termenv.Ascii {
					c.DisableColor()
				} else {
					c.EnableColor()
				}
			}

			err = o.with(f, func(s *box.Scope) error {
				headerFmt := headerColor.SprintfFunc()
				nameFmt := nameColor.SprintfFunc()

				tbl := table.New("Preset", "Aliases", "Glyphs")
				tbl.WithHeaderFormatter(headerFmt)
				tbl.WithFirstColumnFormatter(nameFmt)
				tbl.WithWidthFunc(text.Length)
				tbl.WithWriter(s)
				for _, p := range box.Presets() {
					tbl.AddRow(p.String(), strings.Join(p.Aliases(), ", "), glyphSample(p.Glyphs()))
				}
				tbl.Print()
				return nil
			})
			if err != nil {
				return err
			}

			if nested {
				return samplesNested(o, box.Presets())
			}
			for _, p := range box.Presets() {
				if err := sample(o, p, nil); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&nested, "nested", false, MsgFlagNested)

	return cmd
}

// glyphSample lays out the corners, walls and separator of a glyph set
func glyphSample(g box.Glyphs) string {
	return g.UpperLeft + g.Horizontal + g.UpperRight + " " +
		g.Vertical + " " +
		g.SepLeft + g.SepHorizontal + g.SepRight + " " +
		g.LowerLeft + g.Horizontal + g.LowerRight
}

// sample draws one preset with its name, a separator and its aliases. inner
// runs before the box closes.
func sample(o *output, p box.Preset, inner func() error) error {
	f, err := p.Frame()
	if err != nil {
		return err
	}
	return o.with(f, func(s *box.Scope) error {
		heading := o.style("heading")
		reset := o.renderer.Styles().Reset()
		if heading == "" {
			reset = ""
		}
		if _, err := fmt.Fprintf(s, "%s%s%s\n", heading, p.String(), reset); err != nil {
			return err
		}
		if aliases := p.Aliases(); len(aliases) > 0 {
			if err := s.Separator(); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(s, "also: %s\n", strings.Join(aliases, ", ")); err != nil {
				return err
			}
		}
		if inner != nil {
			return inner()
		}
		return nil
	})
}

// samplesNested draws every preset inside the one before it
func samplesNested(o *output, presets []box.Preset) error {
	if len(presets) == 0 {
		return nil
	}
	return sample(o, presets[0], func() error {
		return samplesNested(o, presets[1:])
	})
}
