package nestbox

import (
	"bytes"
	"embed"
	"io/fs"

	"github.com/arthur-debert/nestbox/pkg/box"
	"github.com/arthur-debert/nestbox/pkg/cobrax/topics"
	"github.com/arthur-debert/nestbox/pkg/config"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// initTopics installs the help command that also shows the embedded topics
func initTopics(a *app, rootCmd *cobra.Command) error {
	fsys, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}
	_, err = topics.InitializeWithOptions(rootCmd, fsys, topics.Options{
		Extensions: []string{".md", ".txt"},
		Renderer:   topics.RendererFunc(a.renderTopic),
	})
	return err
}

// renderTopic renders markdown with glamour and draws the result in a box
func (a *app) renderTopic(content, format string) (string, error) {
	if a.cfg == nil {
		a.cfg = config.Default()
	}

	var buf bytes.Buffer
	o, err := a.newOutputProbe(&buf, a.out)
	if err != nil {
		return "", err
	}

	md := &topics.GlamourRenderer{Width: o.columns - 4, Style: "notty"}
	if profile := o.renderer.Styles().Profile(); profile != termenv.Ascii {
		md.Style = "light"
		if o.dark {
			md.Style = "dark"
		}
	}
	rendered, err := md.Render(content, format)
	if err != nil {
		return "", err
	}

	f, err := box.Round.Frame()
	if err != nil {
		return "", err
	}
	err = o.with(f, func(s *box.Scope) error {
		_, err := s.WriteString(rendered)
		return err
	})
	return buf.String(), err
}
