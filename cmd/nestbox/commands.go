package nestbox

import (
	"io"

	"github.com/arthur-debert/nestbox/internal/version"
	"github.com/arthur-debert/nestbox/pkg/box"
	"github.com/arthur-debert/nestbox/pkg/config"
	"github.com/arthur-debert/nestbox/pkg/errors"
	"github.com/arthur-debert/nestbox/pkg/logging"
	"github.com/arthur-debert/nestbox/pkg/style"
	"github.com/arthur-debert/nestbox/pkg/terminal"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// flagKeys maps flags to the configuration keys they override
var flagKeys = map[string]string{
	"color":    "output.color",
	"width":    "output.width",
	"preset":   "box.preset",
	"size":     "box.size",
	"overflow": "box.overflow",
}

// app holds the state shared by every command of one invocation
type app struct {
	verbosity  int
	configFile string
	color      string
	width      int
	cfg        *config.Config
	out        io.Writer
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "nestbox",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging based on verbosity
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			a.out = cmd.OutOrStdout()
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.color, "color", string(terminal.ColorAuto), MsgFlagColor)
	rootCmd.PersistentFlags().IntVar(&a.width, "width", 0, MsgFlagWidth)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newWrapCmd(a))
	rootCmd.AddCommand(newExecCmd(a))
	rootCmd.AddCommand(newPresetsCmd(a))
	rootCmd.AddCommand(newGenConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	if err := initTopics(a, rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// ExitCode returns the process status for an error returned by Execute.
// A failing exec child passes its own status through.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.IsErrorCode(err, errors.ErrCommandFailed) {
		if code, ok := errors.GetErrorDetails(err)["exit_code"].(int); ok && code > 0 {
			return code
		}
	}
	return 1
}

// loadConfig reads every configuration layer. Flags that were set on the
// command line override their configuration keys.
func (a *app) loadConfig(cmd *cobra.Command) error {
	overrides := make(map[string]interface{})
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}

	cfg, err := config.Load(config.Options{
		File:      a.configFile,
		Overrides: overrides,
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// output is a renderer bound to one writer together with the theme its
// styles come from
type output struct {
	renderer *box.Renderer
	theme    *style.Theme
	dark     bool
	border   style.Style
	columns  int
}

func (a *app) newOutput(w io.Writer) (*output, error) {
	return a.newOutputProbe(w, w)
}

// newOutputProbe renders to w with the colors and width of probe, for
// output that is buffered before it reaches the terminal
func (a *app) newOutputProbe(w, probe io.Writer) (*output, error) {
	if probe == nil {
		probe = w
	}

	theme := style.DefaultTheme()
	if a.cfg.Style.Theme != "" {
		loaded, err := style.LoadTheme(a.cfg.Style.Theme)
		if err != nil {
			return nil, err
		}
		theme = loaded
	}

	overflow, err := a.cfg.OverflowPolicy()
	if err != nil {
		return nil, err
	}

	profile := terminal.ColorProfile(probe, a.cfg.ColorMode())
	dark := true
	if profile != termenv.Ascii {
		dark = lipgloss.HasDarkBackground()
	}

	var oracle terminal.WidthOracle = terminal.ForWriter(probe)
	if a.cfg.Output.Width > 0 {
		oracle = terminal.Fixed(a.cfg.Output.Width)
	}

	o := &output{
		renderer: box.NewRenderer(w,
			box.WithStyleState(style.NewState(profile)),
			box.WithOverflow(overflow),
			box.WithWidthOracle(oracle),
		),
		theme:   theme,
		dark:    dark,
		columns: oracle.Columns(),
	}
	if a.cfg.Style.Border != "" {
		o.border = o.style(a.cfg.Style.Border)
	}
	return o, nil
}

// style renders a theme style for the output's profile, empty when unknown
func (o *output) style(name string) style.Style {
	return o.theme.Style(name, o.renderer.Styles().Profile(), o.dark)
}

// open draws f with the border style. The style is only active while the
// box opens, so the walls keep it and the content does not.
func (o *output) open(f box.Frame) (*box.Scope, error) {
	var scope *box.Scope
	err := o.renderer.Styles().With(o.border, func() error {
		var err error
		scope, err = o.renderer.Open(f)
		return err
	})
	return scope, err
}

// with runs fn inside a box drawn with the border style
func (o *output) with(f box.Frame, fn func(s *box.Scope) error) (err error) {
	scope, err := o.open(f)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := scope.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(scope)
}

// frame resolves the configured frame
func (a *app) frame() (box.Frame, error) {
	return a.cfg.Frame()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), version.Info())
			return err
		},
	}
}
