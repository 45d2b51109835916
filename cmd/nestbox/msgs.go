package nestbox

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Draw nested boxes around terminal output"
	MsgWrapShort      = "Print files or stdin inside a box"
	MsgWrapLong       = "Wrap prints every line of the given files, or stdin when none are given, inside a box. Files are divided by separators."
	MsgExecShort      = "Run a command and draw its output inside a box"
	MsgExecLong       = "Exec runs the command with its stdout and stderr drawn inside a box. Stderr lines use the theme's error style. A failing command makes nestbox exit with the same status."
	MsgPresetsShort   = "List the box presets"
	MsgGenConfigShort = "Print the configuration as TOML"
	MsgVersionShort   = "Print version information"

	// Errors
	MsgErrNoCommand    = "no command specified"
	MsgErrOpenInput    = "failed to open %s"
	MsgErrReadInput    = "failed to read %s"
	MsgErrUnknownStyle = "unknown theme style: %s"
	MsgErrStart        = "failed to start %s"
	MsgErrExited       = "%s exited with status %d"
	MsgErrConfigExist  = "%s already exists"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Read configuration from this file as well"
	MsgFlagColor    = "Color output: auto, always or never"
	MsgFlagWidth    = "Width for unsized boxes, 0 asks the terminal"
	MsgFlagPreset   = "Box preset or configured frame"
	MsgFlagSize     = "Fixed box width, 0 derives it"
	MsgFlagOverflow = "Lines wider than the box: clamp or error"
	MsgFlagStyle    = "Theme style for the content"
	MsgFlagSplit    = "Draw a separator instead of lines equal to this marker"
	MsgFlagNested   = "Nest each sample inside the previous one"
	MsgFlagDefaults = "Print the annotated defaults instead of the effective configuration"
	MsgFlagWrite    = "Write to ./.nestbox.toml instead of stdout"
	MsgFlagStatus   = "Report how the command ended after the box"

	// Output
	MsgWroteConfig  = "Wrote %s\n"
	MsgExecFinished = "%s finished in %s"
	MsgExecFailed   = "%s exited with status %d after %s"
	MsgExecAborted  = "%s did not finish: %v"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)
)
