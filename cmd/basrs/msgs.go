package basrs

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Run bash scripts and replay their effect in another shell"
	MsgSourceShort     = "Source a bash script and print equivalent statements"
	MsgEvalShort       = "Evaluate a bash command and print equivalent statements"
	MsgConfigShort     = "Show the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgVersionFormat  = "basrs version %s\n"
	MsgCommitFormat   = "  commit: %s\n"
	MsgBuiltFormat    = "  built:  %s\n"
	MsgSkippedEntry   = "skipped %s"
	MsgScriptFailed   = "script exited with status %d; its changes were still translated"
	MsgConfigWritten  = "Wrote %s"
	MsgConfigExisting = "Config file already exists, not overwritten"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrGenConfig  = "failed to generate config: %w"
	MsgErrWrite      = "failed to write output: %w"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default $XDG_CONFIG_HOME/basrs/config.toml)"
	MsgFlagShell       = "Destination shell: fish, bash, zsh, sh (posix)"
	MsgFlagAnnotate    = "Precede each statement with a comment naming the change"
	MsgFlagOrder       = "Statement order: removals-first or additions-first"
	MsgFlagLogin       = "Run bash as a login shell"
	MsgFlagInterpreter = "bash binary used to run the script"
	MsgFlagTimeout     = "Abort the script after this long (0 disables)"
	MsgFlagFormat      = "Output format: toml or yaml"
	MsgFlagTemplate    = "Print a commented template of the defaults"
	MsgFlagWrite       = "With --template, save it as the user config file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/source-long.txt
	msgSourceLongRaw string
	MsgSourceLong    = strings.TrimSpace(msgSourceLongRaw)

	//go:embed msgs/source-example.txt
	msgSourceExampleRaw string
	MsgSourceExample    = strings.TrimRight(msgSourceExampleRaw, "\n")

	//go:embed msgs/eval-long.txt
	msgEvalLongRaw string
	MsgEvalLong    = strings.TrimSpace(msgEvalLongRaw)

	//go:embed msgs/eval-example.txt
	msgEvalExampleRaw string
	MsgEvalExample    = strings.TrimRight(msgEvalExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
