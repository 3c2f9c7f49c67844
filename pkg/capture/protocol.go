package capture

import (
	_ "embed"
)

//go:embed protocol.bash
var protocol string

// Labels of the two capture points written by the protocol.
const (
	LabelBefore = "before"
	LabelAfter  = "after"
)

// Modes understood by the protocol.
const (
	ModeSource = "source"
	ModeEval   = "eval"
)

// ArgZero is passed as $0 to the protocol so diagnostics from the child
// name the tool.
const ArgZero = "basrs"

// Protocol returns the bash source of the capture protocol. It is meant to
// be passed to `bash -c`, followed by ArgZero, a mode, the target and the
// script arguments.
func Protocol() string {
	return protocol
}

// Args builds the argument vector for `bash -c`.
func Args(mode, target string, scriptArgs []string) []string {
	args := []string{"-c", protocol, ArgZero, mode, target}
	return append(args, scriptArgs...)
}
