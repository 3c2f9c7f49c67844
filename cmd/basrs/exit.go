package basrs

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/fezjo/basrs/pkg/errors"
)

// ExitCodeError ends the process with Code without printing anything;
// whatever needed saying was already written to stderr.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// HandleError prints err to stderr and returns the process exit code.
func HandleError(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitCodeError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	printerFor(stderr).Error(err)
	if errors.GetErrorCode(err) == errors.ErrUnknown {
		fmt.Fprintln(stderr, "Run 'basrs --help' for usage.")
	}
	return 1
}
