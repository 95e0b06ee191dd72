package ping

import (
	"errors"
	"os/exec"
)

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
