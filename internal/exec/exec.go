package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Command runs cmdString, split on white spaces, and returns its raw
// standard output, trailing newline included.
// The first word is the executable, at least one argument is required.
func Command(ctx context.Context, cmdString string) (string, error) {
	fields := strings.Fields(cmdString)
	if len(fields) < 2 {
		return "", errors.New("wrong cmd: " + cmdString)
	}

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	// If Env is nil, the new process uses the current process's environment.
	cmd.Env = os.Environ()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	var stout bytes.Buffer
	cmd.Stdout = &stout

	err := cmd.Run()
	if err != nil {
		return stout.String(), fmt.Errorf("%v: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stout.String(), nil
}

// FirstLine returns the first line of out, including its trailing newline
// when there is one.
func FirstLine(out string) string {
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		return out[:i+1]
	}
	return out
}
