// 29 Apr 2020
// 3 Oct 2026 moved here from the old seq package

package common

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// WrtTemp writes a string to a temporary file and returns its name.
// The tests use it everywhere.
func WrtTemp(s string) (string, error) {
	fp, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		return "", fmt.Errorf("making temp file: %w", err)
	}
	defer fp.Close()
	if _, err := io.WriteString(fp, s); err != nil {
		return "", fmt.Errorf("writing to %s: %w", fp.Name(), err)
	}
	return fp.Name(), nil
}

// IsStdio tells us if a file name means standard input or output.
func IsStdio(fname string) bool { return fname == "" || fname == "-" }
