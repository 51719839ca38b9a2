package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/temirov/repocheck/cmd/cli"
	"github.com/temirov/repocheck/internal/check"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the repocheck command-line application. Compliance failures
// have already been reported on stdout, so they only set the exit status.
func main() {
	executionError := cli.Execute()
	if executionError == nil {
		return
	}

	if !errors.Is(executionError, check.ErrComplianceFailed) {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
	}

	os.Exit(1)
}
