package tests

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	configurationSearchPathAssignmentTemplate = "REPOCHECK_CONFIG_SEARCH_PATH=%s"
	goCommandNameConstant                     = "go"
	goRunSubcommandConstant                   = "run"
	currentModuleReferenceConstant            = "."
)

func repositoryRootDirectory(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	return filepath.Dir(workingDirectory)
}

func runRepocheckCommand(testInstance *testing.T, timeout time.Duration, environment []string, arguments []string) (string, string, error) {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	commandArguments := append([]string{goRunSubcommandConstant, currentModuleReferenceConstant}, arguments...)
	command := exec.CommandContext(executionContext, goCommandNameConstant, commandArguments...)
	command.Dir = repositoryRootDirectory(testInstance)
	command.Env = append(append([]string{}, os.Environ()...), environment...)

	standardOutput := &bytes.Buffer{}
	standardError := &bytes.Buffer{}
	command.Stdout = standardOutput
	command.Stderr = standardError

	runError := command.Run()
	return standardOutput.String(), standardError.String(), runError
}

func requireExitCode(testInstance *testing.T, runError error, expectedExitCode int, diagnosticOutput string) {
	testInstance.Helper()

	if expectedExitCode == 0 {
		require.NoError(testInstance, runError, diagnosticOutput)
		return
	}

	require.Error(testInstance, runError, diagnosticOutput)
	exitError := &exec.ExitError{}
	require.ErrorAs(testInstance, runError, &exitError, diagnosticOutput)
	require.Equal(testInstance, expectedExitCode, exitError.ExitCode(), diagnosticOutput)
}

func filterStructuredOutput(rawOutput string) string {
	lines := strings.Split(rawOutput, "\n")
	var filtered []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "{") {
			continue
		}
		filtered = append(filtered, line)
	}
	if len(filtered) == 0 {
		return ""
	}
	return strings.Join(filtered, "\n") + "\n"
}
