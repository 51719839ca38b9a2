package watch_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repocheck/internal/check"
	"github.com/temirov/repocheck/internal/watch"
)

const (
	testPathFlagConstant          = "--path"
	testPolicyFlagConstant        = "--policy"
	testMissingPolicyNameConstant = "missing-policy.yaml"
	usageOutputMarkerConstant     = "Usage:"
)

func TestWatchCommandStopsWhenContextCancelled(testInstance *testing.T) {
	watchedDirectory := testInstance.TempDir()
	runner := &signallingCheckRunner{invocations: make(chan check.Options, 2)}
	builder := &watch.CommandBuilder{Runner: runner}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs([]string{testPathFlagConstant, watchedDirectory})

	sessionContext, cancelSession := context.WithCancel(context.Background())
	cancelSession()

	require.NoError(testInstance, command.ExecuteContext(sessionContext))
}

type recordingCancelRunner struct {
	recordedOptions chan check.Options
	cancelSession   context.CancelFunc
}

func (runner *recordingCancelRunner) Run(executionContext context.Context, options check.Options) (check.CheckResult, error) {
	select {
	case runner.recordedOptions <- options:
	default:
	}
	runner.cancelSession()
	return check.CheckResult{}, nil
}

func TestWatchCommandSanitizesConfiguredFileList(testInstance *testing.T) {
	watchedDirectory := testInstance.TempDir()

	sessionContext, cancelSession := context.WithCancel(context.Background())
	defer cancelSession()

	runner := &recordingCancelRunner{
		recordedOptions: make(chan check.Options, 1),
		cancelSession:   cancelSession,
	}
	builder := &watch.CommandBuilder{
		Runner: runner,
		ConfigurationProvider: func() check.CommandConfiguration {
			return check.CommandConfiguration{
				RequiredFiles:  []string{"  README.md  ", "", ".gitignore"},
				ForbiddenFiles: []string{" secrets.txt "},
			}
		},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs([]string{testPathFlagConstant, watchedDirectory})

	require.NoError(testInstance, command.ExecuteContext(sessionContext))

	recorded := <-runner.recordedOptions
	require.Equal(testInstance, check.RequiredFileSet{"README.md", ".gitignore"}, recorded.RequiredFiles)
	require.Equal(testInstance, []string{"secrets.txt"}, recorded.ForbiddenFiles)
}

func TestWatchCommandRejectsUnreadablePolicy(testInstance *testing.T) {
	watchedDirectory := testInstance.TempDir()
	runner := &signallingCheckRunner{invocations: make(chan check.Options, 2)}
	builder := &watch.CommandBuilder{Runner: runner}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs([]string{
		testPathFlagConstant, watchedDirectory,
		testPolicyFlagConstant, filepath.Join(watchedDirectory, testMissingPolicyNameConstant),
	})

	require.Error(testInstance, command.ExecuteContext(context.Background()))
	require.NotContains(testInstance, outputBuffer.String(), usageOutputMarkerConstant)
}
