package ui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repocheck/internal/execshell"
	"github.com/temirov/repocheck/internal/ui"
)

const (
	testObserverStartedCaseNameConstant   = "started"
	testObserverCompletedCaseNameConstant = "completed"
	testObserverFailedCaseNameConstant    = "failed_exit_code"
	testObserverExecutionCaseNameConstant = "execution_failure"
)

func TestConsoleCommandObserverMessages(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name:    execshell.CommandAWS,
		Details: execshell.CommandDetails{Arguments: []string{"sts", "get-caller-identity"}},
	}

	testCases := []struct {
		name            string
		notify          func(observer *ui.ConsoleCommandObserver)
		expectedMessage string
	}{
		{
			name: testObserverStartedCaseNameConstant,
			notify: func(observer *ui.ConsoleCommandObserver) {
				observer.CommandStarted(command)
			},
			expectedMessage: "Running aws sts get-caller-identity\n",
		},
		{
			name: testObserverCompletedCaseNameConstant,
			notify: func(observer *ui.ConsoleCommandObserver) {
				observer.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedMessage: "Completed aws sts get-caller-identity\n",
		},
		{
			name: testObserverFailedCaseNameConstant,
			notify: func(observer *ui.ConsoleCommandObserver) {
				observer.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 2, StandardError: "denied"})
			},
			expectedMessage: "aws sts get-caller-identity failed with exit code 2: denied\n",
		},
		{
			name: testObserverExecutionCaseNameConstant,
			notify: func(observer *ui.ConsoleCommandObserver) {
				observer.CommandExecutionFailed(command, errors.New("not found"))
			},
			expectedMessage: "aws sts get-caller-identity failed: not found\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			outputBuffer := &bytes.Buffer{}
			observer := ui.NewConsoleCommandObserver(outputBuffer)

			testCase.notify(observer)

			require.Equal(testInstance, testCase.expectedMessage, outputBuffer.String())
		})
	}
}
