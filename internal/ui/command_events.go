package ui

import (
	"fmt"
	"io"

	"github.com/temirov/repocheck/internal/execshell"
)

const (
	consoleMessageTemplateConstant = "%s\n"
)

// ConsoleCommandObserver writes human-readable command lifecycle messages to a writer.
type ConsoleCommandObserver struct {
	writer    io.Writer
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandObserver constructs an observer emitting messages to the provided writer.
func NewConsoleCommandObserver(writer io.Writer) *ConsoleCommandObserver {
	return &ConsoleCommandObserver{writer: writer, formatter: execshell.CommandMessageFormatter{}}
}

// CommandStarted prints the message describing a command about to run.
func (observer *ConsoleCommandObserver) CommandStarted(command execshell.ShellCommand) {
	observer.print(observer.formatter.BuildStartedMessage(command))
}

// CommandCompleted prints the message describing a finished command.
func (observer *ConsoleCommandObserver) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if result.ExitCode == 0 {
		observer.print(observer.formatter.BuildSuccessMessage(command))
		return
	}
	observer.print(observer.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed prints the message describing an unexpected execution failure.
func (observer *ConsoleCommandObserver) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	observer.print(observer.formatter.BuildExecutionFailureMessage(command, failure))
}

func (observer *ConsoleCommandObserver) print(message string) {
	if observer == nil || observer.writer == nil {
		return
	}
	fmt.Fprintf(observer.writer, consoleMessageTemplateConstant, message)
}
