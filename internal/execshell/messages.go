package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	awsLogsServiceNameConstant            = "logs"
	awsCreateLogStreamSubcommandConstant  = "create-log-stream"
	awsPutLogEventsSubcommandConstant     = "put-log-events"
	awsLogGroupNameFlagConstant           = "--log-group-name"
	awsLogStreamNameFlagConstant          = "--log-stream-name"
	awsServiceArgumentPositionConstant    = 0
	awsSubcommandArgumentPositionConstant = 1
	awsMinimumLogsArgumentCountConstant   = 2
)

const (
	logStreamCreationStartTemplateConstant            = "Creating log stream %s in group %s"
	logStreamCreationSuccessTemplateConstant          = "Created log stream %s in group %s"
	logStreamCreationFailureTemplateConstant          = "Failed to create log stream %s in group %s (exit code %d%s)"
	logStreamCreationExecutionFailureTemplateConstant = "Unable to create log stream %s in group %s: %s"
	logEventRecordingStartTemplateConstant            = "Recording audit event in stream %s of group %s"
	logEventRecordingSuccessTemplateConstant          = "Recorded audit event in stream %s of group %s"
	logEventRecordingFailureTemplateConstant          = "Failed to record audit event in stream %s of group %s (exit code %d%s)"
	logEventRecordingExecutionFailureTemplateConstant = "Unable to record audit event in stream %s of group %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandAWS:
		return formatter.describeAWSMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeAWSMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < awsMinimumLogsArgumentCountConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	service := strings.TrimSpace(arguments[awsServiceArgumentPositionConstant])
	if service != awsLogsServiceNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(arguments[awsSubcommandArgumentPositionConstant])
	logGroupName := formatter.ensureValue(formatter.flagValue(arguments, awsLogGroupNameFlagConstant))
	logStreamName := formatter.ensureValue(formatter.flagValue(arguments, awsLogStreamNameFlagConstant))

	switch subcommand {
	case awsCreateLogStreamSubcommandConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(logStreamCreationStartTemplateConstant, logStreamName, logGroupName)
		case messageStageSuccess:
			return fmt.Sprintf(logStreamCreationSuccessTemplateConstant, logStreamName, logGroupName)
		case messageStageFailure:
			return fmt.Sprintf(logStreamCreationFailureTemplateConstant, logStreamName, logGroupName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(logStreamCreationExecutionFailureTemplateConstant, logStreamName, logGroupName, formatter.describeFailure(failure))
		}
	case awsPutLogEventsSubcommandConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(logEventRecordingStartTemplateConstant, logStreamName, logGroupName)
		case messageStageSuccess:
			return fmt.Sprintf(logEventRecordingSuccessTemplateConstant, logStreamName, logGroupName)
		case messageStageFailure:
			return fmt.Sprintf(logEventRecordingFailureTemplateConstant, logStreamName, logGroupName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(logEventRecordingExecutionFailureTemplateConstant, logStreamName, logGroupName, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		commandParts = append(commandParts, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	commandLabel := strings.Join(commandParts, commandArgumentsJoinSeparatorConstant)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmedValue := strings.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmedValue
}

func (formatter CommandMessageFormatter) flagValue(arguments []string, flagName string) string {
	for argumentIndex := 0; argumentIndex < len(arguments)-1; argumentIndex++ {
		if strings.TrimSpace(arguments[argumentIndex]) == flagName {
			return arguments[argumentIndex+1]
		}
	}
	return emptyStringConstant
}
