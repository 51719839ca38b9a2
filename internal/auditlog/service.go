package auditlog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/temirov/repocheck/internal/execshell"
)

const (
	validationPassedMessageTemplateConstant = "Prod validation passed at %s"
	logStreamNameTemplateConstant           = "prod-validation-%s"
	awsLogsServiceArgumentConstant          = "logs"
	awsCreateLogStreamArgumentConstant      = "create-log-stream"
	awsPutLogEventsArgumentConstant         = "put-log-events"
	awsLogGroupNameFlagConstant             = "--log-group-name"
	awsLogStreamNameFlagConstant            = "--log-stream-name"
	awsLogEventsFlagConstant                = "--log-events"
	awsRegionFlagConstant                   = "--region"
	logEventTemplateConstant                = "timestamp=%d,message=%s"
	executorMissingMessageConstant          = "aws executor not configured"
	logGroupMissingMessageConstant          = "log group name must be provided"
	streamCreationErrorTemplateConstant     = "failed to create log stream: %w"
	eventRecordingErrorTemplateConstant     = "failed to record audit event: %w"
)

// ErrExecutorNotConfigured indicates the aws executor dependency was missing.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// ErrLogGroupNameRequired indicates the log group option was empty.
var ErrLogGroupNameRequired = errors.New(logGroupMissingMessageConstant)

// AWSExecutor runs aws CLI invocations.
type AWSExecutor interface {
	ExecuteAWS(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Options configures a single audit recording run.
type Options struct {
	LogGroupName string
	Region       string
}

// Service records validation outcomes to CloudWatch Logs via the aws CLI.
type Service struct {
	executor AWSExecutor
	clock    Clock
}

// NewService constructs a Service from the provided dependencies.
func NewService(executor AWSExecutor, clock Clock) (*Service, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{executor: executor, clock: clock}, nil
}

// RecordValidationPassed creates a timestamp-keyed log stream and writes the audit entry.
//
// The entry carries only the timestamp; richer audit fields are intentionally
// not part of the message format.
func (service *Service) RecordValidationPassed(executionContext context.Context, options Options) (Result, error) {
	trimmedLogGroupName := strings.TrimSpace(options.LogGroupName)
	if len(trimmedLogGroupName) == 0 {
		return Result{}, ErrLogGroupNameRequired
	}

	recordedAt := service.clock.Now().UTC()
	formattedTimestamp := recordedAt.Format(time.RFC3339)
	logStreamName := fmt.Sprintf(logStreamNameTemplateConstant, formattedTimestamp)
	message := fmt.Sprintf(validationPassedMessageTemplateConstant, formattedTimestamp)

	createStreamArguments := []string{
		awsLogsServiceArgumentConstant,
		awsCreateLogStreamArgumentConstant,
		awsLogGroupNameFlagConstant, trimmedLogGroupName,
		awsLogStreamNameFlagConstant, logStreamName,
	}
	createStreamArguments = appendRegionArguments(createStreamArguments, options.Region)

	if _, creationError := service.executor.ExecuteAWS(executionContext, execshell.CommandDetails{Arguments: createStreamArguments}); creationError != nil {
		return Result{}, fmt.Errorf(streamCreationErrorTemplateConstant, creationError)
	}

	putEventsArguments := []string{
		awsLogsServiceArgumentConstant,
		awsPutLogEventsArgumentConstant,
		awsLogGroupNameFlagConstant, trimmedLogGroupName,
		awsLogStreamNameFlagConstant, logStreamName,
		awsLogEventsFlagConstant, fmt.Sprintf(logEventTemplateConstant, recordedAt.UnixMilli(), message),
	}
	putEventsArguments = appendRegionArguments(putEventsArguments, options.Region)

	if _, recordingError := service.executor.ExecuteAWS(executionContext, execshell.CommandDetails{Arguments: putEventsArguments}); recordingError != nil {
		return Result{}, fmt.Errorf(eventRecordingErrorTemplateConstant, recordingError)
	}

	return Result{
		Timestamp:     recordedAt,
		LogGroupName:  trimmedLogGroupName,
		LogStreamName: logStreamName,
		Message:       message,
	}, nil
}

func appendRegionArguments(arguments []string, region string) []string {
	trimmedRegion := strings.TrimSpace(region)
	if len(trimmedRegion) == 0 {
		return arguments
	}
	return append(arguments, awsRegionFlagConstant, trimmedRegion)
}
