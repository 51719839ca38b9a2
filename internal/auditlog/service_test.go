package auditlog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/repocheck/internal/auditlog"
	"github.com/temirov/repocheck/internal/execshell"
)

const (
	testLogGroupNameConstant    = "prod-validation"
	testRegionConstant          = "eu-west-1"
	testFixedTimestampConstant  = "2024-05-01T10:30:00Z"
	testExpectedStreamConstant  = "prod-validation-2024-05-01T10:30:00Z"
	testExpectedMessageConstant = "Prod validation passed at 2024-05-01T10:30:00Z"
)

type fixedClock struct {
	instant time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.instant
}

type recordingAWSExecutor struct {
	recordedDetails  []execshell.CommandDetails
	invocationErrors []error
}

func (executor *recordingAWSExecutor) ExecuteAWS(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if len(executor.invocationErrors) == 0 {
		return execshell.ExecutionResult{}, nil
	}
	invocationError := executor.invocationErrors[0]
	executor.invocationErrors = executor.invocationErrors[1:]
	if invocationError != nil {
		return execshell.ExecutionResult{}, invocationError
	}
	return execshell.ExecutionResult{}, nil
}

func fixedTestClock(testInstance *testing.T) fixedClock {
	testInstance.Helper()
	instant, parseError := time.Parse(time.RFC3339, testFixedTimestampConstant)
	require.NoError(testInstance, parseError)
	return fixedClock{instant: instant}
}

func TestNewServiceValidatesDependencies(testInstance *testing.T) {
	service, creationError := auditlog.NewService(nil, nil)
	require.ErrorIs(testInstance, creationError, auditlog.ErrExecutorNotConfigured)
	require.Nil(testInstance, service)

	service, creationError = auditlog.NewService(&recordingAWSExecutor{}, nil)
	require.NoError(testInstance, creationError)
	require.NotNil(testInstance, service)
}

func TestRecordValidationPassedRequiresLogGroup(testInstance *testing.T) {
	executor := &recordingAWSExecutor{}
	service, creationError := auditlog.NewService(executor, fixedTestClock(testInstance))
	require.NoError(testInstance, creationError)

	_, recordingError := service.RecordValidationPassed(context.Background(), auditlog.Options{LogGroupName: "  "})
	require.ErrorIs(testInstance, recordingError, auditlog.ErrLogGroupNameRequired)
	require.Empty(testInstance, executor.recordedDetails)
}

func TestRecordValidationPassedInvokesCreateStreamThenPutEvents(testInstance *testing.T) {
	executor := &recordingAWSExecutor{}
	clock := fixedTestClock(testInstance)
	service, creationError := auditlog.NewService(executor, clock)
	require.NoError(testInstance, creationError)

	recordingResult, recordingError := service.RecordValidationPassed(context.Background(), auditlog.Options{
		LogGroupName: testLogGroupNameConstant,
		Region:       testRegionConstant,
	})
	require.NoError(testInstance, recordingError)

	require.Equal(testInstance, testExpectedStreamConstant, recordingResult.LogStreamName)
	require.Equal(testInstance, testExpectedMessageConstant, recordingResult.Message)
	require.Equal(testInstance, testLogGroupNameConstant, recordingResult.LogGroupName)
	require.Equal(testInstance, clock.instant.UTC(), recordingResult.Timestamp)

	require.Len(testInstance, executor.recordedDetails, 2)

	expectedCreateArguments := []string{
		"logs", "create-log-stream",
		"--log-group-name", testLogGroupNameConstant,
		"--log-stream-name", testExpectedStreamConstant,
		"--region", testRegionConstant,
	}
	require.Equal(testInstance, expectedCreateArguments, executor.recordedDetails[0].Arguments)

	expectedPutArguments := []string{
		"logs", "put-log-events",
		"--log-group-name", testLogGroupNameConstant,
		"--log-stream-name", testExpectedStreamConstant,
		"--log-events", "timestamp=1714559400000,message=" + testExpectedMessageConstant,
		"--region", testRegionConstant,
	}
	require.Equal(testInstance, expectedPutArguments, executor.recordedDetails[1].Arguments)
}

func TestRecordValidationPassedOmitsRegionWhenUnset(testInstance *testing.T) {
	executor := &recordingAWSExecutor{}
	service, creationError := auditlog.NewService(executor, fixedTestClock(testInstance))
	require.NoError(testInstance, creationError)

	_, recordingError := service.RecordValidationPassed(context.Background(), auditlog.Options{LogGroupName: testLogGroupNameConstant})
	require.NoError(testInstance, recordingError)

	require.Len(testInstance, executor.recordedDetails, 2)
	require.NotContains(testInstance, executor.recordedDetails[0].Arguments, "--region")
	require.NotContains(testInstance, executor.recordedDetails[1].Arguments, "--region")
}

func TestRecordValidationPassedStopsAfterStreamCreationFailure(testInstance *testing.T) {
	creationFailure := errors.New("stream creation denied")
	executor := &recordingAWSExecutor{invocationErrors: []error{creationFailure}}
	service, serviceCreationError := auditlog.NewService(executor, fixedTestClock(testInstance))
	require.NoError(testInstance, serviceCreationError)

	_, recordingError := service.RecordValidationPassed(context.Background(), auditlog.Options{LogGroupName: testLogGroupNameConstant})
	require.ErrorIs(testInstance, recordingError, creationFailure)
	require.Len(testInstance, executor.recordedDetails, 1)
}

func TestRecordValidationPassedWrapsPutEventsFailure(testInstance *testing.T) {
	recordingFailure := errors.New("event rejected")
	executor := &recordingAWSExecutor{invocationErrors: []error{nil, recordingFailure}}
	service, serviceCreationError := auditlog.NewService(executor, fixedTestClock(testInstance))
	require.NoError(testInstance, serviceCreationError)

	_, recordingError := service.RecordValidationPassed(context.Background(), auditlog.Options{LogGroupName: testLogGroupNameConstant})
	require.ErrorIs(testInstance, recordingError, recordingFailure)
	require.Len(testInstance, executor.recordedDetails, 2)
}
