package auditlog

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repocheck/internal/check"
	"github.com/temirov/repocheck/internal/execshell"
	"github.com/temirov/repocheck/internal/ui"
	"github.com/temirov/repocheck/internal/utils"
)

const (
	commandNameConstant             = "audit-record"
	commandShortDescriptionConstant = "Run the compliance check and record a passing result to CloudWatch Logs"
	commandLongDescriptionConstant  = "audit-record re-runs the baseline compliance check and, only when it passes, writes a single timestamped audit entry to the configured CloudWatch log group through the aws CLI."
	flagPathNameConstant            = "path"
	flagPathDescriptionConstant     = "Directory to check instead of the current working directory."
	auditRecordedLogMessageConstant = "audit entry recorded"
	logFieldLogGroupConstant        = "log_group"
	logFieldLogStreamConstant       = "log_stream"
	logFieldTimestampConstant       = "timestamp"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted configuration for the audit-record command.
type ConfigurationProvider func() CommandConfiguration

// CheckConfigurationProvider supplies the compliance check configuration gating the audit entry.
type CheckConfigurationProvider func() check.CommandConfiguration

// HumanReadableLoggingProvider reports whether console-oriented output is enabled.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the audit-record cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	CheckConfigurationProvider   CheckConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	FileSystem                   check.FileSystem
	Executor                     AWSExecutor
	Clock                        Clock
}

// Build constructs the cobra command for audit recording.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandNameConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		RunE:          builder.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	command.Flags().String(flagPathNameConstant, "", flagPathDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()

	checkService, checkServiceError := check.NewService(builder.resolveFileSystem(), nil, utils.NewFlushingWriter(command.OutOrStdout()))
	if checkServiceError != nil {
		return checkServiceError
	}

	checkOptions := builder.resolveCheckConfiguration().EffectiveOptions()
	directoryPath, _ := command.Flags().GetString(flagPathNameConstant)
	checkOptions.WorkingDirectory = directoryPath

	if _, checkError := checkService.Run(command.Context(), checkOptions); checkError != nil {
		return checkError
	}

	configuration := builder.resolveConfiguration().sanitize()
	configuration = applyEnvironmentOverrides(configuration)

	executor, executorError := builder.resolveExecutor(command, logger)
	if executorError != nil {
		return executorError
	}

	auditService, auditServiceError := NewService(executor, builder.Clock)
	if auditServiceError != nil {
		return auditServiceError
	}

	recordingResult, recordingError := auditService.RecordValidationPassed(command.Context(), Options{
		LogGroupName: configuration.LogGroupName,
		Region:       configuration.Region,
	})
	if recordingError != nil {
		return recordingError
	}

	logger.Info(
		auditRecordedLogMessageConstant,
		zap.String(logFieldLogGroupConstant, recordingResult.LogGroupName),
		zap.String(logFieldLogStreamConstant, recordingResult.LogStreamName),
		zap.Time(logFieldTimestampConstant, recordingResult.Timestamp),
	)

	return nil
}

func applyEnvironmentOverrides(configuration CommandConfiguration) CommandConfiguration {
	if logGroupName, exists := os.LookupEnv(logGroupEnvironmentNameConstant); exists {
		trimmedLogGroupName := strings.TrimSpace(logGroupName)
		if len(trimmedLogGroupName) > 0 {
			configuration.LogGroupName = trimmedLogGroupName
		}
	}

	if region, exists := os.LookupEnv(regionEnvironmentNameConstant); exists {
		trimmedRegion := strings.TrimSpace(region)
		if len(trimmedRegion) > 0 {
			configuration.Region = trimmedRegion
		}
	}

	return configuration
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveCheckConfiguration() check.CommandConfiguration {
	if builder.CheckConfigurationProvider == nil {
		return check.DefaultCommandConfiguration()
	}
	return builder.CheckConfigurationProvider()
}

func (builder *CommandBuilder) resolveFileSystem() check.FileSystem {
	if builder.FileSystem == nil {
		return check.NewOSFileSystem()
	}
	return builder.FileSystem
}

func (builder *CommandBuilder) resolveExecutor(command *cobra.Command, logger *zap.Logger) (AWSExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, executorError
	}

	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		shellExecutor.SetCommandEventObserver(ui.NewConsoleCommandObserver(command.ErrOrStderr()))
	}

	return shellExecutor, nil
}
