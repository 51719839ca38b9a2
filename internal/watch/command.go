package watch

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repocheck/internal/check"
	"github.com/temirov/repocheck/internal/policy"
	"github.com/temirov/repocheck/internal/utils"
)

const (
	commandNameConstant             = "watch"
	commandShortDescriptionConstant = "Re-run the compliance check whenever the directory changes"
	commandLongDescriptionConstant  = "watch runs the compliance check immediately, then observes the directory for filesystem changes and repeats the check after each change settles. The session ends on interrupt."
	flagPathNameConstant            = "path"
	flagPathDescriptionConstant     = "Directory to observe instead of the current working directory."
	flagPolicyNameConstant          = "policy"
	flagPolicyDescriptionConstant   = "Optional path to a YAML policy file overriding the built-in required file list."
	flagIntervalNameConstant        = "interval"
	flagIntervalDescriptionConstant = "Quiet period after the last filesystem event before the check re-runs."
	defaultDirectoryConstant        = "."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted configuration for the watch command.
type ConfigurationProvider func() check.CommandConfiguration

// CommandBuilder assembles the watch cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            check.FileSystem
	Runner                CheckRunner
}

// Build constructs the cobra command for continuous compliance checking.
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
	command.Flags().String(flagPolicyNameConstant, "", flagPolicyDescriptionConstant)
	command.Flags().Duration(flagIntervalNameConstant, defaultDebounceIntervalConstant, flagIntervalDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	checkOptions := builder.resolveConfiguration().EffectiveOptions()

	requiredFiles := checkOptions.RequiredFiles
	forbiddenFiles := checkOptions.ForbiddenFiles

	policyPath, _ := command.Flags().GetString(flagPolicyNameConstant)
	if len(policyPath) > 0 {
		loadedPolicy, policyError := policy.Load(policyPath)
		if policyError != nil {
			return policyError
		}
		requiredFiles = check.RequiredFileSet(loadedPolicy.Required)
		forbiddenFiles = loadedPolicy.Forbidden
	}

	directoryPath, _ := command.Flags().GetString(flagPathNameConstant)
	if len(directoryPath) == 0 {
		directoryPath = defaultDirectoryConstant
	}

	debounceInterval, _ := command.Flags().GetDuration(flagIntervalNameConstant)

	runner, runnerError := builder.resolveRunner(command)
	if runnerError != nil {
		return runnerError
	}

	watchService, watchServiceError := NewService(builder.resolveLogger(), runner)
	if watchServiceError != nil {
		return watchServiceError
	}

	executionContext, stopSignalHandling := signal.NotifyContext(command.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignalHandling()

	return watchService.Run(executionContext, Options{
		Directory:        directoryPath,
		RequiredFiles:    requiredFiles,
		ForbiddenFiles:   forbiddenFiles,
		DebounceInterval: debounceInterval,
	})
}

func (builder *CommandBuilder) resolveConfiguration() check.CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return check.DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
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

func (builder *CommandBuilder) resolveRunner(command *cobra.Command) (CheckRunner, error) {
	if builder.Runner != nil {
		return builder.Runner, nil
	}
	fileSystem := builder.FileSystem
	if fileSystem == nil {
		fileSystem = check.NewOSFileSystem()
	}
	return check.NewService(fileSystem, nil, utils.NewFlushingWriter(command.OutOrStdout()))
}
