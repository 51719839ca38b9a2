package check

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repocheck/internal/policy"
	"github.com/temirov/repocheck/internal/utils"
)

const (
	commandNameConstant             = "check"
	commandShortDescriptionConstant = "Verify the repository contains the required baseline files"
	commandLongDescriptionConstant  = "check tests each required file for existence relative to the working directory, prints any missing entries, and exits non-zero when the repository is out of compliance."
	flagPathNameConstant            = "path"
	flagPathDescriptionConstant     = "Directory to check instead of the current working directory."
	flagPolicyNameConstant          = "policy"
	flagPolicyDescriptionConstant   = "Optional path to a YAML policy file overriding the built-in required file list."
	flagRecursiveNameConstant       = "recursive"
	flagRecursiveDescription        = "Discover git repositories beneath the provided roots and check each one."
	checkStartedLogMessageConstant  = "compliance check starting"
	logFieldDirectoryConstant       = "directory"
	logFieldRequiredCountConstant   = "required_count"
	logFieldRecursiveConstant       = "recursive"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted configuration for the check command.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the check cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            FileSystem
	Discoverer            RepositoryDiscoverer
}

// Build constructs the cobra command for repository compliance checks.
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
	command.Flags().Bool(flagRecursiveNameConstant, false, flagRecursiveDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration().sanitize()

	requiredFiles := RequiredFileSet(configuration.RequiredFiles)
	forbiddenFiles := configuration.ForbiddenFiles

	policyPath, _ := command.Flags().GetString(flagPolicyNameConstant)
	if len(policyPath) > 0 {
		loadedPolicy, policyError := policy.Load(policyPath)
		if policyError != nil {
			return policyError
		}
		requiredFiles = RequiredFileSet(loadedPolicy.Required)
		forbiddenFiles = loadedPolicy.Forbidden
	}

	directoryPath, _ := command.Flags().GetString(flagPathNameConstant)
	recursiveEnabled, _ := command.Flags().GetBool(flagRecursiveNameConstant)

	builder.resolveLogger().Debug(
		checkStartedLogMessageConstant,
		zap.String(logFieldDirectoryConstant, directoryPath),
		zap.Int(logFieldRequiredCountConstant, len(requiredFiles)),
		zap.Bool(logFieldRecursiveConstant, recursiveEnabled),
	)

	service, serviceError := NewService(builder.resolveFileSystem(), builder.resolveDiscoverer(), utils.NewFlushingWriter(command.OutOrStdout()))
	if serviceError != nil {
		return serviceError
	}

	options := Options{
		WorkingDirectory: directoryPath,
		RequiredFiles:    requiredFiles,
		ForbiddenFiles:   forbiddenFiles,
	}

	if recursiveEnabled {
		roots := append([]string{}, arguments...)
		if len(roots) == 0 {
			roots = configuration.RepositoryRoots
		}
		_, recursiveError := service.RunRecursive(command.Context(), roots, options)
		return recursiveError
	}

	_, runError := service.Run(command.Context(), options)
	return runError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
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

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem == nil {
		return NewOSFileSystem()
	}
	return builder.FileSystem
}

func (builder *CommandBuilder) resolveDiscoverer() RepositoryDiscoverer {
	if builder.Discoverer == nil {
		return NewFilesystemRepositoryDiscoverer()
	}
	return builder.Discoverer
}
