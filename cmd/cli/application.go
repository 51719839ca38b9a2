package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/repocheck/internal/auditlog"
	"github.com/temirov/repocheck/internal/check"
	"github.com/temirov/repocheck/internal/utils"
	"github.com/temirov/repocheck/internal/watch"
)

const (
	applicationNameConstant                        = "repocheck"
	applicationShortDescriptionConstant            = "Command-line interface for repository baseline compliance"
	applicationLongDescriptionConstant             = "repocheck verifies that a repository carries its required baseline files, optionally watches the tree for changes, and records passing results to CloudWatch Logs."
	configFileFlagNameConstant                     = "config"
	configFileFlagUsageConstant                    = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                       = "log-level"
	logLevelFlagUsageConstant                      = "Override the configured log level."
	logFormatFlagNameConstant                      = "log-format"
	logFormatFlagUsageConstant                     = "Override the configured log format (structured or console)."
	commonConfigurationKeyConstant                 = "common"
	commonLogLevelConfigKeyConstant                = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant               = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant                      = "REPOCHECK"
	configurationNameConstant                      = "config"
	configurationTypeConstant                      = "yaml"
	configurationInitializedMessageConstant        = "configuration initialized"
	configurationLogLevelFieldConstant             = "log_level"
	configurationLogFormatFieldConstant            = "log_format"
	configurationFileFieldConstant                 = "config_file"
	configurationLoadErrorTemplateConstant         = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant            = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant                = "unable to flush logger: %w"
	rootCommandInfoMessageConstant                 = "repocheck CLI executed"
	rootCommandDebugMessageConstant                = "repocheck CLI diagnostics"
	logFieldCommandNameConstant                    = "command_name"
	logFieldArgumentCountConstant                  = "argument_count"
	logFieldArgumentsConstant                      = "arguments"
	loggerNotInitializedMessageConstant            = "logger not initialized"
	defaultConfigurationSearchPathConstant         = "."
	configurationSearchPathEnvironmentNameConstant = "REPOCHECK_CONFIG_SEARCH_PATH"
	toolsConfigurationKeyConstant                  = "tools"
	checkConfigurationKeyConstant                  = toolsConfigurationKeyConstant + ".check"
	auditConfigurationKeyConstant                  = toolsConfigurationKeyConstant + ".audit"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool family.
type ApplicationToolsConfiguration struct {
	Check check.CommandConfiguration    `mapstructure:"check"`
	Audit auditlog.CommandConfiguration `mapstructure:"audit"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		resolveConfigurationSearchPaths(),
	)

	embeddedConfiguration, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfiguration, embeddedConfigurationType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	checkBuilder := check.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() check.CommandConfiguration {
			return application.configuration.Tools.Check
		},
	}
	checkCommand, checkBuildError := checkBuilder.Build()
	if checkBuildError == nil {
		cobraCommand.AddCommand(checkCommand)
	}

	auditBuilder := auditlog.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() auditlog.CommandConfiguration {
			return application.configuration.Tools.Audit
		},
		CheckConfigurationProvider: func() check.CommandConfiguration {
			return application.configuration.Tools.Check
		},
	}
	auditCommand, auditBuildError := auditBuilder.Build()
	if auditBuildError == nil {
		cobraCommand.AddCommand(auditCommand)
	}

	watchBuilder := watch.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() check.CommandConfiguration {
			return application.configuration.Tools.Check
		},
	}
	watchCommand, watchBuildError := watchBuilder.Build()
	if watchBuildError == nil {
		cobraCommand.AddCommand(watchCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func resolveConfigurationSearchPaths() []string {
	searchPathOverride, overrideExists := os.LookupEnv(configurationSearchPathEnvironmentNameConstant)
	trimmedOverride := strings.TrimSpace(searchPathOverride)
	if overrideExists && len(trimmedOverride) > 0 {
		return []string{trimmedOverride}
	}
	return []string{defaultConfigurationSearchPathConstant}
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range check.DefaultConfigurationValues(checkConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range auditlog.DefaultConfigurationValues(auditConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) flushLogger() error {
	return application.syncLoggerInstance(application.logger)
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
