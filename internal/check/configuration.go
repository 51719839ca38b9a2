package check

import "strings"

const (
	configurationRequiredFilesKeyConstant  = "required_files"
	configurationForbiddenFilesKeyConstant = "forbidden_files"
	configurationRootsKeyConstant          = "roots"
	configurationKeySeparatorConstant      = "."
	defaultRepositoryRootConstant          = "."
)

// CommandConfiguration captures persistent settings for the check command.
type CommandConfiguration struct {
	RequiredFiles   []string `mapstructure:"required_files"`
	ForbiddenFiles  []string `mapstructure:"forbidden_files"`
	RepositoryRoots []string `mapstructure:"roots"`
}

// DefaultCommandConfiguration returns baseline configuration values for the check command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RequiredFiles:   DefaultRequiredFileSet(),
		ForbiddenFiles:  nil,
		RepositoryRoots: []string{defaultRepositoryRootConstant},
	}
}

// DefaultConfigurationValues produces Viper defaults for the check command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationRequiredFilesKeyConstant:  defaults.RequiredFiles,
		rootKey + configurationKeySeparatorConstant + configurationForbiddenFilesKeyConstant: defaults.ForbiddenFiles,
		rootKey + configurationKeySeparatorConstant + configurationRootsKeyConstant:          defaults.RepositoryRoots,
	}
}

// EffectiveOptions derives check options from the sanitized configuration.
func (configuration CommandConfiguration) EffectiveOptions() Options {
	sanitized := configuration.sanitize()
	return Options{
		RequiredFiles:  RequiredFileSet(sanitized.RequiredFiles),
		ForbiddenFiles: sanitized.ForbiddenFiles,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.RequiredFiles = trimEntries(configuration.RequiredFiles)
	if len(sanitized.RequiredFiles) == 0 {
		sanitized.RequiredFiles = DefaultRequiredFileSet()
	}

	sanitized.ForbiddenFiles = trimEntries(configuration.ForbiddenFiles)

	sanitized.RepositoryRoots = trimEntries(configuration.RepositoryRoots)
	if len(sanitized.RepositoryRoots) == 0 {
		sanitized.RepositoryRoots = []string{defaultRepositoryRootConstant}
	}

	return sanitized
}

func trimEntries(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
