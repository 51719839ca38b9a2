package auditlog

import "strings"

const (
	configurationLogGroupKeyConstant  = "log_group"
	configurationRegionKeyConstant    = "region"
	configurationKeySeparatorConstant = "."

	// Environment variables honored for parity with the CI workflow contract.
	logGroupEnvironmentNameConstant = "LOG_GROUP_NAME"
	regionEnvironmentNameConstant   = "AWS_REGION"

	defaultRegionConstant = "us-east-1"
)

// CommandConfiguration captures persistent settings for the audit-record command.
type CommandConfiguration struct {
	LogGroupName string `mapstructure:"log_group"`
	Region       string `mapstructure:"region"`
}

// DefaultCommandConfiguration returns baseline configuration values for audit recording.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		LogGroupName: "",
		Region:       defaultRegionConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the audit-record command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationLogGroupKeyConstant: defaults.LogGroupName,
		rootKey + configurationKeySeparatorConstant + configurationRegionKeyConstant:   defaults.Region,
	}
}

// sanitize trims whitespace and applies the default region to unset values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.LogGroupName = strings.TrimSpace(configuration.LogGroupName)

	sanitized.Region = strings.TrimSpace(configuration.Region)
	if len(sanitized.Region) == 0 {
		sanitized.Region = defaultRegionConstant
	}

	return sanitized
}
