package history

import (
	"strings"

	"github.com/temirov/grit/internal/report"
)

const (
	configurationLimitKeyConstant  = "limit"
	configurationFormatKeyConstant = "format"
	defaultCommitLimitConstant     = 10
	defaultRepositoryPathConstant  = "."
)

// CommandConfiguration captures persistent settings for the history command.
type CommandConfiguration struct {
	Limit  int    `mapstructure:"limit"`
	Format string `mapstructure:"format"`
}

// DefaultCommandConfiguration returns baseline configuration values for the history command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Limit:  defaultCommitLimitConstant,
		Format: string(report.FormatText),
	}
}

// DefaultConfigurationValues produces Viper defaults for the history command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationLimitKeyConstant:  defaults.Limit,
		rootKey + "." + configurationFormatKeyConstant: defaults.Format,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Format = strings.TrimSpace(configuration.Format)
	if len(sanitized.Format) == 0 {
		sanitized.Format = string(report.FormatText)
	}
	if sanitized.Limit < 0 {
		sanitized.Limit = 0
	}
	return sanitized
}
