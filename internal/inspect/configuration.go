package inspect

import (
	"strings"

	"github.com/temirov/grit/internal/report"
)

const (
	configurationRootsKeyConstant   = "roots"
	configurationFormatKeyConstant  = "format"
	configurationCommitsKeyConstant = "commits"
	defaultRootPathConstant         = "."
	defaultCommitLimitConstant      = 0
)

// CommandConfiguration captures persistent settings for the status command.
type CommandConfiguration struct {
	Roots   []string `mapstructure:"roots"`
	Format  string   `mapstructure:"format"`
	Commits int      `mapstructure:"commits"`
}

// DefaultCommandConfiguration returns baseline configuration values for the status command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Roots:   nil,
		Format:  string(report.FormatText),
		Commits: defaultCommitLimitConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the status command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootsKeyConstant:   defaults.Roots,
		rootKey + "." + configurationFormatKeyConstant:  defaults.Format,
		rootKey + "." + configurationCommitsKeyConstant: defaults.Commits,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Roots = sanitizeRoots(configuration.Roots)
	sanitized.Format = strings.TrimSpace(configuration.Format)
	if len(sanitized.Format) == 0 {
		sanitized.Format = string(report.FormatText)
	}
	if sanitized.Commits < 0 {
		sanitized.Commits = 0
	}
	return sanitized
}

func sanitizeRoots(rawRoots []string) []string {
	sanitizedRoots := make([]string, 0, len(rawRoots))
	for index := range rawRoots {
		trimmedRoot := strings.TrimSpace(rawRoots[index])
		if len(trimmedRoot) == 0 {
			continue
		}
		sanitizedRoots = append(sanitizedRoots, trimmedRoot)
	}
	return sanitizedRoots
}
