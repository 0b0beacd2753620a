package branches

const (
	configurationRequireCleanKeyConstant = "require_clean"
	defaultRequireCleanConstant          = true
)

// CommandConfiguration captures persistent settings for the switch command.
type CommandConfiguration struct {
	RequireClean bool `mapstructure:"require_clean"`
}

// DefaultCommandConfiguration returns baseline configuration values for the switch command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{RequireClean: defaultRequireCleanConstant}
}

// DefaultConfigurationValues produces Viper defaults for the switch command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRequireCleanKeyConstant: defaults.RequireClean,
	}
}
