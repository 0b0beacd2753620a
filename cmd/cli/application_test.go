package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/cmd/cli"
	"github.com/temirov/grit/internal/branches"
	"github.com/temirov/grit/internal/history"
	"github.com/temirov/grit/internal/inspect"
)

const (
	testStatusSectionKeyConstant  = "status"
	testHistorySectionKeyConstant = "history"
	testSwitchSectionKeyConstant  = "switch"
)

func decodeConfigurationSection(testInstance *testing.T, viperInstance *viper.Viper, sectionKey string, target any) {
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: target})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(viperInstance.GetStringMap(sectionKey)))
}

func TestEmbeddedDefaultConfigurationDecodes(testInstance *testing.T) {
	embeddedConfiguration, configurationType := cli.EmbeddedDefaultConfiguration()
	require.NotEmpty(testInstance, embeddedConfiguration)

	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader(embeddedConfiguration)))

	var statusConfiguration inspect.CommandConfiguration
	decodeConfigurationSection(testInstance, viperInstance, testStatusSectionKeyConstant, &statusConfiguration)
	require.Equal(testInstance, inspect.DefaultCommandConfiguration().Format, statusConfiguration.Format)
	require.Equal(testInstance, inspect.DefaultCommandConfiguration().Commits, statusConfiguration.Commits)

	var historyConfiguration history.CommandConfiguration
	decodeConfigurationSection(testInstance, viperInstance, testHistorySectionKeyConstant, &historyConfiguration)
	require.Equal(testInstance, history.DefaultCommandConfiguration(), historyConfiguration)

	var switchConfiguration branches.CommandConfiguration
	decodeConfigurationSection(testInstance, viperInstance, testSwitchSectionKeyConstant, &switchConfiguration)
	require.Equal(testInstance, branches.DefaultCommandConfiguration(), switchConfiguration)
}

func TestDefaultConfigurationValuesCoverEveryCommandSection(testInstance *testing.T) {
	expectations := map[string]any{
		"status.format":        string("text"),
		"status.commits":       0,
		"history.limit":        10,
		"history.format":       string("text"),
		"switch.require_clean": true,
	}

	collected := map[string]any{}
	for configurationKey, configurationValue := range inspect.DefaultConfigurationValues(testStatusSectionKeyConstant) {
		collected[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range history.DefaultConfigurationValues(testHistorySectionKeyConstant) {
		collected[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range branches.DefaultConfigurationValues(testSwitchSectionKeyConstant) {
		collected[configurationKey] = configurationValue
	}

	for expectedKey, expectedValue := range expectations {
		require.Contains(testInstance, collected, expectedKey)
		require.EqualValues(testInstance, expectedValue, collected[expectedKey])
	}
}
