package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/internal/gitrepo"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name        string
		remoteURL   string
		expected    gitrepo.RemoteURL
		expectError bool
	}{
		{
			name:      "ssh_scheme",
			remoteURL: "ssh://git@github.com/acme/widgets.git",
			expected:  gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "acme", Repository: "widgets"},
		},
		{
			name:      "scp_form",
			remoteURL: "git@github.com:acme/widgets.git",
			expected:  gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "acme", Repository: "widgets"},
		},
		{
			name:      "https_scheme",
			remoteURL: "https://github.com/acme/widgets.git",
			expected:  gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.com", Owner: "acme", Repository: "widgets"},
		},
		{
			name:      "https_without_suffix",
			remoteURL: "https://gitlab.example.com/platform/tooling",
			expected:  gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "gitlab.example.com", Owner: "platform", Repository: "tooling"},
		},
		{
			name:        "unsupported_scheme",
			remoteURL:   "ftp://github.com/acme/widgets.git",
			expectError: true,
		},
		{
			name:        "blank_input",
			remoteURL:   "   ",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedRemote, parseFailure := gitrepo.ParseRemoteURL(testCase.remoteURL)
			if testCase.expectError {
				require.Error(testInstance, parseFailure)
				require.IsType(testInstance, gitrepo.RemoteURLParseError{}, parseFailure)
				return
			}

			require.NoError(testInstance, parseFailure)
			require.Equal(testInstance, testCase.expected, parsedRemote)
		})
	}
}
