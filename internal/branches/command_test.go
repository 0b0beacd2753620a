package branches_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/grit/internal/branches"
	"github.com/temirov/grit/internal/execshell"
	"github.com/temirov/grit/internal/gitrepo"
)

type scriptedGitExecutorStub struct{}

func (scriptedGitExecutorStub) ExecuteGit(context.Context, execshell.CommandDetails) (execshell.ExecutionResult, error) {
	return execshell.ExecutionResult{}, nil
}

func buildSwitchCommandForTest(testInstance *testing.T, builder *branches.CommandBuilder, arguments []string) (*bytes.Buffer, error) {
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetArgs(arguments)
	command.SetContext(context.Background())

	return outputBuffer, command.Execute()
}

func TestSwitchCommandRequiresBranchArgument(testInstance *testing.T) {
	builder := &branches.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    scriptedGitExecutorStub{},
		Manager:        &scriptedManager{isRepository: true, switchResult: gitrepo.OperationResult{Success: true}},
	}

	_, executionError := buildSwitchCommandForTest(testInstance, builder, nil)
	require.Error(testInstance, executionError)
}

func TestSwitchCommandDefaultsToRequireClean(testInstance *testing.T) {
	manager := &scriptedManager{isRepository: true, switchResult: gitrepo.OperationResult{Success: true}}
	builder := &branches.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    scriptedGitExecutorStub{},
		Manager:        manager,
	}

	outputBuffer, executionError := buildSwitchCommandForTest(testInstance, builder, []string{testBranchNameConstant})
	require.NoError(testInstance, executionError)
	require.Len(testInstance, manager.switches, 1)
	require.True(testInstance, manager.switches[0].options.RequireCleanWorktree)
	require.Contains(testInstance, outputBuffer.String(), testBranchNameConstant)
}

func TestSwitchCommandToggleDisablesCleanWorktreeGate(testInstance *testing.T) {
	manager := &scriptedManager{isRepository: true, switchResult: gitrepo.OperationResult{Success: true}}
	builder := &branches.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    scriptedGitExecutorStub{},
		Manager:        manager,
	}

	_, executionError := buildSwitchCommandForTest(testInstance, builder, []string{testBranchNameConstant, "--require-clean=no"})
	require.NoError(testInstance, executionError)
	require.Len(testInstance, manager.switches, 1)
	require.False(testInstance, manager.switches[0].options.RequireCleanWorktree)
}

func TestSwitchCommandRegistersToggleDefaultBeforeConfigurationLoads(testInstance *testing.T) {
	builder := &branches.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() branches.CommandConfiguration {
			return branches.CommandConfiguration{RequireClean: false}
		},
		GitExecutor: scriptedGitExecutorStub{},
		Manager:     &scriptedManager{isRepository: true, switchResult: gitrepo.OperationResult{Success: true}},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	requireCleanFlag := command.Flags().Lookup("require-clean")
	require.NotNil(testInstance, requireCleanFlag)
	require.Equal(testInstance, "true", requireCleanFlag.DefValue)
}

func TestSwitchCommandHonorsConfiguredCleanWorktreePolicy(testInstance *testing.T) {
	manager := &scriptedManager{isRepository: true, switchResult: gitrepo.OperationResult{Success: true}}
	builder := &branches.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() branches.CommandConfiguration {
			return branches.CommandConfiguration{RequireClean: false}
		},
		GitExecutor: scriptedGitExecutorStub{},
		Manager:     manager,
	}

	_, executionError := buildSwitchCommandForTest(testInstance, builder, []string{testBranchNameConstant})
	require.NoError(testInstance, executionError)
	require.Len(testInstance, manager.switches, 1)
	require.False(testInstance, manager.switches[0].options.RequireCleanWorktree)
}

func TestSwitchCommandReportsFailureKind(testInstance *testing.T) {
	manager := &scriptedManager{
		isRepository: true,
		switchResult: gitrepo.OperationResult{
			FailureKind:    gitrepo.FailureKindPrecondition,
			FailureMessage: testDirtyWorktreeMessage,
		},
	}
	builder := &branches.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    scriptedGitExecutorStub{},
		Manager:        manager,
	}

	_, executionError := buildSwitchCommandForTest(testInstance, builder, []string{testBranchNameConstant})
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), string(gitrepo.FailureKindPrecondition))
	require.Contains(testInstance, executionError.Error(), testDirtyWorktreeMessage)
}
