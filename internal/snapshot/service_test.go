package snapshot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/internal/gitrepo"
	"github.com/temirov/grit/internal/snapshot"
)

const (
	testRepositoryPathConstant = "/workspace/project"
	testCommitMessageConstant  = "feat: add login flow"
	testStageFailureMessage    = "pathspec did not match any files"
)

type recordedCommit struct {
	repositoryPath string
	message        string
	files          []string
}

type scriptedManager struct {
	isRepository bool
	commitResult gitrepo.OperationResult
	commits      []recordedCommit
}

func (manager *scriptedManager) IsGitRepository(string) bool {
	return manager.isRepository
}

func (manager *scriptedManager) Commit(_ context.Context, repositoryPath string, commitMessage string, filePaths []string) gitrepo.OperationResult {
	manager.commits = append(manager.commits, recordedCommit{
		repositoryPath: repositoryPath,
		message:        commitMessage,
		files:          filePaths,
	})
	return manager.commitResult
}

func TestNewServiceValidation(testInstance *testing.T) {
	service, creationError := snapshot.NewService(snapshot.ServiceDependencies{})
	require.ErrorIs(testInstance, creationError, snapshot.ErrManagerNotConfigured)
	require.Nil(testInstance, service)
}

func TestCommitRejectsNonRepositoryPath(testInstance *testing.T) {
	manager := &scriptedManager{isRepository: false}
	service, creationError := snapshot.NewService(snapshot.ServiceDependencies{Manager: manager})
	require.NoError(testInstance, creationError)

	operationResult := service.Commit(context.Background(), snapshot.Options{
		RepositoryPath: testRepositoryPathConstant,
		Message:        testCommitMessageConstant,
	})
	require.False(testInstance, operationResult.Success)
	require.Equal(testInstance, gitrepo.FailureKindPrecondition, operationResult.FailureKind)
	require.NotEmpty(testInstance, operationResult.FailureMessage)
	require.Empty(testInstance, manager.commits)
}

func TestCommitForwardsMessageAndFiles(testInstance *testing.T) {
	manager := &scriptedManager{isRepository: true, commitResult: gitrepo.OperationResult{Success: true}}
	service, creationError := snapshot.NewService(snapshot.ServiceDependencies{Manager: manager})
	require.NoError(testInstance, creationError)

	operationResult := service.Commit(context.Background(), snapshot.Options{
		RepositoryPath: testRepositoryPathConstant,
		Message:        testCommitMessageConstant,
		Files:          []string{"a.txt", "b.txt"},
	})
	require.True(testInstance, operationResult.Success)
	require.Equal(testInstance, []recordedCommit{{
		repositoryPath: testRepositoryPathConstant,
		message:        testCommitMessageConstant,
		files:          []string{"a.txt", "b.txt"},
	}}, manager.commits)
}

func TestCommitDefaultsPathToWorkingDirectory(testInstance *testing.T) {
	manager := &scriptedManager{isRepository: true, commitResult: gitrepo.OperationResult{Success: true}}
	service, creationError := snapshot.NewService(snapshot.ServiceDependencies{Manager: manager})
	require.NoError(testInstance, creationError)

	operationResult := service.Commit(context.Background(), snapshot.Options{Message: testCommitMessageConstant})
	require.True(testInstance, operationResult.Success)
	require.Len(testInstance, manager.commits, 1)
	require.Equal(testInstance, ".", manager.commits[0].repositoryPath)
}

func TestCommitPropagatesManagerFailure(testInstance *testing.T) {
	manager := &scriptedManager{
		isRepository: true,
		commitResult: gitrepo.OperationResult{
			FailureKind:    gitrepo.FailureKindExit,
			FailureMessage: testStageFailureMessage,
		},
	}
	service, creationError := snapshot.NewService(snapshot.ServiceDependencies{Manager: manager})
	require.NoError(testInstance, creationError)

	operationResult := service.Commit(context.Background(), snapshot.Options{
		RepositoryPath: testRepositoryPathConstant,
		Message:        testCommitMessageConstant,
	})
	require.False(testInstance, operationResult.Success)
	require.Equal(testInstance, gitrepo.FailureKindExit, operationResult.FailureKind)
	require.Equal(testInstance, testStageFailureMessage, operationResult.FailureMessage)
}
