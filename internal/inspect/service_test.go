package inspect_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/internal/gitrepo"
	"github.com/temirov/grit/internal/inspect"
	"github.com/temirov/grit/internal/report"
)

const (
	testRepositoryPathConstant     = "/workspace/project"
	testSecondRepositoryConstant   = "/workspace/tools"
	testMainBranchNameConstant     = "main"
	testDetachedBranchLiteral      = "HEAD"
	testRemoteURLConstant          = "git@github.com:temirov/project.git"
	testDiscoveryFailureMessage    = "roots unreadable"
	testBranchFailureMessage       = "branch lookup failed"
	testGeneratedAtSecondsConstant = 1700000000
)

type scriptedDiscoverer struct {
	repositories []string
	failure      error
	requested    [][]string
}

func (discoverer *scriptedDiscoverer) DiscoverRepositories(rootDirectories []string) ([]string, error) {
	discoverer.requested = append(discoverer.requested, rootDirectories)
	if discoverer.failure != nil {
		return nil, discoverer.failure
	}
	return discoverer.repositories, nil
}

type scriptedManager struct {
	isRepository   bool
	branchName     string
	branchFailure  error
	dirty          bool
	statusFailure  error
	commits        []gitrepo.CommitRecord
	historyFailure error
	remoteURL      string
	remoteFailure  error
	historyLimits  []int
}

func (manager *scriptedManager) IsGitRepository(string) bool {
	return manager.isRepository
}

func (manager *scriptedManager) GetCurrentBranch(context.Context, string) (string, error) {
	return manager.branchName, manager.branchFailure
}

func (manager *scriptedManager) HasUncommittedChanges(context.Context, string) (bool, error) {
	return manager.dirty, manager.statusFailure
}

func (manager *scriptedManager) GetCommitHistory(_ context.Context, _ string, commitLimit int) ([]gitrepo.CommitRecord, error) {
	manager.historyLimits = append(manager.historyLimits, commitLimit)
	return manager.commits, manager.historyFailure
}

func (manager *scriptedManager) GetRemoteURL(context.Context, string, string) (string, error) {
	return manager.remoteURL, manager.remoteFailure
}

type frozenClock struct{}

func (frozenClock) Now() time.Time {
	return time.Unix(testGeneratedAtSecondsConstant, 0)
}

func TestNewServiceValidation(testInstance *testing.T) {
	testInstance.Run("missing_discoverer", func(testInstance *testing.T) {
		service, creationError := inspect.NewService(inspect.ServiceDependencies{Manager: &scriptedManager{}})
		require.ErrorIs(testInstance, creationError, inspect.ErrDiscovererNotConfigured)
		require.Nil(testInstance, service)
	})

	testInstance.Run("missing_manager", func(testInstance *testing.T) {
		service, creationError := inspect.NewService(inspect.ServiceDependencies{Discoverer: &scriptedDiscoverer{}})
		require.ErrorIs(testInstance, creationError, inspect.ErrManagerNotConfigured)
		require.Nil(testInstance, service)
	})
}

func TestBuildReportDiscoveryFailure(testInstance *testing.T) {
	service, creationError := inspect.NewService(inspect.ServiceDependencies{
		Discoverer: &scriptedDiscoverer{failure: errors.New(testDiscoveryFailureMessage)},
		Manager:    &scriptedManager{},
		Clock:      frozenClock{},
	})
	require.NoError(testInstance, creationError)

	builtReport, reportError := service.BuildReport(context.Background(), inspect.CommandOptions{Roots: []string{testRepositoryPathConstant}})
	require.Error(testInstance, reportError)
	require.Nil(testInstance, builtReport)
}

func TestBuildReportDefaultsRootsToWorkingDirectory(testInstance *testing.T) {
	discoverer := &scriptedDiscoverer{}
	service, creationError := inspect.NewService(inspect.ServiceDependencies{
		Discoverer: discoverer,
		Manager:    &scriptedManager{},
		Clock:      frozenClock{},
	})
	require.NoError(testInstance, creationError)

	builtReport, reportError := service.BuildReport(context.Background(), inspect.CommandOptions{})
	require.NoError(testInstance, reportError)
	require.Equal(testInstance, [][]string{{"."}}, discoverer.requested)
	require.Empty(testInstance, builtReport.Repositories)
	require.Equal(testInstance, time.Unix(testGeneratedAtSecondsConstant, 0).UTC(), builtReport.GeneratedAt)
}

func TestBuildReportSnapshots(testInstance *testing.T) {
	testCases := []struct {
		name             string
		manager          *scriptedManager
		commitLimit      int
		expectedSnapshot report.RepositorySnapshot
	}{
		{
			name:    "not_a_repository",
			manager: &scriptedManager{isRepository: false},
			expectedSnapshot: report.RepositorySnapshot{
				Path: testRepositoryPathConstant,
			},
		},
		{
			name: "clean_repository_with_remote",
			manager: &scriptedManager{
				isRepository: true,
				branchName:   testMainBranchNameConstant,
				remoteURL:    testRemoteURLConstant,
			},
			expectedSnapshot: report.RepositorySnapshot{
				Path:         testRepositoryPathConstant,
				IsRepository: true,
				Branch:       testMainBranchNameConstant,
				RemoteURL:    testRemoteURLConstant,
				RemoteHost:   "github.com",
				RemoteOwner:  "temirov",
				RemoteName:   "project",
			},
		},
		{
			name: "detached_head_marked",
			manager: &scriptedManager{
				isRepository:  true,
				branchName:    testDetachedBranchLiteral,
				remoteFailure: errors.New("no remote configured"),
			},
			expectedSnapshot: report.RepositorySnapshot{
				Path:         testRepositoryPathConstant,
				IsRepository: true,
				Branch:       testDetachedBranchLiteral,
				DetachedHead: true,
			},
		},
		{
			name: "dirty_repository_with_history",
			manager: &scriptedManager{
				isRepository:  true,
				branchName:    testMainBranchNameConstant,
				dirty:         true,
				remoteFailure: errors.New("no remote configured"),
				commits: []gitrepo.CommitRecord{
					{Hash: "abc123", Message: "Initial commit"},
					{Hash: "def456", Message: "Add feature"},
				},
			},
			commitLimit: 2,
			expectedSnapshot: report.RepositorySnapshot{
				Path:         testRepositoryPathConstant,
				IsRepository: true,
				Branch:       testMainBranchNameConstant,
				Dirty:        true,
				Commits: []report.CommitSummary{
					{Hash: "abc123", Message: "Initial commit"},
					{Hash: "def456", Message: "Add feature"},
				},
			},
		},
		{
			name: "branch_failure_degrades_snapshot",
			manager: &scriptedManager{
				isRepository:  true,
				branchFailure: errors.New(testBranchFailureMessage),
			},
			expectedSnapshot: report.RepositorySnapshot{
				Path:          testRepositoryPathConstant,
				IsRepository:  true,
				FailureReason: testBranchFailureMessage,
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			service, creationError := inspect.NewService(inspect.ServiceDependencies{
				Discoverer: &scriptedDiscoverer{repositories: []string{testRepositoryPathConstant}},
				Manager:    testCase.manager,
				Clock:      frozenClock{},
			})
			require.NoError(testInstance, creationError)

			builtReport, reportError := service.BuildReport(context.Background(), inspect.CommandOptions{
				Roots:       []string{testRepositoryPathConstant},
				CommitLimit: testCase.commitLimit,
			})
			require.NoError(testInstance, reportError)
			require.Len(testInstance, builtReport.Repositories, 1)
			require.Equal(testInstance, testCase.expectedSnapshot, builtReport.Repositories[0])
		})
	}
}

func TestBuildReportSkipsHistoryWithoutLimit(testInstance *testing.T) {
	manager := &scriptedManager{isRepository: true, branchName: testMainBranchNameConstant, remoteFailure: errors.New("no remote")}
	service, creationError := inspect.NewService(inspect.ServiceDependencies{
		Discoverer: &scriptedDiscoverer{repositories: []string{testRepositoryPathConstant, testSecondRepositoryConstant}},
		Manager:    manager,
		Clock:      frozenClock{},
	})
	require.NoError(testInstance, creationError)

	builtReport, reportError := service.BuildReport(context.Background(), inspect.CommandOptions{Roots: []string{testRepositoryPathConstant}})
	require.NoError(testInstance, reportError)
	require.Len(testInstance, builtReport.Repositories, 2)
	require.Empty(testInstance, manager.historyLimits)
}
