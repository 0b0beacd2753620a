// Package dependencies resolves default collaborators for command builders,
// substituting production implementations when a builder received none.
package dependencies

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/grit/internal/discovery"
	"github.com/temirov/grit/internal/execshell"
	"github.com/temirov/grit/internal/gitrepo"
	"github.com/temirov/grit/internal/ui"
)

// GitExecutor exposes the subset of shell execution shared by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryDiscoverer locates git repositories beneath filesystem roots.
type RepositoryDiscoverer interface {
	DiscoverRepositories(rootDirectories []string) ([]string, error)
}

// RepositoryManager exposes the typed repository operations commands rely on.
type RepositoryManager interface {
	IsGitRepository(repositoryPath string) bool
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	Commit(executionContext context.Context, repositoryPath string, commitMessage string, filePaths []string) gitrepo.OperationResult
	CreateBranch(executionContext context.Context, repositoryPath string, branchName string, options gitrepo.CreateBranchOptions) gitrepo.OperationResult
	GetCommitHistory(executionContext context.Context, repositoryPath string, commitLimit int) ([]gitrepo.CommitRecord, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
}

// ResolveRepositoryDiscoverer returns the provided discoverer or a filesystem-backed default.
func ResolveRepositoryDiscoverer(existing RepositoryDiscoverer) RepositoryDiscoverer {
	if existing != nil {
		return existing
	}
	return discovery.NewFilesystemRepositoryDiscoverer()
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed
// default. Human-readable logging attaches a console event writer that echoes
// command lifecycle messages alongside the structured log stream.
func ResolveGitExecutor(existing GitExecutor, logger *zap.Logger, humanReadableLogging bool) (GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	if humanReadableLogging {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventWriter(os.Stdout))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}

// ResolveRepositoryManager returns the provided manager or constructs one from the executor.
func ResolveRepositoryManager(existing RepositoryManager, executor GitExecutor) (RepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}
