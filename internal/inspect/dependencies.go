package inspect

import (
	"context"

	"github.com/temirov/grit/internal/gitrepo"
)

// RepositoryDiscoverer finds git repositories rooted under the provided paths.
type RepositoryDiscoverer interface {
	DiscoverRepositories(roots []string) ([]string, error)
}

// RepositoryManager exposes the repository facts collected for status reports.
type RepositoryManager interface {
	IsGitRepository(repositoryPath string) bool
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	GetCommitHistory(executionContext context.Context, repositoryPath string, commitLimit int) ([]gitrepo.CommitRecord, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
}
