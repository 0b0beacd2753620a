package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/grit/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant   = "git executor not configured"
	fileSystemNotConfiguredMessageConstant = "repository file system not configured"

	repositoryMarkerNameConstant = ".git"

	revParseSubcommandConstant       = "rev-parse"
	abbreviatedReferenceFlagConstant = "--abbrev-ref"
	headReferenceConstant            = "HEAD"
	statusSubcommandConstant         = "status"
	porcelainFlagConstant            = "--porcelain"
	addSubcommandConstant            = "add"
	allChangesFlagConstant           = "-A"
	pathSeparatorArgumentConstant    = "--"
	commitSubcommandConstant         = "commit"
	commitMessageFlagConstant        = "-m"
	branchSubcommandConstant         = "branch"
	branchListFlagConstant           = "--list"
	switchSubcommandConstant         = "switch"
	switchCreateFlagConstant         = "--create"
	logSubcommandConstant            = "log"
	maxCountFlagTemplateConstant     = "--max-count=%d"
	historyFormatFlagConstant        = "--pretty=format:%h %s"
	remoteSubcommandConstant         = "remote"
	remoteGetURLSubcommandConstant   = "get-url"

	emptyBranchOutputMessageConstant     = "current branch name was empty"
	commitMessageRequiredMessageConstant = "commit message must not be empty"
	branchNameRequiredMessageConstant    = "branch name must not be empty"
	dirtyWorktreeMessageConstant         = "worktree has uncommitted changes; commit or stash them before switching branches"
)

// Sentinel errors for repository manager construction.
var (
	ErrExecutorNotConfigured   = errors.New(executorNotConfiguredMessageConstant)
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)
)

// GitExecutor runs git commands on behalf of the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileSystem exposes the filesystem queries repository detection relies on.
type FileSystem interface {
	Stat(path string) (os.FileInfo, error)
}

// OSFileSystem implements FileSystem against the host filesystem.
type OSFileSystem struct{}

// Stat reports file information for the supplied path.
func (OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// CreateBranchOptions adjusts branch creation behavior.
type CreateBranchOptions struct {
	// RequireCleanWorktree rejects switching to an existing branch while
	// uncommitted changes are present. Creating a new branch is never gated
	// because pending changes travel with it.
	RequireCleanWorktree bool
}

// RepositoryManager converts git subprocess results into typed repository facts.
type RepositoryManager struct {
	executor   GitExecutor
	fileSystem FileSystem
}

// NewRepositoryManager constructs a manager backed by the host filesystem.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	return NewRepositoryManagerWithFileSystem(executor, OSFileSystem{})
}

// NewRepositoryManagerWithFileSystem constructs a manager with an explicit filesystem.
func NewRepositoryManagerWithFileSystem(executor GitExecutor, fileSystem FileSystem) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &RepositoryManager{executor: executor, fileSystem: fileSystem}, nil
}

// IsGitRepository reports whether the path hosts a git repository. The check
// inspects the filesystem for a .git marker without launching git; worktrees
// keep a .git file instead of a directory, so both forms count. Any inspection
// failure reports false rather than an error.
func (manager *RepositoryManager) IsGitRepository(repositoryPath string) bool {
	trimmedPath := strings.TrimSpace(repositoryPath)
	if len(trimmedPath) == 0 {
		return false
	}

	_, statError := manager.fileSystem.Stat(filepath.Join(trimmedPath, repositoryMarkerNameConstant))
	return statError == nil
}

// GetCurrentBranch resolves the checked-out branch name. A detached HEAD
// surfaces as the literal "HEAD" and is returned without failure.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{revParseSubcommandConstant, abbreviatedReferenceFlagConstant, headReferenceConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", classifyExecutionError(CurrentBranchOperationNameConstant, executionError)
	}

	branchName := ParseBranchName(executionResult.StandardOutput)
	if len(branchName) == 0 {
		return "", parseError(CurrentBranchOperationNameConstant, emptyBranchOutputMessageConstant)
	}
	return branchName, nil
}

// HasUncommittedChanges reports whether the worktree carries staged or
// unstaged modifications according to porcelain status output.
func (manager *RepositoryManager) HasUncommittedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{statusSubcommandConstant, porcelainFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return false, classifyExecutionError(UncommittedChangesOperationNameConstant, executionError)
	}

	return ParseChangeStatus(executionResult.StandardOutput), nil
}

// Commit stages the requested files and records a commit with the supplied
// message. An empty file list stages every pending change. Staging and
// committing are separate git invocations; when the commit step fails, files
// staged by the first step remain staged.
func (manager *RepositoryManager) Commit(executionContext context.Context, repositoryPath string, commitMessage string, filePaths []string) OperationResult {
	if len(strings.TrimSpace(commitMessage)) == 0 {
		return failureResult(preconditionError(CreateCommitOperationNameConstant, commitMessageRequiredMessageConstant))
	}

	stagingArguments := buildStagingArguments(filePaths)
	_, stagingError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        stagingArguments,
		WorkingDirectory: repositoryPath,
	})
	if stagingError != nil {
		return failureResult(classifyExecutionError(StageChangesOperationNameConstant, stagingError))
	}

	_, commitError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{commitSubcommandConstant, commitMessageFlagConstant, commitMessage},
		WorkingDirectory: repositoryPath,
	})
	if commitError != nil {
		return failureResult(classifyExecutionError(CreateCommitOperationNameConstant, commitError))
	}

	return successResult()
}

// CreateBranch switches to the named branch, creating it from the current
// HEAD when it does not exist yet. Both outcomes count as success. When
// options demand a clean worktree, switching to an existing branch is
// rejected while uncommitted changes are present.
func (manager *RepositoryManager) CreateBranch(executionContext context.Context, repositoryPath string, branchName string, options CreateBranchOptions) OperationResult {
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return failureResult(preconditionError(SwitchBranchOperationNameConstant, branchNameRequiredMessageConstant))
	}

	lookupResult, lookupError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{branchSubcommandConstant, branchListFlagConstant, trimmedBranchName},
		WorkingDirectory: repositoryPath,
	})
	if lookupError != nil {
		return failureResult(classifyExecutionError(BranchLookupOperationNameConstant, lookupError))
	}

	branchExists := len(strings.TrimSpace(lookupResult.StandardOutput)) > 0
	if branchExists && options.RequireCleanWorktree {
		uncommittedChanges, statusError := manager.HasUncommittedChanges(executionContext, repositoryPath)
		if statusError != nil {
			var statusOperationError OperationError
			if errors.As(statusError, &statusOperationError) {
				return failureResult(statusOperationError)
			}
			return failureResult(classifyExecutionError(SwitchBranchOperationNameConstant, statusError))
		}
		if uncommittedChanges {
			return failureResult(preconditionError(SwitchBranchOperationNameConstant, dirtyWorktreeMessageConstant))
		}
	}

	switchArguments := []string{switchSubcommandConstant, trimmedBranchName}
	if !branchExists {
		switchArguments = []string{switchSubcommandConstant, switchCreateFlagConstant, trimmedBranchName}
	}

	_, switchError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        switchArguments,
		WorkingDirectory: repositoryPath,
	})
	if switchError != nil {
		return failureResult(classifyExecutionError(SwitchBranchOperationNameConstant, switchError))
	}

	return successResult()
}

// GetCommitHistory returns up to commitLimit recent commits, newest first.
// Limits of zero or below resolve to an empty history without launching git.
func (manager *RepositoryManager) GetCommitHistory(executionContext context.Context, repositoryPath string, commitLimit int) ([]CommitRecord, error) {
	if commitLimit <= 0 {
		return []CommitRecord{}, nil
	}

	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			logSubcommandConstant,
			fmt.Sprintf(maxCountFlagTemplateConstant, commitLimit),
			historyFormatFlagConstant,
		},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, classifyExecutionError(CommitHistoryOperationNameConstant, executionError)
	}

	return ParseCommitHistory(executionResult.StandardOutput, commitLimit), nil
}

// GetRemoteURL resolves the fetch URL configured for the named remote.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{remoteSubcommandConstant, remoteGetURLSubcommandConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", classifyExecutionError(RemoteURLOperationNameConstant, executionError)
	}

	return strings.TrimSpace(executionResult.StandardOutput), nil
}

func buildStagingArguments(filePaths []string) []string {
	sanitizedPaths := make([]string, 0, len(filePaths))
	for _, filePath := range filePaths {
		trimmedPath := strings.TrimSpace(filePath)
		if len(trimmedPath) == 0 {
			continue
		}
		sanitizedPaths = append(sanitizedPaths, trimmedPath)
	}

	if len(sanitizedPaths) == 0 {
		return []string{addSubcommandConstant, allChangesFlagConstant}
	}

	return append([]string{addSubcommandConstant, pathSeparatorArgumentConstant}, sanitizedPaths...)
}
