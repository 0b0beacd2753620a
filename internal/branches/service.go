package branches

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/grit/internal/gitrepo"
)

const (
	managerNotConfiguredMessageConstant = "repository manager not configured"
	notARepositoryMessageConstant       = "path is not a git repository"
	defaultRepositoryPathConstant       = "."

	branchSwitchedMessageConstant  = "branch switched"
	branchRejectedMessageConstant  = "branch switch rejected"
	logFieldRepositoryPathConstant = "repository_path"
	logFieldBranchNameConstant     = "branch_name"
	logFieldFailureKindConstant    = "failure_kind"
	logFieldFailureMessageConstant = "failure_message"
)

// ErrManagerNotConfigured indicates the service was constructed without a repository manager.
var ErrManagerNotConfigured = errors.New(managerNotConfiguredMessageConstant)

// RepositoryManager exposes the repository operations the switch service relies on.
type RepositoryManager interface {
	IsGitRepository(repositoryPath string) bool
	CreateBranch(executionContext context.Context, repositoryPath string, branchName string, options gitrepo.CreateBranchOptions) gitrepo.OperationResult
}

// ServiceDependencies enumerates the collaborators required by the switch service.
type ServiceDependencies struct {
	Logger  *zap.Logger
	Manager RepositoryManager
}

// Options configure a single branch switch operation.
type Options struct {
	RepositoryPath string
	BranchName     string
	// RequireClean rejects switching to an existing branch while the
	// worktree carries uncommitted changes. Newly created branches are
	// never gated.
	RequireClean bool
}

// Service switches repositories between branches.
type Service struct {
	logger  *zap.Logger
	manager RepositoryManager
}

// NewService validates dependencies and constructs a switch service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Manager == nil {
		return nil, ErrManagerNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{logger: logger, manager: dependencies.Manager}, nil
}

// Switch moves the repository to the named branch, creating it when missing,
// and reports the outcome as data. Paths that do not host a git repository
// are rejected before any git command runs.
func (service *Service) Switch(executionContext context.Context, options Options) gitrepo.OperationResult {
	repositoryPath := options.RepositoryPath
	if len(repositoryPath) == 0 {
		repositoryPath = defaultRepositoryPathConstant
	}

	if !service.manager.IsGitRepository(repositoryPath) {
		operationResult := gitrepo.OperationResult{
			FailureKind:    gitrepo.FailureKindPrecondition,
			FailureMessage: notARepositoryMessageConstant,
		}
		service.logFailure(repositoryPath, options.BranchName, operationResult)
		return operationResult
	}

	operationResult := service.manager.CreateBranch(executionContext, repositoryPath, options.BranchName, gitrepo.CreateBranchOptions{
		RequireCleanWorktree: options.RequireClean,
	})
	if !operationResult.Success {
		service.logFailure(repositoryPath, options.BranchName, operationResult)
		return operationResult
	}

	service.logger.Info(
		branchSwitchedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldBranchNameConstant, options.BranchName),
	)
	return operationResult
}

func (service *Service) logFailure(repositoryPath string, branchName string, operationResult gitrepo.OperationResult) {
	service.logger.Warn(
		branchRejectedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldBranchNameConstant, branchName),
		zap.String(logFieldFailureKindConstant, string(operationResult.FailureKind)),
		zap.String(logFieldFailureMessageConstant, operationResult.FailureMessage),
	)
}
