package snapshot

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

	commitRecordedMessageConstant   = "commit recorded"
	commitRejectedMessageConstant   = "commit rejected"
	logFieldRepositoryPathConstant  = "repository_path"
	logFieldStagedFileCountConstant = "staged_file_count"
	logFieldFailureKindConstant     = "failure_kind"
	logFieldFailureMessageConstant  = "failure_message"
)

// ErrManagerNotConfigured indicates the service was constructed without a repository manager.
var ErrManagerNotConfigured = errors.New(managerNotConfiguredMessageConstant)

// RepositoryManager exposes the repository operations the commit service relies on.
type RepositoryManager interface {
	IsGitRepository(repositoryPath string) bool
	Commit(executionContext context.Context, repositoryPath string, commitMessage string, filePaths []string) gitrepo.OperationResult
}

// ServiceDependencies enumerates the collaborators required by the commit service.
type ServiceDependencies struct {
	Logger  *zap.Logger
	Manager RepositoryManager
}

// Options configure a single commit operation.
type Options struct {
	RepositoryPath string
	Message        string
	Files          []string
}

// Service records commits against a single repository.
type Service struct {
	logger  *zap.Logger
	manager RepositoryManager
}

// NewService validates dependencies and constructs a commit service.
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

// Commit stages the requested files and records a commit, reporting the
// outcome as data. Paths that do not host a git repository are rejected
// before any git command runs.
func (service *Service) Commit(executionContext context.Context, options Options) gitrepo.OperationResult {
	repositoryPath := options.RepositoryPath
	if len(repositoryPath) == 0 {
		repositoryPath = defaultRepositoryPathConstant
	}

	if !service.manager.IsGitRepository(repositoryPath) {
		operationResult := gitrepo.OperationResult{
			FailureKind:    gitrepo.FailureKindPrecondition,
			FailureMessage: notARepositoryMessageConstant,
		}
		service.logFailure(repositoryPath, operationResult)
		return operationResult
	}

	operationResult := service.manager.Commit(executionContext, repositoryPath, options.Message, options.Files)
	if !operationResult.Success {
		service.logFailure(repositoryPath, operationResult)
		return operationResult
	}

	service.logger.Info(
		commitRecordedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.Int(logFieldStagedFileCountConstant, len(options.Files)),
	)
	return operationResult
}

func (service *Service) logFailure(repositoryPath string, operationResult gitrepo.OperationResult) {
	service.logger.Warn(
		commitRejectedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldFailureKindConstant, string(operationResult.FailureKind)),
		zap.String(logFieldFailureMessageConstant, operationResult.FailureMessage),
	)
}
