package history

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/grit/internal/gitrepo"
	"github.com/temirov/grit/internal/report"
)

const (
	managerNotConfiguredMessageConstant = "repository manager not configured"
	notARepositoryMessageConstant       = "path is not a git repository"
	notARepositoryTemplateConstant      = "%s: %w"
	detachedHeadBranchNameConstant      = "HEAD"

	historyCollectedMessageConstant = "commit history collected"
	logFieldRepositoryPathConstant  = "repository_path"
	logFieldCommitCountConstant     = "commit_count"
)

// Sentinel errors reported by the history service.
var (
	ErrManagerNotConfigured = errors.New(managerNotConfiguredMessageConstant)
	ErrNotARepository       = errors.New(notARepositoryMessageConstant)
)

// RepositoryManager exposes the repository facts collected for history reports.
type RepositoryManager interface {
	IsGitRepository(repositoryPath string) bool
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	GetCommitHistory(executionContext context.Context, repositoryPath string, commitLimit int) ([]gitrepo.CommitRecord, error)
}

// ServiceDependencies enumerates the collaborators required by the history service.
type ServiceDependencies struct {
	Logger  *zap.Logger
	Manager RepositoryManager
	Clock   report.Clock
}

// Options configure a single history collection run.
type Options struct {
	RepositoryPath string
	CommitLimit    int
}

// Service retrieves commit history for a single repository.
type Service struct {
	logger  *zap.Logger
	manager RepositoryManager
	clock   report.Clock
}

// NewService validates dependencies and constructs a history service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Manager == nil {
		return nil, ErrManagerNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := dependencies.Clock
	if clock == nil {
		clock = report.SystemClock{}
	}

	return &Service{logger: logger, manager: dependencies.Manager, clock: clock}, nil
}

// BuildReport collects up to the requested number of commits for the
// repository at the supplied path and wraps them in a renderable report. The
// path must host a git repository; branch resolution failures degrade to a
// snapshot annotation while history failures surface as errors.
func (service *Service) BuildReport(executionContext context.Context, options Options) (*report.Report, error) {
	repositoryPath := options.RepositoryPath
	if len(repositoryPath) == 0 {
		repositoryPath = defaultRepositoryPathConstant
	}

	if !service.manager.IsGitRepository(repositoryPath) {
		return nil, fmt.Errorf(notARepositoryTemplateConstant, repositoryPath, ErrNotARepository)
	}

	repositorySnapshot := report.RepositorySnapshot{Path: repositoryPath, IsRepository: true}

	branchName, branchError := service.manager.GetCurrentBranch(executionContext, repositoryPath)
	if branchError == nil {
		repositorySnapshot.Branch = branchName
		repositorySnapshot.DetachedHead = branchName == detachedHeadBranchNameConstant
	} else {
		repositorySnapshot.FailureReason = branchError.Error()
	}

	commitRecords, historyError := service.manager.GetCommitHistory(executionContext, repositoryPath, options.CommitLimit)
	if historyError != nil {
		return nil, historyError
	}

	commitSummaries := make([]report.CommitSummary, 0, len(commitRecords))
	for _, commitRecord := range commitRecords {
		commitSummaries = append(commitSummaries, report.CommitSummary{Hash: commitRecord.Hash, Message: commitRecord.Message})
	}
	repositorySnapshot.Commits = commitSummaries

	service.logger.Debug(
		historyCollectedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.Int(logFieldCommitCountConstant, len(commitSummaries)),
	)

	return &report.Report{
		GeneratedAt:  service.clock.Now().UTC(),
		Repositories: []report.RepositorySnapshot{repositorySnapshot},
	}, nil
}
