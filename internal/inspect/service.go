package inspect

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/grit/internal/gitrepo"
	"github.com/temirov/grit/internal/report"
)

const (
	discovererNotConfiguredMessageConstant = "repository discoverer not configured"
	managerNotConfiguredMessageConstant    = "repository manager not configured"

	detachedHeadBranchNameConstant = "HEAD"

	repositoryInspectedMessageConstant = "repository inspected"
	inspectionDegradedMessageConstant  = "repository inspection degraded"
	remoteUnavailableMessageConstant   = "repository remote unavailable"
	logFieldRepositoryPathConstant     = "repository_path"
	logFieldBranchNameConstant         = "branch_name"
	logFieldFailureReasonConstant      = "failure_reason"
)

// Sentinel errors for service construction.
var (
	ErrDiscovererNotConfigured = errors.New(discovererNotConfiguredMessageConstant)
	ErrManagerNotConfigured    = errors.New(managerNotConfiguredMessageConstant)
)

// ServiceDependencies enumerates the collaborators required by the status service.
type ServiceDependencies struct {
	Logger     *zap.Logger
	Discoverer RepositoryDiscoverer
	Manager    RepositoryManager
	Clock      report.Clock
}

// Service discovers repositories and assembles status reports.
type Service struct {
	logger     *zap.Logger
	discoverer RepositoryDiscoverer
	manager    RepositoryManager
	clock      report.Clock
}

// NewService validates dependencies and constructs a status service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Discoverer == nil {
		return nil, ErrDiscovererNotConfigured
	}
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

	return &Service{
		logger:     logger,
		discoverer: dependencies.Discoverer,
		manager:    dependencies.Manager,
		clock:      clock,
	}, nil
}

// BuildReport inspects every repository discovered under the requested roots.
// Per-repository failures degrade to snapshot annotations instead of aborting
// the whole report; only discovery failures surface as errors.
func (service *Service) BuildReport(executionContext context.Context, options CommandOptions) (*report.Report, error) {
	rootDirectories := options.Roots
	if len(rootDirectories) == 0 {
		rootDirectories = []string{defaultRootPathConstant}
	}

	repositoryPaths, discoveryError := service.discoverer.DiscoverRepositories(rootDirectories)
	if discoveryError != nil {
		return nil, discoveryError
	}

	repositorySnapshots := make([]report.RepositorySnapshot, 0, len(repositoryPaths))
	for _, repositoryPath := range repositoryPaths {
		repositorySnapshots = append(repositorySnapshots, service.inspectRepository(executionContext, repositoryPath, options.CommitLimit))
	}

	return &report.Report{
		GeneratedAt:  service.clock.Now().UTC(),
		Repositories: repositorySnapshots,
	}, nil
}

// InspectPath builds a snapshot for a single path without discovery.
func (service *Service) InspectPath(executionContext context.Context, repositoryPath string, commitLimit int) report.RepositorySnapshot {
	return service.inspectRepository(executionContext, repositoryPath, commitLimit)
}

func (service *Service) inspectRepository(executionContext context.Context, repositoryPath string, commitLimit int) report.RepositorySnapshot {
	repositorySnapshot := report.RepositorySnapshot{Path: repositoryPath}
	if !service.manager.IsGitRepository(repositoryPath) {
		return repositorySnapshot
	}
	repositorySnapshot.IsRepository = true

	branchName, branchError := service.manager.GetCurrentBranch(executionContext, repositoryPath)
	if branchError != nil {
		repositorySnapshot.FailureReason = describeOperationFailure(branchError)
		service.logger.Warn(
			inspectionDegradedMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
			zap.String(logFieldFailureReasonConstant, repositorySnapshot.FailureReason),
		)
		return repositorySnapshot
	}
	repositorySnapshot.Branch = branchName
	repositorySnapshot.DetachedHead = branchName == detachedHeadBranchNameConstant

	uncommittedChanges, statusError := service.manager.HasUncommittedChanges(executionContext, repositoryPath)
	if statusError != nil {
		repositorySnapshot.FailureReason = describeOperationFailure(statusError)
	}
	repositorySnapshot.Dirty = uncommittedChanges

	service.attachRemoteDetails(executionContext, repositoryPath, &repositorySnapshot)
	service.attachCommitHistory(executionContext, repositoryPath, commitLimit, &repositorySnapshot)

	service.logger.Debug(
		repositoryInspectedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldBranchNameConstant, repositorySnapshot.Branch),
	)

	return repositorySnapshot
}

// attachRemoteDetails records the origin URL when one is configured. Missing
// remotes are expected for local-only repositories and never annotate the
// snapshot as degraded.
func (service *Service) attachRemoteDetails(executionContext context.Context, repositoryPath string, repositorySnapshot *report.RepositorySnapshot) {
	remoteURL, remoteError := service.manager.GetRemoteURL(executionContext, repositoryPath, report.OriginRemoteNameConstant)
	if remoteError != nil {
		service.logger.Debug(
			remoteUnavailableMessageConstant,
			zap.String(logFieldRepositoryPathConstant, repositoryPath),
		)
		return
	}

	repositorySnapshot.RemoteURL = remoteURL
	parsedRemote, parseFailure := gitrepo.ParseRemoteURL(remoteURL)
	if parseFailure != nil {
		return
	}
	repositorySnapshot.RemoteHost = parsedRemote.Host
	repositorySnapshot.RemoteOwner = parsedRemote.Owner
	repositorySnapshot.RemoteName = parsedRemote.Repository
}

func (service *Service) attachCommitHistory(executionContext context.Context, repositoryPath string, commitLimit int, repositorySnapshot *report.RepositorySnapshot) {
	if commitLimit <= 0 {
		return
	}

	commitRecords, historyError := service.manager.GetCommitHistory(executionContext, repositoryPath, commitLimit)
	if historyError != nil {
		if len(repositorySnapshot.FailureReason) == 0 {
			repositorySnapshot.FailureReason = describeOperationFailure(historyError)
		}
		return
	}

	commitSummaries := make([]report.CommitSummary, 0, len(commitRecords))
	for _, commitRecord := range commitRecords {
		commitSummaries = append(commitSummaries, report.CommitSummary{Hash: commitRecord.Hash, Message: commitRecord.Message})
	}
	repositorySnapshot.Commits = commitSummaries
}

func describeOperationFailure(operationFailure error) string {
	var operationError gitrepo.OperationError
	if errors.As(operationFailure, &operationError) {
		return operationError.Message
	}
	return strings.TrimSpace(operationFailure.Error())
}
