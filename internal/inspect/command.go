package inspect

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/grit/internal/dependencies"
	"github.com/temirov/grit/internal/report"
	flagutils "github.com/temirov/grit/internal/utils/flags"
	pathutils "github.com/temirov/grit/internal/utils/path"
)

const (
	commandUseConstant              = "status [roots...]"
	commandShortDescriptionConstant = "Report repository state beneath the provided roots"
	commandLongDescriptionConstant  = "status discovers git repositories beneath the provided roots, inspects the current branch, worktree cleanliness, and remote identity of each, and renders the collected snapshots in the requested format."
	commandExampleConstant          = "grit status ~/Development --format markdown --commits 5"

	formatFlagNameConstant         = "format"
	formatFlagDescriptionConstant  = "Report output format"
	commitsFlagNameConstant        = "commits"
	commitsFlagUsageConstant       = "Number of recent commits to include per repository"
	renderFailureTemplateConstant  = "unable to render report: %w"
	reportFailureTemplateConstant  = "unable to build report: %w"
	serviceFailureTemplateConstant = "unable to construct status service: %w"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the status command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	GitExecutor                  dependencies.GitExecutor
	Discoverer                   dependencies.RepositoryDiscoverer
	Manager                      RepositoryManager
	Clock                        report.Clock
}

// Build constructs the status command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultCommandConfiguration()

	var formatFlagValue string
	var commitsFlagValue int

	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, formatFlagValue, commitsFlagValue)
		},
	}

	command.Flags().StringVar(
		&formatFlagValue,
		formatFlagNameConstant,
		defaults.Format,
		flagutils.FormatChoiceUsage(defaults.Format, formatChoiceValues(), formatFlagDescriptionConstant),
	)
	command.Flags().IntVar(&commitsFlagValue, commitsFlagNameConstant, defaults.Commits, commitsFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, formatFlagValue string, commitsFlagValue int) error {
	configuration := builder.resolveConfiguration()
	if command.Flags().Changed(formatFlagNameConstant) {
		configuration.Format = formatFlagValue
	}
	if command.Flags().Changed(commitsFlagNameConstant) {
		configuration.Commits = commitsFlagValue
	}
	configuration = configuration.sanitize()

	renderer, rendererError := report.NewRenderer(report.Format(configuration.Format), outputIsTerminal())
	if rendererError != nil {
		return rendererError
	}

	rootArguments := arguments
	if len(rootArguments) == 0 {
		rootArguments = configuration.Roots
	}
	repositoryRoots := pathutils.NewRepositoryPathSanitizerWithConfiguration(nil, pathutils.RepositoryPathSanitizerConfiguration{
		ExcludeBooleanLiteralCandidates: true,
		PruneNestedPaths:                true,
	}).Sanitize(rootArguments)

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}
	repositoryManager := builder.Manager
	if repositoryManager == nil {
		resolvedManager, managerError := dependencies.ResolveRepositoryManager(nil, gitExecutor)
		if managerError != nil {
			return managerError
		}
		repositoryManager = resolvedManager
	}

	service, serviceError := NewService(ServiceDependencies{
		Logger:     logger,
		Discoverer: dependencies.ResolveRepositoryDiscoverer(builder.Discoverer),
		Manager:    repositoryManager,
		Clock:      builder.Clock,
	})
	if serviceError != nil {
		return fmt.Errorf(serviceFailureTemplateConstant, serviceError)
	}

	statusReport, reportError := service.BuildReport(command.Context(), CommandOptions{
		Roots:       repositoryRoots,
		CommitLimit: configuration.Commits,
	})
	if reportError != nil {
		return fmt.Errorf(reportFailureTemplateConstant, reportError)
	}

	if renderError := renderer.Render(command.OutOrStdout(), statusReport); renderError != nil {
		return fmt.Errorf(renderFailureTemplateConstant, renderError)
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func formatChoiceValues() []string {
	supportedFormats := report.SupportedFormats()
	choiceValues := make([]string, 0, len(supportedFormats))
	for _, supportedFormat := range supportedFormats {
		choiceValues = append(choiceValues, string(supportedFormat))
	}
	return choiceValues
}

// outputIsTerminal reports whether standard output is attached to a terminal,
// which decides whether text reports use ANSI color.
func outputIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
