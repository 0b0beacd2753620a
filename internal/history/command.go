package history

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
	commandUseConstant              = "history [path]"
	commandShortDescriptionConstant = "Show recent commits for a repository"
	commandLongDescriptionConstant  = "history lists the most recent commits of the repository at the provided path, newest first, and renders them in the requested format. The path defaults to the current directory."
	commandExampleConstant          = "grit history ~/Development/project --limit 5"

	limitFlagNameConstant          = "limit"
	limitFlagUsageConstant         = "Maximum number of commits to list"
	formatFlagNameConstant         = "format"
	formatFlagDescriptionConstant  = "Report output format"
	renderFailureTemplateConstant  = "unable to render report: %w"
	serviceFailureTemplateConstant = "unable to construct history service: %w"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the history command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	GitExecutor                  dependencies.GitExecutor
	Manager                      RepositoryManager
	Clock                        report.Clock
}

// Build constructs the history command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultCommandConfiguration()

	var limitFlagValue int
	var formatFlagValue string

	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, limitFlagValue, formatFlagValue)
		},
	}

	command.Flags().IntVar(&limitFlagValue, limitFlagNameConstant, defaults.Limit, limitFlagUsageConstant)
	command.Flags().StringVar(
		&formatFlagValue,
		formatFlagNameConstant,
		defaults.Format,
		flagutils.FormatChoiceUsage(defaults.Format, formatChoiceValues(), formatFlagDescriptionConstant),
	)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, limitFlagValue int, formatFlagValue string) error {
	configuration := builder.resolveConfiguration()
	if command.Flags().Changed(limitFlagNameConstant) {
		configuration.Limit = limitFlagValue
	}
	if command.Flags().Changed(formatFlagNameConstant) {
		configuration.Format = formatFlagValue
	}
	configuration = configuration.sanitize()

	renderer, rendererError := report.NewRenderer(report.Format(configuration.Format), outputIsTerminal())
	if rendererError != nil {
		return rendererError
	}

	repositoryPath := defaultRepositoryPathConstant
	if len(arguments) > 0 {
		sanitizedPaths := pathutils.NewRepositoryPathSanitizer().Sanitize(arguments[:1])
		if len(sanitizedPaths) > 0 {
			repositoryPath = sanitizedPaths[0]
		}
	}

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
		Logger:  logger,
		Manager: repositoryManager,
		Clock:   builder.Clock,
	})
	if serviceError != nil {
		return fmt.Errorf(serviceFailureTemplateConstant, serviceError)
	}

	historyReport, reportError := service.BuildReport(command.Context(), Options{
		RepositoryPath: repositoryPath,
		CommitLimit:    configuration.Limit,
	})
	if reportError != nil {
		return reportError
	}

	if renderError := renderer.Render(command.OutOrStdout(), historyReport); renderError != nil {
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

func outputIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
