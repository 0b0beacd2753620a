package branches

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/grit/internal/dependencies"
	flagutils "github.com/temirov/grit/internal/utils/flags"
	pathutils "github.com/temirov/grit/internal/utils/path"
)

const (
	commandUseConstant              = "switch <branch>"
	commandShortDescriptionConstant = "Switch to a branch, creating it when missing"
	commandLongDescriptionConstant  = "switch moves the repository to the named branch. An existing branch is checked out; a missing one is created from the current HEAD. Switching to an existing branch requires a clean worktree unless --require-clean is disabled."
	commandExampleConstant          = "grit switch feature/login --require-clean=no"

	requireCleanFlagNameConstant   = "require-clean"
	requireCleanFlagUsageConstant  = "Require a clean worktree before switching to an existing branch"
	pathFlagNameConstant           = "path"
	pathFlagUsageConstant          = "Repository path to switch in"
	switchFailureTemplateConstant  = "switch failed (%s): %s"
	switchSuccessMessageConstant   = "SWITCHED: %s -> %s\n"
	serviceFailureTemplateConstant = "unable to construct switch service: %w"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the switch command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        func() CommandConfiguration
	HumanReadableLoggingProvider func() bool
	GitExecutor                  dependencies.GitExecutor
	Manager                      RepositoryManager
}

// Build constructs the switch command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultCommandConfiguration()

	var requireCleanFlagValue bool
	var pathFlagValue string

	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, requireCleanFlagValue, pathFlagValue)
		},
	}

	flagutils.AddToggleFlag(command.Flags(), &requireCleanFlagValue, requireCleanFlagNameConstant, "", defaults.RequireClean, requireCleanFlagUsageConstant)
	command.Flags().StringVar(&pathFlagValue, pathFlagNameConstant, defaultRepositoryPathConstant, pathFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, requireCleanFlagValue bool, pathFlagValue string) error {
	requireClean := builder.resolveConfiguration().RequireClean
	if command.Flags().Changed(requireCleanFlagNameConstant) {
		requireClean = requireCleanFlagValue
	}

	repositoryPath := defaultRepositoryPathConstant
	sanitizedPaths := pathutils.NewRepositoryPathSanitizer().Sanitize([]string{pathFlagValue})
	if len(sanitizedPaths) > 0 {
		repositoryPath = sanitizedPaths[0]
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

	service, serviceError := NewService(ServiceDependencies{Logger: logger, Manager: repositoryManager})
	if serviceError != nil {
		return fmt.Errorf(serviceFailureTemplateConstant, serviceError)
	}

	branchName := arguments[0]
	operationResult := service.Switch(command.Context(), Options{
		RepositoryPath: repositoryPath,
		BranchName:     branchName,
		RequireClean:   requireClean,
	})
	if !operationResult.Success {
		return fmt.Errorf(switchFailureTemplateConstant, operationResult.FailureKind, operationResult.FailureMessage)
	}

	fmt.Fprintf(command.OutOrStdout(), switchSuccessMessageConstant, repositoryPath, branchName)
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
