package snapshot

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/grit/internal/dependencies"
	pathutils "github.com/temirov/grit/internal/utils/path"
)

const (
	commandUseConstant              = "commit [files...]"
	commandShortDescriptionConstant = "Stage changes and record a commit"
	commandLongDescriptionConstant  = "commit stages the named files, or every pending change when no files are given, and records a commit with the required message. Files staged before a failing commit step remain staged."
	commandExampleConstant          = "grit commit internal/service.go -m \"fix: handle empty input\""

	messageFlagNameConstant        = "message"
	messageFlagShorthandConstant   = "m"
	messageFlagUsageConstant       = "Commit message (required)"
	pathFlagNameConstant           = "path"
	pathFlagUsageConstant          = "Repository path to commit in"
	commitFailureTemplateConstant  = "commit failed (%s): %s"
	commitSuccessMessageConstant   = "COMMITTED: %s\n"
	serviceFailureTemplateConstant = "unable to construct commit service: %w"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the commit command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	GitExecutor                  dependencies.GitExecutor
	Manager                      RepositoryManager
}

// Build constructs the commit command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	var messageFlagValue string
	var pathFlagValue string

	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments, messageFlagValue, pathFlagValue)
		},
	}

	command.Flags().StringVarP(&messageFlagValue, messageFlagNameConstant, messageFlagShorthandConstant, "", messageFlagUsageConstant)
	command.Flags().StringVar(&pathFlagValue, pathFlagNameConstant, defaultRepositoryPathConstant, pathFlagUsageConstant)
	if markError := command.MarkFlagRequired(messageFlagNameConstant); markError != nil {
		return nil, markError
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string, messageFlagValue string, pathFlagValue string) error {
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

	operationResult := service.Commit(command.Context(), Options{
		RepositoryPath: repositoryPath,
		Message:        messageFlagValue,
		Files:          arguments,
	})
	if !operationResult.Success {
		return fmt.Errorf(commitFailureTemplateConstant, operationResult.FailureKind, operationResult.FailureMessage)
	}

	fmt.Fprintf(command.OutOrStdout(), commitSuccessMessageConstant, messageFlagValue)
	return nil
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
