package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant        = "shell executor requires a configured logger"
	commandRunnerNotConfiguredMessageConstant = "shell executor requires a configured command runner"
	commandFailedTemplateConstant             = "%s exited with code %d%s"
	commandExecutionFailedTemplateConstant    = "%s could not be executed: %s"
	standardErrorDetailTemplateConstant       = ": %s"
	commandStartedLogMessageConstant          = "shell command started"
	commandCompletedLogMessageConstant        = "shell command completed"
	commandFailedLogMessageConstant           = "shell command failed"
	commandSpawnFailedLogMessageConstant      = "shell command could not start"
	logFieldCommandNameConstant               = "command_name"
	logFieldCommandArgumentsConstant          = "command_arguments"
	logFieldWorkingDirectoryConstant          = "working_directory"
	logFieldExitCodeConstant                  = "exit_code"
	logFieldStandardErrorConstant             = "standard_error"
	carriageReturnSuffixConstant              = "\r"
	newlineSuffixConstant                     = "\n"
	commandLabelSeparatorConstant             = " "
	gitTerminalPromptVariableNameConstant     = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledValueConstant    = "0"
)

// Sentinel errors reported by NewShellExecutor when dependencies are missing.
var (
	// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
)

// CommandName identifies the executable a ShellCommand launches.
type CommandName string

const (
	// CommandGit identifies the git executable.
	CommandGit CommandName = "git"
)

// CommandDetails describes a single invocation of an external command.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand combines a CommandName with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outputs of a completed command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner abstracts process execution so tests can substitute scripted results.
//
// Implementations must block until the process has fully exited and must not
// log; observability belongs to the ShellExecutor layer.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandFailedError reports a command that ran to completion with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including its exit code and captured standard error.
func (failedError CommandFailedError) Error() string {
	return fmt.Sprintf(
		commandFailedTemplateConstant,
		formatShellCommandLabel(failedError.Command),
		failedError.Result.ExitCode,
		formatStandardErrorDetail(failedError.Result.StandardError),
	)
}

// CommandExecutionError reports a command that could not be started or crashed at the platform level.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the command that failed to execute and the underlying cause.
func (executionError CommandExecutionError) Error() string {
	causeDescription := ""
	if executionError.Cause != nil {
		causeDescription = executionError.Cause.Error()
	}
	return fmt.Sprintf(commandExecutionFailedTemplateConstant, formatShellCommandLabel(executionError.Command), causeDescription)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutor runs shell commands through a CommandRunner while emitting
// structured telemetry and lifecycle events. Failures are normalized into
// CommandFailedError and CommandExecutionError values so callers never see
// raw platform errors.
type ShellExecutor struct {
	logger        *zap.Logger
	commandRunner CommandRunner
	eventObserver CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor with a no-op event observer.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithObserver(logger, commandRunner, noopCommandEventObserver{})
}

// NewShellExecutorWithObserver constructs a ShellExecutor that notifies the supplied observer.
func NewShellExecutorWithObserver(logger *zap.Logger, commandRunner CommandRunner, eventObserver CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	resolvedObserver := eventObserver
	if resolvedObserver == nil {
		resolvedObserver = noopCommandEventObserver{}
	}
	return &ShellExecutor{logger: logger, commandRunner: commandRunner, eventObserver: resolvedObserver}, nil
}

// ExecuteGit runs the git executable with the provided details.
//
// Interactive credential prompts are disabled for every invocation so an
// unauthenticated command fails instead of blocking the calling process.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	command := ShellCommand{Name: CommandGit, Details: details}
	command.Details.EnvironmentVariables = withDisabledTerminalPrompt(command.Details.EnvironmentVariables)
	return executor.Execute(executionContext, command)
}

// Execute runs the supplied command, logging a start event and exactly one
// completion or failure event. On success the captured standard output has a
// single trailing newline removed; other whitespace is preserved so parsers
// receive the process output otherwise untouched.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)
	executor.eventObserver.CommandStarted(command)

	executionResult, runError := executor.commandRunner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Error(
			commandSpawnFailedLogMessageConstant,
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
			zap.Error(runError),
		)
		executor.eventObserver.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	if executionResult.ExitCode != 0 {
		executor.logger.Error(
			commandFailedLogMessageConstant,
			zap.String(logFieldCommandNameConstant, string(command.Name)),
			zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
			zap.String(logFieldStandardErrorConstant, executionResult.StandardError),
		)
		executor.eventObserver.CommandCompleted(command, executionResult)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executionResult.StandardOutput = trimSingleTrailingNewline(executionResult.StandardOutput)

	executor.logger.Debug(
		commandCompletedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
	)
	executor.eventObserver.CommandCompleted(command, executionResult)

	return executionResult, nil
}

// trimSingleTrailingNewline removes one terminating newline sequence, leaving
// interior newlines and any other surrounding whitespace intact.
func trimSingleTrailingNewline(value string) string {
	trimmedValue := strings.TrimSuffix(value, newlineSuffixConstant)
	if len(trimmedValue) != len(value) {
		trimmedValue = strings.TrimSuffix(trimmedValue, carriageReturnSuffixConstant)
	}
	return trimmedValue
}

func withDisabledTerminalPrompt(environmentVariables map[string]string) map[string]string {
	if environmentVariables == nil {
		return map[string]string{gitTerminalPromptVariableNameConstant: gitTerminalPromptDisabledValueConstant}
	}
	if _, alreadyConfigured := environmentVariables[gitTerminalPromptVariableNameConstant]; alreadyConfigured {
		return environmentVariables
	}
	duplicatedVariables := make(map[string]string, len(environmentVariables)+1)
	for variableName, variableValue := range environmentVariables {
		duplicatedVariables[variableName] = variableValue
	}
	duplicatedVariables[gitTerminalPromptVariableNameConstant] = gitTerminalPromptDisabledValueConstant
	return duplicatedVariables
}

func formatShellCommandLabel(command ShellCommand) string {
	labelParts := []string{string(command.Name)}
	if len(command.Details.Arguments) > 0 {
		labelParts = append(labelParts, command.Details.Arguments...)
	}
	return strings.Join(labelParts, commandLabelSeparatorConstant)
}

func formatStandardErrorDetail(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorDetailTemplateConstant, trimmedStandardError)
}
