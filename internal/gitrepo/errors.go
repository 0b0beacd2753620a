package gitrepo

import (
	"errors"
	"fmt"

	"github.com/temirov/grit/internal/execshell"
)

const (
	operationErrorMessageTemplateConstant       = "%s failed: %s"
	commandCouldNotStartMessageTemplateConstant = "git could not be started: %s"
	requiredValueMessageConstant                = "value required"
)

// FailureKind classifies why a repository operation failed.
type FailureKind string

// Failure kind enumerations.
const (
	// FailureKindSpawn covers launch problems such as a missing git binary.
	FailureKindSpawn FailureKind = FailureKind("spawn")
	// FailureKindExit covers git invocations that completed with a non-zero exit code.
	FailureKindExit FailureKind = FailureKind("exit")
	// FailureKindParse covers command output that could not be interpreted.
	FailureKindParse FailureKind = FailureKind("parse")
	// FailureKindPrecondition covers operations rejected before any git command ran.
	FailureKindPrecondition FailureKind = FailureKind("precondition")
)

// OperationName identifies a repository operation for error reporting.
type OperationName string

// Operation name enumerations.
const (
	CurrentBranchOperationNameConstant      OperationName = OperationName("IdentifyCurrentBranch")
	UncommittedChangesOperationNameConstant OperationName = OperationName("DetectUncommittedChanges")
	StageChangesOperationNameConstant       OperationName = OperationName("StageChanges")
	CreateCommitOperationNameConstant       OperationName = OperationName("CreateCommit")
	BranchLookupOperationNameConstant       OperationName = OperationName("LookupBranch")
	SwitchBranchOperationNameConstant       OperationName = OperationName("SwitchBranch")
	CommitHistoryOperationNameConstant      OperationName = OperationName("CollectCommitHistory")
	RemoteURLOperationNameConstant          OperationName = OperationName("ResolveRemoteURL")
)

// OperationError reports a classified repository operation failure.
type OperationError struct {
	Operation OperationName
	Kind      FailureKind
	Message   string
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation, operationError.Message)
}

// Unwrap exposes the underlying cause when one exists.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// OperationResult reports the outcome of a mutating repository operation as data.
type OperationResult struct {
	Success        bool
	FailureKind    FailureKind
	FailureMessage string
}

func successResult() OperationResult {
	return OperationResult{Success: true}
}

func failureResult(operationError OperationError) OperationResult {
	return OperationResult{FailureKind: operationError.Kind, FailureMessage: operationError.Message}
}

func preconditionError(operation OperationName, message string) OperationError {
	return OperationError{Operation: operation, Kind: FailureKindPrecondition, Message: message}
}

func parseError(operation OperationName, message string) OperationError {
	return OperationError{Operation: operation, Kind: FailureKindParse, Message: message}
}

// classifyExecutionError converts shell executor errors into the closed failure taxonomy.
func classifyExecutionError(operation OperationName, executionError error) OperationError {
	var commandFailedError execshell.CommandFailedError
	if errors.As(executionError, &commandFailedError) {
		return OperationError{
			Operation: operation,
			Kind:      FailureKindExit,
			Message:   commandFailedError.Error(),
			Cause:     executionError,
		}
	}

	var commandExecutionError execshell.CommandExecutionError
	if errors.As(executionError, &commandExecutionError) {
		return OperationError{
			Operation: operation,
			Kind:      FailureKindSpawn,
			Message:   fmt.Sprintf(commandCouldNotStartMessageTemplateConstant, commandExecutionError.Cause),
			Cause:     executionError,
		}
	}

	return OperationError{
		Operation: operation,
		Kind:      FailureKindSpawn,
		Message:   executionError.Error(),
		Cause:     executionError,
	}
}
