package ui

import (
	"fmt"
	"io"

	"github.com/temirov/grit/internal/execshell"
	"github.com/temirov/grit/internal/utils"
)

const consoleLineTemplateConstant = "%s\n"

// ConsoleCommandEventWriter echoes command lifecycle events to a console
// writer using the shell executor's human-readable messages. It implements
// execshell.CommandEventObserver and is attached when human-readable output
// is requested.
type ConsoleCommandEventWriter struct {
	writer    io.Writer
	formatter execshell.CommandMessageFormatter
}

// NewConsoleCommandEventWriter constructs a console event writer. The writer
// is wrapped so buffered destinations flush after every event.
func NewConsoleCommandEventWriter(writer io.Writer) *ConsoleCommandEventWriter {
	return &ConsoleCommandEventWriter{writer: utils.NewFlushingWriter(writer)}
}

// CommandStarted implements execshell.CommandEventObserver for start notifications.
func (eventWriter *ConsoleCommandEventWriter) CommandStarted(command execshell.ShellCommand) {
	eventWriter.writeLine(eventWriter.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver for completion notifications.
func (eventWriter *ConsoleCommandEventWriter) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if result.ExitCode == 0 {
		eventWriter.writeLine(eventWriter.formatter.BuildSuccessMessage(command, result))
		return
	}
	eventWriter.writeLine(eventWriter.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed implements execshell.CommandEventObserver for launch failures.
func (eventWriter *ConsoleCommandEventWriter) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	eventWriter.writeLine(eventWriter.formatter.BuildExecutionFailureMessage(command, failure))
}

func (eventWriter *ConsoleCommandEventWriter) writeLine(message string) {
	if eventWriter == nil || eventWriter.writer == nil {
		return
	}
	fmt.Fprintf(eventWriter.writer, consoleLineTemplateConstant, message)
}
