package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

const (
	reportHeaderTemplateConstant = "Repository report generated at %s\n"
	branchLineTemplateConstant   = "  branch: %s%s\n"
	remoteLineTemplateConstant   = "  remote: %s\n"
	historyHeadingLineConstant   = "  history:"
	historyEntryTemplateConstant = "    %s  %s\n"
	warningLineTemplateConstant  = "  warning: %s\n"
	notARepositoryLineConstant   = "  not a git repository"
	detachedStateLabelConstant   = "detached"
	dirtyStateLabelConstant      = "dirty"
	stateListSeparatorConstant   = ", "
	stateSuffixTemplateConstant  = " (%s)"
)

// TextRenderer renders reports as human-readable text.
type TextRenderer struct {
	ColorEnabled bool
}

// Render writes the report in text format.
func (renderer *TextRenderer) Render(writer io.Writer, exportReport *Report) error {
	if !renderer.ColorEnabled {
		color.NoColor = true
	}

	fmt.Fprintf(writer, reportHeaderTemplateConstant, exportReport.GeneratedAt.Format(time.RFC3339))

	for _, snapshot := range exportReport.Repositories {
		fmt.Fprintln(writer)
		renderer.renderSnapshot(writer, snapshot)
	}

	return nil
}

func (renderer *TextRenderer) renderSnapshot(writer io.Writer, snapshot RepositorySnapshot) {
	fmt.Fprintln(writer, renderer.colorPath(snapshot.Path))

	if !snapshot.IsRepository {
		fmt.Fprintln(writer, renderer.colorWarning(notARepositoryLineConstant))
		return
	}

	if len(snapshot.Branch) > 0 {
		fmt.Fprintf(writer, branchLineTemplateConstant, snapshot.Branch, renderer.describeStates(snapshot))
	}
	if len(snapshot.RemoteURL) > 0 {
		fmt.Fprintf(writer, remoteLineTemplateConstant, snapshot.RemoteURL)
	}
	if len(snapshot.Commits) > 0 {
		fmt.Fprintln(writer, historyHeadingLineConstant)
		for _, commitSummary := range snapshot.Commits {
			fmt.Fprintf(writer, historyEntryTemplateConstant, commitSummary.Hash, commitSummary.Message)
		}
	}
	if len(snapshot.FailureReason) > 0 {
		fmt.Fprintf(writer, warningLineTemplateConstant, renderer.colorWarning(snapshot.FailureReason))
	}
}

func (renderer *TextRenderer) describeStates(snapshot RepositorySnapshot) string {
	stateLabels := []string{}
	if snapshot.DetachedHead {
		stateLabels = append(stateLabels, detachedStateLabelConstant)
	}
	if snapshot.Dirty {
		stateLabels = append(stateLabels, renderer.colorDirty(dirtyStateLabelConstant))
	}
	if len(stateLabels) == 0 {
		return ""
	}
	return fmt.Sprintf(stateSuffixTemplateConstant, strings.Join(stateLabels, stateListSeparatorConstant))
}

func (renderer *TextRenderer) colorPath(repositoryPath string) string {
	if !renderer.ColorEnabled {
		return repositoryPath
	}
	return color.New(color.Bold).Sprint(repositoryPath)
}

func (renderer *TextRenderer) colorDirty(label string) string {
	if !renderer.ColorEnabled {
		return label
	}
	return color.New(color.FgYellow).Sprint(label)
}

func (renderer *TextRenderer) colorWarning(message string) string {
	if !renderer.ColorEnabled {
		return message
	}
	return color.New(color.FgRed).Sprint(message)
}
