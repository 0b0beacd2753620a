package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	markdownTitleLineConstant          = "# Repository report"
	markdownGeneratedTemplateConstant  = "Generated at %s\n"
	markdownTableHeaderLineConstant    = "| Path | Branch | State | Remote |"
	markdownTableSeparatorLineConstant = "| --- | --- | --- | --- |"
	markdownTableRowTemplateConstant   = "| %s | %s | %s | %s |\n"
	markdownHistoryHeadingConstant     = "## History"
	markdownHistorySubheadingTemplate  = "### %s\n"
	markdownHistoryEntryTemplate       = "- `%s` %s\n"
	markdownCleanStateLabelConstant    = "clean"
	markdownMissingRepoStateConstant   = "not a repository"
)

// MarkdownRenderer renders reports as Markdown documents.
type MarkdownRenderer struct{}

// Render writes the report in Markdown format.
func (renderer *MarkdownRenderer) Render(writer io.Writer, exportReport *Report) error {
	fmt.Fprintln(writer, markdownTitleLineConstant)
	fmt.Fprintln(writer)
	fmt.Fprintf(writer, markdownGeneratedTemplateConstant, exportReport.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintln(writer)
	fmt.Fprintln(writer, markdownTableHeaderLineConstant)
	fmt.Fprintln(writer, markdownTableSeparatorLineConstant)

	for _, snapshot := range exportReport.Repositories {
		fmt.Fprintf(writer, markdownTableRowTemplateConstant, snapshot.Path, snapshot.Branch, describeSnapshotState(snapshot), snapshot.RemoteURL)
	}

	renderer.renderHistory(writer, exportReport)
	return nil
}

func (renderer *MarkdownRenderer) renderHistory(writer io.Writer, exportReport *Report) {
	historyWritten := false
	for _, snapshot := range exportReport.Repositories {
		if len(snapshot.Commits) == 0 {
			continue
		}
		if !historyWritten {
			fmt.Fprintln(writer)
			fmt.Fprintln(writer, markdownHistoryHeadingConstant)
			historyWritten = true
		}
		fmt.Fprintln(writer)
		fmt.Fprintf(writer, markdownHistorySubheadingTemplate, snapshot.Path)
		fmt.Fprintln(writer)
		for _, commitSummary := range snapshot.Commits {
			fmt.Fprintf(writer, markdownHistoryEntryTemplate, commitSummary.Hash, commitSummary.Message)
		}
	}
}

func describeSnapshotState(snapshot RepositorySnapshot) string {
	if !snapshot.IsRepository {
		return markdownMissingRepoStateConstant
	}

	stateLabels := []string{}
	if snapshot.DetachedHead {
		stateLabels = append(stateLabels, detachedStateLabelConstant)
	}
	if snapshot.Dirty {
		stateLabels = append(stateLabels, dirtyStateLabelConstant)
	}
	if len(stateLabels) == 0 {
		return markdownCleanStateLabelConstant
	}
	return strings.Join(stateLabels, stateListSeparatorConstant)
}
