package gitrepo

import (
	"strings"
	"unicode"
)

const (
	historyLineSeparatorConstant = "\n"
)

// CommitRecord pairs an abbreviated commit hash with its subject line.
type CommitRecord struct {
	Hash    string
	Message string
}

// ParseBranchName normalizes rev-parse output by trimming surrounding whitespace.
// A detached HEAD surfaces as the literal "HEAD" and is returned unchanged;
// deciding whether an empty name is an error is left to the caller.
func ParseBranchName(rawOutput string) string {
	return strings.TrimSpace(rawOutput)
}

// ParseChangeStatus interprets porcelain status output. Any content beyond
// whitespace means the worktree carries uncommitted changes; a lone newline or
// blank output means a clean worktree.
func ParseChangeStatus(rawOutput string) bool {
	return len(strings.TrimSpace(rawOutput)) > 0
}

// ParseCommitHistory converts one-line-per-commit log output into commit
// records, capped at commitLimit. Blank lines are skipped, the first
// whitespace-delimited token of a line becomes the hash, and the trimmed
// remainder becomes the message. A line without any whitespace yields a record
// with an empty message rather than a parse failure.
func ParseCommitHistory(rawOutput string, commitLimit int) []CommitRecord {
	commitRecords := []CommitRecord{}
	if commitLimit <= 0 {
		return commitRecords
	}

	for _, historyLine := range strings.Split(rawOutput, historyLineSeparatorConstant) {
		trimmedLine := strings.TrimSpace(historyLine)
		if len(trimmedLine) == 0 {
			continue
		}

		commitRecords = append(commitRecords, parseHistoryLine(trimmedLine))
		if len(commitRecords) == commitLimit {
			break
		}
	}

	return commitRecords
}

func parseHistoryLine(trimmedLine string) CommitRecord {
	separatorIndex := strings.IndexFunc(trimmedLine, unicode.IsSpace)
	if separatorIndex < 0 {
		return CommitRecord{Hash: trimmedLine}
	}

	return CommitRecord{
		Hash:    trimmedLine[:separatorIndex],
		Message: strings.TrimSpace(trimmedLine[separatorIndex:]),
	}
}
