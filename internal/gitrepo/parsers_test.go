package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/grit/internal/gitrepo"
)

const (
	testTrailingNewlineCaseNameConstant    = "trailing_newline"
	testDetachedHeadCaseNameConstant       = "detached_head"
	testSurroundingSpacesCaseNameConstant  = "surrounding_spaces"
	testEmptyOutputCaseNameConstant        = "empty_output"
	testLoneNewlineCaseNameConstant        = "lone_newline"
	testWhitespaceOnlyCaseNameConstant     = "whitespace_only"
	testModifiedFileCaseNameConstant       = "modified_file"
	testUntrackedFileCaseNameConstant      = "untracked_file"
	testFullHistoryCaseNameConstant        = "full_history"
	testLimitAboveLinesCaseNameConstant    = "limit_above_lines"
	testLimitBelowLinesCaseNameConstant    = "limit_below_lines"
	testBlankInteriorLinesCaseNameConstant = "blank_interior_lines"
	testHashOnlyLineCaseNameConstant       = "hash_only_line"
	testZeroLimitCaseNameConstant          = "zero_limit"
	testHistoryFixtureConstant             = "abc123 Initial commit\ndef456 Add feature\nghi789 Fix bug\n"
)

func TestParseBranchName(testInstance *testing.T) {
	testCases := []struct {
		name           string
		rawOutput      string
		expectedBranch string
	}{
		{name: testTrailingNewlineCaseNameConstant, rawOutput: "main\n", expectedBranch: "main"},
		{name: testDetachedHeadCaseNameConstant, rawOutput: "HEAD\n", expectedBranch: "HEAD"},
		{name: testSurroundingSpacesCaseNameConstant, rawOutput: "  develop  ", expectedBranch: "develop"},
		{name: testEmptyOutputCaseNameConstant, rawOutput: "", expectedBranch: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedBranch, gitrepo.ParseBranchName(testCase.rawOutput))
		})
	}
}

func TestParseChangeStatus(testInstance *testing.T) {
	testCases := []struct {
		name            string
		rawOutput       string
		expectedChanges bool
	}{
		{name: testEmptyOutputCaseNameConstant, rawOutput: "", expectedChanges: false},
		{name: testLoneNewlineCaseNameConstant, rawOutput: "\n", expectedChanges: false},
		{name: testWhitespaceOnlyCaseNameConstant, rawOutput: "   \n", expectedChanges: false},
		{name: testModifiedFileCaseNameConstant, rawOutput: " M file.txt\n", expectedChanges: true},
		{name: testUntrackedFileCaseNameConstant, rawOutput: "?? notes.md", expectedChanges: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedChanges, gitrepo.ParseChangeStatus(testCase.rawOutput))
		})
	}
}

func TestParseCommitHistory(testInstance *testing.T) {
	testCases := []struct {
		name            string
		rawOutput       string
		commitLimit     int
		expectedRecords []gitrepo.CommitRecord
	}{
		{
			name:        testFullHistoryCaseNameConstant,
			rawOutput:   testHistoryFixtureConstant,
			commitLimit: 3,
			expectedRecords: []gitrepo.CommitRecord{
				{Hash: "abc123", Message: "Initial commit"},
				{Hash: "def456", Message: "Add feature"},
				{Hash: "ghi789", Message: "Fix bug"},
			},
		},
		{
			name:            testLimitAboveLinesCaseNameConstant,
			rawOutput:       "abc123 Initial commit\n",
			commitLimit:     5,
			expectedRecords: []gitrepo.CommitRecord{{Hash: "abc123", Message: "Initial commit"}},
		},
		{
			name:            testLimitBelowLinesCaseNameConstant,
			rawOutput:       testHistoryFixtureConstant,
			commitLimit:     1,
			expectedRecords: []gitrepo.CommitRecord{{Hash: "abc123", Message: "Initial commit"}},
		},
		{
			name:        testBlankInteriorLinesCaseNameConstant,
			rawOutput:   "abc123 Initial commit\n\n   \ndef456 Add feature",
			commitLimit: 10,
			expectedRecords: []gitrepo.CommitRecord{
				{Hash: "abc123", Message: "Initial commit"},
				{Hash: "def456", Message: "Add feature"},
			},
		},
		{
			name:            testHashOnlyLineCaseNameConstant,
			rawOutput:       "abc123\n",
			commitLimit:     2,
			expectedRecords: []gitrepo.CommitRecord{{Hash: "abc123", Message: ""}},
		},
		{
			name:            testZeroLimitCaseNameConstant,
			rawOutput:       testHistoryFixtureConstant,
			commitLimit:     0,
			expectedRecords: []gitrepo.CommitRecord{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedRecords := gitrepo.ParseCommitHistory(testCase.rawOutput, testCase.commitLimit)
			require.Equal(testInstance, testCase.expectedRecords, parsedRecords)
		})
	}
}
