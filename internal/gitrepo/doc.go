// Package gitrepo contains the typed facade for interrogating and mutating
// Git repositories through the external git binary.
//
// It exposes RepositoryManager for branch inspection, change detection,
// snapshot commits, create-or-switch branch handling, and commit-history
// retrieval, along with the pure output parsers and the closed failure
// taxonomy consumed by services that need structured Git operations.
package gitrepo
