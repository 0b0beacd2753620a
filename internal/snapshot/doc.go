// Package snapshot implements the commit command. It stages the requested
// files, or every pending change when none are named, and records a commit
// through the repository manager.
package snapshot
