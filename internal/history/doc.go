// Package history implements the history command. It retrieves recent commit
// records for a single repository through the repository manager and renders
// them in the requested report format.
package history
