// Package inspect implements the status command. It discovers repositories
// beneath the requested roots, gathers branch, worktree, remote, and commit
// history facts through the repository manager, and renders the collected
// snapshots as a report in the requested format.
package inspect
