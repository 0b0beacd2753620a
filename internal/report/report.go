// Package report defines the exportable repository report model and its renderers.
package report

import "time"

// OriginRemoteNameConstant identifies the default upstream remote inspected for reports.
const OriginRemoteNameConstant = "origin"

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// CommitSummary pairs an abbreviated commit hash with its subject line.
type CommitSummary struct {
	Hash    string `json:"hash" yaml:"hash"`
	Message string `json:"message" yaml:"message"`
}

// RepositorySnapshot captures the inspected state of a single repository path.
type RepositorySnapshot struct {
	Path          string          `json:"path" yaml:"path"`
	IsRepository  bool            `json:"is_repository" yaml:"is_repository"`
	Branch        string          `json:"branch,omitempty" yaml:"branch,omitempty"`
	DetachedHead  bool            `json:"detached_head,omitempty" yaml:"detached_head,omitempty"`
	Dirty         bool            `json:"dirty,omitempty" yaml:"dirty,omitempty"`
	RemoteURL     string          `json:"remote_url,omitempty" yaml:"remote_url,omitempty"`
	RemoteHost    string          `json:"remote_host,omitempty" yaml:"remote_host,omitempty"`
	RemoteOwner   string          `json:"remote_owner,omitempty" yaml:"remote_owner,omitempty"`
	RemoteName    string          `json:"remote_name,omitempty" yaml:"remote_name,omitempty"`
	Commits       []CommitSummary `json:"commits,omitempty" yaml:"commits,omitempty"`
	FailureReason string          `json:"failure_reason,omitempty" yaml:"failure_reason,omitempty"`
}

// Report aggregates repository snapshots for export.
type Report struct {
	GeneratedAt  time.Time            `json:"generated_at" yaml:"generated_at"`
	Repositories []RepositorySnapshot `json:"repositories" yaml:"repositories"`
}
