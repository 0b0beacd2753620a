// Package execshell provides structured helpers for invoking the git binary.
//
// It wraps os/exec behind the CommandRunner seam, exposes OSCommandRunner for
// production process execution, and normalizes command outcomes through
// ShellExecutor so the rest of grit drives git in a testable manner without
// ever touching raw platform errors.
package execshell
