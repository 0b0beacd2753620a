// Package branches implements the switch command. It moves a repository to a
// named branch with create-or-switch semantics: an existing branch is checked
// out, a missing one is created from the current HEAD.
package branches
