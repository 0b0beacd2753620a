// Package flags provides helpers for binding standardized flags to Cobra
// commands, including yes/no toggle values and choice usage strings.
package flags
