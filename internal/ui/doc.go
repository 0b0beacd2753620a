// Package ui echoes shell command lifecycle events as human-readable console
// lines. The console writer implements execshell.CommandEventObserver and is
// attached when human-readable output is requested, while detailed telemetry
// continues to flow through the structured logger.
package ui
