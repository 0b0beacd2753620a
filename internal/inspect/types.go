package inspect

// CommandOptions captures the configurable parameters for a status report run.
type CommandOptions struct {
	Roots       []string
	CommitLimit int
}
