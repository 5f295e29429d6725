package models

import "time"

// CheckStatus classifies the outcome of checking a single target in a run.
type CheckStatus int

const (
	// StatusInitial means the target was fetched successfully and has no recorded history.
	StatusInitial CheckStatus = iota
	// StatusChanged means the fetched digest differs from the recorded one.
	StatusChanged
	// StatusUnchanged means the fetched digest matches the recorded one.
	StatusUnchanged
	// StatusError means the fetch failed (network, timeout or non-2xx status).
	StatusError
)

// String returns a short label for logging and console output
func (cs CheckStatus) String() string {
	switch cs {
	case StatusInitial:
		return "initial"
	case StatusChanged:
		return "changed"
	case StatusUnchanged:
		return "unchanged"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// CheckResult is the uniform outcome value for one target in one run. The
// classifier consumes it directly; fetch failures are carried in Err rather
// than signalled out-of-band, so a failed fetch never aborts the remaining
// targets.
type CheckResult struct {
	Target      Target
	Status      CheckStatus
	OldDigest   string
	NewDigest   string
	HasPrevious bool
	Err         error
	CheckedAt   time.Time
}
