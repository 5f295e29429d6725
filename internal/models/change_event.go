package models

import (
	"fmt"
	"time"
)

// Report status texts. These are part of the report format and must stay stable
// across runs so downstream consumers can match on them.
const (
	ReportStatusInitial = "Initial Check (No history recorded)"
	ReportStatusChanged = "Content Changed"
)

// digestDetailLength is how many leading hex characters of a digest appear in
// human-readable detail strings.
const digestDetailLength = 8

// ChangeEvent is one reportable outcome (Initial, Changed or Error) for a
// target in a given run. Unchanged outcomes never produce a ChangeEvent.
// Events exist only to populate the report and are discarded after the run.
type ChangeEvent struct {
	Name        string
	URL         string
	Timestamp   string
	Status      string
	HashDetails string
}

// NewChangeEvent builds the reportable event for a non-Unchanged check result.
// Returns false for Unchanged results, which are logged but never reported.
func NewChangeEvent(result CheckResult) (ChangeEvent, bool) {
	event := ChangeEvent{
		Name:      result.Target.Name,
		URL:       result.Target.URL,
		Timestamp: result.CheckedAt.Format(time.RFC3339),
	}

	switch result.Status {
	case StatusInitial:
		event.Status = ReportStatusInitial
		event.HashDetails = fmt.Sprintf("Initial Hash: %s...", truncateDigest(result.NewDigest))
	case StatusChanged:
		event.Status = ReportStatusChanged
		event.HashDetails = fmt.Sprintf("Old: %s... -> New: %s...", truncateDigest(result.OldDigest), truncateDigest(result.NewDigest))
	case StatusError:
		event.Status = fmt.Sprintf("Error: %v", result.Err)
		event.HashDetails = "N/A"
	default:
		return ChangeEvent{}, false
	}

	return event, true
}

func truncateDigest(digest string) string {
	if len(digest) > digestDetailLength {
		return digest[:digestDetailLength]
	}
	return digest
}
