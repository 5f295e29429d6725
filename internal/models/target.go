package models

// Target is one monitored (name, URL) pair. The name is the unique key under
// which the last-known digest is persisted.
type Target struct {
	Name string
	URL  string
}
