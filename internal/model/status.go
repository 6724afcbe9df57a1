package model

// EntryState represents where a URL is in its download lifecycle.
type EntryState string

const (
	// EntryAbsent means the URL has never been requested, or its reservation
	// was released because the transfer never started
	EntryAbsent EntryState = "Absent"

	// EntryPending means an acquisition is in flight; the path is set once
	// the transfer has started
	EntryPending EntryState = "Pending"

	// EntryComplete means the file is fully written at Path
	EntryComplete EntryState = "Complete"
)

// String returns the string representation of EntryState
func (s EntryState) String() string {
	return string(s)
}

// IsInFlight returns true if a download for the entry is still running
func (s EntryState) IsInFlight() bool {
	return s == EntryPending
}

// IsFinished returns true if the entry can be served from the cache
func (s EntryState) IsFinished() bool {
	return s == EntryComplete
}
