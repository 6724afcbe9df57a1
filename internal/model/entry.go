package model

import "time"

// CacheEntry is the per-URL record of an image download. Entries live for the
// whole process and are never evicted.
type CacheEntry struct {
	URL        string
	Path       string // destination file, empty until the transfer starts
	MIMEType   string // content type reported when the transfer started
	State      EntryState
	Size       int64 // bytes written, set on completion
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewCacheEntry creates a pending, path-less entry for url
func NewCacheEntry(url string) *CacheEntry {
	return &CacheEntry{
		URL:   url,
		State: EntryPending,
	}
}

// Complete reports whether the file at Path is fully written
func (e *CacheEntry) Complete() bool {
	return e.State.IsFinished()
}

// HasPath reports whether the transfer has started and a path was assigned
func (e *CacheEntry) HasPath() bool {
	return e.Path != ""
}

// MarkStarted records the destination assigned when the transfer started
func (e *CacheEntry) MarkStarted(path, mimeType string) {
	e.Path = path
	e.MIMEType = mimeType
	e.StartedAt = time.Now()
}

// MarkComplete records a finished transfer of size bytes
func (e *CacheEntry) MarkComplete(size int64) {
	e.State = EntryComplete
	e.Size = size
	e.FinishedAt = time.Now()
}
