// Package download implements the image download coordinator: it guarantees
// at most one in-flight acquisition per URL, runs each acquisition in its own
// ephemeral browsing context and hands finished files to the platform opener.
// Finished downloads are cached for the lifetime of the process.
package download
