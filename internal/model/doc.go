package model

// Package model defines the domain data shared by the download coordinator
// and the host: per-URL cache entries and their state transitions.
