package window

// Package window tracks the host's long-lived top-level windows. The Registry
// is the only way the host reaches every window at once; each Handle carries
// an inbox that renderer code subscribes to.
