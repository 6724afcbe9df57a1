package browser

// Package browser implements ephemeral browsing contexts: a hidden window
// bound to an isolated session partition (own cookie jar, own transport and
// proxy) that triggers exactly one download and is then destroyed.
