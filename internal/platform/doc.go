package platform

// Package platform contains OS integration glue: launching the default
// application for a file, unique temporary file names, MIME-derived file
// extensions and directory helpers.
