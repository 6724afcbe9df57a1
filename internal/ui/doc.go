// Package ui contains the Fyne views rendered inside host windows: the main
// window and the settings window. Views talk to the host only through the
// message gateway. All UI strings are localized via Localization.
package ui
