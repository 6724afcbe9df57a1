// Package theme compiles theme files into fyne themes for the settings
// window and applies the zoom factor.
package theme
