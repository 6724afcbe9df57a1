package ui

// Icons
const (
	IconSettings = "⚙"
	IconImage    = "🖼"
)

// Window sizing
const (
	MainWindowWidth      float32 = 800
	MainWindowHeight     float32 = 600
	SettingsWindowWidth  float32 = 800
	SettingsWindowHeight float32 = 400
)

// Zoom factor accepted by the settings form
const (
	MinZoomFactor = 0.25
	MaxZoomFactor = 5.0
)

// NoTheme is the theme selector entry meaning "fyne default"
const NoTheme = ""
