package config

import (
	"encoding/json"
	"os"

	"github.com/Maia-Everett/ghetto-skype/internal/logger"
)

// SettingsFileName is the name of the settings file in the user data directory
const SettingsFileName = "settings.json"

// Settings keys recognized by the host
const (
	KeyProxyRules = "ProxyRules"
	KeyZoomFactor = "ZoomFactor"
	KeyTheme      = "Theme"
)

// Default values
const (
	DefaultZoomFactor = 1.0
	DefaultTheme      = ""
	DefaultProxyRules = ""
)

// Settings is the process-wide key/value configuration. Keys other than the
// documented ones are kept and persisted untouched.
type Settings map[string]any

// Defaults returns the built-in settings used when no file overrides them
func Defaults() Settings {
	return Settings{
		KeyProxyRules: DefaultProxyRules,
		KeyZoomFactor: DefaultZoomFactor,
		KeyTheme:      DefaultTheme,
	}
}

// Clone returns a shallow copy of the settings
func (s Settings) Clone() Settings {
	cloned := make(Settings, len(s))
	for k, v := range s {
		cloned[k] = v
	}
	return cloned
}

// Merge overwrites keys in s with those present in partial
func (s Settings) Merge(partial Settings) {
	for k, v := range partial {
		s[k] = v
	}
}

// ProxyRules returns the proxy rule string, empty when no proxy is configured
func (s Settings) ProxyRules() string {
	return s.stringValue(KeyProxyRules)
}

// Theme returns the configured theme name, empty for the built-in look
func (s Settings) Theme() string {
	return s.stringValue(KeyTheme)
}

// ZoomFactor returns the UI zoom factor, DefaultZoomFactor when unset or invalid
func (s Settings) ZoomFactor() float64 {
	var zoom float64
	switch v := s[KeyZoomFactor].(type) {
	case float64:
		zoom = v
	case float32:
		zoom = float64(v)
	case int:
		zoom = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return DefaultZoomFactor
		}
		zoom = f
	default:
		return DefaultZoomFactor
	}
	if zoom <= 0 {
		return DefaultZoomFactor
	}
	return zoom
}

func (s Settings) stringValue(key string) string {
	v, _ := s[key].(string)
	return v
}

// Load reads the settings file at path and layers it over Defaults. A missing
// or malformed file means "no overrides" and is never an error.
func Load(path string, log logger.Logger) Settings {
	settings := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("Cannot read settings file %s, using defaults: %v", path, err)
		}
		return settings
	}

	var overrides Settings
	if err := json.Unmarshal(data, &overrides); err != nil {
		log.Warn("Ignoring malformed settings file %s: %v", path, err)
		return settings
	}

	settings.Merge(overrides)
	return settings
}
