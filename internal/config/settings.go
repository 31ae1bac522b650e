package config

import (
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir    = "download_directory"
	KeyToolPath       = "tool_path"
	KeyOutputTemplate = "output_template"
	KeyTimeoutSeconds = "timeout_seconds"
)

// MaxTimeoutSeconds caps the timeout accepted from the settings dialog
const MaxTimeoutSeconds = 24 * 60 * 60

// Settings manages desktop preferences, falling back to the loaded Config
type Settings struct {
	app      fyne.App
	defaults *Config
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App, defaults *Config) *Settings {
	if defaults == nil {
		defaults = Default()
	}
	return &Settings{app: app, defaults: defaults}
}

// GetDownloadDirectory returns the configured download directory.
// An empty result means the platform downloads directory is resolved per download.
func (s *Settings) GetDownloadDirectory() string {
	return s.app.Preferences().StringWithFallback(KeyDownloadDir, s.defaults.DownloadDir)
}

// SetDownloadDirectory sets the download directory; empty restores the default
func (s *Settings) SetDownloadDirectory(dir string) {
	if dir == "" {
		s.app.Preferences().RemoveValue(KeyDownloadDir)
		return
	}
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetToolPath returns the yt-dlp executable
func (s *Settings) GetToolPath() string {
	path := s.app.Preferences().String(KeyToolPath)
	if path == "" {
		return s.defaults.ToolPath
	}
	return path
}

// SetToolPath sets the yt-dlp executable; empty restores the default
func (s *Settings) SetToolPath(path string) {
	if path == "" {
		s.app.Preferences().RemoveValue(KeyToolPath)
		return
	}
	s.app.Preferences().SetString(KeyToolPath, path)
}

// GetOutputTemplate returns the filename template
func (s *Settings) GetOutputTemplate() string {
	template := s.app.Preferences().String(KeyOutputTemplate)
	if template == "" {
		return s.defaults.OutputTemplate
	}
	return template
}

// SetOutputTemplate sets the filename template; empty restores the default
func (s *Settings) SetOutputTemplate(template string) {
	if template == "" {
		s.app.Preferences().RemoveValue(KeyOutputTemplate)
		return
	}
	s.app.Preferences().SetString(KeyOutputTemplate, template)
}

// GetTimeout returns the per-invocation timeout, zero meaning none
func (s *Settings) GetTimeout() time.Duration {
	seconds := s.app.Preferences().IntWithFallback(KeyTimeoutSeconds, -1)
	if seconds < 0 {
		return s.defaults.Timeout
	}
	return time.Duration(seconds) * time.Second
}

// SetTimeoutSeconds sets the per-invocation timeout, clamped to [0, MaxTimeoutSeconds]
func (s *Settings) SetTimeoutSeconds(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	if seconds > MaxTimeoutSeconds {
		seconds = MaxTimeoutSeconds
	}
	s.app.Preferences().SetInt(KeyTimeoutSeconds, seconds)
}
