package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/aprit/internal/model"
	"github.com/ytget/aprit/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyDefaultConnections = "default_connections"
	KeySkipExitPrompt     = "skip_exit_prompt"
	KeyLanguage           = "app_language"
)

// Default values
const (
	DefaultDownloadDir    = "/tmp/downloads"
	DefaultSkipExitPrompt = false
	DefaultLanguage       = "system"
)

// Settings manages persisted application preferences
type Settings struct {
	prefs fyne.Preferences
}

// NewSettings creates a settings manager backed by the app's preferences
func NewSettings(app fyne.App) *Settings {
	return &Settings{prefs: app.Preferences()}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.prefs.String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = DefaultDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory. Empty input is ignored.
func (s *Settings) SetDownloadDirectory(dir string) {
	if dir == "" {
		return
	}
	s.prefs.SetString(KeyDownloadDir, dir)
}

// GetDefaultConnections returns the connection count for new sessions
func (s *Settings) GetDefaultConnections() int {
	value := s.prefs.Int(KeyDefaultConnections)
	if value <= 0 {
		s.SetDefaultConnections(model.DefaultConnections)
		return model.DefaultConnections
	}
	return model.ClampConnections(value)
}

// SetDefaultConnections sets the connection count for new sessions
func (s *Settings) SetDefaultConnections(count int) {
	s.prefs.SetInt(KeyDefaultConnections, model.ClampConnections(count))
}

// SkipExitPrompt reports whether the exit confirmation is disabled
func (s *Settings) SkipExitPrompt() bool {
	return s.prefs.BoolWithFallback(KeySkipExitPrompt, DefaultSkipExitPrompt)
}

// SetSkipExitPrompt persists the "don't ask again" choice
func (s *Settings) SetSkipExitPrompt(skip bool) {
	s.prefs.SetBool(KeySkipExitPrompt, skip)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.prefs.String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.prefs.SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"zh":     "中文",
	}
}

// SessionDefaults returns the configuration given to new sessions
func (s *Settings) SessionDefaults() model.SessionConfig {
	return model.SessionConfig{
		DestinationDir: s.GetDownloadDirectory(),
		Connections:    s.GetDefaultConnections(),
	}
}
