package chatclient

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeStore persists the theme across runs.
type ThemeStore interface {
	LoadTheme() (Theme, error)
	SaveTheme(Theme) error
}

type settingsFile struct {
	Theme Theme `yaml:"theme"`
}

// FileThemeStore keeps the theme in a small YAML settings file.
type FileThemeStore struct {
	path string
}

func NewFileThemeStore(path string) *FileThemeStore {
	return &FileThemeStore{path: path}
}

// DefaultThemePath is settings.yaml under the user's config directory.
func DefaultThemePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "botnest", "settings.yaml"), nil
}

// LoadTheme returns ThemeLight when no settings file exists yet. Anything other
// than "dark" reads as light.
func (s *FileThemeStore) LoadTheme() (Theme, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return ThemeLight, nil
	}
	if err != nil {
		return ThemeLight, fmt.Errorf("read theme file: %w", err)
	}

	var settings settingsFile
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return ThemeLight, fmt.Errorf("parse theme file: %w", err)
	}
	if settings.Theme == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

func (s *FileThemeStore) SaveTheme(theme Theme) error {
	data, err := yaml.Marshal(settingsFile{Theme: theme})
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write theme file: %w", err)
	}
	return nil
}
