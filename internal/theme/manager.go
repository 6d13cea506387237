package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/grove/internal/logger"
)

// Manager holds loaded themes and the active one. Theme names are matched
// case-insensitively.
type Manager struct {
	mutex       sync.RWMutex
	themes      map[string]*Theme
	activeTheme *Theme
}

// NewManager creates a manager holding the built-in themes, with Default
// Dark active.
func NewManager() *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	dark, light := DefaultDark, DefaultLight
	m.add(&dark)
	m.add(&light)
	m.activeTheme = m.themes[strings.ToLower(dark.Name)]
	return m
}

func (m *Manager) add(t *Theme) {
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Warnf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadFile adds the theme in a TOML file and returns its name.
func (m *Manager) LoadFile(path string) (string, error) {
	t, err := LoadThemeFromFile(path)
	if err != nil {
		return "", err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.add(t)
	return t.Name, nil
}

// LoadDir adds every .toml theme in dir. A missing directory is not an
// error; files that fail to parse are logged and skipped.
func (m *Manager) LoadDir(dir string) (int, error) {
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}
	loaded := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		path := filepath.Join(dir, file.Name())
		if _, err := m.LoadFile(path); err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", path, err)
			continue
		}
		loaded++
	}
	logger.Infof("Loaded %d custom themes from %s", loaded, dir)
	return loaded, nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme makes the theme called name active.
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	t, ok := m.themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != t {
		m.activeTheme = t
		logger.Infof("Active theme set to: %s", t.Name)
	}
	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
