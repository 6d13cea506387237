// internal/plugin/manager.go
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/grove/internal/logger"
)

// Manager handles the registration, initialization, and lifecycle of plugins.
type Manager struct {
	mu          sync.RWMutex
	plugins     map[string]Plugin
	initialized []Plugin
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager. It must be called before
// InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}

	m.plugins[name] = plugin
	logger.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// Names returns the registered plugin names in sorted order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitializePlugins calls Initialize on every registered plugin in name
// order. A plugin that fails is logged and skipped; the others still load.
func (m *Manager) InitializePlugins(api EditorAPI) {
	names := m.Names()
	logger.Debugf("Plugin Manager: Initializing %d plugins...", len(names))

	for _, name := range names {
		plugin, _ := m.GetPlugin(name)
		if err := plugin.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", name, err)
			continue
		}
		m.mu.Lock()
		m.initialized = append(m.initialized, plugin)
		m.mu.Unlock()
		logger.Debugf("Plugin Manager: Successfully initialized plugin '%s'", name)
	}
}

// ShutdownPlugins calls Shutdown on the initialized plugins in reverse
// order of initialization.
func (m *Manager) ShutdownPlugins() {
	m.mu.Lock()
	toShutdown := m.initialized
	m.initialized = nil
	m.mu.Unlock()

	logger.Debugf("Plugin Manager: Shutting down %d plugins...", len(toShutdown))
	for i := len(toShutdown) - 1; i >= 0; i-- {
		plugin := toShutdown[i]
		if err := plugin.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugin.Name(), err)
		}
	}
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}
