// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/grove/internal/event"
	"github.com/bethropolis/grove/internal/tree"
)

// CommandFunc defines the signature for commands registered by plugins.
type CommandFunc func(args []string) error

// EditorAPI is what plugins may do with the open outline.
type EditorAPI interface {
	// --- Outline (read-only) ---
	Forest() []*tree.Node // callers must not modify it
	FilePath() string
	IsModified() bool

	// --- Document ---
	Save() error

	// --- Event Bus Interaction ---
	SubscribeEvent(eventType event.Type, handler event.Handler) (unsubscribe func())

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})
	RequestRedraw()

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins subscribe
	// to events and register commands here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the app is closing.
	Shutdown() error
}
