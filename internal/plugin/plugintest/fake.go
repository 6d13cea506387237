// Package plugintest provides an in-memory plugin.EditorAPI for plugin tests.
package plugintest

import (
	"fmt"
	"sync"

	"github.com/bethropolis/grove/internal/event"
	"github.com/bethropolis/grove/internal/plugin"
	"github.com/bethropolis/grove/internal/tree"
)

var _ plugin.EditorAPI = (*API)(nil)

// API records what a plugin did. Set the exported fields before use.
type API struct {
	mu sync.Mutex

	Nodes    []*tree.Node
	Path     string
	Modified bool
	SaveErr  error
	Config   map[string]interface{} // keyed by "plugin.key"

	Events   *event.Manager
	Commands map[string]plugin.CommandFunc
	Saves    int
	Messages []string
	Redraws  int
}

// New returns an API with an empty outline and its own event manager.
func New() *API {
	return &API{
		Config:   make(map[string]interface{}),
		Events:   event.NewManager(),
		Commands: make(map[string]plugin.CommandFunc),
	}
}

func (a *API) Forest() []*tree.Node { return a.Nodes }
func (a *API) FilePath() string     { return a.Path }

func (a *API) IsModified() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Modified
}

func (a *API) Save() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.SaveErr != nil {
		return a.SaveErr
	}
	a.Saves++
	a.Modified = false
	return nil
}

// SaveCount returns the number of successful saves.
func (a *API) SaveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Saves
}

// SetModified marks the outline dirty or clean.
func (a *API) SetModified(m bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Modified = m
}

func (a *API) SubscribeEvent(t event.Type, h event.Handler) func() {
	return a.Events.Subscribe(t, h)
}

func (a *API) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, ok := a.Commands[name]; ok {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.Commands[name] = fn
	return nil
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Messages = append(a.Messages, fmt.Sprintf(format, args...))
}

// LastMessage returns the most recent status message.
func (a *API) LastMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.Messages) == 0 {
		return ""
	}
	return a.Messages[len(a.Messages)-1]
}

func (a *API) RequestRedraw() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Redraws++
}

func (a *API) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := a.Config[pluginName+"."+key]
	return v, ok
}
