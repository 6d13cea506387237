// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/bethropolis/grove/internal/event"
	"github.com/bethropolis/grove/internal/modehandler"
	"github.com/bethropolis/grove/internal/plugin"
	"github.com/bethropolis/grove/internal/tree"
)

var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI is the plugin.EditorAPI backed by the running App.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Outline Access ---

func (api *appEditorAPI) Forest() []*tree.Node {
	return api.app.editor.Forest()
}

func (api *appEditorAPI) FilePath() string {
	return api.app.editor.Path()
}

func (api *appEditorAPI) IsModified() bool {
	return api.app.editor.Modified()
}

// --- Document ---

func (api *appEditorAPI) Save() error {
	return api.app.editor.Save()
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) func() {
	return api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app.modeHandler == nil {
		return fmt.Errorf("mode handler not ready")
	}
	return api.app.modeHandler.RegisterCommand(name, modehandler.CommandFunc(cmdFunc))
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

func (api *appEditorAPI) RequestRedraw() {
	api.app.requestRedraw()
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
