package app

import (
	"github.com/bethropolis/grove/internal/event"
	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/theme"
)

func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeTreeChanged, a.handleOutlineChanged)
	a.eventManager.Subscribe(event.TypeHistoryChanged, a.handleOutlineChanged)
	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleOutlineChanged)
	a.eventManager.Subscribe(event.TypeDocumentSaved, a.handleDocumentSaved)
	a.eventManager.Subscribe(event.TypeExternalChange, a.handleExternalChange)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
}

// handleOutlineChanged refreshes the status bar after any editor change.
func (a *App) handleOutlineChanged(e event.Event) bool {
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

// handleDocumentSaved follows the document to its new path after :w <file>.
func (a *App) handleDocumentSaved(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentData); ok && a.watcher != nil {
		if err := a.watcher.Retarget(data.FilePath); err != nil {
			logger.Warnf("App: Not watching %s: %v", data.FilePath, err)
		}
	}
	return a.handleOutlineChanged(e)
}

func (a *App) handleExternalChange(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentData); ok {
		logger.Infof("App: Reloaded %s after an external change", data.FilePath)
		a.statusBar.SetTemporaryMessage("Reloaded %s", data.FilePath)
	}
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

func (a *App) handleThemeChanged(e event.Event) bool {
	current := a.themeManager.Current()
	a.statusBar.SetConfig(statusBarConfig(current))
	a.tuiManager.SetStyle(current.GetStyle(theme.StyleDefault))
	a.requestRedraw()
	return false
}
