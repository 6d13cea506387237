package app

import (
	"fmt"

	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/plugin"
	"github.com/bethropolis/grove/plugins/autosave"
	"github.com/bethropolis/grove/plugins/wordcount"
)

// registerPlugins registers the built-in plugins with pm. It returns the
// first registration error; the remaining plugins are still registered.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	pluginConstructors := []func() plugin.Plugin{
		wordcount.New,
		autosave.New,
	}

	var finalErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr
			}
		}
	}
	return finalErr
}
