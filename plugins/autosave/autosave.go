package autosave

import (
	"sync"
	"time"

	"github.com/bethropolis/grove/internal/logger"
	"github.com/bethropolis/grove/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave periodically saves the outline when it has unsaved edits.
// It is configured by the [plugins.autosave] table:
//
//	enabled = true
//	interval = "30s"
type AutoSave struct {
	api plugin.EditorAPI

	mutex    sync.RWMutex
	enabled  bool
	interval time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration and starts the save loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if enabledVal, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if boolVal, isBool := enabledVal.(bool); isBool {
			p.enabled = boolVal
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, enabledVal, p.enabled)
		}
	}

	if intervalVal, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if strVal, isStr := intervalVal.(string); isStr {
			parsed, err := time.ParseDuration(strVal)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, strVal, err, p.interval)
			case parsed <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, strVal, p.interval)
			default:
				p.interval = parsed
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, intervalVal, p.interval)
		}
	}
	isEnabled, interval := p.enabled, p.interval
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", pluginName, isEnabled, interval)

	if isEnabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(interval)
	}
	return nil
}

// Shutdown stops the save loop and waits for it.
func (p *AutoSave) Shutdown() error {
	if p.stopChan != nil {
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
		logger.Debugf("%s: Saver goroutine stopped.", p.Name())
	}
	return nil
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.saveIfModified()
		case <-p.stopChan:
			return
		}
	}
}

func (p *AutoSave) saveIfModified() {
	if !p.api.IsModified() {
		return
	}
	filePath := p.api.FilePath()
	if filePath == "" {
		logger.Debugf("%s: Outline is modified but has no file name, skipping auto-save.", p.Name())
		return
	}

	if err := p.api.Save(); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), filePath, err)
		p.api.SetStatusMessage("Auto-save failed: %v", err)
	} else {
		logger.Debugf("%s: Auto-saved '%s'", p.Name(), filePath)
		p.api.SetStatusMessage("Auto-saved %s", filePath)
	}
	p.api.RequestRedraw()
}
