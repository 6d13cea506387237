package watcher

import (
	"sync"
	"time"
)

// Debouncer provides a way to debounce function calls
type Debouncer struct {
	mutex sync.Mutex
	timer *time.Timer
}

// Debounce calls the provided function after the specified duration,
// canceling any previous pending calls
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		d.timer = nil
		d.mutex.Unlock()
		fn()
	})
}

// Stop cancels a pending call, if any.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
