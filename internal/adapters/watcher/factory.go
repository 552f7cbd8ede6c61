package watcher

import "go.trai.ch/modscan/internal/core/ports"

// Factory implements ports.WatcherFactory.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory whose watchers report errors to logger.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// NewWatcher creates an fsnotify-backed watcher.
func (f *Factory) NewWatcher(ignores []string) (ports.Watcher, error) {
	w, err := NewWatcher(f.logger, ignores)
	if err != nil {
		return nil, err
	}
	return w, nil
}
