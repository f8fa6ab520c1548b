package i18n

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/engagement-dashboard-tui/internal/logger"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a Translator whenever a catalog in its directory changes.
type Watcher struct {
	translator *Translator
	watcher    *fsnotify.Watcher
	onReload   func(error)
	stopChan   chan struct{}
	once       sync.Once

	mu            sync.Mutex
	debounceTimer *time.Timer
}

// Watch starts watching the translator's override directory. onReload is
// called after every reload attempt with its error, if any.
func Watch(t *Translator, onReload func(error)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(t.Dir()); err != nil {
		if closeErr := fw.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return nil, err
	}

	w := &Watcher{
		translator: t,
		watcher:    fw,
		onReload:   onReload,
		stopChan:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".yaml") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("translation watcher error", "error", err)

		case <-w.stopChan:
			return
		}
	}
}

// schedule debounces bursts of editor writes into one reload.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	err := w.translator.Reload()
	if err != nil {
		logger.Warn("failed to reload translations", "dir", w.translator.Dir(), "error", err)
	} else {
		logger.Info("translations reloaded", "locale", w.translator.Locale())
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stopChan)
		w.mu.Lock()
		if w.debounceTimer != nil {
			w.debounceTimer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}
