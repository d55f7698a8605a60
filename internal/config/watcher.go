package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SettingsWatcher calls back when settings.json changes on disk. It
// watches the directory rather than the file so editors that replace the
// file on save are still seen.
type SettingsWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	onChange func()
	debounce time.Duration
	stop     chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewSettingsWatcher creates a watcher for settings.json in dir
func NewSettingsWatcher(dir string, onChange func()) (*SettingsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &SettingsWatcher{
		watcher:  w,
		dir:      dir,
		onChange: onChange,
		debounce: 100 * time.Millisecond,
		stop:     make(chan struct{}),
	}, nil
}

// Start begins watching
func (sw *SettingsWatcher) Start() error {
	if err := sw.watcher.Add(sw.dir); err != nil {
		sw.watcher.Close()
		return err
	}

	log.Printf("STARCALC Watcher: Started watching %s", sw.dir)
	go sw.eventLoop()
	return nil
}

// Stop stops watching and releases the fsnotify handle. Safe to call twice.
func (sw *SettingsWatcher) Stop() {
	sw.mu.Lock()
	if sw.stopped {
		sw.mu.Unlock()
		return
	}
	sw.stopped = true
	sw.mu.Unlock()

	close(sw.stop)
	sw.watcher.Close()
	log.Printf("STARCALC Watcher: Stopped watching %s", sw.dir)
}

func (sw *SettingsWatcher) eventLoop() {
	var timer *time.Timer
	var timerMu sync.Mutex

	resetTimer := func() {
		timerMu.Lock()
		defer timerMu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(sw.debounce, func() {
			sw.mu.Lock()
			stopped := sw.stopped
			sw.mu.Unlock()

			if !stopped && sw.onChange != nil {
				log.Println("STARCALC Watcher: settings.json changed")
				sw.onChange()
			}
		})
	}

	for {
		select {
		case <-sw.stop:
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timerMu.Unlock()
			return

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != SettingsFileName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			resetTimer()

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("STARCALC Watcher: Error: %v", err)
		}
	}
}
