package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reload is delivered when the watched config file changes. Err is set
// when the new contents could not be loaded; Config is then zero.
type Reload struct {
	Config Config
	Err    error
}

// ErrWatcherStopped is returned by Start once the watcher has been stopped.
var ErrWatcherStopped = errors.New("config watcher already stopped")

// Watcher monitors a config file and reloads it on change.
//
// A Watcher is single-use: after Stop, Start returns ErrWatcherStopped.
//
// The parent directory is watched rather than the file so that editors
// which replace the file on save are still seen.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	reloads chan Reload

	// Debouncing
	debounceDelay time.Duration
	timer         *time.Timer
	timerMu       sync.Mutex

	// Lifecycle; stopped stays true once Stop has run
	stopCh    chan struct{}
	stoppedCh chan struct{}
	running   bool
	stopped   bool
	runningMu sync.Mutex
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string) *Watcher {
	return &Watcher{
		path:          filepath.Clean(path),
		reloads:       make(chan Reload, 8),
		debounceDelay: 100 * time.Millisecond,
		stopCh:        make(chan struct{}),
		stoppedCh:     make(chan struct{}),
	}
}

// Reloads returns the channel on which reloads are delivered. It is closed by Stop.
func (w *Watcher) Reloads() <-chan Reload {
	return w.reloads
}

// Start begins watching. The config directory must exist.
// Calling Start on a running watcher is a no-op.
func (w *Watcher) Start() error {
	w.runningMu.Lock()
	defer w.runningMu.Unlock()

	if w.stopped {
		return ErrWatcherStopped
	}
	if w.running {
		return nil
	}

	// Watch the directory, events are filtered by file name in watchLoop
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return err
	}
	w.watcher = watcher

	// Start the watch loop
	w.running = true
	go w.watchLoop()

	return nil
}

// Stop terminates the watcher and closes the reloads channel.
func (w *Watcher) Stop() {
	w.runningMu.Lock()
	if !w.running {
		w.runningMu.Unlock()
		return
	}
	w.running = false
	w.stopped = true
	w.runningMu.Unlock()

	// Signal stop and wait for clean shutdown
	close(w.stopCh)
	<-w.stoppedCh

	// Clean up the pending debounce timer
	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timerMu.Unlock()

	w.watcher.Close()
	// The loop has exited, so nothing can send on reloads anymore
	close(w.reloads)
}

// watchLoop processes fsnotify events until Stop is called.
func (w *Watcher) watchLoop() {
	defer close(w.stoppedCh)

	fire := make(chan struct{}, 1)
	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Only the config file itself matters
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			w.debounce(fire)

		case <-fire:
			// Debounce elapsed, reload and deliver
			cfg, err := Resolve(w.path)
			select {
			case w.reloads <- Reload{Config: cfg, Err: err}:
			case <-w.stopCh:
				return
			}

		// Watch errors are delivered as failed reloads
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.reloads <- Reload{Err: fmt.Errorf("watch config: %w", err)}:
			case <-w.stopCh:
				return
			}
		}
	}
}

// debounce coalesces bursts of events into a single reload. Each event
// resets the timer; fire is buffered so a reload pending in the loop is
// not queued twice.
func (w *Watcher) debounce(fire chan<- struct{}) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
}
