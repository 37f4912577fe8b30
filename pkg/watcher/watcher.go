// Package watcher provides a debounced file watcher built on fsnotify.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher watches files for changes and triggers callbacks
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	log       *zap.Logger
	mu        sync.Mutex
	callbacks map[string]func(string)
	debounce  time.Duration
	timers    map[string]*time.Timer
}

// Option configures a FileWatcher
type Option func(*FileWatcher)

// WithLogger sets the logger used for watcher errors and events
func WithLogger(log *zap.Logger) Option {
	return func(fw *FileWatcher) {
		if log != nil {
			fw.log = log
		}
	}
}

// NewFileWatcher creates a new file watcher. Bursts of events for the same
// file within debounce collapse into a single callback.
func NewFileWatcher(debounce time.Duration, opts ...Option) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:   watcher,
		log:       zap.NewNop(),
		callbacks: make(map[string]func(string)),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw, nil
}

// Watch starts watching the specified files
// callback will be called with the absolute path of the file that changed
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		if err := fw.watcher.Add(absPath); err != nil {
			return fmt.Errorf("failed to watch %s: %w", absPath, err)
		}

		fw.callbacks[absPath] = callback
		fw.log.Debug("watching file", zap.String("path", absPath))
	}

	return nil
}

// Files returns the watched paths in sorted order
func (fw *FileWatcher) Files() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	files := make([]string, 0, len(fw.callbacks))
	for file := range fw.callbacks {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// Run dispatches file events until ctx is cancelled or the watcher is
// closed.
func (fw *FileWatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			fw.stopTimers()
			return ctx.Err()

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			fw.log.Debug("file event", zap.String("path", event.Name), zap.Stringer("op", event.Op))

			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				fw.handleFileChange(event.Name, false)
			case event.Has(fsnotify.Rename), event.Has(fsnotify.Remove):
				// Editors that save by replacing the file drop the watch.
				fw.handleFileChange(event.Name, true)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			fw.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// Start runs the event loop in a background goroutine
func (fw *FileWatcher) Start(ctx context.Context) {
	go func() {
		_ = fw.Run(ctx)
	}()
}

// handleFileChange handles a file change event with debouncing
func (fw *FileWatcher) handleFileChange(filePath string, rewatch bool) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.callbacks[filePath]
	if !exists {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}

	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		if rewatch {
			if err := fw.watcher.Add(filePath); err != nil {
				fw.log.Warn("file disappeared", zap.String("path", filePath), zap.Error(err))
				return
			}
		}
		callback(filePath)
	})
}

func (fw *FileWatcher) stopTimers() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, timer := range fw.timers {
		timer.Stop()
	}
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	fw.stopTimers()
	return fw.watcher.Close()
}
