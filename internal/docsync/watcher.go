package docsync

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the root directory and triggers a re-sync when a
// document or any other file under it changes. Source files are not
// tracked individually; any relevant change falls inside the debounce
// window and the next run re-reads everything it needs.
type Watcher struct {
	rootDir      string
	discovery    *Discovery
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	onChange     func()
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewWatcher creates a file watcher rooted at rootDir. onChange runs
// after the debounce window closes.
func NewWatcher(rootDir string, discovery *Discovery, debounce time.Duration, onChange func()) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		rootDir:      rootDir,
		discovery:    discovery,
		watcher:      watcher,
		debounceTime: debounce,
		onChange:     onChange,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		watcher.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

// watch is the event loop with debouncing.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	syncCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.shouldProcessEvent(event) {
				continue
			}

			// New directories need watches of their own.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addDirectoriesRecursively(event.Name); err != nil {
						log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
					}
				}
			}

			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(w.debounceTime, func() {
				select {
				case syncCh <- struct{}{}:
				default:
				}
			})

		case <-syncCh:
			w.onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// shouldProcessEvent filters events down to relevant file operations in
// non-ignored locations.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	relPath, err := filepath.Rel(w.rootDir, event.Name)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	return !w.discovery.shouldIgnore(relPath)
}

// addDirectoriesRecursively adds dir and its non-ignored subdirectories
// to the watcher.
func (w *Watcher) addDirectoriesRecursively(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if base := filepath.Base(path); strings.HasPrefix(base, ".") && path != w.rootDir {
			return filepath.SkipDir
		}
		relPath, err := filepath.Rel(w.rootDir, path)
		if err == nil && relPath != "." && w.discovery.shouldIgnore(filepath.ToSlash(relPath)) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
