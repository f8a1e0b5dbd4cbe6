package codebase

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileWatcher polls the codebase root for added, modified and removed
// .java files, rescans them and reports the changed paths to OnChange.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time

	OnChange func(changed []string)
}

func NewFileWatcher(c *Codebase, interval time.Duration) *FileWatcher {
	if interval <= 0 {
		interval = 1 * time.Second
	}
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if changed := w.scan(); len(changed) > 0 && w.OnChange != nil {
				w.OnChange(changed)
			}
		}
	}
}

// scan returns the paths that appeared, changed or disappeared since the
// previous scan.
func (w *FileWatcher) scan() []string {
	currentFiles := make(map[string]bool)
	var changed []string

	filepath.Walk(w.codebase.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != w.codebase.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".java" {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			if err := w.codebase.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
			changed = append(changed, path)
		}
		return nil
	})

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return changed
}
