package design

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind describes the type of corpus change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // design record edited
	ChangeRemoved                    // design record deleted
	ChangeAdded                      // new design record appeared
)

// Change represents a detected change in the corpus directory.
type Change struct {
	Kind   ChangeKind
	Design string // design directory name
	File   string // absolute path
}

// Watcher monitors a corpus root for design record changes using fsnotify.
// fsnotify does not recurse, so the root and every design_* subdirectory
// are watched individually; new design directories are picked up from
// create events on the root.
type Watcher struct {
	Root    string
	Changes <-chan Change // read-only external channel

	changes chan Change // internal write channel
	done    chan struct{}
	watcher *fsnotify.Watcher

	// known tracks record files seen so far, to distinguish added from
	// modified. Touched only by the loop goroutine after Start.
	known map[string]bool
}

// NewWatcher creates a new watcher for the given corpus root.
func NewWatcher(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		Root:    root,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
		known:   make(map[string]bool),
	}
	return w, nil
}

// Start begins watching the corpus root and its design directories.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Root); err != nil {
		return err
	}
	dirs, err := ScanCorpus(w.Root)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		record := filepath.Join(dir, RecordFileName)
		if _, err := os.Stat(record); err == nil {
			w.known[record] = true
		}
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and channels.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done // wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file so editor save bursts
	// coalesce into one change.
	const debounce = 100 * time.Millisecond
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				// Drain pending on close.
				for file := range pending {
					w.emitChange(file)
				}
				return
			}

			// A new design directory: start watching it for records.
			if event.Has(fsnotify.Create) && w.isDesignDir(event.Name) {
				_ = w.watcher.Add(event.Name)
				continue
			}

			if !w.isRecordFile(event.Name) {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) {
				pending[event.Name] = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= debounce {
					w.emitChange(file)
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// emitChange classifies a settled file event and publishes it.
func (w *Watcher) emitChange(file string) {
	var kind ChangeKind
	switch {
	case !exists(file):
		kind = ChangeRemoved
		delete(w.known, file)
	case !w.known[file]:
		kind = ChangeAdded
		w.known[file] = true
	default:
		kind = ChangeModified
	}
	w.changes <- Change{
		Kind:   kind,
		Design: filepath.Base(filepath.Dir(file)),
		File:   file,
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (w *Watcher) isRecordFile(path string) bool {
	return filepath.Base(path) == RecordFileName
}

func (w *Watcher) isDesignDir(path string) bool {
	return filepath.Dir(path) == filepath.Clean(w.Root) &&
		strings.HasPrefix(filepath.Base(path), designDirPrefix)
}
