package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadKind says what a running game must rebuild after a file edit.
type ReloadKind int

const (
	ReloadNone ReloadKind = iota
	ReloadConfig
	ReloadScript
)

var reloadKinds = map[string]ReloadKind{
	".yaml":  ReloadConfig,
	".yml":   ReloadConfig,
	".tengo": ReloadScript,
}

// KindOf classifies path by extension.
func KindOf(path string) ReloadKind {
	return reloadKinds[strings.ToLower(filepath.Ext(path))]
}

// Watcher reports edited tuning tables and pattern scripts. Repeated writes
// to one file within Debounce collapse into a single path on Events. Both
// channels are closed once the watcher stops.
type Watcher struct {
	Events chan string
	Errors chan error

	Debounce time.Duration

	fs   *fsnotify.Watcher
	done chan struct{}
	stop sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		Debounce: 100 * time.Millisecond,
		fs:       fw,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.Events)
	defer close(w.Errors)

	seen := make(map[string]time.Time)
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Errors is buffered by one; a reader that lags only loses repeats.
			select {
			case w.Errors <- err:
			default:
			}
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.relevant(ev, seen) {
				continue
			}
			select {
			case w.Events <- ev.Name:
			case <-w.done:
				return
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event, seen map[string]time.Time) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if KindOf(ev.Name) == ReloadNone {
		return false
	}
	now := time.Now()
	if last, ok := seen[ev.Name]; ok && now.Sub(last) < w.Debounce {
		return false
	}
	seen[ev.Name] = now
	return true
}
