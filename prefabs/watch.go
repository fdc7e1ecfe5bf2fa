package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file must stay quiet before its change is reported.
// Editors often write a file several times per save.
const settle = 100 * time.Millisecond

// ChangeKind tells spec edits from script edits.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

// Change is one settled edit of a prefab file.
type Change struct {
	Path string
	Kind ChangeKind
}

// File returns the prefab file name, as used by Loader.Load.
func (c Change) File() string {
	return filepath.Base(c.Path)
}

// Watcher reports prefab and script files that changed on disk. A burst of
// writes to one file is reported once, after the file settles.
type Watcher struct {
	fs      *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes Events and Errors. It is safe to call
// more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

type pendingChange struct {
	kind ChangeKind
	at   time.Time
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := map[string]pendingChange{}
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			kind, ok := classify(event)
			if !ok {
				continue
			}
			pending[event.Name] = pendingChange{kind: kind, at: time.Now()}
			timer.Reset(settle)
		case <-timer.C:
			if !w.flush(pending) {
				return
			}
			if len(pending) > 0 {
				timer.Reset(settle)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// flush sends every settled change. It returns false if the watcher closed
// while sending.
func (w *Watcher) flush(pending map[string]pendingChange) bool {
	now := time.Now()
	for name, p := range pending {
		if now.Sub(p.at) < settle {
			continue
		}
		delete(pending, name)
		select {
		case w.Events <- Change{Path: name, Kind: p.kind}:
		case <-w.closeCh:
			return false
		}
	}
	return true
}

func classify(event fsnotify.Event) (ChangeKind, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return 0, false
	}
	switch {
	case isSpecFile(event.Name):
		return ChangeSpec, true
	case isScriptFile(event.Name):
		return ChangeScript, true
	default:
		return 0, false
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
