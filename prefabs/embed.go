package prefabs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var PrefabsFS embed.FS

// Loader reads prefab files from an ordered list of filesystems. The first
// source that has a file wins, so a disk directory placed before the embedded
// files overrides them.
type Loader struct {
	sources []fs.FS
}

// NewLoader returns a loader that prefers files under dir, when set, and
// falls back to the embedded prefabs.
func NewLoader(dir string) *Loader {
	l := &Loader{}
	if dir != "" {
		l.sources = append(l.sources, os.DirFS(dir))
	}
	l.sources = append(l.sources, PrefabsFS)
	return l
}

// NewLoaderFS returns a loader over the given sources only.
func NewLoaderFS(sources ...fs.FS) *Loader {
	return &Loader{sources: sources}
}

func (l *Loader) Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if clean == "" {
		return nil, errors.New("prefabs: empty path")
	}
	var lastErr error
	for _, src := range l.sources {
		data, err := fs.ReadFile(src, clean)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fs.ErrNotExist
	}
	return nil, fmt.Errorf("prefabs: read %s: %w", clean, lastErr)
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := path.Clean(filepath.ToSlash(p))
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}
	return strings.TrimPrefix(s, "/")
}
