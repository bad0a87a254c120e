// Package bundle provides the resource container that ships with the view
// module: its manifest, localized strings, quotes and images.
//
// The default bundle is compiled into the binary. A bundle can also be served
// from a directory on disk, which is useful while iterating on resources.
package bundle

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	gocache "github.com/patrickmn/go-cache"
	"github.com/spf13/afero"

	"github.com/nfrund/golfjourneys/web"
)

// ErrNotFound is returned when a resource is not part of the bundle.
var ErrNotFound = errors.New("resource not found in bundle")

// Source says where a bundle's files come from.
type Source string

const (
	SourceEmbedded Source = "embed"
	SourceDisk     Source = "disk"
	SourceMemory   Source = "memory"
)

// Bundle is a read-only handle to a set of module resources.
type Bundle struct {
	fs     afero.Fs
	source Source
	// root is the directory a disk bundle was loaded from.
	root string

	manifest atomic.Pointer[Manifest]
	cache    *gocache.Cache

	// reloadMu orders cache writes against Reload; generation counts reloads.
	reloadMu   sync.RWMutex
	generation uint64
}

var defaultBundle = sync.OnceValue(func() *Bundle {
	sub, err := fs.Sub(web.Resources, web.ResourcesRoot)
	if err != nil {
		panic(fmt.Sprintf("bundle: embedded resources unavailable: %v", err))
	}

	b, err := New(afero.FromIOFS{FS: sub}, SourceEmbedded)
	if err != nil {
		panic(fmt.Sprintf("bundle: embedded resources are invalid: %v", err))
	}
	return b
})

// Default returns the bundle compiled into the binary. It is created on first
// use and the same instance is returned on every call.
func Default() *Bundle {
	return defaultBundle()
}

// New opens a bundle over fsys. The filesystem is wrapped read-only and must
// hold a valid manifest.yaml at its root.
func New(fsys afero.Fs, source Source) (*Bundle, error) {
	b := &Bundle{
		fs:     afero.NewReadOnlyFs(fsys),
		source: source,
		// Entries never expire; Reload flushes them.
		cache: gocache.New(gocache.NoExpiration, 0),
	}

	m, err := b.readManifest()
	if err != nil {
		return nil, err
	}
	b.manifest.Store(m)

	return b, nil
}

// Identifier returns the bundle identifier from the manifest, e.g. "com.golfjourneys.views".
func (b *Bundle) Identifier() string {
	return b.Manifest().Identifier
}

// Manifest returns the currently loaded manifest. Callers must not modify it.
func (b *Bundle) Manifest() *Manifest {
	return b.manifest.Load()
}

// Source reports where the bundle's files are read from.
func (b *Bundle) Source() Source {
	return b.source
}

// Root returns the directory a disk bundle was loaded from, or "" otherwise.
func (b *Bundle) Root() string {
	return b.root
}

// ReadFile returns the contents of a bundle resource. Paths are slash
// separated and relative to the bundle root.
func (b *Bundle) ReadFile(name string) ([]byte, error) {
	clean, err := cleanPath(name)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(b.fs, clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
		}
		return nil, fmt.Errorf("read %s: %w", clean, err)
	}
	return data, nil
}

// Exists reports whether a resource exists in the bundle.
func (b *Bundle) Exists(name string) bool {
	clean, err := cleanPath(name)
	if err != nil {
		return false
	}
	ok, err := afero.Exists(b.fs, clean)
	return err == nil && ok
}

// Files lists every file in the bundle, sorted.
func (b *Bundle) Files() ([]string, error) {
	var files []string
	err := afero.Walk(b.fs, ".", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path.Clean(strings.ReplaceAll(p, "\\", "/")))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk bundle: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// Reload re-reads the manifest and drops every cached table. If the new
// manifest is invalid the previous one stays active and the error is returned.
func (b *Bundle) Reload() error {
	m, err := b.readManifest()
	if err != nil {
		return err
	}
	b.reloadMu.Lock()
	defer b.reloadMu.Unlock()
	b.manifest.Store(m)
	b.generation++
	b.cache.Flush()
	return nil
}

func (b *Bundle) readManifest() (*Manifest, error) {
	data, err := afero.ReadFile(b.fs, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return ParseManifest(data)
}

// cached returns the value stored under key or computes and stores it. A
// value computed across a Reload is returned but not stored.
func cached[T any](b *Bundle, key string, load func() (T, error)) (T, error) {
	if v, ok := b.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	b.reloadMu.RLock()
	gen := b.generation
	b.reloadMu.RUnlock()

	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	b.reloadMu.RLock()
	if b.generation == gen {
		b.cache.Set(key, v, gocache.DefaultExpiration)
	}
	b.reloadMu.RUnlock()
	return v, nil
}

// cleanPath normalises a resource path and rejects anything that escapes the bundle root.
func cleanPath(name string) (string, error) {
	p := path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotFound)
	}
	return p, nil
}
