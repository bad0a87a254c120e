package bundle

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Options selects the bundle the host wants.
type Options struct {
	// Source is SourceDisk to serve resources from Path; anything else means the
	// embedded bundle.
	Source Source
	Path   string
}

// Load returns the bundle described by opts. A disk bundle whose directory or
// manifest cannot be found falls back to the embedded default bundle. A disk
// bundle with a malformed manifest is an error.
func Load(opts Options) (*Bundle, error) {
	if opts.Source != SourceDisk {
		slog.Debug("Using embedded bundle")
		return Default(), nil
	}

	root, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve bundle path %q: %w", opts.Path, err)
	}

	if _, err := os.Stat(filepath.Join(root, ManifestFile)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("Bundle directory has no manifest, falling back to embedded bundle", "path", root)
			return Default(), nil
		}
		return nil, fmt.Errorf("stat bundle manifest: %w", err)
	}

	b, err := New(afero.NewBasePathFs(afero.NewOsFs(), root), SourceDisk)
	if err != nil {
		return nil, fmt.Errorf("load bundle from %s: %w", root, err)
	}
	b.root = root

	slog.Info("Loaded bundle from disk", "path", root, "identifier", b.Identifier())
	return b, nil
}
