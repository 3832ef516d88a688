// Package loader resolves a catalog reference to a loaded Catalog.
//
// A reference is one of:
//   - empty: the built-in catalog
//   - a .json or .toml file path
//   - a .db/.sqlite/.sqlite3 library path, optionally suffixed with #name
//   - a bare name looked up in the default library, falling back to the
//     built-in catalog when the name matches it
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/shadow/internal/catalog"
	"github.com/verte-zerg/shadow/internal/store"
)

// Loader loads catalogs from files and from a SQLite library.
type Loader struct {
	// LibraryPath is the library consulted for bare names.
	LibraryPath string
}

// Load resolves ref. Every failure is a *catalog.LoadError.
func (l Loader) Load(ctx context.Context, ref string) (catalog.Catalog, error) {
	ref = strings.TrimSpace(ref)
	c, err := l.load(ctx, ref)
	if err != nil {
		var le *catalog.LoadError
		if errors.As(err, &le) {
			return catalog.Catalog{}, err
		}
		return catalog.Catalog{}, &catalog.LoadError{Path: ref, Err: err}
	}
	return c, nil
}

func (l Loader) load(ctx context.Context, ref string) (catalog.Catalog, error) {
	if ref == "" {
		return catalog.Default()
	}
	path, name := splitFragment(ref)
	ext := filepath.Ext(path)
	if format, ok := catalog.FormatForExt(ext); ok {
		return loadFile(path, format)
	}
	if isLibraryExt(ext) {
		if _, err := os.Stat(path); err != nil {
			return catalog.Catalog{}, fmt.Errorf("failed to stat library: %w", err)
		}
		return loadLibrary(ctx, path, name)
	}
	return l.loadNamed(ctx, ref)
}

func (l Loader) loadNamed(ctx context.Context, name string) (catalog.Catalog, error) {
	if l.LibraryPath != "" {
		if _, err := os.Stat(l.LibraryPath); err == nil {
			c, err := loadLibrary(ctx, l.LibraryPath, name)
			if err == nil {
				return c, nil
			}
			if !errors.Is(err, store.ErrNotFound) {
				return catalog.Catalog{}, err
			}
		}
	}
	if name == catalog.DefaultName {
		return catalog.Default()
	}
	return catalog.Catalog{}, fmt.Errorf("%w: %q", store.ErrNotFound, name)
}

func loadFile(path string, format catalog.Format) (catalog.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}
	return catalog.Parse(data, format)
}

func loadLibrary(ctx context.Context, path, name string) (catalog.Catalog, error) {
	st, err := store.Open(path)
	if err != nil {
		return catalog.Catalog{}, fmt.Errorf("failed to open library: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close for a read-only lookup.
			_ = cerr
		}
	}()
	c, err := st.LoadCatalog(ctx, name)
	if err != nil {
		return catalog.Catalog{}, err
	}
	if err := catalog.Validate(c); err != nil {
		return catalog.Catalog{}, err
	}
	return c, nil
}

func splitFragment(ref string) (string, string) {
	idx := strings.LastIndex(ref, "#")
	if idx < 0 {
		return ref, ""
	}
	if !isLibraryExt(filepath.Ext(ref[:idx])) {
		return ref, ""
	}
	return ref[:idx], ref[idx+1:]
}

func isLibraryExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}
