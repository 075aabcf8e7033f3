package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"epicquest/internal/storage"
)

// Source names where a catalog came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceFile     Source = "file"
	SourceDatabase Source = "database"
)

// Resolve picks the catalog to play: a TOML file wins, then the SQLite
// database, then the built-in default. An empty database falls back to the default.
func Resolve(ctx context.Context, fs afero.Fs, file string, dbPath string) (*Catalog, Source, error) {
	if file != "" {
		c, err := LoadFile(fs, file)
		if err != nil {
			return nil, "", err
		}
		return c, SourceFile, nil
	}

	if dbPath != "" {
		db, err := storage.Open(ctx, dbPath)
		if err != nil {
			return nil, "", err
		}
		defer db.Close()

		c, err := LoadStore(ctx, storage.NewCatalogRepo(db))
		switch {
		case err == nil:
			return c, SourceDatabase, nil
		case !errors.Is(err, ErrEmptyCatalog):
			return nil, "", fmt.Errorf("load catalog from %s: %w", dbPath, err)
		}
	}

	return Default(), SourceDefault, nil
}
