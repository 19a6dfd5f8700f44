package ports

import (
	"context"

	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"github.com/vivekkundariya/catalogseed/internal/domain/game"
)

// StoreConnector opens a handle on the collection named by a target.
// This abstracts away the database driver.
type StoreConnector interface {
	Connect(ctx context.Context, target catalog.Target) (CatalogStore, error)
}

// CatalogStore is a connected handle on a single games collection.
// Callers must Close it when done.
type CatalogStore interface {
	// EnsureCollection creates the collection, reporting false if it already existed
	EnsureCollection(ctx context.Context) (created bool, err error)

	// EnsureIndex declares an index and returns its name.
	// Re-declaring an identical index is a no-op.
	EnsureIndex(ctx context.Context, spec catalog.IndexSpec) (string, error)

	// CountGames returns the number of records in the collection
	CountGames(ctx context.Context) (int64, error)

	// InsertGames inserts the records as one ordered batch
	InsertGames(ctx context.Context, games []game.Game) (int, error)

	// ListGames returns every record, unfiltered and unsorted
	ListGames(ctx context.Context) ([]catalog.Document, error)

	Close(ctx context.Context) error
}
