package ports

import (
	"context"

	"github.com/vivekkundariya/catalogseed/internal/domain/game"
)

// SeedSource supplies the records inserted into an empty collection
type SeedSource interface {
	Load(ctx context.Context) ([]game.Game, error)

	// Describe names the source for logs, e.g. "built-in" or a file path
	Describe() string
}
