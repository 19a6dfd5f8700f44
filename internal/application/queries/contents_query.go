package queries

import (
	"context"
	"fmt"

	"github.com/vivekkundariya/catalogseed/internal/application/ports"
	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"github.com/vivekkundariya/catalogseed/internal/ui"
)

// ContentsQuery represents a read of every record in a collection
type ContentsQuery struct {
	Target catalog.Target
}

// ContentsQueryHandler handles contents queries without mutating the store
// This follows the Query pattern (CQRS)
type ContentsQueryHandler struct {
	connector ports.StoreConnector
}

// NewContentsQueryHandler creates a new contents query handler
func NewContentsQueryHandler(connector ports.StoreConnector) *ContentsQueryHandler {
	return &ContentsQueryHandler{
		connector: connector,
	}
}

// Handle executes the contents query
func (h *ContentsQueryHandler) Handle(ctx context.Context, query ContentsQuery) ([]catalog.Document, error) {
	if err := query.Target.Validate(); err != nil {
		return nil, err
	}

	store, err := h.connector.Connect(ctx, query.Target)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if err := store.Close(context.WithoutCancel(ctx)); err != nil {
			ui.Warnf("Failed to close store connection: %v", err)
		}
	}()

	docs, err := store.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", query.Target, err)
	}
	ui.Debug("Read %d records from %s", len(docs), query.Target)
	return docs, nil
}
