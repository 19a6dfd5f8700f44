package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/vivekkundariya/catalogseed/internal/application/ports"
	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultAppName is reported to the server in the connection handshake
const DefaultAppName = "catalogseed"

// Connector implements ports.StoreConnector for a MongoDB deployment
type Connector struct {
	uri     string
	timeout time.Duration
	appName string
}

// NewConnector creates a connector. A zero timeout keeps the driver's
// server selection default.
func NewConnector(uri string, timeout time.Duration) *Connector {
	return &Connector{
		uri:     uri,
		timeout: timeout,
		appName: DefaultAppName,
	}
}

// Connect opens a client and checks the primary is reachable
func (c *Connector) Connect(ctx context.Context, target catalog.Target) (ports.CatalogStore, error) {
	client, err := c.open(ctx)
	if err != nil {
		return nil, err
	}
	return newStore(client, target), nil
}

func (c *Connector) open(ctx context.Context) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(c.uri).SetAppName(c.appName)
	if c.timeout > 0 {
		opts.SetServerSelectionTimeout(c.timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	return client, nil
}
