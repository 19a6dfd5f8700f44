package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"github.com/vivekkundariya/catalogseed/internal/domain/game"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store implements ports.CatalogStore on a single collection
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	coll   *mongo.Collection
}

func newStore(client *mongo.Client, target catalog.Target) *Store {
	db := client.Database(target.Database)
	return &Store{
		client: client,
		db:     db,
		coll:   db.Collection(target.Collection),
	}
}

// EnsureCollection creates the collection. An existing collection is not an error.
func (s *Store) EnsureCollection(ctx context.Context) (bool, error) {
	err := s.db.CreateCollection(ctx, s.coll.Name())
	if err == nil {
		return true, nil
	}
	if isNamespaceExists(err) {
		return false, nil
	}
	return false, err
}

// EnsureIndex declares the index under its default name
func (s *Store) EnsureIndex(ctx context.Context, spec catalog.IndexSpec) (string, error) {
	if err := spec.Validate(); err != nil {
		return "", err
	}

	name, err := s.coll.Indexes().CreateOne(ctx, indexModel(spec))
	if err != nil {
		if isIndexConflict(err) {
			return "", fmt.Errorf("%w: %s: %v", ErrIndexConflict, spec.Name(), err)
		}
		return "", err
	}
	return name, nil
}

func indexModel(spec catalog.IndexSpec) mongo.IndexModel {
	keys := make(bson.D, 0, len(spec.Keys))
	for _, k := range spec.Keys {
		var v any = 1
		if k.Kind == catalog.IndexKindText {
			v = "text"
		}
		keys = append(keys, bson.E{Key: k.Field, Value: v})
	}

	opts := options.Index().SetName(spec.Name())
	if spec.Unique {
		opts.SetUnique(true)
	}
	return mongo.IndexModel{Keys: keys, Options: opts}
}

// CountGames counts every document in the collection
func (s *Store) CountGames(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.D{})
}

// InsertGames inserts the batch in order, stopping at the first failure.
// The returned count is the number of records written before it.
func (s *Store) InsertGames(ctx context.Context, games []game.Game) (int, error) {
	if len(games) == 0 {
		return 0, nil
	}

	docs := make([]any, len(games))
	for i, g := range games {
		docs[i] = g
	}

	res, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		inserted := insertedBefore(err)
		if mongo.IsDuplicateKeyError(err) {
			return inserted, fmt.Errorf("%w: record %d (%s): %v", ErrDuplicateSKU, inserted, games[inserted].SKU, err)
		}
		return inserted, err
	}
	return len(res.InsertedIDs), nil
}

// insertedBefore returns the index of the first failed write of an ordered batch
func insertedBefore(err error) int {
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) && len(bwe.WriteErrors) > 0 {
		return bwe.WriteErrors[0].Index
	}
	return 0
}

// ListGames returns every document in natural order
func (s *Store) ListGames(ctx context.Context) ([]catalog.Document, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var raw []bson.D
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}

	docs := make([]catalog.Document, len(raw))
	for i, d := range raw {
		docs[i] = toDocument(d)
	}
	return docs, nil
}

// Close disconnects the client
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
