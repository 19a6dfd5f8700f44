package mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/vivekkundariya/catalogseed/internal/application/ports"
	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"github.com/vivekkundariya/catalogseed/internal/domain/game"
)

var (
	// ErrIndexConflict mirrors the store's conflicting index definition error
	ErrIndexConflict = errors.New("index definition conflicts with existing index")

	// ErrDuplicateKey mirrors the store's unique index violation
	ErrDuplicateKey = errors.New("duplicate key")
)

// MockStoreConnector is a mock implementation of ports.StoreConnector
type MockStoreConnector struct {
	Store      *MemoryStore
	ConnectErr error

	// Track calls
	ConnectCalls []catalog.Target
}

func (m *MockStoreConnector) Connect(ctx context.Context, target catalog.Target) (ports.CatalogStore, error) {
	m.ConnectCalls = append(m.ConnectCalls, target)
	if m.ConnectErr != nil {
		return nil, m.ConnectErr
	}
	if m.Store == nil {
		m.Store = NewMemoryStore()
	}
	return m.Store, nil
}

// MemoryStore is an in-memory ports.CatalogStore that enforces the same
// collection, index and uniqueness rules as the real store.
type MemoryStore struct {
	CollectionExists bool
	Indexes          []catalog.IndexSpec
	Records          []catalog.Document

	EnsureCollectionErr error
	EnsureIndexErr      error
	CountErr            error
	InsertErr           error
	ListErr             error
	CloseErr            error

	// Track calls
	Calls       []string
	InsertCalls [][]game.Game
	CloseCalls  int

	nextID int
}

// NewMemoryStore creates an empty store with no collection
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) EnsureCollection(ctx context.Context) (bool, error) {
	m.Calls = append(m.Calls, "EnsureCollection")
	if m.EnsureCollectionErr != nil {
		return false, m.EnsureCollectionErr
	}
	if m.CollectionExists {
		return false, nil
	}
	m.CollectionExists = true
	return true, nil
}

func (m *MemoryStore) EnsureIndex(ctx context.Context, spec catalog.IndexSpec) (string, error) {
	m.Calls = append(m.Calls, "EnsureIndex:"+spec.Name())
	if m.EnsureIndexErr != nil {
		return "", m.EnsureIndexErr
	}
	m.CollectionExists = true

	for _, existing := range m.Indexes {
		if existing.Name() == spec.Name() {
			if existing.Unique != spec.Unique {
				return "", fmt.Errorf("%w: %s", ErrIndexConflict, spec.Name())
			}
			return spec.Name(), nil
		}
		// Only one text index per collection
		if isText(existing) && isText(spec) {
			return "", fmt.Errorf("%w: text index %s already exists", ErrIndexConflict, existing.Name())
		}
	}
	m.Indexes = append(m.Indexes, spec)
	return spec.Name(), nil
}

func (m *MemoryStore) CountGames(ctx context.Context) (int64, error) {
	m.Calls = append(m.Calls, "CountGames")
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return int64(len(m.Records)), nil
}

func (m *MemoryStore) InsertGames(ctx context.Context, games []game.Game) (int, error) {
	m.Calls = append(m.Calls, "InsertGames")
	m.InsertCalls = append(m.InsertCalls, games)
	if m.InsertErr != nil {
		return 0, m.InsertErr
	}
	m.CollectionExists = true

	for i, g := range games {
		if m.uniqueSKU() && m.hasSKU(g.SKU) {
			return i, fmt.Errorf("%w: sku %s", ErrDuplicateKey, g.SKU)
		}
		m.Insert(GameDocument(g))
	}
	return len(games), nil
}

func (m *MemoryStore) ListGames(ctx context.Context) ([]catalog.Document, error) {
	m.Calls = append(m.Calls, "ListGames")
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	docs := make([]catalog.Document, len(m.Records))
	copy(docs, m.Records)
	return docs, nil
}

func (m *MemoryStore) Close(ctx context.Context) error {
	m.CloseCalls++
	return m.CloseErr
}

// Insert stores a raw document, assigning an ID when it has none
func (m *MemoryStore) Insert(doc catalog.Document) {
	if doc.ID == "" {
		m.nextID++
		doc.ID = fmt.Sprintf("%024x", m.nextID)
	}
	m.CollectionExists = true
	m.Records = append(m.Records, doc)
}

// FindByField returns the records whose top-level field equals value
func (m *MemoryStore) FindByField(key string, value any) []catalog.Document {
	var found []catalog.Document
	for _, doc := range m.Records {
		if v, ok := doc.Get(key); ok && v == value {
			found = append(found, doc)
		}
	}
	return found
}

func (m *MemoryStore) uniqueSKU() bool {
	for _, idx := range m.Indexes {
		if idx.Unique && len(idx.Keys) == 1 && idx.Keys[0].Field == "sku" {
			return true
		}
	}
	return false
}

func (m *MemoryStore) hasSKU(sku string) bool {
	return len(m.FindByField("sku", sku)) > 0
}

func isText(spec catalog.IndexSpec) bool {
	for _, k := range spec.Keys {
		if k.Kind == catalog.IndexKindText {
			return true
		}
	}
	return false
}

// GameDocument converts a game into the document the store would hold
func GameDocument(g game.Game) catalog.Document {
	return catalog.Document{
		Fields: catalog.Object{
			{Key: "sku", Value: g.SKU},
			{Key: "title", Value: g.Title},
			{Key: "platform", Value: g.Platform},
			{Key: "genre", Value: g.Genre},
			{Key: "price", Value: g.Price},
			{Key: "stock", Value: int64(g.Stock)},
			{Key: "pegi", Value: int64(g.PEGI)},
		},
	}
}

// MockSeedSource is a mock implementation of ports.SeedSource
type MockSeedSource struct {
	Games   []game.Game
	LoadErr error
	Name    string

	LoadCalls int
}

func (m *MockSeedSource) Load(ctx context.Context) ([]game.Game, error) {
	m.LoadCalls++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Games, nil
}

func (m *MockSeedSource) Describe() string {
	if m.Name == "" {
		return "mock"
	}
	return m.Name
}
