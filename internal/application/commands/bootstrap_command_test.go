package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"github.com/vivekkundariya/catalogseed/internal/domain/game"
	"github.com/vivekkundariya/catalogseed/internal/ui"
	"github.com/vivekkundariya/catalogseed/test/mocks"
)

var testTarget = catalog.Target{Database: "marketdb", Collection: "games"}

func init() {
	ui.SetOutput(io.Discard)
}

func newTestHandler(store *mocks.MemoryStore, seed []game.Game) (*BootstrapCommandHandler, *mocks.MockStoreConnector, *mocks.MockSeedSource) {
	connector := &mocks.MockStoreConnector{Store: store}
	source := &mocks.MockSeedSource{Games: seed, Name: "built-in"}
	return NewBootstrapCommandHandler(connector, source), connector, source
}

func TestBootstrapCommandHandler_Handle_FreshStore(t *testing.T) {
	store := mocks.NewMemoryStore()
	handler, connector, _ := newTestHandler(store, game.DefaultSeed())

	result, err := handler.Handle(context.Background(), BootstrapCommand{Target: testTarget})
	if err != nil {
		t.Fatalf("Handle() returned error: %v", err)
	}

	if len(connector.ConnectCalls) != 1 || connector.ConnectCalls[0] != testTarget {
		t.Errorf("expected one Connect call for %s, got %v", testTarget, connector.ConnectCalls)
	}
	if !result.CollectionCreated {
		t.Error("expected collection to be created")
	}
	if result.SeedSkipped {
		t.Error("seed should not be skipped on an empty collection")
	}
	if result.Inserted != 3 {
		t.Errorf("Inserted = %d, want 3", result.Inserted)
	}

	wantIndexes := []string{"sku_1", "platform_1_genre_1", "title_text"}
	if strings.Join(result.Indexes, ",") != strings.Join(wantIndexes, ",") {
		t.Errorf("Indexes = %v, want %v", result.Indexes, wantIndexes)
	}

	skus := catalog.SKUs(result.Documents)
	if strings.Join(skus, ",") != "PS5-001,PS5-002,PC-001" {
		t.Errorf("documents = %v, want PS5-001,PS5-002,PC-001", skus)
	}

	if store.CloseCalls != 1 {
		t.Errorf("expected store to be closed once, got %d", store.CloseCalls)
	}
}

func TestBootstrapCommandHandler_Handle_StepOrder(t *testing.T) {
	store := mocks.NewMemoryStore()
	handler, _, _ := newTestHandler(store, game.DefaultSeed())

	result, err := handler.Handle(context.Background(), BootstrapCommand{Target: testTarget})
	if err != nil {
		t.Fatalf("Handle() returned error: %v", err)
	}

	wantCalls := []string{
		"EnsureCollection",
		"EnsureIndex:sku_1",
		"EnsureIndex:platform_1_genre_1",
		"EnsureIndex:title_text",
		"CountGames",
		"InsertGames",
		"ListGames",
	}
	if strings.Join(store.Calls, " ") != strings.Join(wantCalls, " ") {
		t.Errorf("store calls = %v, want %v", store.Calls, wantCalls)
	}

	wantSteps := []string{StepLoadSeed, StepConnect, StepEnsureCollection, StepDeclareIndexes, StepConditionalSeed, StepVerify}
	if len(result.Steps) != len(wantSteps) {
		t.Fatalf("expected %d steps, got %d", len(wantSteps), len(result.Steps))
	}
	for i, name := range wantSteps {
		if result.Steps[i].Name != name {
			t.Errorf("step %d = %s, want %s", i, result.Steps[i].Name, name)
		}
		if result.Steps[i].Status != StatusOK {
			t.Errorf("step %s status = %s, want ok", name, result.Steps[i].Status)
		}
	}
}

func TestBootstrapCommandHandler_Handle_Idempotent(t *testing.T) {
	store := mocks.NewMemoryStore()
	handler, _, _ := newTestHandler(store, game.DefaultSeed())

	for run := 1; run <= 2; run++ {
		if _, err := handler.Handle(context.Background(), BootstrapCommand{Target: testTarget}); err != nil {
			t.Fatalf("run %d: Handle() returned error: %v", run, err)
		}
	}

	if len(store.Records) != 3 {
		t.Errorf("expected exactly 3 records after two runs, got %d", len(store.Records))
	}
	if len(store.InsertCalls) != 1 {
		t.Errorf("expected the seed to be inserted once, got %d inserts", len(store.InsertCalls))
	}
	if len(store.Indexes) != 3 {
		t.Errorf("expected 3 indexes after two runs, got %d", len(store.Indexes))
	}
}

func TestBootstrapCommandHandler_Handle_SecondRunSkipsSeed(t *testing.T) {
	store := mocks.NewMemoryStore()
	handler, _, _ := newTestHandler(store, game.DefaultSeed())

	_, _ = handler.Handle(context.Background(), BootstrapCommand{Target: testTarget})
	result, err := handler.Handle(context.Background(), BootstrapCommand{Target: testTarget})
	if err != nil {
		t.Fatalf("Handle() returned error: %v", err)
	}

	if result.CollectionCreated {
		t.Error("collection should already exist on the second run")
	}
	if !result.SeedSkipped || result.Inserted != 0 {
		t.Errorf("expected seed to be skipped, got inserted=%d skipped=%v", result.Inserted, result.SeedSkipped)
	}
	if result.ExistingCount != 3 {
		t.Errorf("ExistingCount = %d, want 3", result.ExistingCount)
	}
	seedStep := result.Steps[4]
	if seedStep.Name != StepConditionalSeed || seedStep.Status != StatusSkipped {
		t.Errorf("seed step = %+v, want skipped", seedStep)
	}
}

func TestBootstrapCommandHandler_Handle_PrePopulated(t *testing.T) {
	store := mocks.NewMemoryStore()
	store.Insert(catalog.Document{Fields: catalog.Object{
		{Key: "sku", Value: "XB-001"},
		{Key: "title", Value: "Unrelated"},
	}})
	handler, _, _ := newTestHandler(store, game.DefaultSeed())

	result, err := handler.Handle(context.Background(), BootstrapCommand{Target: testTarget})
	if err != nil {
		t.Fatalf("Handle() returned error: %v", err)
	}

	if len(store.InsertCalls) != 0 {
		t.Error("seed must not be inserted into a non-empty collection")
	}
	if len(result.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(result.Documents))
	}
	if skus := catalog.SKUs(result.Documents); skus[0] != "XB-001" {
		t.Errorf("expected the unrelated record only, got %v", skus)
	}
}

func TestBootstrapCommandHandler_Handle_PlatformFilter(t *testing.T) {
	store := mocks.NewMemoryStore()
	handler, _, _ := newTestHandler(store, game.DefaultSeed())

	if _, err := handler.Handle(context.Background(), BootstrapCommand{Target: testTarget}); err != nil {
		t.Fatalf("Handle() returned error: %v", err)
	}

	ps5 := catalog.SKUs(store.FindByField("platform", "PS5"))
	if strings.Join(ps5, ",") != "PS5-001,PS5-002" {
		t.Errorf("platform=PS5 returned %v, want PS5-001,PS5-002", ps5)
	}
}

func TestBootstrapCommandHandler_Handle_UniqueSKUAfterRun(t *testing.T) {
	store := mocks.NewMemoryStore()
	handler, _, _ := newTestHandler(store, game.DefaultSeed())

	if _, err := handler.Handle(context.Background(), BootstrapCommand{Target: testTarget}); err != nil {
		t.Fatalf("Handle() returned error: %v", err)
	}

	dup := game.DefaultSeed()[0]
	dup.Title = "Another"
	_, err := store.InsertGames(context.Background(), []game.Game{dup})
	if !errors.Is(err, mocks.ErrDuplicateKey) {
		t.Errorf("expected duplicate key error, got %v", err)
	}
}

func TestBootstrapCommandHandler_Handle_EmptySeed(t *testing.T) {
	store := mocks.NewMemoryStore()
	handler, _, _ := newTestHandler(store, nil)

	result, err := handler.Handle(context.Background(), BootstrapCommand{Target: testTarget})
	if err != nil {
		t.Fatalf("Handle() returned error: %v", err)
	}
	if !result.SeedSkipped {
		t.Error("expected seed step to be skipped for an empty batch")
	}
	if len(store.InsertCalls) != 0 {
		t.Error("InsertGames must not be called with an empty batch")
	}
}

func TestBootstrapCommandHandler_Handle_Failures(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*mocks.MemoryStore, *mocks.MockStoreConnector, *mocks.MockSeedSource)
		wantErr    string
		wantCalls  int
		wantClosed int
	}{
		{
			name: "seed load fails",
			setup: func(_ *mocks.MemoryStore, _ *mocks.MockStoreConnector, s *mocks.MockSeedSource) {
				s.LoadErr = fmt.Errorf("file not found")
			},
			wantErr: "load seed: file not found",
		},
		{
			name: "invalid seed record",
			setup: func(_ *mocks.MemoryStore, _ *mocks.MockStoreConnector, s *mocks.MockSeedSource) {
				s.Games[0].Price = -1
			},
			wantErr: "load seed",
		},
		{
			name: "connect fails",
			setup: func(_ *mocks.MemoryStore, c *mocks.MockStoreConnector, _ *mocks.MockSeedSource) {
				c.ConnectErr = fmt.Errorf("server selection timeout")
			},
			wantErr: "connect: server selection timeout",
		},
		{
			name: "ensure collection fails",
			setup: func(m *mocks.MemoryStore, _ *mocks.MockStoreConnector, _ *mocks.MockSeedSource) {
				m.EnsureCollectionErr = fmt.Errorf("not authorized")
			},
			wantErr:    "ensure collection games: not authorized",
			wantCalls:  1,
			wantClosed: 1,
		},
		{
			name: "conflicting index",
			setup: func(m *mocks.MemoryStore, _ *mocks.MockStoreConnector, _ *mocks.MockSeedSource) {
				m.Indexes = []catalog.IndexSpec{{Keys: []catalog.IndexKey{{Field: "sku", Kind: catalog.IndexKindAscending}}}}
			},
			wantErr:    "declare index sku_1",
			wantCalls:  2,
			wantClosed: 1,
		},
		{
			name: "count fails",
			setup: func(m *mocks.MemoryStore, _ *mocks.MockStoreConnector, _ *mocks.MockSeedSource) {
				m.CountErr = fmt.Errorf("socket closed")
			},
			wantErr:    "count records: socket closed",
			wantCalls:  5,
			wantClosed: 1,
		},
		{
			name: "insert fails",
			setup: func(m *mocks.MemoryStore, _ *mocks.MockStoreConnector, _ *mocks.MockSeedSource) {
				m.InsertErr = fmt.Errorf("write concern error")
			},
			wantErr:    "insert seed: write concern error",
			wantCalls:  6,
			wantClosed: 1,
		},
		{
			name: "verify fails",
			setup: func(m *mocks.MemoryStore, _ *mocks.MockStoreConnector, _ *mocks.MockSeedSource) {
				m.ListErr = fmt.Errorf("cursor killed")
			},
			wantErr:    "verify: cursor killed",
			wantCalls:  7,
			wantClosed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMemoryStore()
			handler, connector, source := newTestHandler(store, game.DefaultSeed())
			tt.setup(store, connector, source)

			result, err := handler.Handle(context.Background(), BootstrapCommand{Target: testTarget})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if result != nil {
				t.Error("expected nil result on failure")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantErr)
			}
			if len(store.Calls) != tt.wantCalls {
				t.Errorf("expected %d store calls, got %d (%v)", tt.wantCalls, len(store.Calls), store.Calls)
			}
			if store.CloseCalls != tt.wantClosed {
				t.Errorf("expected %d Close calls, got %d", tt.wantClosed, store.CloseCalls)
			}
		})
	}
}

func TestBootstrapCommandHandler_Handle_CrashBeforeSeedRecovers(t *testing.T) {
	store := mocks.NewMemoryStore()
	store.InsertErr = fmt.Errorf("connection reset")
	handler, _, _ := newTestHandler(store, game.DefaultSeed())

	if _, err := handler.Handle(context.Background(), BootstrapCommand{Target: testTarget}); err == nil {
		t.Fatal("expected the first run to fail")
	}
	if len(store.Indexes) != 3 || len(store.Records) != 0 {
		t.Fatalf("expected indexes without data, got %d indexes and %d records", len(store.Indexes), len(store.Records))
	}

	store.InsertErr = nil
	result, err := handler.Handle(context.Background(), BootstrapCommand{Target: testTarget})
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}
	if result.Inserted != 3 {
		t.Errorf("expected the second run to complete the seed, inserted %d", result.Inserted)
	}
}

func TestBootstrapCommandHandler_Handle_InvalidTarget(t *testing.T) {
	handler, connector, _ := newTestHandler(mocks.NewMemoryStore(), game.DefaultSeed())

	_, err := handler.Handle(context.Background(), BootstrapCommand{Target: catalog.Target{Database: "marketdb"}})
	if !errors.Is(err, catalog.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if len(connector.ConnectCalls) != 0 {
		t.Error("must not connect with an invalid target")
	}
}
