package commands

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vivekkundariya/catalogseed/internal/application/ports"
	"github.com/vivekkundariya/catalogseed/internal/domain/catalog"
	"github.com/vivekkundariya/catalogseed/internal/domain/game"
	"github.com/vivekkundariya/catalogseed/internal/ui"
)

const tracerName = "github.com/vivekkundariya/catalogseed"

// closeTimeout bounds the release of the store handle once the run is over
const closeTimeout = 5 * time.Second

// Step names, in execution order
const (
	StepLoadSeed         = "load-seed"
	StepConnect          = "connect"
	StepEnsureCollection = "ensure-collection"
	StepDeclareIndexes   = "declare-indexes"
	StepConditionalSeed  = "conditional-seed"
	StepVerify           = "verify"
)

// Step statuses
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
)

// BootstrapCommand represents the command to bootstrap the games collection
type BootstrapCommand struct {
	Target catalog.Target
}

// StepResult is the outcome of a single bootstrap step
type StepResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// BootstrapResult is the end state observed by a bootstrap run
type BootstrapResult struct {
	Target            catalog.Target
	SeedSource        string
	CollectionCreated bool
	Indexes           []string
	ExistingCount     int64
	Inserted          int
	SeedSkipped       bool
	Documents         []catalog.Document
	Steps             []StepResult
}

func (r *BootstrapResult) record(name, status, detail string) {
	r.Steps = append(r.Steps, StepResult{Name: name, Status: status, Detail: detail})
}

// BootstrapCommandHandler handles the bootstrap command.
// Steps run strictly in sequence; the first failure aborts the run.
type BootstrapCommandHandler struct {
	connector ports.StoreConnector
	seeds     ports.SeedSource
	indexes   []catalog.IndexSpec
	tracer    trace.Tracer
}

// NewBootstrapCommandHandler creates a new bootstrap command handler
func NewBootstrapCommandHandler(connector ports.StoreConnector, seeds ports.SeedSource) *BootstrapCommandHandler {
	return &BootstrapCommandHandler{
		connector: connector,
		seeds:     seeds,
		indexes:   catalog.GameIndexes(),
		tracer:    otel.Tracer(tracerName),
	}
}

// WithTracerProvider records spans with tp instead of the global provider
func (h *BootstrapCommandHandler) WithTracerProvider(tp trace.TracerProvider) *BootstrapCommandHandler {
	h.tracer = tp.Tracer(tracerName)
	return h
}

// Handle executes the bootstrap command
func (h *BootstrapCommandHandler) Handle(ctx context.Context, cmd BootstrapCommand) (result *BootstrapResult, err error) {
	if err := cmd.Target.Validate(); err != nil {
		return nil, err
	}

	ctx, span := h.tracer.Start(ctx, "catalogseed.bootstrap", trace.WithAttributes(
		attribute.String("db.name", cmd.Target.Database),
		attribute.String("db.collection", cmd.Target.Collection),
	))
	defer func() {
		endSpan(span, err)
	}()

	result = &BootstrapResult{
		Target:     cmd.Target,
		SeedSource: h.seeds.Describe(),
	}

	// 1. Load and validate the seed batch before touching the store
	seed, err := h.loadSeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	result.record(StepLoadSeed, StatusOK, fmt.Sprintf("%d records from %s", len(seed), result.SeedSource))

	// 2. Connect
	ui.Step("Connecting to %s", cmd.Target)
	store, err := h.connect(ctx, cmd.Target)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()
		if cerr := store.Close(closeCtx); cerr != nil {
			ui.Warnf("Failed to close store connection: %v", cerr)
		}
	}()
	result.record(StepConnect, StatusOK, cmd.Target.String())

	// 3. Ensure the collection exists
	created, err := h.ensureCollection(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("ensure collection %s: %w", cmd.Target.Collection, err)
	}
	result.CollectionCreated = created
	if created {
		ui.SubStep("Created collection %s", cmd.Target.Collection)
		result.record(StepEnsureCollection, StatusOK, "created")
	} else {
		ui.SubStep("Collection %s already exists", cmd.Target.Collection)
		result.record(StepEnsureCollection, StatusOK, "already exists")
	}

	// 4. Declare indexes in order
	ui.Step("Declaring %d indexes", len(h.indexes))
	names, err := h.declareIndexes(ctx, store)
	if err != nil {
		return nil, err
	}
	result.Indexes = names
	result.record(StepDeclareIndexes, StatusOK, fmt.Sprintf("%d indexes", len(names)))

	// 5. Seed only an empty collection
	count, inserted, err := h.conditionalSeed(ctx, store, seed)
	if err != nil {
		return nil, err
	}
	result.ExistingCount = count
	result.Inserted = inserted
	switch {
	case count != 0:
		result.SeedSkipped = true
		ui.Step("Collection holds %d records, skipping seed", count)
		result.record(StepConditionalSeed, StatusSkipped, fmt.Sprintf("collection holds %d records", count))
	case len(seed) == 0:
		result.SeedSkipped = true
		ui.Warnf("Seed source %s is empty, nothing to insert", result.SeedSource)
		result.record(StepConditionalSeed, StatusSkipped, "empty seed batch")
	default:
		ui.Step("Inserted %d seed records", inserted)
		result.record(StepConditionalSeed, StatusOK, fmt.Sprintf("inserted %d records", inserted))
	}

	// 6. Read back the end state
	docs, err := h.verify(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	result.Documents = docs
	result.record(StepVerify, StatusOK, fmt.Sprintf("%d records", len(docs)))

	span.SetAttributes(
		attribute.Int("catalogseed.inserted", inserted),
		attribute.Int("catalogseed.documents", len(docs)),
	)
	return result, nil
}

func (h *BootstrapCommandHandler) loadSeed(ctx context.Context) ([]game.Game, error) {
	ctx, span := h.tracer.Start(ctx, StepLoadSeed)
	seed, err := h.seeds.Load(ctx)
	if err == nil {
		err = game.ValidateBatch(seed)
	}
	endSpan(span, err)
	if err != nil {
		return nil, err
	}
	ui.Debug("Loaded %d seed records from %s", len(seed), h.seeds.Describe())
	return seed, nil
}

func (h *BootstrapCommandHandler) connect(ctx context.Context, target catalog.Target) (ports.CatalogStore, error) {
	ctx, span := h.tracer.Start(ctx, StepConnect)
	store, err := h.connector.Connect(ctx, target)
	endSpan(span, err)
	return store, err
}

func (h *BootstrapCommandHandler) ensureCollection(ctx context.Context, store ports.CatalogStore) (bool, error) {
	ctx, span := h.tracer.Start(ctx, StepEnsureCollection)
	created, err := store.EnsureCollection(ctx)
	span.SetAttributes(attribute.Bool("catalogseed.collection_created", created))
	endSpan(span, err)
	return created, err
}

func (h *BootstrapCommandHandler) declareIndexes(ctx context.Context, store ports.CatalogStore) ([]string, error) {
	ctx, span := h.tracer.Start(ctx, StepDeclareIndexes)
	names := make([]string, 0, len(h.indexes))
	for _, spec := range h.indexes {
		name, err := store.EnsureIndex(ctx, spec)
		if err != nil {
			err = fmt.Errorf("declare index %s: %w", spec.Name(), err)
			endSpan(span, err)
			return nil, err
		}
		ui.SubStep("Index %s on %s", name, spec.Describe())
		names = append(names, name)
	}
	endSpan(span, nil)
	return names, nil
}

func (h *BootstrapCommandHandler) conditionalSeed(ctx context.Context, store ports.CatalogStore, seed []game.Game) (int64, int, error) {
	ctx, span := h.tracer.Start(ctx, StepConditionalSeed)

	count, err := store.CountGames(ctx)
	if err != nil {
		err = fmt.Errorf("count records: %w", err)
		endSpan(span, err)
		return 0, 0, err
	}
	span.SetAttributes(attribute.Int64("catalogseed.existing", count))

	if count != 0 || len(seed) == 0 {
		endSpan(span, nil)
		return count, 0, nil
	}

	inserted, err := store.InsertGames(ctx, seed)
	if err != nil {
		err = fmt.Errorf("insert seed: %w", err)
		endSpan(span, err)
		return count, inserted, err
	}
	endSpan(span, nil)
	return count, inserted, nil
}

func (h *BootstrapCommandHandler) verify(ctx context.Context, store ports.CatalogStore) ([]catalog.Document, error) {
	ctx, span := h.tracer.Start(ctx, StepVerify)
	docs, err := store.ListGames(ctx)
	endSpan(span, err)
	return docs, err
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
