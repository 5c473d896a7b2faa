package ecoguia

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/ecoguia/internal/runtime"
	"github.com/aretw0/ecoguia/internal/validator"
	fileAdapter "github.com/aretw0/ecoguia/pkg/adapters/file"
	loamAdapter "github.com/aretw0/ecoguia/pkg/adapters/loam"
	"github.com/aretw0/ecoguia/pkg/domain"
	"github.com/aretw0/ecoguia/pkg/index"
	"github.com/aretw0/ecoguia/pkg/ports"
	"github.com/aretw0/ecoguia/pkg/textnorm"
)

// Engine is the high-level entry point of the EcoGuía library.
// It owns the dialogue graph and the reservation index, both built once by New
// and read-only afterwards, so every method is safe for concurrent use.
type Engine struct {
	runtime    *runtime.Engine
	graph      *runtime.Graph
	index      *index.Index
	definition *domain.Definition

	loader        ports.DefinitionLoader
	recordLoader  ports.RecordLoader
	cache         ports.SearchCache
	hooks         domain.Hooks
	logger        *slog.Logger
	entryNodeID   string
	graphOpts     []runtime.GraphOption
	indexPolicies []index.Policy

	Name string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom DefinitionLoader, bypassing path detection.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithRecordLoader sets the source of the reservation table.
// Without it the engine searches an empty table.
func WithRecordLoader(l ports.RecordLoader) Option {
	return func(e *Engine) {
		e.recordLoader = l
	}
}

// WithSearchCache puts a cache in front of the reservation index.
func WithSearchCache(c ports.SearchCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithEntryNode overrides the start node named by the definition.
func WithEntryNode(nodeID string) Option {
	return func(e *Engine) {
		e.entryNodeID = nodeID
	}
}

// WithLazyReferences defers the check of option and next_node_id targets to
// each transition. The start node is always checked by New.
func WithLazyReferences() Option {
	return func(e *Engine) {
		e.graphOpts = append(e.graphOpts, runtime.WithLazyReferences())
	}
}

// WithSearchPolicies replaces the exact, substring, fuzzy tier sequence.
func WithSearchPolicies(p ...index.Policy) Option {
	return func(e *Engine) {
		e.indexPolicies = p
	}
}

// New loads the dialogue and the reservation table and builds the engine.
// botPath may be a definition file (JSON, or YAML by extension) or a
// directory of node documents. It can be empty when WithLoader is given.
func New(botPath string, opts ...Option) (*Engine, error) {
	eng := &Engine{}

	// Apply Options first to check if a loader is provided
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if eng.loader == nil {
		if botPath == "" {
			return nil, fmt.Errorf("botPath is required when no custom loader is provided")
		}
		loader, err := loaderFor(botPath)
		if err != nil {
			return nil, err
		}
		eng.loader = loader
	}
	if botPath != "" {
		eng.Name = filepath.Base(botPath)
		eng.logger = eng.logger.With("graph", eng.Name)
	}

	ctx := context.Background()

	def, err := eng.loader.LoadDefinition(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dialogue: %w", err)
	}
	if eng.entryNodeID != "" {
		withEntry := *def
		withEntry.StartNodeID = eng.entryNodeID
		def = &withEntry
	}
	eng.definition = def

	graph, err := runtime.LoadGraph(def, eng.graphOpts...)
	if err != nil {
		return nil, err
	}
	eng.graph = graph

	var records []domain.Record
	if eng.recordLoader != nil {
		records, err = eng.recordLoader.LoadRecords(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load reservations: %w", err)
		}
	}
	var indexOpts []index.Option
	if eng.indexPolicies != nil {
		indexOpts = append(indexOpts, index.WithPolicies(eng.indexPolicies...))
	}
	eng.index = index.New(records, indexOpts...)

	eng.runtime = runtime.NewEngine(graph,
		runtime.WithHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	)

	eng.logger.Debug("engine ready", "nodes", len(def.Nodes), "start", graph.StartNodeID(), "records", eng.index.Len())
	return eng, nil
}

func loaderFor(path string) (ports.DefinitionLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid bot path: %w", err)
	}
	if info.IsDir() {
		return loamAdapter.Open(path)
	}
	return fileAdapter.NewDefinitionLoader(path), nil
}

// StartConversation returns the payload of the start node.
func (e *Engine) StartConversation(ctx context.Context) (domain.NodePayload, error) {
	node, err := e.runtime.Start(ctx)
	if err != nil {
		return domain.NodePayload{}, err
	}
	return domain.NewPayload(node), nil
}

// Step resolves the node that follows nodeID and returns its payload.
// optionID and userInput may be empty.
func (e *Engine) Step(ctx context.Context, nodeID, optionID, userInput string) (domain.NodePayload, error) {
	if nodeID == "" {
		return domain.NodePayload{}, &domain.InputError{Field: "node_id", Reason: "current node is required"}
	}
	node, err := e.runtime.Resolve(ctx, nodeID, optionID, userInput)
	if err != nil {
		return domain.NodePayload{}, err
	}
	return domain.NewPayload(node), nil
}

// SearchResult is a reservation lookup with the tier that answered it.
type SearchResult struct {
	Tier    index.Tier
	Records []domain.Record
	Cached  bool
}

// TierCache marks results served from the search cache.
const TierCache index.Tier = "cache"

// Lookup searches the reservation table, going through the cache when one is set.
// It never fails: cache errors are logged and the index answers instead.
func (e *Engine) Lookup(ctx context.Context, query string) SearchResult {
	key := textnorm.Normalize(query)
	if key == "" {
		res := SearchResult{Tier: index.TierNone, Records: []domain.Record{}}
		e.hooks.EmitSearch(ctx, &domain.SearchEvent{Query: query, Tier: string(res.Tier)})
		return res
	}

	if e.cache != nil {
		records, hit, err := e.cache.Get(ctx, key)
		if err != nil {
			e.logger.Warn("search cache read failed", "query", key, "err", err)
		} else if hit {
			e.hooks.EmitSearch(ctx, &domain.SearchEvent{Query: query, Tier: string(TierCache), Results: len(records), Cached: true})
			return SearchResult{Tier: TierCache, Records: records, Cached: true}
		}
	}

	out := e.index.Lookup(query)

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, out.Records); err != nil {
			e.logger.Warn("search cache write failed", "query", key, "err", err)
		}
	}

	e.hooks.EmitSearch(ctx, &domain.SearchEvent{Query: query, Tier: string(out.Tier), Results: len(out.Records)})
	return SearchResult{Tier: out.Tier, Records: out.Records}
}

// SearchReservations returns at most five records matching query.
// An empty or unmatched query yields an empty, non-nil slice.
func (e *Engine) SearchReservations(ctx context.Context, query string) []domain.Record {
	return e.Lookup(ctx, query).Records
}

// Inspect returns every node in definition order.
func (e *Engine) Inspect() []domain.Node {
	return e.graph.Nodes()
}

// Graph returns the read-only node index.
func (e *Engine) Graph() ports.Graph {
	return e.graph
}

// StartNodeID returns the entry node id.
func (e *Engine) StartNodeID() string {
	return e.graph.StartNodeID()
}

// Definition returns the dialogue as it was loaded. The source document is
// returned untouched when the loader kept it.
func (e *Engine) Definition() any {
	if e.definition.Raw != nil {
		return e.definition.Raw
	}
	return e.definition
}

// Records returns the reservation table.
func (e *Engine) Records() []domain.Record {
	return e.index.Records()
}

// Validate crawls the dialogue from the start node.
func (e *Engine) Validate() (*validator.Report, error) {
	return validator.ValidateGraph(e.definition)
}
