// Package glossa ties the pipeline together: a persistent corpus and
// pattern store, redundancy compression for mined pattern pools, and
// the semantic annotation engine that explains a query pattern through
// context, synonyms, and example transactions.
package glossa

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cognicore/glossa/pkg/glossa/annotate"
	"github.com/cognicore/glossa/pkg/glossa/compress"
	"github.com/cognicore/glossa/pkg/glossa/config"
	"github.com/cognicore/glossa/pkg/glossa/corpus"
	"github.com/cognicore/glossa/pkg/glossa/definition"
	"github.com/cognicore/glossa/pkg/glossa/internalerr"
	"github.com/cognicore/glossa/pkg/glossa/mining"
	"github.com/cognicore/glossa/pkg/glossa/pattern"
	"github.com/cognicore/glossa/pkg/glossa/store"
)

// Engine is the pipeline facade.
type Engine struct {
	store   store.Store
	cfg     config.Config
	builder *definition.Builder
}

// Options configures an Engine.
type Options struct {
	Store  store.Store
	Config *config.Config // nil means config.Default()
}

// New creates an Engine with the given dependencies.
func New(opts Options) *Engine {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	return &Engine{
		store:   opts.Store,
		cfg:     cfg,
		builder: definition.New(),
	}
}

// Close shuts the engine down.
func (e *Engine) Close() error {
	return e.store.Close()
}

// ImportXML loads an article XML corpus into the store and returns the
// number of transactions added.
func (e *Engine) ImportXML(ctx context.Context, r io.Reader) (int, error) {
	corp, err := corpus.ReadXML(r)
	if err != nil {
		return 0, err
	}
	return corp.Len(), e.store.AddTransactions(ctx, corp.All())
}

// ImportJSONL loads a JSONL corpus into the store and returns the
// number of transactions added.
func (e *Engine) ImportJSONL(ctx context.Context, r io.Reader) (int, error) {
	corp, err := corpus.ReadJSONL(r)
	if err != nil {
		return 0, err
	}
	return corp.Len(), e.store.AddTransactions(ctx, corp.All())
}

// CompressPool compresses a raw mined pattern list with the configured
// distance threshold for its kind, recomputes each representative's
// support against the stored corpus, persists the pool, and returns the
// representatives in cluster order.
func (e *Engine) CompressPool(ctx context.Context, kind pattern.Kind, patterns []pattern.Pattern) ([]pattern.Pattern, error) {
	representatives, err := compress.Compress(patterns, e.distanceFor(kind))
	if err != nil {
		return nil, err
	}

	corp, err := e.store.LoadCorpus(ctx)
	if err != nil {
		return nil, err
	}
	for i := range representatives {
		representatives[i].Support = annotate.Support(representatives[i], corp)
	}

	if err := e.store.SavePool(ctx, kind, representatives); err != nil {
		return nil, err
	}
	return representatives, nil
}

// BuildPools runs the external miner for both pattern kinds with the
// configured support thresholds and compresses and persists each result.
func (e *Engine) BuildPools(ctx context.Context, miner mining.Miner) error {
	mined, err := miner.Mine(ctx, pattern.KindPhrase, e.cfg.Mine.TitleSupport)
	if err != nil {
		return fmt.Errorf("mine title patterns: %w", err)
	}
	if _, err := e.CompressPool(ctx, pattern.KindPhrase, mined); err != nil {
		return err
	}

	mined, err = miner.Mine(ctx, pattern.KindAuthors, e.cfg.Mine.AuthorSupport)
	if err != nil {
		return fmt.Errorf("mine author patterns: %w", err)
	}
	if _, err := e.CompressPool(ctx, pattern.KindAuthors, mined); err != nil {
		return err
	}
	return nil
}

func (e *Engine) distanceFor(kind pattern.Kind) float64 {
	if kind == pattern.KindAuthors {
		return e.cfg.Compress.AuthorDistance
	}
	return e.cfg.Compress.TitleDistance
}

// AnnotateRequest describes one annotation query.
type AnnotateRequest struct {
	Query string // author names "; "-separated, title tokens space-separated
	Kind  string // "title" or "author"

	// Params overrides the configured result bounds when non-nil.
	// An explicit zero bound is meaningful (an empty list), so the
	// override is all-or-nothing.
	Params *annotate.Params
}

// Annotate runs an annotation query against the stored pattern pools
// and corpus, persists the resulting definition, and returns it. The
// candidate pool is the union of the author and title pools.
func (e *Engine) Annotate(ctx context.Context, req AnnotateRequest) (definition.Definition, error) {
	kind, err := pattern.ParseKind(req.Kind)
	if err != nil {
		return definition.Definition{}, err
	}
	query, err := parseQuery(kind, req.Query)
	if err != nil {
		return definition.Definition{}, err
	}

	params := annotate.Params{
		N1: e.cfg.Annotate.Context,
		N2: e.cfg.Annotate.Synonyms,
		N3: e.cfg.Annotate.Examples,
	}
	if req.Params != nil {
		params = *req.Params
	}

	corp, err := e.store.LoadCorpus(ctx)
	if err != nil {
		return definition.Definition{}, err
	}

	authorPool, err := e.store.LoadPool(ctx, pattern.KindAuthors)
	if err != nil {
		return definition.Definition{}, err
	}
	titlePool, err := e.store.LoadPool(ctx, pattern.KindPhrase)
	if err != nil {
		return definition.Definition{}, err
	}
	candidates := append(authorPool, titlePool...)

	result, err := annotate.Annotate(ctx, query, candidates, corp, params)
	if err != nil {
		return definition.Definition{}, err
	}

	def := e.builder.Build(query, result)
	if err := e.store.SaveDefinition(ctx, def); err != nil {
		return definition.Definition{}, err
	}
	return def, nil
}

func parseQuery(kind pattern.Kind, query string) (pattern.Pattern, error) {
	var tokens []string
	if kind == pattern.KindAuthors {
		tokens = corpus.SplitAuthors(query)
	} else {
		tokens = strings.Fields(query)
	}
	if len(tokens) == 0 {
		return pattern.Pattern{}, fmt.Errorf("%w: empty query", internalerr.ErrInvalidInput)
	}
	return pattern.Pattern{Kind: kind, Tokens: tokens}, nil
}
