package store

import (
	"context"

	"github.com/cognicore/glossa/pkg/glossa/corpus"
	"github.com/cognicore/glossa/pkg/glossa/definition"
	"github.com/cognicore/glossa/pkg/glossa/pattern"
)

// Store persists the transaction corpus, the compressed pattern pools,
// and completed definitions. Transactions keep their insertion order;
// pools keep their rank order.
type Store interface {
	Close() error

	// Corpus
	AddTransactions(ctx context.Context, ts []corpus.Transaction) error
	LoadCorpus(ctx context.Context) (*corpus.Corpus, error)
	CountTransactions(ctx context.Context) (int, error)

	// Pattern pools, one per kind. SavePool replaces the whole pool.
	SavePool(ctx context.Context, kind pattern.Kind, patterns []pattern.Pattern) error
	LoadPool(ctx context.Context, kind pattern.Kind) ([]pattern.Pattern, error)

	// Definitions
	SaveDefinition(ctx context.Context, d definition.Definition) error
	GetDefinition(ctx context.Context, id string) (definition.Definition, error)
	ListDefinitions(ctx context.Context, limit int) ([]definition.Definition, error)
}
