// Package definition turns an annotation into a stable, serializable
// record: the query pattern with its context, synonyms, and example
// transactions, under a unique ID.
package definition

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/glossa/pkg/glossa/annotate"
	"github.com/cognicore/glossa/pkg/glossa/corpus"
	"github.com/cognicore/glossa/pkg/glossa/pattern"
)

// Definition is one completed annotation. Immutable once built.
type Definition struct {
	ID       string
	Query    pattern.Pattern
	Context  []pattern.Pattern
	Synonyms []pattern.Pattern
	Examples []Example
}

// Example is a representative transaction, rendered with its original
// (unnormalized) title when the corpus carries one.
type Example struct {
	Title   string
	Authors []string
}

// Builder assigns IDs to definitions
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// New creates a definition builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Build assembles a definition from an annotation result.
func (b *Builder) Build(query pattern.Pattern, res annotate.Result) Definition {
	def := Definition{
		ID:       ulid.MustNew(ulid.Now(), b.entropy).String(),
		Query:    query,
		Context:  res.Context,
		Synonyms: res.Synonyms,
		Examples: make([]Example, 0, len(res.Examples)),
	}

	for _, t := range res.Examples {
		def.Examples = append(def.Examples, exampleFromTransaction(t))
	}
	return def
}

func exampleFromTransaction(t corpus.Transaction) Example {
	title := t.OriginalTitle
	if title == "" {
		title = pattern.Phrase(t.TitleTokens...).String()
	}
	return Example{
		Title:   title,
		Authors: t.Authors,
	}
}
