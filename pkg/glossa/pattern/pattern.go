package pattern

import (
	"fmt"
	"strings"

	"github.com/cognicore/glossa/pkg/glossa/corpus"
	"github.com/cognicore/glossa/pkg/glossa/internalerr"
)

// Kind distinguishes the two mined pattern shapes. A phrase pattern is an
// ordered token sequence matched as a subsequence of a title; an author
// pattern is an unordered token set matched as a subset of a
// transaction's authors. The two kinds never mix within one computation.
type Kind int

const (
	KindPhrase Kind = iota
	KindAuthors
)

// String returns the kind name used in CLI flags and stored pools.
func (k Kind) String() string {
	switch k {
	case KindPhrase:
		return "title"
	case KindAuthors:
		return "author"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a kind name ("title" or "author") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "title":
		return KindPhrase, nil
	case "author":
		return KindAuthors, nil
	default:
		return 0, fmt.Errorf("%w: unknown pattern kind %q", internalerr.ErrInvalidInput, s)
	}
}

// Pattern is a mined candidate: a token sequence or set with its observed
// support (fraction of transactions containing it). Tokens must be
// non-empty; for KindPhrase the token order is significant.
type Pattern struct {
	Kind    Kind
	Tokens  []string
	Support float64
}

// Phrase creates an ordered title pattern.
func Phrase(tokens ...string) Pattern {
	return Pattern{Kind: KindPhrase, Tokens: tokens}
}

// Authors creates an unordered author pattern.
func Authors(tokens ...string) Pattern {
	return Pattern{Kind: KindAuthors, Tokens: tokens}
}

// Matches reports whether the pattern occurs in the transaction: a
// subsequence test against the title tokens for phrases, a subset test
// against the author set for author patterns. Pure and deterministic.
func (p Pattern) Matches(t corpus.Transaction) bool {
	switch p.Kind {
	case KindAuthors:
		return isSubset(p.Tokens, t.Authors)
	default:
		return isSubsequence(p.Tokens, t.TitleTokens)
	}
}

// TokenSet returns the set view of the pattern's tokens. For phrase
// patterns the order is deliberately discarded; the set view exists only
// for Jaccard distance.
func (p Pattern) TokenSet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.Tokens))
	for _, tok := range p.Tokens {
		set[tok] = struct{}{}
	}
	return set
}

// Equal reports whether two patterns are the same kind with identical
// token content: order-sensitive for phrases, order-insensitive for
// author sets.
func (p Pattern) Equal(q Pattern) bool {
	if p.Kind != q.Kind {
		return false
	}
	if p.Kind == KindPhrase {
		if len(p.Tokens) != len(q.Tokens) {
			return false
		}
		for i := range p.Tokens {
			if p.Tokens[i] != q.Tokens[i] {
				return false
			}
		}
		return true
	}

	ps, qs := p.TokenSet(), q.TokenSet()
	if len(ps) != len(qs) {
		return false
	}
	for tok := range ps {
		if _, ok := qs[tok]; !ok {
			return false
		}
	}
	return true
}

// String renders the pattern in its source file format: space-joined
// for phrases, " ; "-joined for author sets.
func (p Pattern) String() string {
	if p.Kind == KindAuthors {
		return strings.Join(p.Tokens, corpus.AuthorSeparator)
	}
	return strings.Join(p.Tokens, " ")
}

// Jaccard returns the Jaccard distance 1 - |A∩B|/|A∪B| between the token
// sets of two patterns. Identical sets are at distance 0; disjoint sets
// at distance 1. Symmetric in its arguments.
func Jaccard(a, b Pattern) float64 {
	as, bs := a.TokenSet(), b.TokenSet()

	intersection := 0
	for tok := range as {
		if _, ok := bs[tok]; ok {
			intersection++
		}
	}

	union := len(as) + len(bs) - intersection
	if union == 0 {
		return 0
	}
	return 1 - float64(intersection)/float64(union)
}

// isSubsequence reports whether pat appears within seq preserving
// relative order, not necessarily contiguously.
func isSubsequence(pat, seq []string) bool {
	i := 0
	for _, tok := range seq {
		if i == len(pat) {
			return true
		}
		if tok == pat[i] {
			i++
		}
	}
	return i == len(pat)
}

// isSubset reports whether every token of pat appears in items.
func isSubset(pat, items []string) bool {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	for _, tok := range pat {
		if _, ok := set[tok]; !ok {
			return false
		}
	}
	return true
}
