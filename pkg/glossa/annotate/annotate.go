// Package annotate implements the semantic annotation engine. Given a
// query pattern, a candidate pattern pool, and a transaction corpus, it
// selects three ranked lists: context patterns that co-occur strongly
// with the query (mutual information), synonym patterns that behave like
// the query with respect to that context (cosine similarity of MI
// vectors), and representative example transactions.
package annotate

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/glossa/pkg/glossa/corpus"
	"github.com/cognicore/glossa/pkg/glossa/internalerr"
	"github.com/cognicore/glossa/pkg/glossa/pattern"
)

// Params bounds the three ranked lists of an annotation: n1 context
// patterns, n2 synonyms, n3 example transactions. Zero is allowed and
// produces an empty list; negative values are a caller error.
type Params struct {
	N1 int
	N2 int
	N3 int
}

func (p Params) validate() error {
	if p.N1 < 0 || p.N2 < 0 || p.N3 < 0 {
		return fmt.Errorf("%w: negative result bound n1=%d n2=%d n3=%d",
			internalerr.ErrInvalidInput, p.N1, p.N2, p.N3)
	}
	return nil
}

// Result is one annotation: three independently ranked lists, all
// derived from the same context set. Immutable once returned.
type Result struct {
	Context  []pattern.Pattern
	Synonyms []pattern.Pattern
	Examples []corpus.Transaction
}

// Annotate scores, ranks, and selects the annotation triple for the
// query over the candidate pool and corpus. Candidates equal to the
// query are ignored. All rankings are stable: ties keep candidate input
// order (or corpus order for examples). Fewer available items than
// requested is not an error. An empty pool or corpus produces degenerate
// but well-defined results rather than failing.
func Annotate(ctx context.Context, query pattern.Pattern, candidates []pattern.Pattern, corp *corpus.Corpus, params Params) (Result, error) {
	if err := params.validate(); err != nil {
		return Result{}, err
	}
	if len(query.Tokens) == 0 {
		return Result{}, fmt.Errorf("%w: query pattern with no tokens", internalerr.ErrInvalidInput)
	}

	pool := make([]pattern.Pattern, 0, len(candidates))
	for _, c := range candidates {
		if c.Equal(query) {
			continue
		}
		pool = append(pool, c)
	}

	vecs, err := matchVectors(ctx, append([]pattern.Pattern{query}, pool...), corp)
	if err != nil {
		return Result{}, err
	}
	queryVec, poolVecs := vecs[0], vecs[1:]
	total := corp.Len()

	// Context: candidates by mutual information with the query.
	miScores := make([]float64, len(pool))
	for i, v := range poolVecs {
		miScores[i] = mutualInfo(queryVec, v, total)
	}
	contextIdx := rankTop(len(pool), params.N1, func(i int) float64 { return miScores[i] })

	result := Result{}
	contextVecs := make([]occVec, len(contextIdx))
	inContext := make(map[int]bool, len(contextIdx))
	for i, idx := range contextIdx {
		result.Context = append(result.Context, pool[idx])
		contextVecs[i] = poolVecs[idx]
		inContext[idx] = true
	}

	// Synonyms: remaining candidates by cosine similarity between their
	// MI vector over the context and the query's. An empty context means
	// zero-length vectors carry no signal, so no synonyms are reported.
	if len(result.Context) > 0 {
		queryProfile := miVector(queryVec, contextVecs, total)

		rest := make([]int, 0, len(pool))
		cosScores := make(map[int]float64, len(pool))
		for i := range pool {
			if inContext[i] {
				continue
			}
			rest = append(rest, i)
			cosScores[i] = cosine(miVector(poolVecs[i], contextVecs, total), queryProfile)
		}

		ranked := rankTop(len(rest), params.N2, func(i int) float64 { return cosScores[rest[i]] })
		for _, i := range ranked {
			result.Synonyms = append(result.Synonyms, pool[rest[i]])
		}
	}

	// Examples: transactions by context coverage. Every context pattern
	// votes +1 when present and -1 when absent.
	txScores := make([]float64, total)
	for t := 0; t < total; t++ {
		for _, cv := range contextVecs {
			if cv[t] {
				txScores[t]++
			} else {
				txScores[t]--
			}
		}
	}
	for _, t := range rankTop(total, params.N3, func(i int) float64 { return txScores[i] }) {
		result.Examples = append(result.Examples, corp.At(t))
	}

	return result, nil
}

// miVector builds the MI profile of one occurrence vector against the
// ordered context vectors.
func miVector(v occVec, contextVecs []occVec, total int) []float64 {
	profile := make([]float64, len(contextVecs))
	for i, cv := range contextVecs {
		profile[i] = mutualInfo(v, cv, total)
	}
	return profile
}

// rankTop returns the indices 0..n-1 ordered by descending score,
// truncated to k. The sort is stable so tied scores keep their original
// order.
func rankTop(n, k int, score func(int) float64) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return score(idx[a]) > score(idx[b])
	})
	if k < len(idx) {
		idx = idx[:k]
	}
	return idx
}

// matchVectors computes the occurrence vector of every pattern over the
// corpus. Patterns are independent, so the oracle calls are spread
// across workers; each goroutine writes only its own slot.
func matchVectors(ctx context.Context, patterns []pattern.Pattern, corp *corpus.Corpus) ([]occVec, error) {
	vecs := make([]occVec, len(patterns))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, p := range patterns {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v := make(occVec, corp.Len())
			for t := 0; t < corp.Len(); t++ {
				v[t] = p.Matches(corp.At(t))
			}
			vecs[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vecs, nil
}

// Support recomputes a pattern's support as the fraction of corpus
// transactions it occurs in. Used instead of trusting the miner's
// reported counts, which may have been taken over a different corpus
// snapshot.
func Support(p pattern.Pattern, corp *corpus.Corpus) float64 {
	if corp.Len() == 0 {
		return 0
	}
	n := 0
	for t := 0; t < corp.Len(); t++ {
		if p.Matches(corp.At(t)) {
			n++
		}
	}
	return float64(n) / float64(corp.Len())
}
