// Package compress reduces a mined pattern list to a representative
// subset. It runs a single streaming pass over the input: each pattern
// joins the closest existing cluster under complete linkage, or starts a
// new one when no cluster is within the distance threshold. After the
// pass each cluster is projected to its medoid.
//
// The procedure is deliberately order-dependent: feeding the same
// patterns in a different order can produce different clusters. That is
// the published microclustering behavior, not an artifact, so callers
// must not reorder the input.
package compress

import (
	"fmt"

	"github.com/cognicore/glossa/pkg/glossa/internalerr"
	"github.com/cognicore/glossa/pkg/glossa/pattern"
)

// cluster accumulates patterns in arrival order. Clusters only grow;
// they never merge.
type cluster struct {
	members []pattern.Pattern
}

// maxDist returns the complete-linkage distance from p to the cluster:
// the largest Jaccard distance between p and any member.
func (c *cluster) maxDist(p pattern.Pattern) float64 {
	worst := 0.0
	for _, m := range c.members {
		if d := pattern.Jaccard(p, m); d > worst {
			worst = d
		}
	}
	return worst
}

// medoid returns the member minimizing the average Jaccard distance to
// the other members, breaking ties toward the earliest arrival.
func (c *cluster) medoid() pattern.Pattern {
	if len(c.members) == 1 {
		return c.members[0]
	}

	best := 0
	bestAvg := avgDist(c.members, 0)
	for i := 1; i < len(c.members); i++ {
		if avg := avgDist(c.members, i); avg < bestAvg {
			best, bestAvg = i, avg
		}
	}
	return c.members[best]
}

func avgDist(members []pattern.Pattern, i int) float64 {
	sum := 0.0
	for j, m := range members {
		if j == i {
			continue
		}
		sum += pattern.Jaccard(members[i], m)
	}
	return sum / float64(len(members)-1)
}

// Compress clusters the patterns in input order and returns one medoid
// per cluster, in cluster-creation order. A pattern joins the eligible
// cluster (maxDist ≤ threshold) with the smallest distance, ties going
// to the earliest-created cluster; otherwise it starts a new cluster.
//
// The threshold must be in [0,1]: 0 requires exact token-set equality to
// merge, 1 puts every pattern in the first cluster. Empty input yields
// empty output.
func Compress(patterns []pattern.Pattern, threshold float64) ([]pattern.Pattern, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: jaccard threshold %v outside [0,1]", internalerr.ErrInvalidInput, threshold)
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	var clusters []*cluster
	for _, p := range patterns {
		if len(p.Tokens) == 0 {
			return nil, fmt.Errorf("%w: pattern with no tokens", internalerr.ErrInvalidInput)
		}

		best := -1
		bestDist := 0.0
		for i, c := range clusters {
			d := c.maxDist(p)
			if d > threshold {
				continue
			}
			if best == -1 || d < bestDist {
				best, bestDist = i, d
			}
		}

		if best >= 0 {
			clusters[best].members = append(clusters[best].members, p)
		} else {
			clusters = append(clusters, &cluster{members: []pattern.Pattern{p}})
		}
	}

	representatives := make([]pattern.Pattern, len(clusters))
	for i, c := range clusters {
		representatives[i] = c.medoid()
	}
	return representatives, nil
}
