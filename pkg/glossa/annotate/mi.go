package annotate

import "math"

// occVec marks, per corpus position, whether a pattern occurs in that
// transaction. Vectors are only comparable when built over the same
// corpus.
type occVec []bool

func (v occVec) ones() int {
	n := 0
	for _, b := range v {
		if b {
			n++
		}
	}
	return n
}

// mutualInfo estimates the mutual information between two binary
// pattern-presence indicators from their occurrence vectors.
//
//	MI(x,y) = Σ_{a,b∈{0,1}} P(x=a,y=b) · log2( P(x=a,y=b) / (P(x=a)·P(y=b)) )
//
// Probabilities are relative frequencies over the corpus. Cells with a
// zero joint count contribute nothing, which keeps the estimate finite.
// Symmetric in its arguments. Floating point can leave small negative
// residue near zero; callers must not assume MI ≥ 0 exactly.
func mutualInfo(x, y occVec, total int) float64 {
	if total == 0 {
		return 0
	}

	n11 := 0
	for i, b := range x {
		if b && y[i] {
			n11++
		}
	}
	nx := x.ones()
	ny := y.ones()

	n10 := nx - n11         // x present, y absent
	n01 := ny - n11         // y present, x absent
	n00 := total - nx - n01 // both absent

	mi := 0.0
	mi += miTerm(n11, nx, ny, total)
	mi += miTerm(n10, nx, total-ny, total)
	mi += miTerm(n01, total-nx, ny, total)
	mi += miTerm(n00, total-nx, total-ny, total)
	return mi
}

// miTerm computes one cell of the MI sum from raw counts: the joint
// count, both marginal counts, and the corpus size. A zero joint count
// contributes 0 by convention.
func miTerm(nab, na, nb, n int) float64 {
	if nab == 0 {
		return 0
	}
	pab := float64(nab) / float64(n)
	pa := float64(na) / float64(n)
	pb := float64(nb) / float64(n)
	return pab * math.Log2(pab/(pa*pb))
}

// cosine returns the cosine similarity of two equal-length vectors,
// defined as 0 when either has zero norm.
func cosine(a, b []float64) float64 {
	dot, na, nb := 0.0, 0.0, 0.0
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
