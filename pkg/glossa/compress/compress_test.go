package compress

import (
	"errors"
	"testing"

	"github.com/cognicore/glossa/pkg/glossa/internalerr"
	"github.com/cognicore/glossa/pkg/glossa/pattern"
)

func TestCompressEmptyInput(t *testing.T) {
	out, err := Compress(nil, 0.5)
	if err != nil {
		t.Fatalf("Compress(nil) error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Compress(nil) returned %d patterns", len(out))
	}
}

func TestCompressInvalidThreshold(t *testing.T) {
	pats := []pattern.Pattern{pattern.Authors("a")}
	for _, threshold := range []float64{-0.1, 1.1} {
		if _, err := Compress(pats, threshold); !errors.Is(err, internalerr.ErrInvalidInput) {
			t.Errorf("threshold %v: got %v, want ErrInvalidInput", threshold, err)
		}
	}
}

func TestCompressTwoClusters(t *testing.T) {
	// {a,b} and {a,b,c} are at Jaccard distance 1/3 and share a cluster
	// under threshold 0.5; {x,y} is disjoint and stands alone. Both
	// members of the first cluster average 1/3 to the other, so the
	// earliest arrival {a,b} is the medoid.
	pats := []pattern.Pattern{
		pattern.Authors("a", "b"),
		pattern.Authors("a", "b", "c"),
		pattern.Authors("x", "y"),
	}

	out, err := Compress(pats, 0.5)
	if err != nil {
		t.Fatalf("Compress error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d representatives, want 2", len(out))
	}
	if !out[0].Equal(pattern.Authors("a", "b")) {
		t.Errorf("first representative = %v, want {a,b} (earliest-member tie-break)", out[0])
	}
	if !out[1].Equal(pattern.Authors("x", "y")) {
		t.Errorf("second representative = %v, want {x,y}", out[1])
	}
}

func TestCompressThresholdOneMergesAll(t *testing.T) {
	pats := []pattern.Pattern{
		pattern.Authors("a", "b"),
		pattern.Authors("b", "c"),
		pattern.Authors("c", "d"),
		pattern.Authors("a", "d"),
	}

	out, err := Compress(pats, 1)
	if err != nil {
		t.Fatalf("Compress error: %v", err)
	}
	if len(out) != 1 {
		t.Errorf("threshold 1 produced %d clusters, want 1", len(out))
	}
}

func TestCompressThresholdZeroRequiresEquality(t *testing.T) {
	pats := []pattern.Pattern{
		pattern.Authors("a", "b"),
		pattern.Authors("b", "a"), // same token set
		pattern.Authors("a", "b", "c"),
	}

	out, err := Compress(pats, 0)
	if err != nil {
		t.Fatalf("Compress error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d representatives, want 2", len(out))
	}
	if !out[0].Equal(pattern.Authors("a", "b")) {
		t.Errorf("first representative = %v, want {a,b}", out[0])
	}
}

func TestCompressOutputWithinInput(t *testing.T) {
	pats := []pattern.Pattern{
		pattern.Phrase("data", "mine"),
		pattern.Phrase("data", "mine", "rule"),
		pattern.Phrase("web", "search"),
		pattern.Phrase("search", "engine"),
		pattern.Phrase("data", "stream"),
	}

	for _, threshold := range []float64{0, 0.25, 0.5, 0.75, 1} {
		out, err := Compress(pats, threshold)
		if err != nil {
			t.Fatalf("threshold %v: %v", threshold, err)
		}
		if len(out) > len(pats) {
			t.Errorf("threshold %v: output larger than input", threshold)
		}
		for _, rep := range out {
			found := false
			for _, p := range pats {
				if rep.Equal(p) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("threshold %v: representative %v not in input", threshold, rep)
			}
		}
	}
}

func TestCompressAssignsToClosestCluster(t *testing.T) {
	// {a,b,c,d} seeds the first cluster, {x,y,z,w} the second. The last
	// pattern is within threshold of both but strictly closer to the
	// second, so it must join the second even though the first came
	// earlier.
	pats := []pattern.Pattern{
		pattern.Authors("a", "b", "c", "d"),
		pattern.Authors("x", "y", "z", "a"),
		pattern.Authors("x", "y", "z", "a", "b"),
	}

	out, err := Compress(pats, 0.8)
	if err != nil {
		t.Fatalf("Compress error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d representatives, want 2", len(out))
	}
	// Second cluster holds two members; its medoid is the earliest of
	// the tied pair.
	if !out[1].Equal(pattern.Authors("x", "y", "z", "a")) {
		t.Errorf("second representative = %v, want {x,y,z,a}", out[1])
	}
}

func TestCompressRejectsEmptyPattern(t *testing.T) {
	pats := []pattern.Pattern{pattern.Authors()}
	if _, err := Compress(pats, 0.5); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("empty pattern: got %v, want ErrInvalidInput", err)
	}
}
