package pattern

import (
	"testing"

	"github.com/cognicore/glossa/pkg/glossa/corpus"
)

func TestPhraseMatchesSubsequence(t *testing.T) {
	tx := corpus.Transaction{TitleTokens: []string{"mine", "frequent", "sequential", "pattern"}}

	cases := []struct {
		tokens []string
		want   bool
	}{
		{[]string{"mine", "pattern"}, true},             // non-contiguous, in order
		{[]string{"mine", "frequent", "pattern"}, true}, // three tokens in order
		{[]string{"pattern", "mine"}, false},            // order violated
		{[]string{"mine", "graph"}, false},              // absent token
		{[]string{"pattern"}, true},
	}

	for _, c := range cases {
		got := Phrase(c.tokens...).Matches(tx)
		if got != c.want {
			t.Errorf("Phrase(%v).Matches = %v, want %v", c.tokens, got, c.want)
		}
	}
}

func TestAuthorsMatchesSubset(t *testing.T) {
	tx := corpus.Transaction{Authors: []string{"rakesh agrawal", "ramakrishnan srikant"}}

	if !Authors("rakesh agrawal").Matches(tx) {
		t.Error("single author should match")
	}
	if !Authors("ramakrishnan srikant", "rakesh agrawal").Matches(tx) {
		t.Error("subset test must ignore order")
	}
	if Authors("rakesh agrawal", "jiawei han").Matches(tx) {
		t.Error("missing author should not match")
	}
}

func TestAuthorsMatchIgnoresTitle(t *testing.T) {
	tx := corpus.Transaction{
		TitleTokens: []string{"jiawei"},
		Authors:     []string{"rakesh agrawal"},
	}
	if Authors("jiawei").Matches(tx) {
		t.Error("author pattern must only be tested against the author set")
	}
}

func TestJaccardIdentityAndSymmetry(t *testing.T) {
	pats := []Pattern{
		Authors("a", "b"),
		Authors("a", "b", "c"),
		Authors("x", "y"),
		Phrase("data", "mine"),
	}

	for _, p := range pats {
		if d := Jaccard(p, p); d != 0 {
			t.Errorf("Jaccard(%v, %v) = %v, want 0", p, p, d)
		}
	}

	for i, a := range pats {
		for j, b := range pats {
			if i == j {
				continue
			}
			if Jaccard(a, b) != Jaccard(b, a) {
				t.Errorf("Jaccard not symmetric for %v, %v", a, b)
			}
		}
	}
}

func TestJaccardValues(t *testing.T) {
	d := Jaccard(Authors("a", "b"), Authors("a", "b", "c"))
	if diff := d - 1.0/3.0; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("Jaccard({a,b},{a,b,c}) = %v, want 1/3", d)
	}

	if d := Jaccard(Authors("a", "b"), Authors("x", "y")); d != 1 {
		t.Errorf("Jaccard of disjoint sets = %v, want 1", d)
	}
}

func TestJaccardIgnoresPhraseOrder(t *testing.T) {
	// The set view discards order for distance only.
	if d := Jaccard(Phrase("data", "mine"), Phrase("mine", "data")); d != 0 {
		t.Errorf("Jaccard over token sets should be 0, got %v", d)
	}
}

func TestEqual(t *testing.T) {
	if !Phrase("a", "b").Equal(Phrase("a", "b")) {
		t.Error("identical phrases should be equal")
	}
	if Phrase("a", "b").Equal(Phrase("b", "a")) {
		t.Error("phrase equality is order-sensitive")
	}
	if !Authors("a", "b").Equal(Authors("b", "a")) {
		t.Error("author equality is order-insensitive")
	}
	if Phrase("a", "b").Equal(Authors("a", "b")) {
		t.Error("different kinds are never equal")
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("title"); err != nil || k != KindPhrase {
		t.Errorf("ParseKind(title) = %v, %v", k, err)
	}
	if k, err := ParseKind("author"); err != nil || k != KindAuthors {
		t.Errorf("ParseKind(author) = %v, %v", k, err)
	}
	if _, err := ParseKind("topic"); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestString(t *testing.T) {
	if s := Phrase("data", "mine").String(); s != "data mine" {
		t.Errorf("phrase String = %q", s)
	}
	if s := Authors("rakesh agrawal", "jiawei han").String(); s != "rakesh agrawal ; jiawei han" {
		t.Errorf("authors String = %q", s)
	}
}
