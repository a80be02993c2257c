package mining

import (
	"strings"
	"testing"

	"github.com/cognicore/glossa/pkg/glossa/corpus"
	"github.com/cognicore/glossa/pkg/glossa/pattern"
)

func TestParsePhrasePatterns(t *testing.T) {
	input := "data mine #SUP: 42\nweb search engine #SUP: 17\n\nstream #SUP: 5\n"

	patterns, err := Parse(strings.NewReader(input), pattern.KindPhrase, " ", 100)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(patterns) != 3 {
		t.Fatalf("got %d patterns, want 3", len(patterns))
	}

	first := patterns[0]
	if first.Kind != pattern.KindPhrase {
		t.Errorf("kind = %v", first.Kind)
	}
	if len(first.Tokens) != 2 || first.Tokens[0] != "data" || first.Tokens[1] != "mine" {
		t.Errorf("tokens = %v", first.Tokens)
	}
	if first.Support != 0.42 {
		t.Errorf("support = %v, want 0.42", first.Support)
	}

	if patterns[1].Tokens[2] != "engine" {
		t.Errorf("second tokens = %v", patterns[1].Tokens)
	}
}

func TestParseAuthorPatterns(t *testing.T) {
	input := "rakesh agrawal ; ramakrishnan srikant #SUP: 10\njiawei han #SUP: 25\n"

	patterns, err := Parse(strings.NewReader(input), pattern.KindAuthors, corpus.AuthorSeparator, 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(patterns) != 2 {
		t.Fatalf("got %d patterns, want 2", len(patterns))
	}

	first := patterns[0]
	if len(first.Tokens) != 2 || first.Tokens[0] != "rakesh agrawal" {
		t.Errorf("tokens = %v", first.Tokens)
	}
	// Without a corpus size the support stays unset for recomputation.
	if first.Support != 0 {
		t.Errorf("support = %v, want 0", first.Support)
	}
}

func TestParseDanglingSeparatorBeforeSupport(t *testing.T) {
	input := "rakesh agrawal ; jiawei han ; #SUP: 3\n"

	patterns, err := Parse(strings.NewReader(input), pattern.KindAuthors, corpus.AuthorSeparator, 10)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(patterns) != 1 {
		t.Fatalf("got %d patterns, want 1", len(patterns))
	}

	tokens := patterns[0].Tokens
	if len(tokens) != 2 {
		t.Fatalf("tokens = %v, want 2", tokens)
	}
	if tokens[1] != "jiawei han" {
		t.Errorf("second token = %q, want %q", tokens[1], "jiawei han")
	}
}

func TestParseWithoutSupportMarker(t *testing.T) {
	patterns, err := Parse(strings.NewReader("data mine\n"), pattern.KindPhrase, " ", 50)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(patterns) != 1 || len(patterns[0].Tokens) != 2 {
		t.Fatalf("patterns = %v", patterns)
	}
}

func TestParsePreservesOrder(t *testing.T) {
	input := "c\nb\na\n"
	patterns, err := Parse(strings.NewReader(input), pattern.KindPhrase, " ", 0)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := []string{"c", "b", "a"}
	for i, w := range want {
		if patterns[i].Tokens[0] != w {
			t.Errorf("pattern %d = %v, want %s", i, patterns[i].Tokens, w)
		}
	}
}

func TestParseBadSupportCount(t *testing.T) {
	if _, err := Parse(strings.NewReader("data #SUP: many\n"), pattern.KindPhrase, " ", 10); err == nil {
		t.Error("malformed support count should fail")
	}
}
