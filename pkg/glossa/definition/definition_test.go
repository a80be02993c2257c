package definition

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cognicore/glossa/pkg/glossa/annotate"
	"github.com/cognicore/glossa/pkg/glossa/corpus"
	"github.com/cognicore/glossa/pkg/glossa/pattern"
)

func sampleDefinition() Definition {
	builder := New()
	return builder.Build(pattern.Authors("rakesh agrawal"), annotate.Result{
		Context: []pattern.Pattern{
			pattern.Authors("ramakrishnan srikant"),
			pattern.Phrase("mine", "association", "rule"),
		},
		Synonyms: []pattern.Pattern{
			pattern.Authors("jiawei han"),
		},
		Examples: []corpus.Transaction{
			{
				TitleTokens:   []string{"mine", "sequential", "pattern"},
				OriginalTitle: "Mining Sequential Patterns",
				Authors:       []string{"rakesh agrawal", "ramakrishnan srikant"},
			},
		},
	})
}

func TestBuildAssignsUniqueIDs(t *testing.T) {
	builder := New()
	a := builder.Build(pattern.Authors("x"), annotate.Result{})
	b := builder.Build(pattern.Authors("x"), annotate.Result{})

	if a.ID == "" || b.ID == "" {
		t.Fatal("IDs must be set")
	}
	if a.ID == b.ID {
		t.Error("IDs must be unique")
	}
}

func TestBuildUsesOriginalTitle(t *testing.T) {
	def := sampleDefinition()
	if def.Examples[0].Title != "Mining Sequential Patterns" {
		t.Errorf("example title = %q", def.Examples[0].Title)
	}
}

func TestBuildFallsBackToTokens(t *testing.T) {
	builder := New()
	def := builder.Build(pattern.Authors("x"), annotate.Result{
		Examples: []corpus.Transaction{
			{TitleTokens: []string{"web", "search"}, Authors: []string{"y"}},
		},
	})
	if def.Examples[0].Title != "web search" {
		t.Errorf("example title = %q", def.Examples[0].Title)
	}
}

func TestEncodeXML(t *testing.T) {
	var buf bytes.Buffer
	if err := sampleDefinition().EncodeXML(&buf); err != nil {
		t.Fatalf("EncodeXML error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<definition",
		"<context>",
		"<synonyms>",
		"<examples>",
		"<author>rakesh agrawal</author>",
		"<title>mine association rule</title>",
		"<title>Mining Sequential Patterns</title>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("XML output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	def := sampleDefinition()

	var buf bytes.Buffer
	if err := def.EncodeJSON(&buf); err != nil {
		t.Fatalf("EncodeJSON error: %v", err)
	}

	got, err := DecodeJSON(&buf)
	if err != nil {
		t.Fatalf("DecodeJSON error: %v", err)
	}

	if got.ID != def.ID {
		t.Errorf("ID = %q, want %q", got.ID, def.ID)
	}
	if !got.Query.Equal(def.Query) {
		t.Errorf("query = %v, want %v", got.Query, def.Query)
	}
	if len(got.Context) != 2 || !got.Context[1].Equal(def.Context[1]) {
		t.Errorf("context = %v", got.Context)
	}
	if got.Context[1].Kind != pattern.KindPhrase {
		t.Errorf("context kind = %v, want phrase", got.Context[1].Kind)
	}
	if len(got.Examples) != 1 || got.Examples[0].Title != def.Examples[0].Title {
		t.Errorf("examples = %v", got.Examples)
	}
}
