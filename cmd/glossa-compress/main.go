package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"

	"github.com/cognicore/glossa/pkg/glossa/annotate"
	"github.com/cognicore/glossa/pkg/glossa/compress"
	"github.com/cognicore/glossa/pkg/glossa/corpus"
	"github.com/cognicore/glossa/pkg/glossa/mining"
	"github.com/cognicore/glossa/pkg/glossa/pattern"
	"github.com/cognicore/glossa/pkg/glossa/store/sqlite"
)

func main() {
	var (
		input    = flag.String("input", "", "Path to the raw mined pattern file (required)")
		output   = flag.String("output", "", "Path for the compressed pattern file (required)")
		kindName = flag.String("kind", "", "Pattern kind: title or author (required)")
		distance = flag.Float64("distance", -1, "Jaccard distance threshold in [0,1] (required)")
		dbPath   = flag.String("db", "", "Optional corpus database: recompute supports and persist the pool")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}
	if *output == "" {
		log.Fatal("--output required")
	}
	if *kindName == "" {
		log.Fatal("--kind required")
	}
	if *distance < 0 || *distance > 1 {
		log.Fatal("--distance must be in [0,1]")
	}

	kind, err := pattern.ParseKind(*kindName)
	if err != nil {
		log.Fatalf("parse kind: %v", err)
	}

	sep := " "
	if kind == pattern.KindAuthors {
		sep = corpus.AuthorSeparator
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("open patterns: %v", err)
	}
	patterns, err := mining.Parse(f, kind, sep, 0)
	f.Close()
	if err != nil {
		log.Fatalf("parse patterns: %v", err)
	}

	representatives, err := compress.Compress(patterns, *distance)
	if err != nil {
		log.Fatalf("compress patterns: %v", err)
	}

	if *dbPath != "" {
		ctx := context.Background()
		st, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open store: %v", err)
		}
		defer st.Close()

		corp, err := st.LoadCorpus(ctx)
		if err != nil {
			log.Fatalf("load corpus: %v", err)
		}
		for i := range representatives {
			representatives[i].Support = annotate.Support(representatives[i], corp)
		}

		if err := st.SavePool(ctx, kind, representatives); err != nil {
			log.Fatalf("save pool: %v", err)
		}
	}

	out, err := os.Create(*output)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, p := range representatives {
		if _, err := w.WriteString(p.String() + "\n"); err != nil {
			log.Fatalf("write output: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("write output: %v", err)
	}

	log.Printf("%d out of %d patterns selected", len(representatives), len(patterns))
	if len(patterns) > 0 {
		rate := float64(len(patterns)-len(representatives)) / float64(len(patterns)) * 100
		log.Printf("%.2f%% compression rate", rate)
	}
}
