package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/cognicore/glossa/pkg/glossa"
	"github.com/cognicore/glossa/pkg/glossa/store/sqlite"
)

func main() {
	var (
		dbPath = flag.String("db", "", "Path to the corpus database (required)")
		input  = flag.String("input", "", "Path to the article corpus file (required)")
		format = flag.String("format", "xml", "Corpus format: xml or jsonl")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if *input == "" {
		log.Fatal("--input required")
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	engine := glossa.New(glossa.Options{Store: st})
	defer engine.Close()

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("open corpus: %v", err)
	}
	defer f.Close()

	var count int
	switch *format {
	case "xml":
		count, err = engine.ImportXML(ctx, f)
	case "jsonl":
		count, err = engine.ImportJSONL(ctx, f)
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("import corpus: %v", err)
	}

	log.Printf("%d transactions imported", count)
}
