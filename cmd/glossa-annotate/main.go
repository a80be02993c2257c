package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/cognicore/glossa/pkg/glossa"
	"github.com/cognicore/glossa/pkg/glossa/annotate"
	"github.com/cognicore/glossa/pkg/glossa/config"
	"github.com/cognicore/glossa/pkg/glossa/store/sqlite"
)

func main() {
	var (
		dbPath    = flag.String("db", "", "Path to the corpus database (required)")
		query     = flag.String("query", "", "Query pattern to annotate (required)")
		queryType = flag.String("type", "", "Query kind: title or author (required)")
		n1        = flag.Int("n1", -1, "Number of context patterns (default from config)")
		n2        = flag.Int("n2", -1, "Number of synonym patterns (default from config)")
		n3        = flag.Int("n3", -1, "Number of example transactions (default from config)")
		format    = flag.String("format", "xml", "Output format: xml or json")
		cfgPath   = flag.String("config", "", "Optional YAML configuration file")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if *query == "" {
		log.Fatal("--query required")
	}
	if *queryType == "" {
		log.Fatal("--type required")
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = *loaded
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	engine := glossa.New(glossa.Options{Store: st, Config: &cfg})
	defer engine.Close()

	req := glossa.AnnotateRequest{
		Query: *query,
		Kind:  *queryType,
	}
	if *n1 >= 0 || *n2 >= 0 || *n3 >= 0 {
		params := annotate.Params{
			N1: cfg.Annotate.Context,
			N2: cfg.Annotate.Synonyms,
			N3: cfg.Annotate.Examples,
		}
		if *n1 >= 0 {
			params.N1 = *n1
		}
		if *n2 >= 0 {
			params.N2 = *n2
		}
		if *n3 >= 0 {
			params.N3 = *n3
		}
		req.Params = &params
	}

	def, err := engine.Annotate(ctx, req)
	if err != nil {
		log.Fatalf("annotate: %v", err)
	}

	switch *format {
	case "xml":
		err = def.EncodeXML(os.Stdout)
	case "json":
		err = def.EncodeJSON(os.Stdout)
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("encode definition: %v", err)
	}
}
