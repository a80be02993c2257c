// Package sqlite implements the store on a single SQLite file, giving
// the pipeline a corpus that survives between the import, compress, and
// annotate runs.
package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/glossa/pkg/glossa/corpus"
	"github.com/cognicore/glossa/pkg/glossa/definition"
	"github.com/cognicore/glossa/pkg/glossa/internalerr"
	"github.com/cognicore/glossa/pkg/glossa/pattern"
	"github.com/cognicore/glossa/pkg/glossa/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	original_title TEXT,
	authors TEXT
);

CREATE TABLE IF NOT EXISTS pools (
	kind TEXT NOT NULL,
	rank INTEGER NOT NULL,
	tokens TEXT NOT NULL,
	support REAL NOT NULL DEFAULT 0,
	PRIMARY KEY(kind, rank)
);

CREATE TABLE IF NOT EXISTS definitions (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	query TEXT NOT NULL,
	payload TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// AddTransactions appends transactions in corpus order. The insert runs
// in one database transaction so a failed import leaves no partial
// corpus behind.
func (s *sqliteStore) AddTransactions(ctx context.Context, ts []corpus.Transaction) error {
	if len(ts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO transactions (title, original_title, authors) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range ts {
		_, err := stmt.ExecContext(ctx,
			strings.Join(t.TitleTokens, " "),
			t.OriginalTitle,
			corpus.JoinAuthors(t.Authors),
		)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
	}

	return tx.Commit()
}

// LoadCorpus reads the whole corpus back in insertion order.
func (s *sqliteStore) LoadCorpus(ctx context.Context) (*corpus.Corpus, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT title, original_title, authors FROM transactions ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []corpus.Transaction
	for rows.Next() {
		var title, originalTitle, authors string
		if err := rows.Scan(&title, &originalTitle, &authors); err != nil {
			return nil, err
		}
		transactions = append(transactions, corpus.Transaction{
			TitleTokens:   strings.Fields(title),
			OriginalTitle: originalTitle,
			Authors:       corpus.SplitAuthors(authors),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return corpus.New(transactions), nil
}

// CountTransactions returns the corpus size.
func (s *sqliteStore) CountTransactions(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&n)
	return n, err
}

// SavePool replaces the pool for the kind with the given rank-ordered
// patterns.
func (s *sqliteStore) SavePool(ctx context.Context, kind pattern.Kind, patterns []pattern.Pattern) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pools WHERE kind = ?", kind.String()); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO pools (kind, rank, tokens, support) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for rank, p := range patterns {
		if p.Kind != kind {
			return fmt.Errorf("%w: %s pattern in %s pool", internalerr.ErrKindMismatch, p.Kind, kind)
		}
		if _, err := stmt.ExecContext(ctx, kind.String(), rank, p.String(), p.Support); err != nil {
			return fmt.Errorf("insert pattern: %w", err)
		}
	}

	return tx.Commit()
}

// LoadPool reads a pattern pool back in rank order. A missing pool is
// an empty pool, not an error.
func (s *sqliteStore) LoadPool(ctx context.Context, kind pattern.Kind) ([]pattern.Pattern, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tokens, support FROM pools WHERE kind = ? ORDER BY rank", kind.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []pattern.Pattern
	for rows.Next() {
		var tokens string
		var support float64
		if err := rows.Scan(&tokens, &support); err != nil {
			return nil, err
		}
		patterns = append(patterns, poolPattern(kind, tokens, support))
	}
	return patterns, rows.Err()
}

func poolPattern(kind pattern.Kind, tokens string, support float64) pattern.Pattern {
	p := pattern.Pattern{Kind: kind, Support: support}
	if kind == pattern.KindAuthors {
		p.Tokens = corpus.SplitAuthors(tokens)
	} else {
		p.Tokens = strings.Fields(tokens)
	}
	return p
}

// SaveDefinition stores a definition as its JSON document.
func (s *sqliteStore) SaveDefinition(ctx context.Context, d definition.Definition) error {
	var payload bytes.Buffer
	if err := d.EncodeJSON(&payload); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO definitions (id, kind, query, payload, created_at) VALUES (?, ?, ?, ?, ?)",
		d.ID, d.Query.Kind.String(), d.Query.String(), payload.String(),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// GetDefinition returns a stored definition by ID.
func (s *sqliteStore) GetDefinition(ctx context.Context, id string) (definition.Definition, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM definitions WHERE id = ?", id).Scan(&payload)
	if err == sql.ErrNoRows {
		return definition.Definition{}, fmt.Errorf("definition %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return definition.Definition{}, err
	}
	return definition.DecodeJSON(strings.NewReader(payload))
}

// ListDefinitions returns the most recent definitions, newest first.
func (s *sqliteStore) ListDefinitions(ctx context.Context, limit int) ([]definition.Definition, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT payload FROM definitions ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []definition.Definition
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		def, err := definition.DecodeJSON(strings.NewReader(payload))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}
