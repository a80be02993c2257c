package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

type jsonlArticle struct {
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	Authors       []string `json:"authors"`
}

// ReadJSONL loads transactions from a JSONL stream, one article object
// per line: {"title": "...", "original_title": "...", "authors": [...]}.
// The title field holds normalized, space-separated tokens. Blank lines
// are skipped; malformed lines are an error.
func ReadJSONL(r io.Reader) (*Corpus, error) {
	var transactions []Transaction

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var art jsonlArticle
		if err := json.Unmarshal([]byte(line), &art); err != nil {
			return nil, fmt.Errorf("parse article at line %d: %w", lineNo, err)
		}

		titleTokens := strings.Fields(art.Title)
		if len(titleTokens) == 0 {
			continue
		}

		transactions = append(transactions, Transaction{
			TitleTokens:   titleTokens,
			Authors:       art.Authors,
			OriginalTitle: art.OriginalTitle,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read articles: %w", err)
	}

	return New(transactions), nil
}
