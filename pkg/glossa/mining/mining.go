// Package mining defines the contract with the external frequent-pattern
// miner and parses its output. Mining itself (closed sequential patterns
// over titles, closed itemsets over author sets) is owned by an external
// tool; this package only consumes its flat pattern lists.
package mining

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cognicore/glossa/pkg/glossa/pattern"
)

// Miner is the external pattern-mining collaborator: given a pattern
// kind and a minimum support fraction it returns the closed frequent
// patterns meeting that support, each tagged with its observed support.
type Miner interface {
	Mine(ctx context.Context, kind pattern.Kind, minSupport float64) ([]pattern.Pattern, error)
}

// supMarker is the support annotation some miners append to each line,
// e.g. "data mine #SUP: 42".
const supMarker = "#SUP:"

// Parse reads a flat pattern list: one pattern per line, tokens joined
// by sep, with an optional trailing "#SUP: n" count. When corpusSize is
// positive the count is converted to a support fraction; otherwise
// support is left zero for later recomputation. Blank lines are skipped.
// Input order is preserved; downstream compression is order-sensitive.
func Parse(r io.Reader, kind pattern.Kind, sep string, corpusSize int) ([]pattern.Pattern, error) {
	var patterns []pattern.Pattern

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		support := 0.0
		if at := strings.Index(line, supMarker); at >= 0 {
			count, err := strconv.Atoi(strings.TrimSpace(line[at+len(supMarker):]))
			if err != nil {
				return nil, fmt.Errorf("parse support count at line %d: %w", lineNo, err)
			}
			line = trimDanglingSep(line[:at], sep)
			if corpusSize > 0 {
				support = float64(count) / float64(corpusSize)
			}
		}

		tokens := splitTokens(line, sep)
		if len(tokens) == 0 {
			continue
		}

		patterns = append(patterns, pattern.Pattern{
			Kind:    kind,
			Tokens:  tokens,
			Support: support,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pattern list: %w", err)
	}

	return patterns, nil
}

// trimDanglingSep removes separators left dangling before a stripped
// support marker, e.g. the trailing " ; " in "a ; b ; #SUP: 2".
func trimDanglingSep(line, sep string) string {
	line = strings.TrimSpace(line)
	sep = strings.TrimSpace(sep)
	if sep == "" {
		return line
	}
	for strings.HasSuffix(line, sep) {
		line = strings.TrimSpace(strings.TrimSuffix(line, sep))
	}
	return line
}

func splitTokens(line, sep string) []string {
	if sep == "" {
		sep = " "
	}
	var tokens []string
	for _, tok := range strings.Split(line, sep) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
