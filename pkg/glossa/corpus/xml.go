package corpus

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// AuthorSeparator joins and splits author lists in the article XML
// format. Author names may themselves contain spaces.
const AuthorSeparator = " ; "

type xmlArticle struct {
	Title         string `xml:"title"`
	OriginalTitle string `xml:"original-title"`
	Authors       string `xml:"authors"`
}

// ReadXML streams transactions from an article XML document of the form
//
//	<dblp>
//	  <article>
//	    <title>mine sequential pattern</title>
//	    <original-title>Mining Sequential Patterns</original-title>
//	    <authors>rakesh agrawal ; ramakrishnan srikant</authors>
//	  </article>
//	</dblp>
//
// Titles are expected to be already normalized (tokenized, stemmed);
// normalization is an upstream concern. Articles with an empty title are
// skipped. Non-UTF8 encodings are handled via the document's declared
// charset.
func ReadXML(r io.Reader) (*Corpus, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false

	var transactions []Transaction
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode article xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "article" {
			continue
		}

		var art xmlArticle
		if err := dec.DecodeElement(&art, &start); err != nil {
			return nil, fmt.Errorf("decode article element: %w", err)
		}

		titleTokens := strings.Fields(art.Title)
		if len(titleTokens) == 0 {
			continue
		}

		transactions = append(transactions, Transaction{
			TitleTokens:   titleTokens,
			Authors:       SplitAuthors(art.Authors),
			OriginalTitle: art.OriginalTitle,
		})
	}

	return New(transactions), nil
}

// SplitAuthors splits a "; "-separated author list, dropping empty
// entries.
func SplitAuthors(s string) []string {
	var authors []string
	for _, a := range strings.Split(s, ";") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		authors = append(authors, a)
	}
	return authors
}

// JoinAuthors renders an author list in the article XML format.
func JoinAuthors(authors []string) string {
	return strings.Join(authors, AuthorSeparator)
}
