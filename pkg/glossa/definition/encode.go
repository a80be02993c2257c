package definition

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/cognicore/glossa/pkg/glossa/pattern"
)

// xmlPattern serializes a pattern in the definition document: phrases as
// a single <title> element, author sets as one <author> element each.
type xmlPattern struct {
	Title   string   `xml:"title,omitempty"`
	Authors []string `xml:"author,omitempty"`
}

type xmlTransaction struct {
	Title   string   `xml:"title"`
	Authors []string `xml:"author"`
}

type xmlDefinition struct {
	XMLName  xml.Name         `xml:"definition"`
	ID       string           `xml:"id,attr,omitempty"`
	Pattern  xmlPattern       `xml:"pattern"`
	Context  []xmlPattern     `xml:"context>pattern"`
	Synonyms []xmlPattern     `xml:"synonyms>pattern"`
	Examples []xmlTransaction `xml:"examples>transaction"`
}

func toXMLPattern(p pattern.Pattern) xmlPattern {
	if p.Kind == pattern.KindAuthors {
		return xmlPattern{Authors: p.Tokens}
	}
	return xmlPattern{Title: p.String()}
}

// EncodeXML writes the definition as an indented XML document in the
// pipeline's <definition> shape.
func (d Definition) EncodeXML(w io.Writer) error {
	doc := xmlDefinition{
		ID:      d.ID,
		Pattern: toXMLPattern(d.Query),
	}
	for _, p := range d.Context {
		doc.Context = append(doc.Context, toXMLPattern(p))
	}
	for _, p := range d.Synonyms {
		doc.Synonyms = append(doc.Synonyms, toXMLPattern(p))
	}
	for _, e := range d.Examples {
		doc.Examples = append(doc.Examples, xmlTransaction{
			Title:   e.Title,
			Authors: e.Authors,
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("write definition: %w", err)
	}
	return nil
}

type jsonPattern struct {
	Kind    string   `json:"kind"`
	Tokens  []string `json:"tokens"`
	Support float64  `json:"support,omitempty"`
}

type jsonExample struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
}

type jsonDefinition struct {
	ID       string        `json:"id,omitempty"`
	Query    jsonPattern   `json:"query"`
	Context  []jsonPattern `json:"context"`
	Synonyms []jsonPattern `json:"synonyms"`
	Examples []jsonExample `json:"examples"`
}

func toJSONPattern(p pattern.Pattern) jsonPattern {
	return jsonPattern{
		Kind:    p.Kind.String(),
		Tokens:  p.Tokens,
		Support: p.Support,
	}
}

func fromJSONPattern(p jsonPattern) (pattern.Pattern, error) {
	kind, err := pattern.ParseKind(p.Kind)
	if err != nil {
		return pattern.Pattern{}, err
	}
	return pattern.Pattern{Kind: kind, Tokens: p.Tokens, Support: p.Support}, nil
}

// DecodeJSON reads a definition previously written by EncodeJSON.
func DecodeJSON(r io.Reader) (Definition, error) {
	var doc jsonDefinition
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Definition{}, fmt.Errorf("parse definition: %w", err)
	}

	query, err := fromJSONPattern(doc.Query)
	if err != nil {
		return Definition{}, err
	}

	def := Definition{ID: doc.ID, Query: query}
	for _, p := range doc.Context {
		pat, err := fromJSONPattern(p)
		if err != nil {
			return Definition{}, err
		}
		def.Context = append(def.Context, pat)
	}
	for _, p := range doc.Synonyms {
		pat, err := fromJSONPattern(p)
		if err != nil {
			return Definition{}, err
		}
		def.Synonyms = append(def.Synonyms, pat)
	}
	for _, e := range doc.Examples {
		def.Examples = append(def.Examples, Example{Title: e.Title, Authors: e.Authors})
	}
	return def, nil
}

// EncodeJSON writes the definition as an indented JSON document.
func (d Definition) EncodeJSON(w io.Writer) error {
	doc := jsonDefinition{
		ID:       d.ID,
		Query:    toJSONPattern(d.Query),
		Context:  []jsonPattern{},
		Synonyms: []jsonPattern{},
		Examples: []jsonExample{},
	}
	for _, p := range d.Context {
		doc.Context = append(doc.Context, toJSONPattern(p))
	}
	for _, p := range d.Synonyms {
		doc.Synonyms = append(doc.Synonyms, toJSONPattern(p))
	}
	for _, e := range d.Examples {
		doc.Examples = append(doc.Examples, jsonExample{Title: e.Title, Authors: e.Authors})
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("write definition: %w", err)
	}
	return nil
}
