package parser

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"quarry-hq/strata/pkg/strata/ast"
	strataerrors "quarry-hq/strata/pkg/strata/errors"
)

// Parser parses YAML text into document trees.
type Parser struct {
	maxSize   int64 // Maximum input size in bytes (0 = unlimited)
	maxNodes  int   // Node budget per document, counting alias expansions
	sourceTag string
}

// Default node budget per document. Aliases are expanded structurally, so a
// budget is what keeps "billion laughs" inputs from exhausting memory.
const defaultMaxNodes = 1 << 20

// NewParser creates a parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxSize:  0,
		maxNodes: defaultMaxNodes,
	}
}

// WithMaxSize sets the maximum input size in bytes. Zero means unlimited.
func (p *Parser) WithMaxSize(size int64) *Parser {
	p.maxSize = size
	return p
}

// WithMaxNodes sets the per-document node budget.
func (p *Parser) WithMaxNodes(n int) *Parser {
	p.maxNodes = n
	return p
}

// ParseOne parses a single YAML document from text. Empty input parses to a
// null node. The source name is used in error locations and may be empty for
// inline text.
func (p *Parser) ParseOne(text, source string) (*ast.Node, error) {
	if err := p.checkSize(text, source); err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, p.syntaxError(err, text, source)
	}

	return newDecoder(source, p.maxNodes).decode(&root)
}

// ParseAll parses every document in text, split on the standard "---"
// document boundary, in source order. Empty input yields no documents.
func (p *Parser) ParseAll(text, source string) ([]*ast.Node, error) {
	if err := p.checkSize(text, source); err != nil {
		return nil, err
	}

	var docs []*ast.Node
	dec := yaml.NewDecoder(strings.NewReader(text))
	for {
		var root yaml.Node
		err := dec.Decode(&root)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, p.syntaxError(err, text, source)
		}

		node, err := newDecoder(source, p.maxNodes).decode(&root)
		if err != nil {
			return nil, err
		}
		docs = append(docs, node)
	}

	return docs, nil
}

// ParseBytes parses a single document from raw bytes, rejecting input that is
// not valid UTF-8 with a decoding diagnostic.
func (p *Parser) ParseBytes(data []byte, source string) (*ast.Node, error) {
	if !utf8.Valid(data) {
		return nil, strataerrors.NewDecoding(fmt.Sprintf("%s: input is not valid UTF-8", sourceName(source)))
	}
	return p.ParseOne(string(data), source)
}

func (p *Parser) checkSize(text, source string) error {
	if p.maxSize > 0 && int64(len(text)) > p.maxSize {
		return strataerrors.NewParse(ast.Location{File: source}, fmt.Sprintf("input size %d exceeds maximum %d bytes", len(text), p.maxSize))
	}
	return nil
}

// yamlLineError matches the position-carrying error shape yaml.v3 produces,
// e.g. "yaml: line 3: mapping values are not allowed in this context".
var yamlLineError = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// syntaxError converts a yaml.v3 error into a typed parse diagnostic.
// yaml.v3 reports the line but not the column, so the column stays at the
// zero "unknown" sentinel even when the line is known.
func (p *Parser) syntaxError(err error, text, source string) error {
	msg := err.Error()

	if m := yamlLineError.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		loc := ast.Location{File: source, Line: line}
		return strataerrors.NewParseWithContext(loc, m[2], text)
	}

	// yaml.v3 drops the "line N:" prefix exactly when the error is on the
	// first line, so a bare prefixed message still carries a position.
	if rest, ok := strings.CutPrefix(msg, "yaml: "); ok {
		loc := ast.Location{File: source, Line: 1}
		return strataerrors.NewParseWithContext(loc, rest, text)
	}

	return strataerrors.NewParse(ast.Location{File: source}, msg)
}

func sourceName(source string) string {
	if source == "" {
		return "<input>"
	}
	return source
}
