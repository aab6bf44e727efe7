package parser

import (
	"strings"

	"gopkg.in/yaml.v3"

	"quarry-hq/strata/pkg/strata/ast"
	strataerrors "quarry-hq/strata/pkg/strata/errors"
)

// decoder converts one yaml.Node document tree into an ast.Node tree.
// Each decoder carries a node budget: aliases are expanded structurally, so
// the budget is what bounds alias-amplified documents.
type decoder struct {
	source string
	budget int
}

func newDecoder(source string, maxNodes int) *decoder {
	return &decoder{source: source, budget: maxNodes}
}

func (d *decoder) decode(n *yaml.Node) (*ast.Node, error) {
	if err := d.spend(n); err != nil {
		return nil, err
	}

	switch n.Kind {
	case 0:
		// Zero node: the input had no content at all.
		return &ast.Node{Kind: ast.KindNull}, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &ast.Node{Kind: ast.KindNull, Loc: d.loc(n)}, nil
		}
		return d.decode(n.Content[0])
	case yaml.AliasNode:
		return d.decode(n.Alias)
	}

	// Explicit standard tags (e.g. "!!int 5") still resolve as their scalar
	// kind; only tags outside the standard set wrap the node.
	if isCustomTag(n.Tag) {
		return d.tagged(n)
	}

	switch n.Kind {
	case yaml.ScalarNode:
		return d.scalar(n), nil
	case yaml.SequenceNode:
		items := make([]*ast.Node, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := d.decode(c)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return &ast.Node{Kind: ast.KindSequence, Items: items, Loc: d.loc(n)}, nil
	case yaml.MappingNode:
		pairs := make([]ast.Pair, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, err := d.decode(n.Content[i])
			if err != nil {
				return nil, err
			}
			value, err := d.decode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, ast.Pair{Key: key, Value: value})
		}
		return &ast.Node{Kind: ast.KindMapping, Pairs: pairs, Loc: d.loc(n)}, nil
	}

	return nil, strataerrors.NewParse(d.loc(n), "unsupported YAML node kind")
}

// scalar resolves an untagged or standard-tagged scalar by the tag the
// grammar assigned to it. Timestamps and merge keys stay raw strings; the
// pipeline has no non-string realization for either.
func (d *decoder) scalar(n *yaml.Node) *ast.Node {
	loc := d.loc(n)

	switch n.Tag {
	case "!!null":
		return &ast.Node{Kind: ast.KindNull, Loc: loc}
	case "!!bool":
		if b, ok := parseBool(n.Value); ok {
			return &ast.Node{Kind: ast.KindBool, Bool: b, Loc: loc}
		}
		return &ast.Node{Kind: ast.KindString, Literal: n.Value, Loc: loc}
	case "!!int", "!!float":
		return &ast.Node{Kind: ast.KindNumber, Literal: n.Value, Loc: loc}
	default:
		return &ast.Node{Kind: ast.KindString, Literal: n.Value, Loc: loc}
	}
}

// tagged wraps a node carrying an explicit non-standard tag. The inner value
// is decoded by structure, ignoring the tag, so the safety filter can scan
// tagged payloads exhaustively.
func (d *decoder) tagged(n *yaml.Node) (*ast.Node, error) {
	var inner *ast.Node
	var err error

	switch n.Kind {
	case yaml.ScalarNode:
		inner = &ast.Node{Kind: ast.KindString, Literal: n.Value, Loc: d.loc(n)}
	case yaml.SequenceNode, yaml.MappingNode:
		// Strip the tag and decode the structure underneath.
		bare := *n
		bare.Style &^= yaml.TaggedStyle
		bare.Tag = bareTag(n.Kind)
		inner, err = d.decode(&bare)
		if err != nil {
			return nil, err
		}
	default:
		inner = &ast.Node{Kind: ast.KindNull, Loc: d.loc(n)}
	}

	return &ast.Node{Kind: ast.KindTagged, Tag: n.Tag, Inner: inner, Loc: d.loc(n)}, nil
}

func (d *decoder) loc(n *yaml.Node) ast.Location {
	return ast.Location{File: d.source, Line: n.Line, Column: n.Column}
}

func (d *decoder) spend(n *yaml.Node) error {
	d.budget--
	if d.budget < 0 {
		return strataerrors.NewParse(d.loc(n), "document exceeds node budget (excessive nesting or aliasing)")
	}
	return nil
}

// isCustomTag reports whether a resolved tag falls outside the standard
// scalar and collection tags the pipeline realizes directly.
func isCustomTag(tag string) bool {
	switch tag {
	case "", "!!null", "!!bool", "!!int", "!!float", "!!str",
		"!!seq", "!!map", "!!merge", "!!timestamp":
		return false
	}
	return true
}

func bareTag(kind yaml.Kind) string {
	if kind == yaml.MappingNode {
		return "!!map"
	}
	return "!!seq"
}

// parseBool accepts the boolean spellings the grammar resolves to !!bool.
func parseBool(s string) (value, ok bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "y":
		return true, true
	case "false", "no", "off", "n":
		return false, true
	}
	return false, false
}
