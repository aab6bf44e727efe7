package convert

import (
	"math"
	"strconv"
	"strings"

	"quarry-hq/strata/pkg/strata/ast"
	strataerrors "quarry-hq/strata/pkg/strata/errors"
)

// Strings shorter than this are interned. Matches the realization layer's
// short-string threshold; interning longer strings costs more than it saves.
const internMaxLen = 10

// Converter realizes document trees into native values.
// Not safe for concurrent use: the intern table is unsynchronized.
type Converter struct {
	interned map[string]string
}

// NewConverter creates a converter with an empty intern table.
func NewConverter() *Converter {
	return &Converter{interned: make(map[string]string)}
}

// frame tracks one container node whose children are being realized.
type frame struct {
	node    *ast.Node
	next    int  // Next child to realize
	seq     []any
	mapping *Map
	key     any  // Realized mapping key awaiting its value
	keyDone bool
}

// Convert realizes a document tree into a native value. The traversal uses
// an explicit work stack so adversarially deep documents cannot exhaust the
// call stack. Every node is visited exactly once.
func (c *Converter) Convert(root *ast.Node) (any, error) {
	if root == nil {
		return nil, nil
	}

	var (
		result any
		stack  []*frame
	)

	deliver := func(v any) {
		if len(stack) == 0 {
			result = v
			return
		}
		parent := stack[len(stack)-1]
		switch parent.node.Kind {
		case ast.KindSequence:
			parent.seq = append(parent.seq, v)
		case ast.KindMapping:
			if !parent.keyDone {
				parent.key = v
				parent.keyDone = true
			} else {
				parent.mapping.Set(parent.key, v)
				parent.key = nil
				parent.keyDone = false
			}
		}
	}

	// Seed with the root. Scalars complete immediately; containers push a
	// frame and feed children through the same loop.
	pending := []*ast.Node{root}

	for len(pending) > 0 || len(stack) > 0 {
		// Realize the next pending node, if any.
		if len(pending) > 0 {
			n := pending[len(pending)-1]
			pending = pending[:len(pending)-1]

			switch n.Kind {
			case ast.KindSequence:
				stack = append(stack, &frame{node: n, seq: make([]any, 0, len(n.Items))})
			case ast.KindMapping:
				stack = append(stack, &frame{node: n, mapping: newMapCap(len(n.Pairs))})
			default:
				v, err := c.scalar(n)
				if err != nil {
					return nil, err
				}
				deliver(v)
			}
			continue
		}

		// No pending node: advance the innermost open container.
		f := stack[len(stack)-1]
		switch f.node.Kind {
		case ast.KindSequence:
			if f.next < len(f.node.Items) {
				pending = append(pending, f.node.Items[f.next])
				f.next++
				continue
			}
			stack = stack[:len(stack)-1]
			deliver(f.seq)
		case ast.KindMapping:
			if f.next < len(f.node.Pairs) {
				pair := f.node.Pairs[f.next]
				if !f.keyDone {
					pending = append(pending, pair.Key)
				} else {
					pending = append(pending, pair.Value)
					f.next++
				}
				continue
			}
			stack = stack[:len(stack)-1]
			deliver(f.mapping)
		}
	}

	return result, nil
}

// scalar realizes a leaf node. Tagged nodes always fail here: safe-mode
// callers rejected them before conversion, and unsafe mode has no supported
// realization for tags.
func (c *Converter) scalar(n *ast.Node) (any, error) {
	switch n.Kind {
	case ast.KindNull:
		return nil, nil
	case ast.KindBool:
		return n.Bool, nil
	case ast.KindNumber:
		return realizeNumber(n.Literal)
	case ast.KindString:
		return c.internString(n.Literal), nil
	case ast.KindTagged:
		return nil, strataerrors.NewUnsafeTag(n.Tag)
	}
	return nil, strataerrors.NewParse(n.Loc, "unknown node kind "+string(n.Kind))
}

// internString returns a canonical instance for short strings so repeated
// keys and values share storage. Purely a memory optimization; the returned
// string is always equal to the input.
func (c *Converter) internString(s string) string {
	if len(s) >= internMaxLen {
		return s
	}
	if v, ok := c.interned[s]; ok {
		return v
	}
	c.interned[s] = s
	return s
}

// realizeNumber converts a numeric literal using the widest-fit rule:
// signed 64-bit, else unsigned 64-bit, else 64-bit float. Magnitude is never
// silently lost to truncation; literals beyond uint64 become a float
// approximation rather than an error.
func realizeNumber(literal string) (any, error) {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return i, nil
	}
	if u, err := strconv.ParseUint(literal, 10, 64); err == nil {
		return u, nil
	}

	// Base-prefixed integer forms (0x, 0o, 0b).
	if i, err := strconv.ParseInt(literal, 0, 64); err == nil {
		return i, nil
	}
	if u, err := strconv.ParseUint(literal, 0, 64); err == nil {
		return u, nil
	}

	switch strings.ToLower(literal) {
	case ".inf", "+.inf":
		return math.Inf(1), nil
	case "-.inf":
		return math.Inf(-1), nil
	case ".nan":
		return math.NaN(), nil
	}

	if f, err := strconv.ParseFloat(literal, 64); err == nil {
		return f, nil
	}

	return nil, strataerrors.NewInvalidNumber(literal)
}
