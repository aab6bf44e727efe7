package filter

import (
	"quarry-hq/strata/pkg/strata/ast"
	strataerrors "quarry-hq/strata/pkg/strata/errors"
)

// Filter rejects documents containing deny-listed tags.
// A Filter is immutable after construction and safe for concurrent use.
type Filter struct {
	deny *DenyList
}

// New creates a filter over the given deny-list.
// A nil deny-list selects the default list.
func New(deny *DenyList) *Filter {
	if deny == nil {
		deny = NewDenyList()
	}
	return &Filter{deny: deny}
}

// DenyList returns the deny-list the filter scans against.
func (f *Filter) DenyList() *DenyList {
	return f.deny
}

// QuickScan checks the raw, unparsed text for deny-listed tag spellings.
// It catches obviously dangerous input before the parse step spends any
// work on it, and catches tags an upstream grammar might silently drop.
func (f *Filter) QuickScan(text string) error {
	if pattern, ok := f.deny.matchRaw(text); ok {
		return strataerrors.NewUnsafeTag(pattern)
	}
	return nil
}

// DeepScan walks the parsed tree and rejects the first tag containing a
// deny-listed fragment. Every node is visited: sequence elements, mapping
// keys and values, and the payloads of tagged nodes, so the scan stays
// exhaustive even when an upstream stage missed a tag. Scalars are always
// safe.
func (f *Filter) DeepScan(root *ast.Node) error {
	return ast.Walk(root, func(n *ast.Node) error {
		if n.Kind != ast.KindTagged {
			return nil
		}
		if _, ok := f.deny.Match(n.Tag); ok {
			return strataerrors.NewUnsafeTag(n.Tag)
		}
		return nil
	})
}
