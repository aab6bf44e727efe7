package filter

import "strings"

// defaultFragments are tag fragments that are always unsafe: markers for
// object construction/invocation and name/module resolution, in canonical
// URI form, shorthand form and bare form.
var defaultFragments = []string{
	"tag:yaml.org,2002:python/object",
	"tag:yaml.org,2002:python/object/apply",
	"tag:yaml.org,2002:python/object/new",
	"tag:yaml.org,2002:python/name",
	"tag:yaml.org,2002:python/module",
	"!!python/object",
	"!!python/object/apply",
	"!!python/object/new",
	"!!python/name",
	"!!python/module",
	"python/object",
	"python/object/apply",
	"python/object/new",
	"python/name",
	"python/module",
}

// quickPatterns are the raw-text patterns checked before parsing. They are a
// narrower set than the tag fragments: raw text legitimately contains plain
// words, so only explicit tag spellings are matched.
var quickPatterns = []string{
	"!!python/object",
	"!!python/name",
	"!!python/module",
	"!python/object",
	"!python/name",
	"!python/module",
	"tag:yaml.org,2002:python",
}

// DenyList is the set of tag-name fragments treated as unconditionally
// dangerous. The zero value is not usable; construct with NewDenyList.
type DenyList struct {
	fragments []string
	quick     []string
}

// NewDenyList builds a deny-list from the default fragments plus any extra
// fragments supplied by the caller. Extra fragments extend the tree scan;
// the raw-text pre-scan keeps its fixed pattern set.
func NewDenyList(extra ...string) *DenyList {
	fragments := make([]string, 0, len(defaultFragments)+len(extra))
	fragments = append(fragments, defaultFragments...)
	fragments = append(fragments, extra...)
	return &DenyList{
		fragments: fragments,
		quick:     quickPatterns,
	}
}

// Fragments returns the tag fragments checked by the tree scan.
func (d *DenyList) Fragments() []string {
	return d.fragments
}

// Match tests a fully-qualified tag for containment of any deny-listed
// fragment and returns the first matching fragment.
func (d *DenyList) Match(tag string) (string, bool) {
	for _, f := range d.fragments {
		if strings.Contains(tag, f) {
			return f, true
		}
	}
	return "", false
}

// matchRaw tests raw document text against the pre-scan patterns.
func (d *DenyList) matchRaw(text string) (string, bool) {
	for _, p := range d.quick {
		if strings.Contains(text, p) {
			return p, true
		}
	}
	return "", false
}
