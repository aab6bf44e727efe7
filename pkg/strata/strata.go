package strata

import (
	"quarry-hq/strata/pkg/strata/batch"
)

// Load parses a single YAML document and realizes it as a native value,
// rejecting any deny-listed tag. Empty input loads as nil.
func Load(text string) (any, error) {
	return batch.NewLoader().LoadOne(text, "")
}

// LoadUnsafe parses a single document without the safety filter.
// Only use this with trusted input.
func LoadUnsafe(text string) (any, error) {
	return batch.NewLoader().LoadOneUnsafe(text, "")
}

// LoadAll parses every document in text, split on the standard "---"
// boundary, realizing them in order. The whole call fails on the first
// document that fails.
func LoadAll(text string) ([]any, error) {
	return batch.NewLoader().LoadAll(text, "")
}

// LoadAllUnsafe is LoadAll without the safety filter.
func LoadAllUnsafe(text string) ([]any, error) {
	return batch.NewLoader().LoadAllUnsafe(text, "")
}

// LoadMany loads independent documents concurrently, returning values in
// input order. Either every document loads, or the call fails with a single
// diagnostic.
func LoadMany(texts []string) ([]any, error) {
	return batch.NewLoader().LoadMany(manySources(texts))
}

// LoadManyUnsafe is LoadMany without the safety filter.
func LoadManyUnsafe(texts []string) ([]any, error) {
	return batch.NewLoader().LoadManyUnsafe(manySources(texts))
}

// LoadDirectory discovers .yaml/.yml files under path and loads them
// concurrently, returning (path, value) pairs.
func LoadDirectory(path string, recursive bool) ([]batch.File, error) {
	return batch.NewLoader().LoadDirectory(path, recursive)
}

// LoadDirectoryUnsafe is LoadDirectory without the safety filter.
func LoadDirectoryUnsafe(path string, recursive bool) ([]batch.File, error) {
	return batch.NewLoader().LoadDirectoryUnsafe(path, recursive)
}

func manySources(texts []string) []batch.Source {
	sources := make([]batch.Source, len(texts))
	for i, t := range texts {
		sources[i] = batch.Source{Text: t}
	}
	return sources
}
