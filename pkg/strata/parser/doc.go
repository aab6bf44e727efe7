// Package parser turns YAML text into document trees (ast.Node).
//
// It wraps gopkg.in/yaml.v3 as the document grammar: each document is decoded
// into a yaml.Node tree, which preserves source positions, mapping order and
// explicit tags, and is then converted into the pipeline's own ast.Node form.
// Syntax errors are reported as typed parse diagnostics with the position
// extracted from the underlying parser and a rendered context snippet.
//
// The parser performs no safety filtering and no value realization; it is the
// "DocumentParser" collaborator the rest of the pipeline builds on.
package parser
