// Package ast defines the document tree produced by the YAML parser.
//
// A parsed document is a tree of Node values: scalars (null, bool, number,
// string), ordered collections (sequence, mapping), and tagged nodes carrying
// an explicit type annotation. Nodes record their source location for error
// reporting and are never mutated after construction; the safety filter and
// the value converter both consume the same immutable tree.
//
// Numbers are kept as their raw source literal. Realizing a literal into a
// concrete numeric type (int64, uint64, float64) is the converter's job, so
// the tree stays a faithful record of the source text.
package ast
