// Package convert realizes parsed document trees into native Go values.
//
// The mapping is total and visits every node exactly once:
//
//   - null -> nil
//   - bool -> bool
//   - number -> int64, else uint64, else float64 (magnitude is never
//     silently lost: literals beyond both integer ranges become a
//     floating-point approximation, not an error)
//   - string -> string (short strings are interned per converter as a pure
//     memory optimization)
//   - sequence -> []any, in index order
//   - mapping -> *Map, an insertion-ordered associative container
//   - tagged -> always a conversion failure: safe-mode callers rejected all
//     tags before conversion, and unsafe mode has no supported realization
//     for tags, so a tagged node reaching the converter fails loudly rather
//     than silently dropping data
//
// A Converter is not safe for concurrent use; the batch loader realizes all
// values on a single goroutine.
package convert
