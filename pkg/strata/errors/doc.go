// Package errors defines the typed failure taxonomy for the loading pipeline.
//
// Every failure surfaces to callers as an *Error value with a Kind that maps
// 1:1 to its root cause:
//
//   - KindParse: malformed YAML syntax
//   - KindUnsafeTag: a deny-listed tag anywhere in the document tree
//   - KindInvalidNumber: a numeric literal no supported numeric type can hold
//   - KindFileNotFound: a missing or invalid filesystem path
//   - KindDecoding: a byte stream that is not valid UTF-8
//
// Parse errors with a known position carry a rendered context snippet showing
// the offending line with a caret. Errors are plain values; nothing in the
// pipeline recovers or swallows them internally.
//
// Safety rejections are a distinct kind from syntax errors so a caller can
// decide to retry through the unsafe entry points as an explicit trust
// decision rather than treating all failures uniformly.
package errors
