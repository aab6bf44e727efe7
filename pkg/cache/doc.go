// Package cache persists scan results keyed by document content hash.
//
// The scan command uses it to skip re-scanning files whose content has not
// changed between runs. Entries record the outcome (ok, or the diagnostic
// kind and message), the path last seen for the content, and the scan run
// that produced them. The cache is purely an accelerator: a cold or missing
// cache only costs time, never correctness.
package cache
