// Package batch loads many independent YAML documents at once.
//
// Loading runs in two phases. Phase one fans parse + safety-filter work for
// all inputs across a bounded worker pool; items are fully independent, each
// worker reads only the shared immutable deny-list and writes its own result
// slot. Phase two realizes the collected trees into native values strictly
// serially, in original input order, because the converter's intern table is
// single-threaded state.
//
// There is no cancellation: once a batch starts, every parse/filter task
// runs to completion even if others already failed, and the aggregate
// decision is made only after all complete. A batch either returns a
// complete, ordered result aligned index-for-index with the input, or a
// single diagnostic, never a partial list. When several items fail
// concurrently, which diagnostic is surfaced is unspecified.
//
// The package also provides the directory walker that discovers candidate
// .yaml/.yml files on disk.
package batch
