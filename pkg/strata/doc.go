// Package strata loads YAML into native Go values without ever letting an
// embedded type directive construct objects or execute code.
//
// The pipeline is: raw-text quick scan -> parse -> deep tag scan -> value
// conversion. Safe entry points (Load, LoadAll, LoadMany, LoadDirectory)
// run the full pipeline; the Unsafe variants skip the safety filter as an
// explicit trust decision but still have no realization for tags, so tagged
// documents fail during conversion rather than silently dropping data.
//
// The package is organized into subpackages:
//
//   - ast: document tree definitions and traversal
//   - parser: YAML text -> document tree
//   - filter: deny-list safety scanning
//   - convert: document tree -> native value, ordered containers
//   - batch: parallel multi-document and directory loading
//   - errors: the typed diagnostic taxonomy
//
// # Basic usage
//
//	value, err := strata.Load("name: demo\nreplicas: 3")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m := value.(*convert.Map)
//
// Batch loading with custom options goes through batch.NewLoader directly.
package strata
