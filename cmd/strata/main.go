// Strata is a command-line frontend for the strata safe YAML loader.
//
// It loads untrusted YAML documents with a deny-list safety filter,
// scans directories for unsafe tags, and watches directories for changes:
//   - Deny-list filtering of dangerous tags (!!python/object and friends)
//   - Order-preserving conversion to native values
//   - Parallel, all-or-nothing batch loading
//
// Usage:
//
//	# Load a file and print it as JSON
//	strata load config.yaml
//
//	# Load every document in a multi-document stream
//	strata load --all stream.yaml
//
//	# Scan a directory tree for unsafe documents
//	strata scan --recursive manifests/
//
//	# Watch a directory and reload on change
//	strata watch manifests/
//
//	# Show version information
//	strata version
package main

func main() {
	Execute()
}
